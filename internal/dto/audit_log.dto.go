package dto

import (
	"time"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/models"
)

type AuditLogDTO struct {
	ID        uint      `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityKey string    `json:"entityKey"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAuditLogDTO(l models.AuditLog) AuditLogDTO {
	return AuditLogDTO{
		ID:        l.ID,
		Actor:     l.Actor,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityKey: l.EntityKey,
		Metadata:  l.Metadata,
		CreatedAt: l.CreatedAt,
	}
}
