package audit

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/models"
)

// Writer persists one audit event.
type Writer interface {
	Write(ctx context.Context, ev Event) error
}

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		Actor:     ev.Actor,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityKey: ev.EntityKey,
		Metadata:  encodeMetadata(ev.Metadata),
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// ZapWriter emits events to the application log. Used when no database is
// configured.
type ZapWriter struct {
	log *zap.Logger
}

func NewZapWriter(log *zap.Logger) *ZapWriter {
	return &ZapWriter{log: log}
}

func (w *ZapWriter) Write(_ context.Context, ev Event) error {
	w.log.Info("audit",
		zap.String("actor", ev.Actor),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.String("entity_key", ev.EntityKey),
		zap.String("metadata", encodeMetadata(ev.Metadata)),
	)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
