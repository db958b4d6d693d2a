package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AvailabilityOverride is one configured calendar day. DateKey is always
// midnight UTC.
type AvailabilityOverride struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	DateKey   time.Time                   `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TimeSlots datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"timeSlots"`
	IsBlocked bool                        `gorm:"not null;default:false" json:"isBlocked"`
	Notes     string                      `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (AvailabilityOverride) TableName() string {
	return "availability_overrides"
}

func (o *AvailabilityOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
