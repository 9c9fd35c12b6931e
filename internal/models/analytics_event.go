package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsEvent rows are insert-only; nothing in the application updates them.
type AnalyticsEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventName string         `gorm:"type:varchar(64);not null;index" json:"event_name"`
	Page      *string        `gorm:"index" json:"page"`
	Section   *string        `json:"section"`
	Element   *string        `json:"element"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
