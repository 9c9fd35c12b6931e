package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaAsset struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string     `gorm:"not null" json:"url"`
	Type      string     `gorm:"type:varchar(40);not null" json:"type"` // image | video | logo ...
	Alt       *string    `json:"alt"`
	Category  *string    `gorm:"type:varchar(60);index" json:"category"`
	SectionID *uuid.UUID `gorm:"type:uuid;index" json:"section_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:SET NULL" json:"section,omitempty"`
}

func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
