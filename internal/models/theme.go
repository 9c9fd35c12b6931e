package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultThemeName is the theme row the appearance settings write into.
const DefaultThemeName = "Default Theme"

type UserColor struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"not null" json:"name"`
	Hex    string    `gorm:"type:varchar(7);not null" json:"hex"`
	HslH   int       `gorm:"column:hsl_h;not null" json:"hsl_h"`
	HslS   int       `gorm:"column:hsl_s;not null" json:"hsl_s"`
	HslL   int       `gorm:"column:hsl_l;not null" json:"hsl_l"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *UserColor) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type UserTheme struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string         `gorm:"not null" json:"name"`
	PrimaryColorID *uuid.UUID     `gorm:"type:uuid" json:"primary_color_id"`
	FontFamily     datatypes.JSON `json:"font_family"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PrimaryColor *UserColor `gorm:"foreignKey:PrimaryColorID;constraint:OnDelete:SET NULL" json:"primary_color,omitempty"`
}

func (t *UserTheme) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

type UserSetting struct {
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	ActiveThemeID *uuid.UUID `gorm:"type:uuid" json:"active_theme_id"`
	UpdatedAt     time.Time  `json:"updated_at"`

	ActiveTheme *UserTheme `gorm:"foreignKey:ActiveThemeID;constraint:OnDelete:SET NULL" json:"active_theme,omitempty"`
}
