package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section types understood by the public renderer. The column is free text so
// new types can be stored before code exists to render them.
const (
	SectionHero         = "hero"
	SectionFeatures     = "features"
	SectionOffer        = "offer"
	SectionTestimonials = "testimonials"
	SectionFAQ          = "faq"
	SectionCTA          = "cta"
	SectionContent      = "content"
	SectionGallery      = "gallery"
	SectionPricing      = "pricing"
	SectionContact      = "contact"
	SectionAbout        = "about"
)

// SectionTypes is the catalogue offered by the admin section form.
var SectionTypes = []string{
	SectionHero,
	SectionFeatures,
	SectionOffer,
	SectionTestimonials,
	SectionFAQ,
	SectionCTA,
	SectionContent,
	SectionGallery,
	SectionPricing,
	SectionContact,
	SectionAbout,
}

type Section struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PageID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"page_id"`
	Type     string         `gorm:"type:varchar(40);not null" json:"type"`
	Title    *string        `json:"title"`
	Subtitle *string        `json:"subtitle"`
	Content  datatypes.JSON `json:"content"`
	Position int            `gorm:"not null;default:0;index" json:"position"`
	Visible  bool           `gorm:"not null" json:"visible"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Page *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"page,omitempty"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
