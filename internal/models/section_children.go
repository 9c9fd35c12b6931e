package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	AuthorName  string    `gorm:"not null" json:"author_name"`
	AuthorRole  *string   `json:"author_role"`
	CompanyName *string   `json:"company_name"`
	Quote       string    `gorm:"type:text;not null" json:"quote"`
	VideoURL    *string   `json:"video_url"`
	AvatarURL   *string   `json:"avatar_url"`
	Approved    bool      `gorm:"not null;default:false;index" json:"approved"`
	Position    int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"section,omitempty"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

type FAQItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Position  int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"section,omitempty"`
}

func (FAQItem) TableName() string { return "faq_items" }

func (f *FAQItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

type OfferFeature struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Title       string    `gorm:"not null" json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Description *string   `gorm:"type:text" json:"description"`
	Icon        *string   `gorm:"type:varchar(60)" json:"icon"`
	Position    int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"section,omitempty"`
}

func (o *OfferFeature) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

type CTAButton struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Label     string    `gorm:"not null" json:"label"`
	Href      string    `gorm:"not null" json:"href"`
	Variant   *string   `gorm:"type:varchar(20)" json:"variant"` // primary | secondary | ghost
	Position  int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"section,omitempty"`
}

func (CTAButton) TableName() string { return "cta_buttons" }

func (b *CTAButton) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
