package render

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

// Loader is the read side the public page needs. *store.Store satisfies it.
type Loader interface {
	GetPageBySlug(ctx context.Context, slug string) (*models.Page, error)
	ListVisibleSections(ctx context.Context, pageID uuid.UUID) ([]models.Section, error)
	ListApprovedTestimonials(ctx context.Context, sectionID uuid.UUID) ([]models.Testimonial, error)
	ListFAQItems(ctx context.Context, sectionID *uuid.UUID) ([]models.FAQItem, error)
	ListOfferFeatures(ctx context.Context, sectionID *uuid.UUID) ([]models.OfferFeature, error)
	ListCTAButtons(ctx context.Context, sectionID *uuid.UUID) ([]models.CTAButton, error)
}

// SectionView is the binding handed to a section template.
type SectionView struct {
	Section      models.Section
	Content      map[string]any
	Testimonials []models.Testimonial
	FAQ          []models.FAQItem
	Features     []models.OfferFeature
	Buttons      []models.CTAButton
}

// Kind describes how one section type is rendered: the template to execute
// and the child rows to load first.
type Kind struct {
	Template string
	Load     func(ctx context.Context, src Loader, v *SectionView) error
}

func loadTestimonials(ctx context.Context, src Loader, v *SectionView) (err error) {
	v.Testimonials, err = src.ListApprovedTestimonials(ctx, v.Section.ID)
	return err
}

func loadFAQ(ctx context.Context, src Loader, v *SectionView) (err error) {
	v.FAQ, err = src.ListFAQItems(ctx, &v.Section.ID)
	return err
}

func loadFeatures(ctx context.Context, src Loader, v *SectionView) (err error) {
	v.Features, err = src.ListOfferFeatures(ctx, &v.Section.ID)
	return err
}

func loadButtons(ctx context.Context, src Loader, v *SectionView) (err error) {
	v.Buttons, err = src.ListCTAButtons(ctx, &v.Section.ID)
	return err
}

// DefaultKinds maps section types to renderers. Types missing here are
// stored but render nothing.
func DefaultKinds() map[string]Kind {
	return map[string]Kind{
		models.SectionHero:         {Template: "sections/hero", Load: loadButtons},
		models.SectionTestimonials: {Template: "sections/testimonials", Load: loadTestimonials},
		models.SectionFAQ:          {Template: "sections/faq", Load: loadFAQ},
		models.SectionOffer:        {Template: "sections/offer", Load: loadFeatures},
		models.SectionFeatures:     {Template: "sections/offer", Load: loadFeatures},
		models.SectionCTA:          {Template: "sections/cta", Load: loadButtons},
		models.SectionContent:      {Template: "sections/content"},
	}
}
