package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

type TestimonialFilter struct {
	SectionID *uuid.UUID
	Approved  *bool
}

// ListTestimonials is the admin query; Section is preloaded for display.
func (s *Store) ListTestimonials(ctx context.Context, f TestimonialFilter) ([]models.Testimonial, error) {
	q := s.conn(ctx).Preload("Section")
	if f.SectionID != nil {
		q = q.Where("section_id = ?", *f.SectionID)
	}
	if f.Approved != nil {
		q = q.Where("approved = ?", *f.Approved)
	}
	var out []models.Testimonial
	err := q.Order("position ASC").Find(&out).Error
	return out, err
}

// ListApprovedTestimonials is the public query for one section.
func (s *Store) ListApprovedTestimonials(ctx context.Context, sectionID uuid.UUID) ([]models.Testimonial, error) {
	approved := true
	var out []models.Testimonial
	err := s.conn(ctx).
		Where("section_id = ? AND approved = ?", sectionID, approved).
		Order("position ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) GetTestimonial(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	return getByID[models.Testimonial](ctx, s.db, id)
}

func (s *Store) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	return insert(ctx, s.db, t)
}

func (s *Store) UpdateTestimonial(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Testimonial, error) {
	return patch[models.Testimonial](ctx, s.db, id, fields)
}

func (s *Store) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return remove[models.Testimonial](ctx, s.db, id)
}

func (s *Store) ListFAQItems(ctx context.Context, sectionID *uuid.UUID) ([]models.FAQItem, error) {
	q := s.conn(ctx).Preload("Section")
	if sectionID != nil {
		q = q.Where("section_id = ?", *sectionID)
	}
	var out []models.FAQItem
	err := q.Order("position ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetFAQItem(ctx context.Context, id uuid.UUID) (*models.FAQItem, error) {
	return getByID[models.FAQItem](ctx, s.db, id)
}

func (s *Store) CreateFAQItem(ctx context.Context, f *models.FAQItem) error {
	return insert(ctx, s.db, f)
}

func (s *Store) UpdateFAQItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.FAQItem, error) {
	return patch[models.FAQItem](ctx, s.db, id, fields)
}

func (s *Store) DeleteFAQItem(ctx context.Context, id uuid.UUID) error {
	return remove[models.FAQItem](ctx, s.db, id)
}

func (s *Store) ListOfferFeatures(ctx context.Context, sectionID *uuid.UUID) ([]models.OfferFeature, error) {
	q := s.conn(ctx).Preload("Section")
	if sectionID != nil {
		q = q.Where("section_id = ?", *sectionID)
	}
	var out []models.OfferFeature
	err := q.Order("position ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetOfferFeature(ctx context.Context, id uuid.UUID) (*models.OfferFeature, error) {
	return getByID[models.OfferFeature](ctx, s.db, id)
}

func (s *Store) CreateOfferFeature(ctx context.Context, f *models.OfferFeature) error {
	return insert(ctx, s.db, f)
}

func (s *Store) UpdateOfferFeature(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.OfferFeature, error) {
	return patch[models.OfferFeature](ctx, s.db, id, fields)
}

func (s *Store) DeleteOfferFeature(ctx context.Context, id uuid.UUID) error {
	return remove[models.OfferFeature](ctx, s.db, id)
}

func (s *Store) ListCTAButtons(ctx context.Context, sectionID *uuid.UUID) ([]models.CTAButton, error) {
	q := s.conn(ctx).Preload("Section")
	if sectionID != nil {
		q = q.Where("section_id = ?", *sectionID)
	}
	var out []models.CTAButton
	err := q.Order("position ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetCTAButton(ctx context.Context, id uuid.UUID) (*models.CTAButton, error) {
	return getByID[models.CTAButton](ctx, s.db, id)
}

func (s *Store) CreateCTAButton(ctx context.Context, b *models.CTAButton) error {
	return insert(ctx, s.db, b)
}

func (s *Store) UpdateCTAButton(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.CTAButton, error) {
	return patch[models.CTAButton](ctx, s.db, id, fields)
}

func (s *Store) DeleteCTAButton(ctx context.Context, id uuid.UUID) error {
	return remove[models.CTAButton](ctx, s.db, id)
}
