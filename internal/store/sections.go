package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

// ListSections returns sections ordered by position, optionally scoped to a
// page. Hidden sections are included; the page is preloaded for admin lists.
func (s *Store) ListSections(ctx context.Context, pageID *uuid.UUID) ([]models.Section, error) {
	q := s.conn(ctx).Preload("Page")
	if pageID != nil {
		q = q.Where("page_id = ?", *pageID)
	}
	var out []models.Section
	err := q.Order("position ASC").Find(&out).Error
	return out, err
}

// ListVisibleSections is the public query: visible rows of one page by position.
func (s *Store) ListVisibleSections(ctx context.Context, pageID uuid.UUID) ([]models.Section, error) {
	var out []models.Section
	err := s.conn(ctx).
		Where("page_id = ? AND visible = ?", pageID, true).
		Order("position ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) GetSection(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	return getByID[models.Section](ctx, s.db, id)
}

func (s *Store) CreateSection(ctx context.Context, sec *models.Section) error {
	return insert(ctx, s.db, sec)
}

func (s *Store) UpdateSection(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Section, error) {
	return patch[models.Section](ctx, s.db, id, fields)
}

func (s *Store) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return remove[models.Section](ctx, s.db, id)
}
