package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

func (s *Store) GetPageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var p models.Page
	if err := s.conn(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ListPages returns every page, newest first.
func (s *Store) ListPages(ctx context.Context) ([]models.Page, error) {
	var out []models.Page
	err := s.conn(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) GetPage(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	return getByID[models.Page](ctx, s.db, id)
}

func (s *Store) CreatePage(ctx context.Context, p *models.Page) error {
	return insert(ctx, s.db, p)
}

func (s *Store) UpdatePage(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Page, error) {
	return patch[models.Page](ctx, s.db, id, fields)
}

func (s *Store) DeletePage(ctx context.Context, id uuid.UUID) error {
	return remove[models.Page](ctx, s.db, id)
}
