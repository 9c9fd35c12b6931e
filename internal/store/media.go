package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

type MediaFilter struct {
	SectionID *uuid.UUID
	Category  string
}

// ListMediaAssets returns assets newest first.
func (s *Store) ListMediaAssets(ctx context.Context, f MediaFilter) ([]models.MediaAsset, error) {
	q := s.conn(ctx).Preload("Section")
	if f.SectionID != nil {
		q = q.Where("section_id = ?", *f.SectionID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var out []models.MediaAsset
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) GetMediaAsset(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	return getByID[models.MediaAsset](ctx, s.db, id)
}

func (s *Store) CreateMediaAsset(ctx context.Context, m *models.MediaAsset) error {
	return insert(ctx, s.db, m)
}

func (s *Store) UpdateMediaAsset(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.MediaAsset, error) {
	return patch[models.MediaAsset](ctx, s.db, id, fields)
}

func (s *Store) DeleteMediaAsset(ctx context.Context, id uuid.UUID) error {
	return remove[models.MediaAsset](ctx, s.db, id)
}
