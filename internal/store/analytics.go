package store

import (
	"context"
	"time"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

type EventFilter struct {
	EventName string
	Page      string
	Start     *time.Time
	End       *time.Time
	Limit     int
}

func (s *Store) InsertEvent(ctx context.Context, e *models.AnalyticsEvent) error {
	return insert(ctx, s.db, e)
}

// ListEvents returns events newest first. Start and End are inclusive.
func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]models.AnalyticsEvent, error) {
	q := s.conn(ctx)
	if f.EventName != "" {
		q = q.Where("event_name = ?", f.EventName)
	}
	if f.Page != "" {
		q = q.Where("page = ?", f.Page)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []models.AnalyticsEvent
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
