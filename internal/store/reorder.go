package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
)

// Positioned tables, keyed by the names the admin API accepts.
var reorderable = map[string]bool{
	"sections":       true,
	"testimonials":   true,
	"faq_items":      true,
	"offer_features": true,
	"cta_buttons":    true,
}

type PositionUpdate struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

func IsReorderable(table string) bool {
	return reorderable[table]
}

// Reorder writes every position concurrently and waits for all of them. The
// first failure is returned; a missing id counts as a failure. Updates that
// already landed are not rolled back.
func (s *Store) Reorder(ctx context.Context, table string, items []PositionUpdate) error {
	if !reorderable[table] {
		return fmt.Errorf("%w: %s", ErrInvalidTable, table)
	}

	var g errgroup.Group
	for _, it := range items {
		it := it
		g.Go(func() error {
			res := s.conn(ctx).Table(table).
				Where("id = ?", it.ID).
				Updates(map[string]any{"position": it.Position})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s %s", ErrNotFound, table, it.ID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Log.Warn("reorder failed", zap.String("table", table), zap.Int("items", len(items)), zap.Error(err))
		return err
	}
	return nil
}
