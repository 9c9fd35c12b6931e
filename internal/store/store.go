package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row addressed by id or slug does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTable is returned by Reorder for tables without a position column.
	ErrInvalidTable = errors.New("table cannot be reordered")
	// ErrDuplicate is returned when a write hits a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// Store is the content store: generic select/insert/update/delete over the
// relational tables. It keeps no state besides the connection pool.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the pool for callers that need a raw query (health checks).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return translate(db.WithContext(ctx).Create(row).Error)
}

// patch applies a partial update and returns the fresh row. An empty field set
// is a no-op read.
func patch[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		var model T
		res := db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return getByID[T](ctx, db, id)
}

func remove[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var model T
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of rows in model's table.
func (s *Store) Count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(model).Count(&n).Error
	return n, err
}
