package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return getByID[models.User](ctx, s.db, id)
}

// GetUserByEmail matches case-insensitively; emails are stored lower-cased.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return insert(ctx, s.db, u)
}
