package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

// ErrForeignColor is returned when a user references another user's color.
var ErrForeignColor = errors.New("color does not belong to user")

func (s *Store) ListColors(ctx context.Context, userID uuid.UUID) ([]models.UserColor, error) {
	var out []models.UserColor
	err := s.conn(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetColor(ctx context.Context, userID, id uuid.UUID) (*models.UserColor, error) {
	var c models.UserColor
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CreateColor(ctx context.Context, c *models.UserColor) error {
	return insert(ctx, s.db, c)
}

func (s *Store) UpdateColor(ctx context.Context, userID, id uuid.UUID, fields map[string]any) (*models.UserColor, error) {
	if _, err := s.GetColor(ctx, userID, id); err != nil {
		return nil, err
	}
	return patch[models.UserColor](ctx, s.db, id, fields)
}

func (s *Store) DeleteColor(ctx context.Context, userID, id uuid.UUID) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserColor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveTheme follows user_settings.active_theme_id to the theme row, with its
// primary color preloaded. ErrNotFound when the user never saved appearance.
func (s *Store) ActiveTheme(ctx context.Context, userID uuid.UUID) (*models.UserTheme, error) {
	var st models.UserSetting
	err := s.conn(ctx).
		Preload("ActiveTheme.PrimaryColor").
		Where("user_id = ?", userID).
		First(&st).Error
	if err != nil {
		return nil, translate(err)
	}
	if st.ActiveTheme == nil {
		return nil, ErrNotFound
	}
	return st.ActiveTheme, nil
}

// ActiveColor returns the primary color of the active theme, if any.
func (s *Store) ActiveColor(ctx context.Context, userID uuid.UUID) (*models.UserColor, error) {
	t, err := s.ActiveTheme(ctx, userID)
	if err != nil {
		return nil, err
	}
	if t.PrimaryColor == nil {
		return nil, ErrNotFound
	}
	return t.PrimaryColor, nil
}

// ActiveFonts returns the raw font_family JSON of the active theme.
func (s *Store) ActiveFonts(ctx context.Context, userID uuid.UUID) (datatypes.JSON, error) {
	t, err := s.ActiveTheme(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(t.FontFamily) == 0 {
		return nil, ErrNotFound
	}
	return t.FontFamily, nil
}

// SaveAppearance writes into the user's "Default Theme" row, creating it on
// first use, and points user_settings at it. Nil arguments leave the stored
// value untouched. Both writes share one transaction.
func (s *Store) SaveAppearance(ctx context.Context, userID uuid.UUID, colorID *uuid.UUID, fonts datatypes.JSON) (*models.UserTheme, error) {
	var saved models.UserTheme
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if colorID != nil {
			var n int64
			if err := tx.Model(&models.UserColor{}).
				Where("id = ? AND user_id = ?", *colorID, userID).
				Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrForeignColor
			}
		}

		var theme models.UserTheme
		err := tx.Where("user_id = ? AND name = ?", userID, models.DefaultThemeName).First(&theme).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			theme = models.UserTheme{
				UserID:         userID,
				Name:           models.DefaultThemeName,
				PrimaryColorID: colorID,
				FontFamily:     fonts,
			}
			if err := tx.Create(&theme).Error; err != nil {
				return fmt.Errorf("create theme: %w", err)
			}
		case err != nil:
			return err
		default:
			fields := map[string]any{}
			if colorID != nil {
				fields["primary_color_id"] = *colorID
			}
			if fonts != nil {
				fields["font_family"] = fonts
			}
			if len(fields) > 0 {
				if err := tx.Model(&theme).Updates(fields).Error; err != nil {
					return fmt.Errorf("update theme: %w", err)
				}
			}
		}

		setting := models.UserSetting{UserID: userID, ActiveThemeID: &theme.ID, UpdatedAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"active_theme_id", "updated_at"}),
		}).Create(&setting).Error; err != nil {
			return fmt.Errorf("upsert settings: %w", err)
		}

		return tx.Preload("PrimaryColor").First(&saved, "id = ?", theme.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
