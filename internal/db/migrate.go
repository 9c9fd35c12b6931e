package db

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

// Migrate creates or updates every table in dependency order.
func Migrate(gdb *gorm.DB) error {
	steps := []struct {
		name  string
		model any
	}{
		{"users", &models.User{}},
		{"pages", &models.Page{}},
		{"sections", &models.Section{}},
		{"testimonials", &models.Testimonial{}},
		{"faq_items", &models.FAQItem{}},
		{"offer_features", &models.OfferFeature{}},
		{"cta_buttons", &models.CTAButton{}},
		{"media_assets", &models.MediaAsset{}},
		{"analytics_events", &models.AnalyticsEvent{}},
		{"user_colors", &models.UserColor{}},
		{"user_themes", &models.UserTheme{}},
		{"user_settings", &models.UserSetting{}},
	}

	for _, s := range steps {
		logging.SLog.Debugf(" -> migrating %s", s.name)
		if err := gdb.AutoMigrate(s.model); err != nil {
			logging.Log.Error("migration failed", zap.String("table", s.name), zap.Error(err))
			return err
		}
	}
	logging.SLog.Info("all migrations applied")
	return nil
}
