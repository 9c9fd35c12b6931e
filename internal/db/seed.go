package db

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

//go:embed seeddata/default.yaml
var defaultSeed []byte

type SeedFile struct {
	Pages []SeedPage `yaml:"pages"`
}

type SeedPage struct {
	Slug        string        `yaml:"slug"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Sections    []SeedSection `yaml:"sections"`
}

type SeedSection struct {
	Type         string            `yaml:"type"`
	Title        string            `yaml:"title"`
	Subtitle     string            `yaml:"subtitle"`
	Hidden       bool              `yaml:"hidden"`
	Content      map[string]any    `yaml:"content"`
	Testimonials []SeedTestimonial `yaml:"testimonials"`
	FAQ          []SeedFAQ         `yaml:"faq"`
	Features     []SeedFeature     `yaml:"features"`
	Buttons      []SeedButton      `yaml:"buttons"`
}

type SeedTestimonial struct {
	Author   string `yaml:"author"`
	Role     string `yaml:"role"`
	Company  string `yaml:"company"`
	Quote    string `yaml:"quote"`
	Approved bool   `yaml:"approved"`
}

type SeedFAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type SeedFeature struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type SeedButton struct {
	Label   string `yaml:"label"`
	Href    string `yaml:"href"`
	Variant string `yaml:"variant"`
}

// LoadSeedFile parses a YAML seed file; an empty path selects the embedded default.
func LoadSeedFile(path string) (*SeedFile, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}

	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Seed inserts every page of f whose slug does not exist yet, inside one
// transaction. Existing pages are left untouched.
func Seed(gdb *gorm.DB, f *SeedFile) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, p := range f.Pages {
			var existing models.Page
			err := tx.Where("slug = ?", p.Slug).First(&existing).Error
			if err == nil {
				logging.SLog.Infof(" -> page %q exists, skipping", p.Slug)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := seedPage(tx, p); err != nil {
				logging.Log.Error("seeding page failed", zap.String("slug", p.Slug), zap.Error(err))
				return err
			}
			logging.SLog.Infof(" -> page %q seeded", p.Slug)
		}
		return nil
	})
}

func seedPage(tx *gorm.DB, p SeedPage) error {
	page := models.Page{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: optional(p.Description),
	}
	if err := tx.Create(&page).Error; err != nil {
		return err
	}

	for i, s := range p.Sections {
		var content datatypes.JSON
		if len(s.Content) > 0 {
			b, err := json.Marshal(s.Content)
			if err != nil {
				return fmt.Errorf("section %d content: %w", i, err)
			}
			content = datatypes.JSON(b)
		}

		section := models.Section{
			PageID:   page.ID,
			Type:     s.Type,
			Title:    optional(s.Title),
			Subtitle: optional(s.Subtitle),
			Content:  content,
			Position: i,
			Visible:  !s.Hidden,
		}
		if err := tx.Create(&section).Error; err != nil {
			return err
		}

		for j, t := range s.Testimonials {
			row := models.Testimonial{
				SectionID:   section.ID,
				AuthorName:  t.Author,
				AuthorRole:  optional(t.Role),
				CompanyName: optional(t.Company),
				Quote:       t.Quote,
				Approved:    t.Approved,
				Position:    j,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for j, q := range s.FAQ {
			row := models.FAQItem{SectionID: section.ID, Question: q.Question, Answer: q.Answer, Position: j}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for j, ft := range s.Features {
			row := models.OfferFeature{
				SectionID:   section.ID,
				Title:       ft.Title,
				Subtitle:    optional(ft.Subtitle),
				Description: optional(ft.Description),
				Icon:        optional(ft.Icon),
				Position:    j,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for j, b := range s.Buttons {
			row := models.CTAButton{
				SectionID: section.ID,
				Label:     b.Label,
				Href:      b.Href,
				Variant:   optional(b.Variant),
				Position:  j,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
