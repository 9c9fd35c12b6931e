package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

type fakeLoader struct {
	pages    map[string]*models.Page
	sections []models.Section
	faq      []models.FAQItem
	faqErr   error
}

func (f *fakeLoader) GetPageBySlug(_ context.Context, slug string) (*models.Page, error) {
	if p, ok := f.pages[slug]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeLoader) ListVisibleSections(context.Context, uuid.UUID) ([]models.Section, error) {
	return f.sections, nil
}

func (f *fakeLoader) ListApprovedTestimonials(context.Context, uuid.UUID) ([]models.Testimonial, error) {
	return nil, nil
}

func (f *fakeLoader) ListFAQItems(context.Context, *uuid.UUID) ([]models.FAQItem, error) {
	return f.faq, f.faqErr
}

func (f *fakeLoader) ListOfferFeatures(context.Context, *uuid.UUID) ([]models.OfferFeature, error) {
	return nil, nil
}

func (f *fakeLoader) ListCTAButtons(context.Context, *uuid.UUID) ([]models.CTAButton, error) {
	return nil, nil
}

// stubViews writes the template name, or fails for names in broken.
type stubViews struct {
	broken map[string]bool
}

func (v stubViews) Render(out io.Writer, name string, _ interface{}, _ ...string) error {
	if v.broken[name] {
		return errors.New("template exploded")
	}
	_, err := fmt.Fprintf(out, "<%s>", name)
	return err
}

func homeLoader(sections ...models.Section) *fakeLoader {
	page := &models.Page{ID: uuid.New(), Slug: "home", Title: "Home"}
	for i := range sections {
		sections[i].ID = uuid.New()
		sections[i].PageID = page.ID
	}
	return &fakeLoader{pages: map[string]*models.Page{"home": page}, sections: sections}
}

func TestPageMissingSlugIsLoading(t *testing.T) {
	a := NewAssembler(&fakeLoader{}, stubViews{})

	view, err := a.Page(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, view.Loading)
	assert.Nil(t, view.Page)
	assert.Empty(t, view.Blocks)
}

func TestPageWithoutSectionsIsLoading(t *testing.T) {
	a := NewAssembler(homeLoader(), stubViews{})

	view, err := a.Page(context.Background(), "home")
	require.NoError(t, err)
	assert.True(t, view.Loading)
	assert.Equal(t, "Home", view.Title)
}

func TestPageSkipsUnknownAndFailingSections(t *testing.T) {
	src := homeLoader(
		models.Section{Type: "hero", Position: 0},
		models.Section{Type: "pricing", Position: 1},
		models.Section{Type: "cta", Position: 2},
		models.Section{Type: "content", Position: 3},
	)
	a := NewAssembler(src, stubViews{broken: map[string]bool{"sections/cta": true}})

	view, err := a.Page(context.Background(), "home")
	require.NoError(t, err)
	assert.False(t, view.Loading)
	require.Len(t, view.Blocks, 2)
	assert.Equal(t, "<sections/hero>", string(view.Blocks[0]))
	assert.Equal(t, "<sections/content>", string(view.Blocks[1]))
}

func TestSectionPanicIsContained(t *testing.T) {
	a := NewAssembler(homeLoader(), stubViews{})
	a.Register("boom", Kind{
		Template: "sections/content",
		Load: func(context.Context, Loader, *SectionView) error {
			panic("bad data")
		},
	})

	assert.NotPanics(t, func() {
		out := a.Section(context.Background(), models.Section{ID: uuid.New(), Type: "boom"})
		assert.Empty(t, out)
	})
}

func TestSectionChildLoadErrorRendersNothing(t *testing.T) {
	src := homeLoader()
	src.faqErr = errors.New("db down")
	a := NewAssembler(src, stubViews{})

	out := a.Section(context.Background(), models.Section{ID: uuid.New(), Type: "faq"})
	assert.Empty(t, out)
}

func TestSectionWithRealTemplates(t *testing.T) {
	src := homeLoader()
	src.faq = []models.FAQItem{
		{Question: "Do you ship worldwide?", Answer: "Yes."},
		{Question: "Can I cancel?", Answer: "Any time."},
	}
	a := NewAssembler(src, NewEngine(false))

	out := a.Section(context.Background(), models.Section{ID: uuid.New(), Type: "faq"})
	assert.Contains(t, string(out), "Do you ship worldwide?")
	assert.Contains(t, string(out), "Any time.")
	assert.Contains(t, string(out), "Frequently asked questions")

	title := "Launch faster"
	hero := models.Section{
		ID:      uuid.New(),
		Type:    "hero",
		Title:   &title,
		Content: datatypes.JSON(`{"eyebrow":"New","primary_label":"Start","primary_href":"/p/start"}`),
	}
	out = a.Section(context.Background(), hero)
	assert.Contains(t, string(out), "Launch faster")
	assert.Contains(t, string(out), `href="/p/start"`)
	assert.Contains(t, string(out), "New")
}

func TestSectionEmptyFAQRendersNothing(t *testing.T) {
	a := NewAssembler(homeLoader(), NewEngine(false))

	out := a.Section(context.Background(), models.Section{ID: uuid.New(), Type: "faq"})
	assert.NotContains(t, string(out), "<section")
}
