package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/testutil"
)

func setup(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	return store.New(testutil.SetupTestDB(t)), context.Background()
}

func seedSection(t *testing.T, s *store.Store, ctx context.Context, typ string, pos int, visible bool) (*models.Page, *models.Section) {
	t.Helper()
	page, err := s.GetPageBySlug(ctx, "home")
	if err != nil {
		page = &models.Page{Slug: "home", Title: "Home"}
		require.NoError(t, s.CreatePage(ctx, page))
	}
	sec := &models.Section{PageID: page.ID, Type: typ, Position: pos, Visible: visible}
	require.NoError(t, s.CreateSection(ctx, sec))
	return page, sec
}

func TestGetPageBySlugNotFound(t *testing.T) {
	s, ctx := setup(t)
	_, err := s.GetPageBySlug(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVisibleSectionsOrderedAndFiltered(t *testing.T) {
	s, ctx := setup(t)
	page, _ := seedSection(t, s, ctx, "faq", 2, true)
	seedSection(t, s, ctx, "hero", 0, true)
	seedSection(t, s, ctx, "cta", 1, false)

	got, err := s.ListVisibleSections(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hero", got[0].Type)
	assert.Equal(t, "faq", got[1].Type)

	all, err := s.ListSections(ctx, &page.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestApprovedTestimonialsOnly(t *testing.T) {
	s, ctx := setup(t)
	_, sec := seedSection(t, s, ctx, "testimonials", 0, true)

	require.NoError(t, s.CreateTestimonial(ctx, &models.Testimonial{SectionID: sec.ID, AuthorName: "A", Quote: "q", Approved: true, Position: 1}))
	require.NoError(t, s.CreateTestimonial(ctx, &models.Testimonial{SectionID: sec.ID, AuthorName: "B", Quote: "q"}))
	require.NoError(t, s.CreateTestimonial(ctx, &models.Testimonial{SectionID: sec.ID, AuthorName: "C", Quote: "q", Approved: true}))

	pub, err := s.ListApprovedTestimonials(ctx, sec.ID)
	require.NoError(t, err)
	require.Len(t, pub, 2)
	assert.Equal(t, "C", pub[0].AuthorName)
	assert.Equal(t, "A", pub[1].AuthorName)

	admin, err := s.ListTestimonials(ctx, store.TestimonialFilter{SectionID: &sec.ID})
	require.NoError(t, err)
	assert.Len(t, admin, 3)

	pending, err := s.ListTestimonials(ctx, store.TestimonialFilter{Approved: testutil.Ptr(false)})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].AuthorName)
}

func TestUpdateAndDelete(t *testing.T) {
	s, ctx := setup(t)
	_, sec := seedSection(t, s, ctx, "faq", 0, true)
	item := &models.FAQItem{SectionID: sec.ID, Question: "Why?", Answer: "Because."}
	require.NoError(t, s.CreateFAQItem(ctx, item))

	updated, err := s.UpdateFAQItem(ctx, item.ID, map[string]any{"answer": "Because we can."})
	require.NoError(t, err)
	assert.Equal(t, "Why?", updated.Question)
	assert.Equal(t, "Because we can.", updated.Answer)

	_, err = s.UpdateFAQItem(ctx, uuid.New(), map[string]any{"answer": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteFAQItem(ctx, item.ID))
	assert.ErrorIs(t, s.DeleteFAQItem(ctx, item.ID), store.ErrNotFound)
}

func TestDeletePageCascades(t *testing.T) {
	s, ctx := setup(t)
	page, sec := seedSection(t, s, ctx, "cta", 0, true)
	require.NoError(t, s.CreateCTAButton(ctx, &models.CTAButton{SectionID: sec.ID, Label: "Go", Href: "https://example.com"}))

	require.NoError(t, s.DeletePage(ctx, page.ID))

	_, err := s.GetSection(ctx, sec.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	buttons, err := s.ListCTAButtons(ctx, &sec.ID)
	require.NoError(t, err)
	assert.Empty(t, buttons)
}

func TestReorder(t *testing.T) {
	s, ctx := setup(t)
	page, a := seedSection(t, s, ctx, "hero", 0, true)
	_, b := seedSection(t, s, ctx, "faq", 1, true)
	_, c := seedSection(t, s, ctx, "cta", 2, true)

	err := s.Reorder(ctx, "sections", []store.PositionUpdate{
		{ID: c.ID, Position: 0},
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 2},
	})
	require.NoError(t, err)

	got, err := s.ListVisibleSections(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"cta", "hero", "faq"}, []string{got[0].Type, got[1].Type, got[2].Type})
}

func TestReorderReportsMissingRow(t *testing.T) {
	s, ctx := setup(t)
	_, a := seedSection(t, s, ctx, "hero", 0, true)

	err := s.Reorder(ctx, "sections", []store.PositionUpdate{
		{ID: a.ID, Position: 5},
		{ID: uuid.New(), Position: 6},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReorderRejectsUnknownTable(t *testing.T) {
	s, ctx := setup(t)
	err := s.Reorder(ctx, "users", []store.PositionUpdate{{ID: uuid.New(), Position: 1}})
	assert.ErrorIs(t, err, store.ErrInvalidTable)
	assert.False(t, store.IsReorderable("pages"))
	assert.True(t, store.IsReorderable("cta_buttons"))
}

func TestListEventsFilters(t *testing.T) {
	s, ctx := setup(t)
	home := "home"
	require.NoError(t, s.InsertEvent(ctx, &models.AnalyticsEvent{EventName: "cta_click", Page: &home, CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, s.InsertEvent(ctx, &models.AnalyticsEvent{EventName: "cta_click", Page: &home}))
	require.NoError(t, s.InsertEvent(ctx, &models.AnalyticsEvent{EventName: "page_view"}))

	clicks, err := s.ListEvents(ctx, store.EventFilter{EventName: "cta_click"})
	require.NoError(t, err)
	require.Len(t, clicks, 2)
	assert.True(t, clicks[0].CreatedAt.After(clicks[1].CreatedAt))

	since := time.Now().Add(-time.Hour)
	recent, err := s.ListEvents(ctx, store.EventFilter{Page: "home", Start: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestSaveAppearanceUpserts(t *testing.T) {
	s, ctx := setup(t)
	user := &models.User{Name: "Admin", Email: "Admin@Example.com", Password: "x", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, s.CreateUser(ctx, user))

	_, err := s.ActiveColor(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	color := &models.UserColor{UserID: user.ID, Name: "Ocean", Hex: "#0ea5e9", HslH: 199, HslS: 89, HslL: 48}
	require.NoError(t, s.CreateColor(ctx, color))

	theme, err := s.SaveAppearance(ctx, user.ID, &color.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemeName, theme.Name)

	fonts := datatypes.JSON(`{"admin":{"heading":"inter","body":"lato"}}`)
	again, err := s.SaveAppearance(ctx, user.ID, nil, fonts)
	require.NoError(t, err)
	assert.Equal(t, theme.ID, again.ID)

	active, err := s.ActiveColor(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, color.ID, active.ID)

	gotFonts, err := s.ActiveFonts(ctx, user.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(fonts), string(gotFonts))

	var themes int64
	require.NoError(t, s.DB().Model(&models.UserTheme{}).Where("user_id = ?", user.ID).Count(&themes).Error)
	assert.Equal(t, int64(1), themes)

	byEmail, err := s.GetUserByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestSaveAppearanceRejectsForeignColor(t *testing.T) {
	s, ctx := setup(t)
	owner := uuid.New()
	color := &models.UserColor{UserID: owner, Name: "Mine", Hex: "#000000"}
	require.NoError(t, s.CreateColor(ctx, color))

	_, err := s.SaveAppearance(ctx, uuid.New(), &color.ID, nil)
	assert.ErrorIs(t, err, store.ErrForeignColor)
}

func TestDuplicateSlugIsErrDuplicate(t *testing.T) {
	s, ctx := setup(t)
	require.NoError(t, s.CreatePage(ctx, &models.Page{Slug: "pricing", Title: "Pricing"}))

	err := s.CreatePage(ctx, &models.Page{Slug: "pricing", Title: "Pricing again"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	other := &models.Page{Slug: "about", Title: "About"}
	require.NoError(t, s.CreatePage(ctx, other))
	_, err = s.UpdatePage(ctx, other.ID, map[string]any{"slug": "pricing"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}
