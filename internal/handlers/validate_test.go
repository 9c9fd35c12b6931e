package handlers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/testutil"
)

func TestIsSlug(t *testing.T) {
	for _, s := range []string{"home", "my-page-1", "2024"} {
		assert.True(t, IsSlug(s), s)
	}
	for _, s := range []string{"", "My Page", "my_page", "Home", "a/b", "café"} {
		assert.False(t, IsSlug(s), s)
	}
}

func TestIsURLAndHref(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.True(t, IsURL("http://localhost:8080"))
	assert.False(t, IsURL("ftp://example.com"))
	assert.False(t, IsURL("/relative"))
	assert.False(t, IsURL("not a url"))

	assert.True(t, isHref("/p/pricing"))
	assert.True(t, isHref("#faq"))
	assert.True(t, isHref("mailto:hi@example.com"))
	assert.False(t, isHref("javascript:alert(1)"))
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("  PRIC ", "Pricing plans"))
	assert.True(t, MatchesQuery("acme", "Dana", "", "ACME Corp"))
	assert.False(t, MatchesQuery("zebra", "Dana", "ACME Corp"))
}

func TestTestimonialInputDefaults(t *testing.T) {
	in := testimonialInput{
		SectionID:  testutil.Ptr(uuid.NewString()),
		AuthorName: testutil.Ptr(" Dana "),
		Quote:      testutil.Ptr("Great"),
		VideoURL:   testutil.Ptr("  "),
	}
	require.Empty(t, in.validate(true))

	m := in.model()
	assert.False(t, m.Approved)
	assert.Zero(t, m.Position)
	assert.Equal(t, "Dana", m.AuthorName)
	assert.Nil(t, m.VideoURL)
}

func TestSectionInputDefaults(t *testing.T) {
	in := sectionInput{
		PageID: testutil.Ptr(uuid.NewString()),
		Type:   testutil.Ptr("hero"),
	}
	require.Empty(t, in.validate(true))

	m := in.model()
	assert.True(t, m.Visible)
	assert.Zero(t, m.Position)
	assert.Nil(t, m.Content)
}

func TestSectionInputRejects(t *testing.T) {
	errs := sectionInput{
		PageID:   testutil.Ptr("nope"),
		Type:     testutil.Ptr("Hero Block"),
		Content:  json.RawMessage(`[1,2]`),
		Position: testutil.Ptr(-1),
	}.validate(true)

	assert.Contains(t, errs, "page_id")
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "content")
	assert.Contains(t, errs, "position")
}

func TestPartialUpdateOnlyTouchesSentFields(t *testing.T) {
	in := faqInput{Answer: testutil.Ptr(" Yes. ")}
	require.Empty(t, in.validate(false))
	assert.Equal(t, map[string]any{"answer": "Yes."}, in.fields())

	errs := faqInput{Answer: testutil.Ptr("  ")}.validate(false)
	assert.Contains(t, errs, "answer")
}

func TestCTAInputValidation(t *testing.T) {
	errs := ctaInput{
		SectionID: testutil.Ptr(uuid.NewString()),
		Label:     testutil.Ptr("Start"),
		Href:      testutil.Ptr("javascript:void(0)"),
		Variant:   testutil.Ptr("loud"),
	}.validate(true)
	assert.Contains(t, errs, "href")
	assert.Contains(t, errs, "variant")

	errs = ctaInput{
		SectionID: testutil.Ptr(uuid.NewString()),
		Label:     testutil.Ptr("Start"),
		Href:      testutil.Ptr("/p/start"),
		Variant:   testutil.Ptr("ghost"),
	}.validate(true)
	assert.Empty(t, errs)
}

func TestMediaInputSectionIsOptional(t *testing.T) {
	in := mediaInput{URL: testutil.Ptr("https://cdn.example.com/a.png"), Type: testutil.Ptr("image")}
	require.Empty(t, in.validate(true))
	assert.Nil(t, in.model().SectionID)

	errs := mediaInput{URL: testutil.Ptr("cdn/a.png"), Type: testutil.Ptr("image")}.validate(true)
	assert.Contains(t, errs, "url")
}
