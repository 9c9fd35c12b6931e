package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

func text(name, label, value string, required bool) Field {
	return Field{Name: name, Label: label, Kind: "text", Value: value, Required: required}
}

func textarea(name, label, value string, required bool) Field {
	return Field{Name: name, Label: label, Kind: "textarea", Value: value, Required: required}
}

func urlField(name, label, value string) Field {
	return Field{Name: name, Label: label, Kind: "url", Value: value}
}

func imageField(name, label, value string, required bool) Field {
	return Field{Name: name, Label: label, Kind: "image", Value: value, Required: required,
		Help: "Paste a URL or pick a file to upload it to the CDN."}
}

func number(name, label string, value int) Field {
	return Field{Name: name, Label: label, Kind: "number", Value: strconv.Itoa(value)}
}

func checkbox(name, label string, checked bool) Field {
	return Field{Name: name, Label: label, Kind: "checkbox", Checked: checked}
}

func selectField(name, label string, required bool, opts []Option) Field {
	return Field{Name: name, Label: label, Kind: "select", Required: required, Options: opts}
}

func prettyJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (h *ContentHandler) pageOptions(ctx context.Context, selected uuid.UUID) ([]Option, error) {
	pages, err := h.Store.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(pages))
	for _, p := range pages {
		opts = append(opts, Option{Value: p.ID.String(), Label: p.Slug + " (" + p.Title + ")", Selected: p.ID == selected})
	}
	return opts, nil
}

func (h *ContentHandler) sectionOptions(ctx context.Context, selected uuid.UUID) ([]Option, error) {
	sections, err := h.Store.ListSections(ctx, nil)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(sections))
	for i := range sections {
		s := &sections[i]
		label := sectionLabel(s)
		if s.Page != nil {
			label = s.Page.Slug + " / " + label
		}
		opts = append(opts, Option{Value: s.ID.String(), Label: label, Selected: s.ID == selected})
	}
	return opts, nil
}

func typeOptions(current string) []Option {
	opts := make([]Option, 0, len(models.SectionTypes)+1)
	known := false
	for _, t := range models.SectionTypes {
		opts = append(opts, Option{Value: t, Label: t, Selected: t == current})
		known = known || t == current
	}
	// keep types stored before the catalogue knew them
	if current != "" && !known {
		opts = append(opts, Option{Value: current, Label: current, Selected: true})
	}
	return opts
}

func (h *ContentHandler) pageForm(_ context.Context, p *models.Page) ([]Field, error) {
	if p == nil {
		p = &models.Page{}
	}
	slug := text("slug", "Slug", p.Slug, true)
	slug.Pattern = SlugPattern
	slug.Help = "Lowercase letters, digits and hyphens."
	return []Field{
		slug,
		text("title", "Title", p.Title, true),
		textarea("description", "Description", str(p.Description), false),
	}, nil
}

func (h *ContentHandler) sectionForm(ctx context.Context, s *models.Section) ([]Field, error) {
	if s == nil {
		s = &models.Section{Visible: true}
	}
	pages, err := h.pageOptions(ctx, s.PageID)
	if err != nil {
		return nil, err
	}
	content := Field{Name: "content", Label: "Content", Kind: "json", Value: prettyJSON(s.Content),
		Help: "A JSON object with type-specific settings."}
	return []Field{
		selectField("page_id", "Page", true, pages),
		selectField("type", "Type", true, typeOptions(s.Type)),
		text("title", "Title", str(s.Title), false),
		text("subtitle", "Subtitle", str(s.Subtitle), false),
		content,
		number("position", "Position", s.Position),
		checkbox("visible", "Visible", s.Visible),
	}, nil
}

func (h *ContentHandler) testimonialForm(ctx context.Context, t *models.Testimonial) ([]Field, error) {
	if t == nil {
		t = &models.Testimonial{}
	}
	sections, err := h.sectionOptions(ctx, t.SectionID)
	if err != nil {
		return nil, err
	}
	return []Field{
		selectField("section_id", "Section", true, sections),
		text("author_name", "Author name", t.AuthorName, true),
		text("author_role", "Author role", str(t.AuthorRole), false),
		text("company_name", "Company", str(t.CompanyName), false),
		textarea("quote", "Quote", t.Quote, true),
		urlField("video_url", "Video URL", str(t.VideoURL)),
		imageField("avatar_url", "Avatar", str(t.AvatarURL), false),
		checkbox("approved", "Approved", t.Approved),
		number("position", "Position", t.Position),
	}, nil
}

func (h *ContentHandler) faqForm(ctx context.Context, f *models.FAQItem) ([]Field, error) {
	if f == nil {
		f = &models.FAQItem{}
	}
	sections, err := h.sectionOptions(ctx, f.SectionID)
	if err != nil {
		return nil, err
	}
	return []Field{
		selectField("section_id", "Section", true, sections),
		text("question", "Question", f.Question, true),
		textarea("answer", "Answer", f.Answer, true),
		number("position", "Position", f.Position),
	}, nil
}

func (h *ContentHandler) featureForm(ctx context.Context, f *models.OfferFeature) ([]Field, error) {
	if f == nil {
		f = &models.OfferFeature{}
	}
	sections, err := h.sectionOptions(ctx, f.SectionID)
	if err != nil {
		return nil, err
	}
	return []Field{
		selectField("section_id", "Section", true, sections),
		text("title", "Title", f.Title, true),
		text("subtitle", "Subtitle", str(f.Subtitle), false),
		textarea("description", "Description", str(f.Description), false),
		text("icon", "Icon", str(f.Icon), false),
		number("position", "Position", f.Position),
	}, nil
}

func (h *ContentHandler) ctaForm(ctx context.Context, b *models.CTAButton) ([]Field, error) {
	if b == nil {
		b = &models.CTAButton{}
	}
	sections, err := h.sectionOptions(ctx, b.SectionID)
	if err != nil {
		return nil, err
	}
	variant := str(b.Variant)
	variants := []Option{
		{Value: "primary", Label: "Primary", Selected: variant == "primary"},
		{Value: "secondary", Label: "Secondary", Selected: variant == "secondary"},
		{Value: "ghost", Label: "Ghost", Selected: variant == "ghost"},
	}
	href := text("href", "Link", b.Href, true)
	href.Help = "An absolute URL, a path such as /p/pricing, or an anchor such as #faq."
	return []Field{
		selectField("section_id", "Section", true, sections),
		text("label", "Label", b.Label, true),
		href,
		selectField("variant", "Variant", false, variants),
		number("position", "Position", b.Position),
	}, nil
}

func (h *ContentHandler) mediaForm(ctx context.Context, m *models.MediaAsset) ([]Field, error) {
	if m == nil {
		m = &models.MediaAsset{}
	}
	var selected uuid.UUID
	if m.SectionID != nil {
		selected = *m.SectionID
	}
	sections, err := h.sectionOptions(ctx, selected)
	if err != nil {
		return nil, err
	}
	return []Field{
		imageField("url", "File", m.URL, true),
		text("type", "Type", m.Type, true),
		text("alt", "Alt text", str(m.Alt), false),
		text("category", "Category", str(m.Category), false),
		selectField("section_id", "Section", false, sections),
	}, nil
}
