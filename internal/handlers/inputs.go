package handlers

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
)

// input is a JSON request body for one entity. Pointer fields tell an
// omitted field apart from a blank one, so PUT can be partial.
type input[T any] interface {
	validate(creating bool) FieldErrors
	model() *T
	fields() map[string]any
}

var sectionTypePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

var ctaVariants = map[string]bool{"primary": true, "secondary": true, "ghost": true}

func checkPosition(errs FieldErrors, p *int) {
	if p != nil && *p < 0 {
		errs.Add("position", "position must be zero or greater")
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func jsonColumn(raw json.RawMessage) datatypes.JSON {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

type pageInput struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (in pageInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "slug", in.Slug, creating)
	if s := trimmed(in.Slug); s != "" && !IsSlug(s) {
		errs.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	requireText(errs, "title", in.Title, creating)
	return errs
}

func (in pageInput) model() *models.Page {
	return &models.Page{Slug: trimmed(in.Slug), Title: trimmed(in.Title), Description: nullable(in.Description)}
}

func (in pageInput) fields() map[string]any {
	f := map[string]any{}
	if in.Slug != nil {
		f["slug"] = trimmed(in.Slug)
	}
	if in.Title != nil {
		f["title"] = trimmed(in.Title)
	}
	if in.Description != nil {
		f["description"] = nullableValue(in.Description)
	}
	return f
}

type sectionInput struct {
	PageID   *string         `json:"page_id"`
	Type     *string         `json:"type"`
	Title    *string         `json:"title"`
	Subtitle *string         `json:"subtitle"`
	Content  json.RawMessage `json:"content"`
	Position *int            `json:"position"`
	Visible  *bool           `json:"visible"`
}

func (in sectionInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	if creating || in.PageID != nil {
		checkUUID(errs, "page_id", in.PageID, true)
	}
	requireText(errs, "type", in.Type, creating)
	if t := trimmed(in.Type); t != "" && !sectionTypePattern.MatchString(t) {
		errs.Add("type", "type may only contain lowercase letters, digits, '-' and '_'")
	}
	checkJSONObject(errs, "content", in.Content)
	checkPosition(errs, in.Position)
	return errs
}

func (in sectionInput) model() *models.Section {
	pageID, _ := uuid.Parse(trimmed(in.PageID))
	return &models.Section{
		PageID:   pageID,
		Type:     trimmed(in.Type),
		Title:    nullable(in.Title),
		Subtitle: nullable(in.Subtitle),
		Content:  jsonColumn(in.Content),
		Position: intOr(in.Position, 0),
		Visible:  boolOr(in.Visible, true),
	}
}

func (in sectionInput) fields() map[string]any {
	f := map[string]any{}
	if in.PageID != nil {
		id, _ := uuid.Parse(trimmed(in.PageID))
		f["page_id"] = id
	}
	if in.Type != nil {
		f["type"] = trimmed(in.Type)
	}
	if in.Title != nil {
		f["title"] = nullableValue(in.Title)
	}
	if in.Subtitle != nil {
		f["subtitle"] = nullableValue(in.Subtitle)
	}
	if in.Content != nil {
		if c := jsonColumn(in.Content); c != nil {
			f["content"] = c
		} else {
			f["content"] = nil
		}
	}
	if in.Position != nil {
		f["position"] = *in.Position
	}
	if in.Visible != nil {
		f["visible"] = *in.Visible
	}
	return f
}

type testimonialInput struct {
	SectionID   *string `json:"section_id"`
	AuthorName  *string `json:"author_name"`
	AuthorRole  *string `json:"author_role"`
	CompanyName *string `json:"company_name"`
	Quote       *string `json:"quote"`
	VideoURL    *string `json:"video_url"`
	AvatarURL   *string `json:"avatar_url"`
	Approved    *bool   `json:"approved"`
	Position    *int    `json:"position"`
}

func (in testimonialInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	if creating || in.SectionID != nil {
		checkUUID(errs, "section_id", in.SectionID, true)
	}
	requireText(errs, "author_name", in.AuthorName, creating)
	requireText(errs, "quote", in.Quote, creating)
	checkURL(errs, "video_url", in.VideoURL)
	checkURL(errs, "avatar_url", in.AvatarURL)
	checkPosition(errs, in.Position)
	return errs
}

func (in testimonialInput) model() *models.Testimonial {
	sectionID, _ := uuid.Parse(trimmed(in.SectionID))
	return &models.Testimonial{
		SectionID:   sectionID,
		AuthorName:  trimmed(in.AuthorName),
		AuthorRole:  nullable(in.AuthorRole),
		CompanyName: nullable(in.CompanyName),
		Quote:       trimmed(in.Quote),
		VideoURL:    nullable(in.VideoURL),
		AvatarURL:   nullable(in.AvatarURL),
		Approved:    boolOr(in.Approved, false),
		Position:    intOr(in.Position, 0),
	}
}

func (in testimonialInput) fields() map[string]any {
	f := map[string]any{}
	if in.SectionID != nil {
		id, _ := uuid.Parse(trimmed(in.SectionID))
		f["section_id"] = id
	}
	if in.AuthorName != nil {
		f["author_name"] = trimmed(in.AuthorName)
	}
	if in.AuthorRole != nil {
		f["author_role"] = nullableValue(in.AuthorRole)
	}
	if in.CompanyName != nil {
		f["company_name"] = nullableValue(in.CompanyName)
	}
	if in.Quote != nil {
		f["quote"] = trimmed(in.Quote)
	}
	if in.VideoURL != nil {
		f["video_url"] = nullableValue(in.VideoURL)
	}
	if in.AvatarURL != nil {
		f["avatar_url"] = nullableValue(in.AvatarURL)
	}
	if in.Approved != nil {
		f["approved"] = *in.Approved
	}
	if in.Position != nil {
		f["position"] = *in.Position
	}
	return f
}

type faqInput struct {
	SectionID *string `json:"section_id"`
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	Position  *int    `json:"position"`
}

func (in faqInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	if creating || in.SectionID != nil {
		checkUUID(errs, "section_id", in.SectionID, true)
	}
	requireText(errs, "question", in.Question, creating)
	requireText(errs, "answer", in.Answer, creating)
	checkPosition(errs, in.Position)
	return errs
}

func (in faqInput) model() *models.FAQItem {
	sectionID, _ := uuid.Parse(trimmed(in.SectionID))
	return &models.FAQItem{
		SectionID: sectionID,
		Question:  trimmed(in.Question),
		Answer:    trimmed(in.Answer),
		Position:  intOr(in.Position, 0),
	}
}

func (in faqInput) fields() map[string]any {
	f := map[string]any{}
	if in.SectionID != nil {
		id, _ := uuid.Parse(trimmed(in.SectionID))
		f["section_id"] = id
	}
	if in.Question != nil {
		f["question"] = trimmed(in.Question)
	}
	if in.Answer != nil {
		f["answer"] = trimmed(in.Answer)
	}
	if in.Position != nil {
		f["position"] = *in.Position
	}
	return f
}

type featureInput struct {
	SectionID   *string `json:"section_id"`
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Position    *int    `json:"position"`
}

func (in featureInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	if creating || in.SectionID != nil {
		checkUUID(errs, "section_id", in.SectionID, true)
	}
	requireText(errs, "title", in.Title, creating)
	checkPosition(errs, in.Position)
	return errs
}

func (in featureInput) model() *models.OfferFeature {
	sectionID, _ := uuid.Parse(trimmed(in.SectionID))
	return &models.OfferFeature{
		SectionID:   sectionID,
		Title:       trimmed(in.Title),
		Subtitle:    nullable(in.Subtitle),
		Description: nullable(in.Description),
		Icon:        nullable(in.Icon),
		Position:    intOr(in.Position, 0),
	}
}

func (in featureInput) fields() map[string]any {
	f := map[string]any{}
	if in.SectionID != nil {
		id, _ := uuid.Parse(trimmed(in.SectionID))
		f["section_id"] = id
	}
	if in.Title != nil {
		f["title"] = trimmed(in.Title)
	}
	if in.Subtitle != nil {
		f["subtitle"] = nullableValue(in.Subtitle)
	}
	if in.Description != nil {
		f["description"] = nullableValue(in.Description)
	}
	if in.Icon != nil {
		f["icon"] = nullableValue(in.Icon)
	}
	if in.Position != nil {
		f["position"] = *in.Position
	}
	return f
}

type ctaInput struct {
	SectionID *string `json:"section_id"`
	Label     *string `json:"label"`
	Href      *string `json:"href"`
	Variant   *string `json:"variant"`
	Position  *int    `json:"position"`
}

func (in ctaInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	if creating || in.SectionID != nil {
		checkUUID(errs, "section_id", in.SectionID, true)
	}
	requireText(errs, "label", in.Label, creating)
	requireText(errs, "href", in.Href, creating)
	if h := trimmed(in.Href); h != "" && !isHref(h) {
		errs.Add("href", "href must be a URL, a site path or an anchor")
	}
	if v := trimmed(in.Variant); v != "" && !ctaVariants[v] {
		errs.Add("variant", "variant must be primary, secondary or ghost")
	}
	checkPosition(errs, in.Position)
	return errs
}

func (in ctaInput) model() *models.CTAButton {
	sectionID, _ := uuid.Parse(trimmed(in.SectionID))
	return &models.CTAButton{
		SectionID: sectionID,
		Label:     trimmed(in.Label),
		Href:      trimmed(in.Href),
		Variant:   nullable(in.Variant),
		Position:  intOr(in.Position, 0),
	}
}

func (in ctaInput) fields() map[string]any {
	f := map[string]any{}
	if in.SectionID != nil {
		id, _ := uuid.Parse(trimmed(in.SectionID))
		f["section_id"] = id
	}
	if in.Label != nil {
		f["label"] = trimmed(in.Label)
	}
	if in.Href != nil {
		f["href"] = trimmed(in.Href)
	}
	if in.Variant != nil {
		f["variant"] = nullableValue(in.Variant)
	}
	if in.Position != nil {
		f["position"] = *in.Position
	}
	return f
}

type mediaInput struct {
	URL       *string `json:"url"`
	Type      *string `json:"type"`
	Alt       *string `json:"alt"`
	Category  *string `json:"category"`
	SectionID *string `json:"section_id"`
}

func (in mediaInput) validate(creating bool) FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "url", in.URL, creating)
	checkURL(errs, "url", in.URL)
	requireText(errs, "type", in.Type, creating)
	checkUUID(errs, "section_id", in.SectionID, false)
	return errs
}

func (in mediaInput) model() *models.MediaAsset {
	m := &models.MediaAsset{
		URL:      trimmed(in.URL),
		Type:     trimmed(in.Type),
		Alt:      nullable(in.Alt),
		Category: nullable(in.Category),
	}
	if id, err := uuid.Parse(trimmed(in.SectionID)); err == nil {
		m.SectionID = &id
	}
	return m
}

func (in mediaInput) fields() map[string]any {
	f := map[string]any{}
	if in.URL != nil {
		f["url"] = trimmed(in.URL)
	}
	if in.Type != nil {
		f["type"] = trimmed(in.Type)
	}
	if in.Alt != nil {
		f["alt"] = nullableValue(in.Alt)
	}
	if in.Category != nil {
		f["category"] = nullableValue(in.Category)
	}
	if in.SectionID != nil {
		if id, err := uuid.Parse(trimmed(in.SectionID)); err == nil {
			f["section_id"] = id
		} else {
			f["section_id"] = nil
		}
	}
	return f
}
