package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

// Entity describes one admin collection for routing and for the HTML views.
type Entity struct {
	Key      string
	Title    string
	Singular string
	API      string
	// Table is set for positioned entities and enables PUT /reorder.
	Table   string
	Columns []string
}

// Resource is the JSON API plus admin pages for one entity.
type Resource interface {
	Entity() Entity
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
	Reorder(c *fiber.Ctx) error
	Count(ctx context.Context) (int64, error)
	ListPage(c *fiber.Ctx) error
	FormPage(c *fiber.Ctx) error
}

type resource[T any, I input[T]] struct {
	entity Entity
	store  *store.Store
	admin  *AdminPages

	list   func(c *fiber.Ctx) ([]T, error)
	get    func(ctx context.Context, id uuid.UUID) (*T, error)
	create func(ctx context.Context, row *T) error
	update func(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)
	remove func(ctx context.Context, id uuid.UUID) error

	// refs checks references and uniqueness; id is nil on create.
	refs func(ctx context.Context, id *uuid.UUID, in I, errs FieldErrors) error
	// unique names the field reported when a write hits the unique index.
	unique string
	// text lists the fields searched by ?q=.
	text func(T) []string
	// row and form feed the admin templates.
	row  func(T) Row
	form func(ctx context.Context, row *T) ([]Field, error)

	reorder func(ctx context.Context, table string, items []store.PositionUpdate) error
}

func (r *resource[T, I]) Entity() Entity { return r.entity }

func (r *resource[T, I]) search(c *fiber.Ctx) ([]T, error) {
	rows, err := r.list(c)
	if err != nil {
		return nil, err
	}
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		return rows, nil
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if MatchesQuery(q, r.text(row)...) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *resource[T, I]) List(c *fiber.Ctx) error {
	rows, err := r.search(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fail(c, fe.Code, fe.Message)
		}
		return storeFail(c, "list "+r.entity.Key, err)
	}
	return success(c, rows)
}

func (r *resource[T, I]) Count(ctx context.Context) (int64, error) {
	var model T
	return r.store.Count(ctx, &model)
}

func (r *resource[T, I]) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	row, err := r.get(c.UserContext(), id)
	if err != nil {
		return storeFail(c, "get "+r.entity.Key, err)
	}
	return success(c, row)
}

func (r *resource[T, I]) Create(c *fiber.Ctx) error {
	var in I
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	ctx := c.UserContext()
	errs := in.validate(true)
	if r.refs != nil {
		if err := r.refs(ctx, nil, in, errs); err != nil {
			return storeFail(c, "create "+r.entity.Key, err)
		}
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	row := in.model()
	if err := r.create(ctx, row); err != nil {
		return r.writeFail(c, "create", err)
	}
	return created(c, row)
}

func (r *resource[T, I]) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in I
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	ctx := c.UserContext()
	errs := in.validate(false)
	if r.refs != nil {
		if err := r.refs(ctx, &id, in, errs); err != nil {
			return storeFail(c, "update "+r.entity.Key, err)
		}
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	row, err := r.update(ctx, id, in.fields())
	if err != nil {
		return r.writeFail(c, "update", err)
	}
	return success(c, row)
}

// writeFail reports a unique index hit the same way refs reports a taken
// value, which covers a concurrent write slipping past the check.
func (r *resource[T, I]) writeFail(c *fiber.Ctx, op string, err error) error {
	if r.unique != "" && errors.Is(err, store.ErrDuplicate) {
		errs := FieldErrors{}
		errs.Add(r.unique, r.unique+" is already in use")
		return validationFail(c, errs)
	}
	return storeFail(c, op+" "+r.entity.Key, err)
}

func (r *resource[T, I]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := r.remove(c.UserContext(), id); err != nil {
		return storeFail(c, "delete "+r.entity.Key, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": r.entity.Singular + " deleted",
	})
}

type reorderReq struct {
	Items []store.PositionUpdate `json:"items"`
}

func (r *resource[T, I]) Reorder(c *fiber.Ctx) error {
	if r.entity.Table == "" {
		return fail(c, fiber.StatusBadRequest, r.entity.Title+" cannot be reordered")
	}
	var req reorderReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	errs := FieldErrors{}
	if len(req.Items) == 0 {
		errs.Add("items", "items is required")
	}
	for i, it := range req.Items {
		if it.ID == uuid.Nil {
			errs.Add("items", fmt.Sprintf("items[%d].id is required", i))
		}
		if it.Position < 0 {
			errs.Add("items", fmt.Sprintf("items[%d].position must be zero or greater", i))
		}
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if err := r.reorder(c.UserContext(), r.entity.Table, req.Items); err != nil {
		return storeFail(c, "reorder "+r.entity.Key, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order saved",
	})
}

// queryUUID reads an optional id filter from the query string.
func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a UUID")
	}
	return &id, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be true or false")
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ContentHandler wires the store into one Resource per content table.
type ContentHandler struct {
	Store *store.Store
	Admin *AdminPages
}

func (h *ContentHandler) Resources() []Resource {
	return []Resource{
		h.pages(),
		h.sections(),
		h.testimonials(),
		h.faq(),
		h.features(),
		h.ctas(),
		h.media(),
	}
}

// pageRef flags a page_id that does not resolve.
func (h *ContentHandler) pageRef(ctx context.Context, errs FieldErrors, raw *string) error {
	id, err := uuid.Parse(trimmed(raw))
	if err != nil {
		return nil
	}
	if _, err := h.Store.GetPage(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errs.Add("page_id", "page does not exist")
			return nil
		}
		return err
	}
	return nil
}

func (h *ContentHandler) sectionRef(ctx context.Context, errs FieldErrors, raw *string) error {
	id, err := uuid.Parse(trimmed(raw))
	if err != nil {
		return nil
	}
	if _, err := h.Store.GetSection(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errs.Add("section_id", "section does not exist")
			return nil
		}
		return err
	}
	return nil
}

func (h *ContentHandler) pages() Resource {
	return &resource[models.Page, pageInput]{
		entity: Entity{Key: "pages", Title: "Pages", Singular: "Page", API: "/api/admin/pages",
			Columns: []string{"Slug", "Title", "Description"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.Page, error) {
			return h.Store.ListPages(c.UserContext())
		},
		get:    h.Store.GetPage,
		create: h.Store.CreatePage,
		update: h.Store.UpdatePage,
		remove: h.Store.DeletePage,
		unique: "slug",
		refs: func(ctx context.Context, id *uuid.UUID, in pageInput, errs FieldErrors) error {
			slug := trimmed(in.Slug)
			if slug == "" || !IsSlug(slug) {
				return nil
			}
			existing, err := h.Store.GetPageBySlug(ctx, slug)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if id == nil || existing.ID != *id {
				errs.Add("slug", "slug is already in use")
			}
			return nil
		},
		text: func(p models.Page) []string {
			return []string{p.Slug, p.Title, str(p.Description)}
		},
		row: func(p models.Page) Row {
			return Row{ID: p.ID.String(), Cells: []string{p.Slug, p.Title, str(p.Description)}}
		},
		form: h.pageForm,
	}
}

func (h *ContentHandler) sections() Resource {
	return &resource[models.Section, sectionInput]{
		entity: Entity{Key: "sections", Title: "Sections", Singular: "Section", API: "/api/admin/sections",
			Table: "sections", Columns: []string{"Page", "Type", "Title", "Position", "Visible"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.Section, error) {
			pageID, err := queryUUID(c, "page_id")
			if err != nil {
				return nil, err
			}
			return h.Store.ListSections(c.UserContext(), pageID)
		},
		get:    h.Store.GetSection,
		create: h.Store.CreateSection,
		update: h.Store.UpdateSection,
		remove: h.Store.DeleteSection,
		refs: func(ctx context.Context, _ *uuid.UUID, in sectionInput, errs FieldErrors) error {
			return h.pageRef(ctx, errs, in.PageID)
		},
		text: func(s models.Section) []string {
			return []string{pageLabel(s.Page), s.Type, str(s.Title), str(s.Subtitle)}
		},
		row: func(s models.Section) Row {
			return Row{ID: s.ID.String(), Cells: []string{
				pageLabel(s.Page), s.Type, str(s.Title), fmt.Sprint(s.Position), yesNo(s.Visible),
			}}
		},
		form:    h.sectionForm,
		reorder: h.Store.Reorder,
	}
}

func (h *ContentHandler) testimonials() Resource {
	return &resource[models.Testimonial, testimonialInput]{
		entity: Entity{Key: "testimonials", Title: "Testimonials", Singular: "Testimonial", API: "/api/admin/testimonials",
			Table: "testimonials", Columns: []string{"Author", "Company", "Quote", "Approved", "Position"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.Testimonial, error) {
			sectionID, err := queryUUID(c, "section_id")
			if err != nil {
				return nil, err
			}
			approved, err := queryBool(c, "approved")
			if err != nil {
				return nil, err
			}
			return h.Store.ListTestimonials(c.UserContext(), store.TestimonialFilter{SectionID: sectionID, Approved: approved})
		},
		get:    h.Store.GetTestimonial,
		create: h.Store.CreateTestimonial,
		update: h.Store.UpdateTestimonial,
		remove: h.Store.DeleteTestimonial,
		refs: func(ctx context.Context, _ *uuid.UUID, in testimonialInput, errs FieldErrors) error {
			return h.sectionRef(ctx, errs, in.SectionID)
		},
		text: func(t models.Testimonial) []string {
			return []string{t.AuthorName, str(t.AuthorRole), str(t.CompanyName), t.Quote}
		},
		row: func(t models.Testimonial) Row {
			return Row{ID: t.ID.String(), Cells: []string{
				t.AuthorName, str(t.CompanyName), excerpt(t.Quote), yesNo(t.Approved), fmt.Sprint(t.Position),
			}}
		},
		form:    h.testimonialForm,
		reorder: h.Store.Reorder,
	}
}

func (h *ContentHandler) faq() Resource {
	return &resource[models.FAQItem, faqInput]{
		entity: Entity{Key: "faq", Title: "FAQ", Singular: "FAQ item", API: "/api/admin/faq",
			Table: "faq_items", Columns: []string{"Section", "Question", "Answer", "Position"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.FAQItem, error) {
			sectionID, err := queryUUID(c, "section_id")
			if err != nil {
				return nil, err
			}
			return h.Store.ListFAQItems(c.UserContext(), sectionID)
		},
		get:    h.Store.GetFAQItem,
		create: h.Store.CreateFAQItem,
		update: h.Store.UpdateFAQItem,
		remove: h.Store.DeleteFAQItem,
		refs: func(ctx context.Context, _ *uuid.UUID, in faqInput, errs FieldErrors) error {
			return h.sectionRef(ctx, errs, in.SectionID)
		},
		text: func(f models.FAQItem) []string {
			return []string{f.Question, f.Answer}
		},
		row: func(f models.FAQItem) Row {
			return Row{ID: f.ID.String(), Cells: []string{
				sectionLabel(f.Section), f.Question, excerpt(f.Answer), fmt.Sprint(f.Position),
			}}
		},
		form:    h.faqForm,
		reorder: h.Store.Reorder,
	}
}

func (h *ContentHandler) features() Resource {
	return &resource[models.OfferFeature, featureInput]{
		entity: Entity{Key: "features", Title: "Offer features", Singular: "Offer feature", API: "/api/admin/features",
			Table: "offer_features", Columns: []string{"Section", "Title", "Icon", "Position"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.OfferFeature, error) {
			sectionID, err := queryUUID(c, "section_id")
			if err != nil {
				return nil, err
			}
			return h.Store.ListOfferFeatures(c.UserContext(), sectionID)
		},
		get:    h.Store.GetOfferFeature,
		create: h.Store.CreateOfferFeature,
		update: h.Store.UpdateOfferFeature,
		remove: h.Store.DeleteOfferFeature,
		refs: func(ctx context.Context, _ *uuid.UUID, in featureInput, errs FieldErrors) error {
			return h.sectionRef(ctx, errs, in.SectionID)
		},
		text: func(f models.OfferFeature) []string {
			return []string{f.Title, str(f.Subtitle), str(f.Description)}
		},
		row: func(f models.OfferFeature) Row {
			return Row{ID: f.ID.String(), Cells: []string{
				sectionLabel(f.Section), f.Title, str(f.Icon), fmt.Sprint(f.Position),
			}}
		},
		form:    h.featureForm,
		reorder: h.Store.Reorder,
	}
}

func (h *ContentHandler) ctas() Resource {
	return &resource[models.CTAButton, ctaInput]{
		entity: Entity{Key: "cta", Title: "CTA buttons", Singular: "CTA button", API: "/api/admin/cta",
			Table: "cta_buttons", Columns: []string{"Section", "Label", "Link", "Variant", "Position"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.CTAButton, error) {
			sectionID, err := queryUUID(c, "section_id")
			if err != nil {
				return nil, err
			}
			return h.Store.ListCTAButtons(c.UserContext(), sectionID)
		},
		get:    h.Store.GetCTAButton,
		create: h.Store.CreateCTAButton,
		update: h.Store.UpdateCTAButton,
		remove: h.Store.DeleteCTAButton,
		refs: func(ctx context.Context, _ *uuid.UUID, in ctaInput, errs FieldErrors) error {
			return h.sectionRef(ctx, errs, in.SectionID)
		},
		text: func(b models.CTAButton) []string {
			return []string{b.Label, b.Href, str(b.Variant)}
		},
		row: func(b models.CTAButton) Row {
			return Row{ID: b.ID.String(), Cells: []string{
				sectionLabel(b.Section), b.Label, b.Href, str(b.Variant), fmt.Sprint(b.Position),
			}}
		},
		form:    h.ctaForm,
		reorder: h.Store.Reorder,
	}
}

func (h *ContentHandler) media() Resource {
	return &resource[models.MediaAsset, mediaInput]{
		entity: Entity{Key: "media", Title: "Media", Singular: "Media asset", API: "/api/admin/media",
			Columns: []string{"URL", "Type", "Alt", "Category"}},
		store: h.Store,
		admin: h.Admin,
		list: func(c *fiber.Ctx) ([]models.MediaAsset, error) {
			sectionID, err := queryUUID(c, "section_id")
			if err != nil {
				return nil, err
			}
			return h.Store.ListMediaAssets(c.UserContext(), store.MediaFilter{
				SectionID: sectionID,
				Category:  strings.TrimSpace(c.Query("category")),
			})
		},
		get:    h.Store.GetMediaAsset,
		create: h.Store.CreateMediaAsset,
		update: h.Store.UpdateMediaAsset,
		remove: h.Store.DeleteMediaAsset,
		refs: func(ctx context.Context, _ *uuid.UUID, in mediaInput, errs FieldErrors) error {
			return h.sectionRef(ctx, errs, in.SectionID)
		},
		text: func(m models.MediaAsset) []string {
			return []string{m.URL, m.Type, str(m.Alt), str(m.Category)}
		},
		row: func(m models.MediaAsset) Row {
			return Row{ID: m.ID.String(), Cells: []string{m.URL, m.Type, str(m.Alt), str(m.Category)}}
		},
		form: h.mediaForm,
	}
}
