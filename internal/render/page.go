package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"

	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

// Views executes a named template. fiber.Views and *html.Engine satisfy it.
type Views interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

// PageView is the binding for the public page template. Loading is set when
// there is nothing to show yet: unknown slug or no visible sections.
type PageView struct {
	Title       string
	Description string
	Page        *models.Page
	Blocks      []template.HTML
	Loading     bool
}

type Assembler struct {
	src   Loader
	views Views
	kinds map[string]Kind
}

func NewAssembler(src Loader, views Views) *Assembler {
	return &Assembler{src: src, views: views, kinds: DefaultKinds()}
}

// Register adds or replaces the renderer for a section type.
func (a *Assembler) Register(sectionType string, k Kind) {
	a.kinds[sectionType] = k
}

// Page assembles the public page for slug. Only store failures on the page
// or section queries are returned; a failing section is logged and left out.
func (a *Assembler) Page(ctx context.Context, slug string) (*PageView, error) {
	page, err := a.src.GetPageBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return &PageView{Title: "Loading", Loading: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load page %q: %w", slug, err)
	}

	view := &PageView{Title: page.Title, Page: page}
	if page.Description != nil {
		view.Description = *page.Description
	}

	sections, err := a.src.ListVisibleSections(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("load sections of %q: %w", slug, err)
	}
	if len(sections) == 0 {
		view.Loading = true
		return view, nil
	}

	for _, s := range sections {
		if block := a.Section(ctx, s); block != "" {
			view.Blocks = append(view.Blocks, block)
		}
	}
	return view, nil
}

// Section renders one section inside its own failure boundary: a panic or
// error anywhere in loading or executing yields empty output.
func (a *Assembler) Section(ctx context.Context, s models.Section) (out template.HTML) {
	kind, ok := a.kinds[s.Type]
	if !ok {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Log.Error("section render panicked",
				zap.Stringer("section", s.ID), zap.String("type", s.Type), zap.Any("panic", r))
			out = ""
		}
	}()

	v := &SectionView{Section: s, Content: map[string]any{}}
	if len(s.Content) > 0 {
		if err := json.Unmarshal(s.Content, &v.Content); err != nil {
			logging.Log.Warn("section content is not a JSON object",
				zap.Stringer("section", s.ID), zap.Error(err))
			v.Content = map[string]any{}
		}
	}
	if kind.Load != nil {
		if err := kind.Load(ctx, a.src, v); err != nil {
			logging.Log.Error("section children failed to load",
				zap.Stringer("section", s.ID), zap.String("type", s.Type), zap.Error(err))
			return ""
		}
	}

	var buf bytes.Buffer
	if err := a.views.Render(&buf, kind.Template, v); err != nil {
		logging.Log.Error("section template failed",
			zap.Stringer("section", s.ID), zap.String("type", s.Type), zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}
