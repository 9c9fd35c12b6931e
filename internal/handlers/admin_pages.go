package handlers

import (
	"errors"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

// Row is one line of the admin list table.
type Row struct {
	ID    string
	Cells []string
}

// Field is one input of the admin form. Kind picks the widget: text,
// textarea, json, select, number, url, image or checkbox.
type Field struct {
	Name     string
	Label    string
	Kind     string
	Required bool
	Value    string
	Checked  bool
	Options  []Option
	Pattern  string
	Help     string
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type count struct {
	Key   string
	Title string
	Count int64
}

// AdminPages renders the server-side admin screens inside layouts/admin.
type AdminPages struct {
	Store *store.Store
	Nav   []Entity
}

func (a *AdminPages) user(c *fiber.Ctx) *models.User {
	id, ok := currentUserID(c)
	if !ok {
		return nil
	}
	u, err := a.Store.GetUser(c.UserContext(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Log.Warn("load admin user", zap.Error(err))
		}
		return nil
	}
	return u
}

func (a *AdminPages) render(c *fiber.Ctx, name, active, title string, data fiber.Map) error {
	data["Title"] = title
	data["Active"] = active
	data["Nav"] = a.Nav
	data["User"] = a.user(c)
	return c.Render(name, data, "layouts/admin")
}

// Dashboard shows a row count per entity.
func (a *AdminPages) Dashboard(resources []Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts := make([]count, 0, len(resources))
		for _, r := range resources {
			e := r.Entity()
			n, err := r.Count(c.UserContext())
			if err != nil {
				return err
			}
			counts = append(counts, count{Key: e.Key, Title: e.Title, Count: n})
		}
		return a.render(c, "admin/dashboard", "dashboard", "Dashboard", fiber.Map{"Counts": counts})
	}
}

func (r *resource[T, I]) ListPage(c *fiber.Ctx) error {
	rows, err := r.search(c)
	if err != nil {
		return err
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.row(row))
	}
	return r.admin.render(c, "admin/list", r.entity.Key, r.entity.Title, fiber.Map{
		"Entity": r.entity,
		"Rows":   out,
		"Query":  c.Query("q"),
	})
}

// FormPage serves both /new and /:id/edit.
func (r *resource[T, I]) FormPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		row   *T
		id    string
		title = "New " + r.entity.Singular
	)
	if raw := c.Params("id"); raw != "" {
		uid, err := uuid.Parse(raw)
		if err != nil {
			return fiber.ErrNotFound
		}
		row, err = r.get(ctx, uid)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.ErrNotFound
		}
		if err != nil {
			return err
		}
		id = uid.String()
		title = "Edit " + r.entity.Singular
	}

	fields, err := r.form(ctx, row)
	if err != nil {
		return err
	}
	return r.admin.render(c, "admin/form", r.entity.Key, title, fiber.Map{
		"Entity": r.entity,
		"ID":     id,
		"Fields": fields,
	})
}

func pageLabel(p *models.Page) string {
	if p == nil {
		return ""
	}
	return p.Slug
}

func sectionLabel(s *models.Section) string {
	if s == nil {
		return ""
	}
	if s.Title != nil && *s.Title != "" {
		return s.Type + ": " + *s.Title
	}
	return s.Type
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func excerpt(s string) string {
	const limit = 80
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
