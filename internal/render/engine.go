package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/Windi-Fikriyansyah/evergreen_web/views"
)

// NewEngine builds the template engine over the embedded views. reload
// re-parses templates on every render, for development.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.Reload(reload)
	for name, fn := range Funcs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

// Funcs are the helpers every template may call.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// str reads a string-ish value out of decoded section content.
		"str": func(m map[string]any, key string) string {
			v, ok := m[key]
			if !ok || v == nil {
				return ""
			}
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		},
		"list": func(m map[string]any, key string) []any {
			v, _ := m[key].([]any)
			return v
		},
		"toJSON": func(v any) string {
			b, err := json.Marshal(v)
			if err != nil {
				return "null"
			}
			return string(b)
		},
		"lower": strings.ToLower,
		"add":   func(a, b int) int { return a + b },
	}
}
