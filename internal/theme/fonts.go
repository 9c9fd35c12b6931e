package theme

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// FontCookie holds the font pairing JSON, URL-encoded.
const FontCookie = "font-family-json"

type FontID string

type FontOption struct {
	ID    FontID `json:"id"`
	Label string `json:"label"`
}

// FontOptions is the fixed catalogue the appearance settings choose from.
var FontOptions = []FontOption{
	{"geist-sans", "Geist Sans"},
	{"geist-mono", "Geist Mono"},
	{"inter", "Inter"},
	{"roboto", "Roboto"},
	{"lato", "Lato"},
	{"open-sans", "Open Sans"},
	{"montserrat", "Montserrat"},
	{"dm-sans", "DM Sans"},
	{"source-code-pro", "Source Code Pro"},
	{"space-grotesk", "Space Grotesk"},
	{"josefin-sans", "Josefin Sans"},
	{"rubik", "Rubik"},
	{"poppins", "Poppins"},
	{"raleway", "Raleway"},
	{"nunito-sans", "Nunito Sans"},
}

var knownFonts = func() map[FontID]bool {
	m := make(map[FontID]bool, len(FontOptions))
	for _, f := range FontOptions {
		m[f.ID] = true
	}
	return m
}()

func IsFont(id FontID) bool { return knownFonts[id] }

// Variable is the CSS custom property the font face is registered under.
func (id FontID) Variable() string { return "--font-" + string(id) }

type AdminFonts struct {
	Heading FontID `json:"heading"`
	Body    FontID `json:"body"`
}

// FontConfig is stored as user_themes.font_family and in the font cookie.
type FontConfig struct {
	Admin AdminFonts `json:"admin"`
}

var DefaultFonts = FontConfig{Admin: AdminFonts{Heading: "geist-sans", Body: "geist-sans"}}

func (f FontConfig) Valid() bool {
	return IsFont(f.Admin.Heading) && IsFont(f.Admin.Body)
}

// ParseFontConfig decodes and validates a font pairing.
func ParseFontConfig(raw []byte) (FontConfig, bool) {
	if len(raw) == 0 {
		return FontConfig{}, false
	}
	var f FontConfig
	if err := json.Unmarshal(raw, &f); err != nil {
		return FontConfig{}, false
	}
	if !f.Valid() {
		return FontConfig{}, false
	}
	return f, true
}

func ParseFontCookie(raw string) (FontConfig, bool) {
	if raw == "" {
		return FontConfig{}, false
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return FontConfig{}, false
	}
	return ParseFontConfig([]byte(v))
}

func (f FontConfig) JSON() []byte {
	b, _ := json.Marshal(f)
	return b
}

// CSS sets the admin font variables and applies them under .preset-admin.
func (f FontConfig) CSS() string {
	heading := f.Admin.Heading.Variable()
	body := f.Admin.Body.Variable()
	return fmt.Sprintf(":root{--font-family-admin-heading:var(%[1]s);--font-family-admin-body:var(%[2]s);}"+
		"html.preset-admin body,html.preset-admin body *,.preset-admin body,.preset-admin body *"+
		"{font-family:var(%[2]s),system-ui,sans-serif!important;}"+
		"html.preset-admin body h1,html.preset-admin body h2,html.preset-admin body h3,"+
		"html.preset-admin body h4,html.preset-admin body h5,html.preset-admin body h6,"+
		".preset-admin h1,.preset-admin h2,.preset-admin h3,.preset-admin h4,.preset-admin h5,.preset-admin h6"+
		"{font-family:var(%[1]s),system-ui,sans-serif!important;}", heading, body)
}
