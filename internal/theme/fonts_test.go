package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFontConfig(t *testing.T) {
	f, ok := ParseFontConfig([]byte(`{"admin":{"heading":"inter","body":"lato"}}`))
	require.True(t, ok)
	assert.Equal(t, FontID("inter"), f.Admin.Heading)
	assert.Equal(t, FontID("lato"), f.Admin.Body)

	for _, bad := range []string{``, `{}`, `not json`, `{"admin":{"heading":"comic-sans","body":"lato"}}`, `{"admin":{"heading":1,"body":"lato"}}`} {
		_, ok := ParseFontConfig([]byte(bad))
		assert.False(t, ok, bad)
	}
}

func TestParseFontCookie(t *testing.T) {
	raw := EncodeCookie(`{"admin":{"heading":"poppins","body":"inter"}}`)
	f, ok := ParseFontCookie(raw)
	require.True(t, ok)
	assert.Equal(t, FontID("poppins"), f.Admin.Heading)
}

func TestFontCSS(t *testing.T) {
	css := FontConfig{Admin: AdminFonts{Heading: "inter", Body: "lato"}}.CSS()
	assert.Contains(t, css, ":root{--font-family-admin-heading:var(--font-inter);--font-family-admin-body:var(--font-lato);}")
	assert.Contains(t, css, ".preset-admin h6{font-family:var(--font-inter),system-ui,sans-serif!important;}")
	assert.Contains(t, css, ".preset-admin body *{font-family:var(--font-lato),system-ui,sans-serif!important;}")
}

func TestDefaultsAreValid(t *testing.T) {
	assert.True(t, DefaultFonts.Valid())
	assert.Len(t, FontOptions, 15)
}
