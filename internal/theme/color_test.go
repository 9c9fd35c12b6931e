package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHSL(t *testing.T) {
	c, ok := ParseHSL("142 71% 45%")
	require.True(t, ok)
	assert.Equal(t, HSL{142, 71, 45}, c)
	assert.Equal(t, "142 71% 45%", c.String())

	for _, bad := range []string{"", "142 71 45", "hsl(142,71%,45%)", "-1 5% 5%", "142  71%  45% ;"} {
		_, ok := ParseHSL(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseColorCookie(t *testing.T) {
	c, ok := ParseColorCookie("210%2040%25%2050%25")
	require.True(t, ok)
	assert.Equal(t, HSL{210, 40, 50}, c)

	_, ok = ParseColorCookie("%zz")
	assert.False(t, ok)

	assert.Equal(t, "210%2040%25%2050%25", EncodeCookie("210 40% 50%"))
}

func TestHexToHSL(t *testing.T) {
	cases := map[string]HSL{
		"#22c55e": {142, 71, 45},
		"#0ea5e9": {199, 89, 48},
		"#ffffff": {0, 0, 100},
		"#000":    {0, 0, 0},
		"#f00":    {0, 100, 50},
	}
	for hex, want := range cases {
		got, err := HexToHSL(hex)
		require.NoError(t, err, hex)
		assert.Equal(t, want, got, hex)
	}

	_, err := HexToHSL("#12345")
	assert.Error(t, err)
	_, err = HexToHSL("#gggggg")
	assert.Error(t, err)
}

func TestNormalizeHex(t *testing.T) {
	h, ok := NormalizeHex("#ABC")
	require.True(t, ok)
	assert.Equal(t, "#aabbcc", h)
	_, ok = NormalizeHex("blue")
	assert.False(t, ok)
}
