package theme

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ColorCookie holds the active primary color as "<h> <s>% <l>%", URL-encoded.
const ColorCookie = "primary-color-hsl"

var hslPattern = regexp.MustCompile(`^(\d+)\s+(\d+)%\s+(\d+)%$`)

// HSL is a color in the textual form the stylesheet custom properties expect.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// DefaultColor is used when neither a cookie nor a stored theme supplies one.
var DefaultColor = HSL{H: 142, S: 71, L: 45}

func (c HSL) String() string {
	return fmt.Sprintf("%d %d%% %d%%", c.H, c.S, c.L)
}

// ParseHSL accepts exactly "<h> <s>% <l>%" with non-negative integers.
func ParseHSL(s string) (HSL, bool) {
	m := hslPattern.FindStringSubmatch(s)
	if m == nil {
		return HSL{}, false
	}
	h, err1 := strconv.Atoi(m[1])
	sat, err2 := strconv.Atoi(m[2])
	l, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return HSL{}, false
	}
	return HSL{H: h, S: sat, L: l}, true
}

// ParseColorCookie URL-decodes a raw cookie value and validates it.
func ParseColorCookie(raw string) (HSL, bool) {
	if raw == "" {
		return HSL{}, false
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return HSL{}, false
	}
	return ParseHSL(v)
}

// EncodeCookie escapes v the way encodeURIComponent does, so client scripts
// can read it back with decodeURIComponent.
func EncodeCookie(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// HexToHSL converts "#rrggbb" or "#rgb" to rounded HSL.
func HexToHSL(hex string) (HSL, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return HSL{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return HSL{}, fmt.Errorf("invalid hex color %q", hex)
	}

	r := float64((v>>16)&0xff) / 255
	g := float64((v>>8)&0xff) / 255
	b := float64(v&0xff) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, sat float64
	if d := max - min; d != 0 {
		sat = d / (1 - math.Abs(2*l-1))
		switch max {
		case r:
			h = math.Mod((g-b)/d, 6)
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}

	return HSL{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(sat * 100)),
		L: int(math.Round(l * 100)),
	}, nil
}

// NormalizeHex returns the lower-case "#rrggbb" form of a valid hex color.
func NormalizeHex(hex string) (string, bool) {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", false
	}
	return "#" + s, true
}
