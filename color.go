package txlin

import "image/color"

// Color represents an opaque-by-default 8-bit RGBA color, matching the
// palette model of the legacy API.
type Color struct {
	R, G, B, A uint8
}

// Classic palette carried over from the legacy API.
var (
	Black     = Color{0, 0, 0, 255}
	White     = Color{255, 255, 255, 255}
	Red       = Color{255, 0, 0, 255}
	Green     = Color{0, 255, 0, 255}
	Blue      = Color{0, 0, 255, 255}
	Yellow    = Color{255, 255, 0, 255}
	Cyan      = Color{0, 255, 255, 255}
	Magenta   = Color{255, 0, 255, 255}
	Gray      = Color{128, 128, 128, 255}
	LightGray = Color{192, 192, 192, 255}
	DarkGray  = Color{64, 64, 64, 255}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA converts the color to the standard library representation.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to a Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "RRGGBBAA", with an optional leading '#'.
// The second return value reports whether the string was well formed.
func Hex(hex string) (Color, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var vals []uint8
	switch len(hex) {
	case 3, 6, 8:
		for i := 0; i < len(hex); {
			step := 2
			if len(hex) == 3 {
				step = 1
			}
			v, ok := parseHexByte(hex[i : i+step])
			if !ok {
				return Color{}, false
			}
			vals = append(vals, v)
			i += step
		}
	default:
		return Color{}, false
	}

	c := Color{A: 255}
	c.R, c.G, c.B = vals[0], vals[1], vals[2]
	if len(vals) == 4 {
		c.A = vals[3]
	}
	return c, true
}

// parseHexByte parses one or two hex digits. A single digit is doubled,
// so "f" means 0xff.
func parseHexByte(s string) (uint8, bool) {
	var v uint32
	for i := 0; i < len(s); i++ {
		v <<= 4
		switch ch := s[i]; {
		case ch >= '0' && ch <= '9':
			v |= uint32(ch - '0')
		case ch >= 'a' && ch <= 'f':
			v |= uint32(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			v |= uint32(ch-'A') + 10
		default:
			return 0, false
		}
	}
	if len(s) == 1 {
		v *= 17
	}
	return uint8(v), true
}
