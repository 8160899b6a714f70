package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// NormalizedColor is the raw buffer sample, each channel in [0, 1].
type NormalizedColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorResult contains a color value in multiple representations.
//
// Normalized is the exact sample held by the buffer; the other fields are
// derived from it and rounded to 8 bits where applicable.
type ColorResult struct {
	Hex        string          `json:"hex"` // Hex format "#RRGGBB" (no alpha)
	RGBA       RGBAColor       `json:"rgba"`
	HSL        HSLColor        `json:"hsl"`
	Normalized NormalizedColor `json:"normalized"`
}

// SampleColor extracts the color at a pixel of buf.
//
// Coordinates are 0-based with origin at top-left. Coordinates outside the
// buffer return ErrInvalidParameter.
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if x < 0 || x >= buf.width || y < 0 || y >= buf.height {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside %dx%d buffer",
			ErrInvalidParameter, x, y, buf.width, buf.height)
	}

	r, g, b, a := buf.Pixel(x, y)
	c := colorful.Color{R: float64(r), G: float64(g), B: float64(b)}
	r8, g8, b8 := c.RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: uint8(a*255 + 0.5)},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Normalized: NormalizedColor{R: float64(r), G: float64(g), B: float64(b), A: float64(a)},
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several points at once. If any point is outside
// the buffer no partial results are returned.
func SampleColorsMulti(buf *Buffer, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(buf, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: bad alpha in color %q", ErrInvalidParameter, hex)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("%w: color %q must be #RRGGBB or #RRGGBBAA", ErrInvalidParameter, hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
