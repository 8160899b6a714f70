package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Adjustment ranges accepted by Brightness and Contrast.
const (
	MinBrightness = -100
	MaxBrightness = 100

	MinContrast = 0.5
	MaxContrast = 2.0
)

// Brightness shifts every color channel by offset/255 in normalized space.
//
// Parameters:
//   - src: Source buffer. It is not modified.
//   - offset: Integer in [-100, 100]. Positive values brighten.
//
// Each of R, G and B is clamped to [0, 1] after the shift. Alpha is preserved.
// An offset outside the accepted range returns ErrInvalidParameter.
func Brightness(src *Buffer, offset int) (*Buffer, error) {
	if offset < MinBrightness || offset > MaxBrightness {
		return nil, fmt.Errorf("%w: brightness offset %d outside [%d,%d]",
			ErrInvalidParameter, offset, MinBrightness, MaxBrightness)
	}
	delta := float64(offset) / 255.0
	return mapRGB(src, func(c colorful.Color) colorful.Color {
		return colorful.Color{R: c.R + delta, G: c.G + delta, B: c.B + delta}
	}), nil
}

// Contrast scales every color channel away from (or toward) mid-gray.
//
// The per-channel formula is c' = clamp((c-0.5)*factor + 0.5), so a channel
// at exactly 0.5 is a fixed point for every factor. Alpha is preserved.
// A factor outside [0.5, 2.0] returns ErrInvalidParameter.
func Contrast(src *Buffer, factor float64) (*Buffer, error) {
	if math.IsNaN(factor) || factor < MinContrast || factor > MaxContrast {
		return nil, fmt.Errorf("%w: contrast factor %g outside [%g,%g]",
			ErrInvalidParameter, factor, MinContrast, MaxContrast)
	}
	return mapRGB(src, func(c colorful.Color) colorful.Color {
		return colorful.Color{
			R: (c.R-0.5)*factor + 0.5,
			G: (c.G-0.5)*factor + 0.5,
			B: (c.B-0.5)*factor + 0.5,
		}
	}), nil
}

// Grayscale replaces each pixel's color with the unweighted mean of its
// R, G and B channels. Alpha is preserved.
func Grayscale(src *Buffer) *Buffer {
	return mapRGB(src, func(c colorful.Color) colorful.Color {
		gray := (c.R + c.G + c.B) / 3
		return colorful.Color{R: gray, G: gray, B: gray}
	})
}

// mapRGB applies fn to the color of every pixel and clamps the result.
func mapRGB(src *Buffer, fn func(colorful.Color) colorful.Color) *Buffer {
	dst := newBuffer(src.width, src.height)
	for i := 0; i < len(src.pix); i += 4 {
		c := fn(colorful.Color{
			R: float64(src.pix[i]),
			G: float64(src.pix[i+1]),
			B: float64(src.pix[i+2]),
		}).Clamped()
		dst.pix[i] = float32(c.R)
		dst.pix[i+1] = float32(c.G)
		dst.pix[i+2] = float32(c.B)
		dst.pix[i+3] = src.pix[i+3]
	}
	return dst
}
