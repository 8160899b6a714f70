package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidParameter is returned when an operation parameter is out of
	// range or a region does not fit inside the buffer. No state is changed.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDecode is returned when a source image cannot be opened or decoded.
	ErrDecode = errors.New("decode failure")
)

// Buffer is an immutable RGBA pixel buffer.
//
// Samples are stored row-major, four per pixel (R, G, B, A), each normalized
// to the range [0, 1]. Every transform allocates a new Buffer; nothing in this
// package writes to a Buffer after it has been returned, so holding a *Buffer
// is equivalent to holding a snapshot of it.
//
// Buffer implements image.Image so it can be passed directly to encoders and
// resamplers.
type Buffer struct {
	width  int
	height int
	pix    []float32
}

func newBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}
}

// NewBufferFromSamples builds a Buffer from normalized RGBA samples.
//
// The samples are copied. len(samples) must equal width*height*4 and every
// sample must lie in [0, 1].
func NewBufferFromSamples(width, height int, samples []float32) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	if len(samples) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d samples, want %d for %dx%d",
			ErrInvalidParameter, len(samples), width*height*4, width, height)
	}
	for i, s := range samples {
		if s < 0 || s > 1 || math.IsNaN(float64(s)) {
			return nil, fmt.Errorf("%w: sample %d = %v outside [0,1]", ErrInvalidParameter, i, s)
		}
	}
	b := newBuffer(width, height)
	copy(b.pix, samples)
	return b, nil
}

// FromImage converts any image.Image into a Buffer.
//
// The source is normalized to non-premultiplied 8-bit RGBA first, so the
// resulting samples are multiples of 1/255. The buffer origin is always (0,0)
// regardless of the source bounds.
func FromImage(img image.Image) *Buffer {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	b := newBuffer(w, h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := b.pix[y*w*4 : (y+1)*w*4]
		for i, v := range row {
			dst[i] = float32(v) / 255
		}
	}
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Samples returns a copy of the normalized RGBA samples.
func (b *Buffer) Samples() []float32 {
	out := make([]float32, len(b.pix))
	copy(out, b.pix)
	return out
}

// Pixel returns the normalized RGBA components at (x, y).
// It panics if the coordinates are outside the buffer, like a slice index.
func (b *Buffer) Pixel(x, y int) (r, g, bl, a float32) {
	i := b.offset(x, y)
	return b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]
}

// Equal reports whether two buffers have the same dimensions and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil || b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// NRGBA quantizes the buffer into a new 8-bit non-premultiplied image,
// ready for encoding.
func (b *Buffer) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, v := range b.pix {
		out.Pix[i] = uint8(v*255 + 0.5)
	}
	return out
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.NRGBA64Model }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.NRGBA64{}
	}
	i := b.offset(x, y)
	return color.NRGBA64{
		R: to16(b.pix[i]),
		G: to16(b.pix[i+1]),
		B: to16(b.pix[i+2]),
		A: to16(b.pix[i+3]),
	}
}

func (b *Buffer) offset(x, y int) int {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		panic(fmt.Sprintf("imaging: pixel (%d,%d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return (y*b.width + x) * 4
}

func to16(v float32) uint16 {
	return uint16(v*65535 + 0.5)
}
