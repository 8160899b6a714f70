package imaging

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultBorderWidth is the frame width used when none is configured.
const DefaultBorderWidth = 20

// MaxDimension bounds the width and height of any buffer a transform may
// produce.
const MaxDimension = 1 << 15

// CropRect is a rectangle in source buffer coordinates.
//
// (X, Y) is the top-left corner (inclusive); W and H are the extent in pixels.
type CropRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Validate reports whether the rectangle lies entirely inside a
// width x height buffer. Rectangles are never clamped.
func (r CropRect) Validate(width, height int) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: crop rect %dx%d has no area", ErrInvalidParameter, r.W, r.H)
	}
	// Compare against the remaining extent so huge W or H cannot overflow.
	if r.X < 0 || r.Y < 0 || r.X >= width || r.Y >= height ||
		r.W > width-r.X || r.H > height-r.Y {
		return fmt.Errorf("%w: crop rect (%d,%d %dx%d) outside %dx%d buffer",
			ErrInvalidParameter, r.X, r.Y, r.W, r.H, width, height)
	}
	return nil
}

// Crop extracts the exact sub-rectangle r from src. No resampling is done.
func Crop(src *Buffer, r CropRect) (*Buffer, error) {
	if err := r.Validate(src.width, src.height); err != nil {
		return nil, err
	}
	dst := newBuffer(r.W, r.H)
	for y := 0; y < r.H; y++ {
		from := ((r.Y+y)*src.width + r.X) * 4
		copy(dst.pix[y*r.W*4:(y+1)*r.W*4], src.pix[from:from+r.W*4])
	}
	return dst, nil
}

// Rotate90 turns the buffer a quarter turn clockwise.
//
// The output is h x w. The source pixel at (x, y) lands at (h-1-y, x).
func Rotate90(src *Buffer) *Buffer {
	w, h := src.width, src.height
	dst := newBuffer(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := (y*w + x) * 4
			d := (x*h + (h - 1 - y)) * 4
			copy(dst.pix[d:d+4], src.pix[s:s+4])
		}
	}
	return dst
}

// AddBorder surrounds src with an opaque black frame width pixels wide.
func AddBorder(src *Buffer, width int) (*Buffer, error) {
	return AddBorderColor(src, width, colorful.Color{})
}

// AddBorderColor surrounds src with an opaque frame of the given color.
//
// The output is (w+2*width) x (h+2*width) and the interior is an exact copy
// of src offset by (width, width). A non-positive width, or one that would
// grow either side past MaxDimension, returns ErrInvalidParameter.
func AddBorderColor(src *Buffer, width int, c colorful.Color) (*Buffer, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: border width %d must be positive", ErrInvalidParameter, width)
	}
	if longest := max(src.width, src.height); longest > MaxDimension || width > (MaxDimension-longest)/2 {
		return nil, fmt.Errorf("%w: border width %d makes a %dx%d buffer larger than %d",
			ErrInvalidParameter, width, src.width, src.height, MaxDimension)
	}
	c = c.Clamped()
	frame := [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}

	outW := src.width + 2*width
	outH := src.height + 2*width
	dst := newBuffer(outW, outH)
	for i := 0; i < len(dst.pix); i += 4 {
		copy(dst.pix[i:i+4], frame[:])
	}
	for y := 0; y < src.height; y++ {
		from := y * src.width * 4
		to := ((y+width)*outW + width) * 4
		copy(dst.pix[to:to+src.width*4], src.pix[from:from+src.width*4])
	}
	return dst, nil
}
