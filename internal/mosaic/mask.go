package mosaic

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"strings"

	"golang.org/x/image/vector"

	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// Shape names the outline a mosaic is laid out in.
type Shape string

const (
	ShapeHeart Shape = "heart"
	ShapeStar  Shape = "star"
)

// Shapes lists every supported shape in a stable order.
var Shapes = []Shape{ShapeHeart, ShapeStar}

// ParseShape accepts a shape name case-insensitively. The empty string
// parses to the empty Shape, which Generate treats as "pick one at random".
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case ShapeHeart:
		return ShapeHeart, nil
	case ShapeStar:
		return ShapeStar, nil
	}
	return "", fmt.Errorf("%w: unknown shape %q (want heart or star)", imaging.ErrInvalidParameter, s)
}

// randomShape picks a shape uniformly. A nil r uses the global source.
func randomShape(r *rand.Rand) Shape {
	if r == nil {
		return Shapes[rand.IntN(len(Shapes))]
	}
	return Shapes[r.IntN(len(Shapes))]
}

// AlphaThreshold is the mask alpha above which a point counts as inside.
const AlphaThreshold = 127

// Mask is a size x size binary alpha map. Every sample is 0 (outside the
// shape) or 255 (inside).
type Mask struct {
	size  int
	alpha *image.Alpha
}

// Size returns the mask edge length in pixels.
func (m *Mask) Size() int { return m.size }

// AlphaAt returns the mask alpha at (x, y). Points outside the mask are 0.
func (m *Mask) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return 0
	}
	return m.alpha.AlphaAt(x, y).A
}

// Inside reports whether (x, y) lies inside the shape.
func (m *Mask) Inside(x, y int) bool {
	return m.AlphaAt(x, y) > AlphaThreshold
}

// NewMask rasterizes shape into a size x size mask.
//
// The outline is filled as a closed polygon and the coverage is then
// thresholded, so edges are hard: no sample is left between 0 and 255.
func NewMask(shape Shape, size int) (*Mask, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: mask size %d must be positive", imaging.ErrInvalidParameter, size)
	}

	var outline [][2]float64
	switch shape {
	case ShapeHeart:
		outline = heartOutline(size)
	case ShapeStar:
		outline = starOutline(size)
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", imaging.ErrInvalidParameter, shape)
	}

	// The heart's lower tip runs past the bottom edge; the rasterizer drops
	// coverage outside its bounds.
	z := vector.NewRasterizer(size, size)
	for i, p := range outline {
		if i == 0 {
			z.MoveTo(float32(p[0]), float32(p[1]))
		} else {
			z.LineTo(float32(p[0]), float32(p[1]))
		}
	}
	z.ClosePath()

	alpha := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	for i, a := range alpha.Pix {
		if a > AlphaThreshold {
			alpha.Pix[i] = 255
		} else {
			alpha.Pix[i] = 0
		}
	}
	return &Mask{size: size, alpha: alpha}, nil
}

// heartOutline samples x=16sin³t, y=13cos t-5cos 2t-2cos 3t-cos 4t for t in
// [0, 2π] with step 0.01, scaled by size/32 around the canvas center. Canvas
// y grows downward, so the curve's y is subtracted.
func heartOutline(size int) [][2]float64 {
	cx, cy := float64(size)/2, float64(size)/2
	scale := float64(size) / 32

	pts := make([][2]float64, 0, 629)
	for t := 0.0; t <= 2*math.Pi; t += 0.01 {
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts = append(pts, [2]float64{cx + x*scale, cy - y*scale})
	}
	return pts
}

// starOutline returns the ten vertices of a five-pointed star, alternating
// outer radius 0.4*size and inner radius 0.2*size, starting straight up.
func starOutline(size int) [][2]float64 {
	cx, cy := float64(size)/2, float64(size)/2
	outer := float64(size) * 0.4
	inner := outer * 0.5

	pts := make([][2]float64, 10)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}
