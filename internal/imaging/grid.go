package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultGridColor is a semi-transparent red that shows on most photos.
const DefaultGridColor = "#FF000080"

// GridOverlay renders a coordinate grid on top of buf and returns the result
// as PNG. It is a preview aid for choosing crop rectangles; buf is not
// changed and nothing is recorded in any edit history.
//
// Lines are drawn every spacing pixels, alpha-blended in gridColorHex
// ("#RRGGBB" or "#RRGGBBAA"). An unparsable color falls back to
// DefaultGridColor. With showCoordinates each intersection is labeled "x,y".
func GridOverlay(buf *Buffer, spacing int, showCoordinates bool, gridColorHex string) (*ImageResult, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: grid spacing %d must be positive", ErrInvalidParameter, spacing)
	}

	gridColor, err := ParseHexColor(gridColorHex)
	if err != nil {
		gridColor, _ = ParseHexColor(DefaultGridColor)
	}

	canvas := imaging.Clone(buf)
	bounds := canvas.Bounds()
	line := image.NewUniform(gridColor)

	for x := spacing; x < bounds.Dx(); x += spacing {
		draw.Draw(canvas, image.Rect(x, 0, x+1, bounds.Dy()), line, image.Point{}, draw.Over)
	}
	for y := spacing; y < bounds.Dy(); y += spacing {
		draw.Draw(canvas, image.Rect(0, y, bounds.Dx(), y+1), line, image.Point{}, draw.Over)
	}

	if showCoordinates {
		fg := color.NRGBA{255, 255, 255, 255}
		bg := color.NRGBA{0, 0, 0, 180}
		for y := spacing; y < bounds.Dy(); y += spacing {
			for x := spacing; x < bounds.Dx(); x += spacing {
				drawLabel(canvas, x+2, y+2, strconv.Itoa(x)+","+strconv.Itoa(y), fg, bg)
			}
		}
	}

	return EncodePNG(canvas)
}

// 3x5 bitmap digits, one row per string.
var labelGlyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

const (
	glyphAdvance = 4
	labelHeight  = 7
)

// drawLabel draws text with a backing box whose top-left corner is (x, y).
// Pixels falling outside dst are clipped by draw.Draw.
func drawLabel(dst *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	box := image.Rect(x-1, y-1, x+len(text)*glyphAdvance, y+labelHeight)
	draw.Draw(dst, box, image.NewUniform(bg), image.Point{}, draw.Over)

	bounds := dst.Bounds()
	for i, ch := range text {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			continue
		}
		ox := x + i*glyphAdvance
		for row, bits := range glyph {
			for col, bit := range bits {
				p := image.Pt(ox+col, y+row)
				if bit == '1' && p.In(bounds) {
					dst.SetNRGBA(p.X, p.Y, fg)
				}
			}
		}
	}
}
