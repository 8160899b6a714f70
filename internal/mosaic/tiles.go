package mosaic

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// Loader decodes a source image by path. *imaging.ImageCache satisfies it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// PrepareTile resizes img to exactly size x size with bilinear resampling.
// The aspect ratio is not preserved. The result is opaque: any transparency
// in the source is flattened over black.
func PrepareTile(img image.Image, size int) *image.RGBA {
	tile := transform.Resize(img, size, size, transform.Linear)
	for i := 3; i < len(tile.Pix); i += 4 {
		tile.Pix[i] = 0xff
	}
	return tile
}

// LoadTiles loads every path through l and prepares it as a tile.
//
// The first failure aborts the whole batch; no tiles are returned in that
// case. The error always wraps imaging.ErrDecode.
func LoadTiles(l Loader, paths []string, size int) ([]image.Image, error) {
	tiles := make([]image.Image, 0, len(paths))
	for i, p := range paths {
		img, err := l.Load(p)
		if err != nil {
			if errors.Is(err, imaging.ErrDecode) {
				return nil, fmt.Errorf("tile %d: %w", i, err)
			}
			return nil, fmt.Errorf("%w: tile %d (%s): %v", imaging.ErrDecode, i, p, err)
		}
		tiles = append(tiles, PrepareTile(img, size))
	}
	return tiles, nil
}
