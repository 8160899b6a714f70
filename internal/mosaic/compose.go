package mosaic

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"

	"github.com/disintegration/imaging"

	pimaging "github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// Default layout of a mosaic.
const (
	DefaultTileSize   = 40
	DefaultCanvasSize = 600
)

// Compose stamps tiles onto a canvas the size of mask.
//
// The canvas starts filled with bg. It is walked in tileSize steps, row by
// row; a cell whose center is inside the mask receives the next tile in
// round-robin order, drawn with its top-left at the cell's top-left. The
// round-robin index only advances on a stamp. Compose returns the canvas and
// the number of cells stamped. With no tiles, only the background is drawn.
func Compose(mask *Mask, tiles []image.Image, tileSize int, bg color.Color) (*image.NRGBA, int) {
	size := mask.Size()
	canvas := imaging.New(size, size, bg)
	if len(tiles) == 0 || tileSize <= 0 {
		return canvas, 0
	}

	placed := 0
	for y := 0; y < size; y += tileSize {
		for x := 0; x < size; x += tileSize {
			if !mask.Inside(x+tileSize/2, y+tileSize/2) {
				continue
			}
			tile := tiles[placed%len(tiles)]
			cell := image.Rect(x, y, x+tileSize, y+tileSize)
			draw.Draw(canvas, cell, tile, tile.Bounds().Min, draw.Src)
			placed++
		}
	}
	return canvas, placed
}

// Result is a finished mosaic.
type Result struct {
	Canvas      *pimaging.Buffer
	Shape       Shape
	TilesPlaced int
}

// Generator builds mosaics from image files.
//
// The zero value is not usable; at least Loader must be set. Zero sizes fall
// back to DefaultTileSize and DefaultCanvasSize, a nil Background to white,
// and a nil Rand to the global random source.
type Generator struct {
	TileSize   int
	CanvasSize int
	Background color.Color
	Loader     Loader
	Rand       *rand.Rand
}

// Generate builds one mosaic from the images at paths.
//
// If shape is empty one is chosen uniformly at random. An empty paths list
// renders nothing and returns (nil, nil). Any load or decode failure aborts
// the build with an error wrapping ErrDecode; no partial canvas is returned.
func (g *Generator) Generate(paths []string, shape Shape) (*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if g.Loader == nil {
		return nil, fmt.Errorf("mosaic: generator has no loader")
	}

	tileSize, canvasSize := g.TileSize, g.CanvasSize
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	if canvasSize == 0 {
		canvasSize = DefaultCanvasSize
	}
	if tileSize < 0 || canvasSize < tileSize {
		return nil, fmt.Errorf("%w: tile size %d does not fit canvas %d",
			pimaging.ErrInvalidParameter, tileSize, canvasSize)
	}

	if shape == "" {
		shape = randomShape(g.Rand)
	}
	mask, err := NewMask(shape, canvasSize)
	if err != nil {
		return nil, err
	}

	tiles, err := LoadTiles(g.Loader, paths, tileSize)
	if err != nil {
		return nil, err
	}

	bg := g.Background
	if bg == nil {
		bg = color.White
	}
	canvas, placed := Compose(mask, tiles, tileSize, bg)

	return &Result{
		Canvas:      pimaging.FromImage(canvas),
		Shape:       shape,
		TilesPlaced: placed,
	}, nil
}
