package mosaic

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

type errLoader struct{ err error }

func (e errLoader) Load(string) (image.Image, error) { return nil, e.err }

func TestLoadTiles(t *testing.T) {
	loader := fakeLoader{
		"wide.png": solidImage(80, 20, color.NRGBA{255, 0, 0, 255}),
		"tall.png": solidImage(15, 90, color.NRGBA{0, 255, 0, 255}),
	}

	tiles, err := LoadTiles(loader, []string{"wide.png", "tall.png", "wide.png"}, 16)
	if err != nil {
		t.Fatalf("LoadTiles failed: %v", err)
	}
	if len(tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(tiles))
	}
	for i, tile := range tiles {
		if tile.Bounds() != image.Rect(0, 0, 16, 16) {
			t.Errorf("tile %d bounds: got %v, want 16x16", i, tile.Bounds())
		}
	}
}

func TestLoadTiles_WrapsForeignErrors(t *testing.T) {
	_, err := LoadTiles(errLoader{errors.New("disk on fire")}, []string{"x.png"}, 8)
	if !errors.Is(err, imaging.ErrDecode) {
		t.Errorf("got %v, want an error wrapping ErrDecode", err)
	}
}

func TestLoadTiles_ImageCache(t *testing.T) {
	cache := imaging.NewImageCache()
	_, err := LoadTiles(cache, []string{"/nonexistent/tile.png"}, 8)
	if !errors.Is(err, imaging.ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}
