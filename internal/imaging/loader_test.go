package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a solid-color PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, filepath.Join(t.TempDir(), "test-image.png"), img)
}

func writePNG(t *testing.T, path string, img image.Image) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Fatalf("new cache should be empty, has %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 60, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x60", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_LoadBuffer(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 8, 4, color.RGBA{0, 0, 255, 255})

	buf, err := cache.LoadBuffer(imgPath)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if buf.Width() != 8 || buf.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 8x4", buf.Width(), buf.Height())
	}
	if r, g, b, a := buf.Pixel(3, 2); r != 0 || g != 0 || b != 1 || a != 1 {
		t.Errorf("pixel: got (%v,%v,%v,%v), want opaque blue", r, g, b, a)
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := cache.Load(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
	if cache.Len() != 0 {
		t.Error("failed load should not be cached")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", cache.Len())
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}

	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".PNG", "png"},
		{".jpg", "jpeg"},
		{".jpeg", "jpeg"},
		{".gif", "gif"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			// A valid PNG regardless of extension; decoding sniffs content.
			path := writePNG(t, filepath.Join(t.TempDir(), "test-format"+tt.ext),
				image.NewRGBA(image.Rect(0, 0, 10, 10)))

			info, err := LoadImageInfo(NewImageCache(), path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.ext, info.Format, tt.format)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestSave(t *testing.T) {
	buf := FromImage(createPatternImage(20, 20))
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Save(buf, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := NewImageCache().LoadBuffer(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.Equal(buf) {
		t.Error("saved PNG does not round-trip to the same buffer")
	}
}

func TestSave_BadPath(t *testing.T) {
	buf := solidBuffer(t, 2, 2, 0, 0, 0, 1)
	if err := Save(buf, filepath.Join(t.TempDir(), "missing-dir", "out.png")); err == nil {
		t.Error("Save should fail when the directory does not exist")
	}
	if err := Save(buf, filepath.Join(t.TempDir(), "out.unknownext")); err == nil {
		t.Error("Save should fail for an unsupported extension")
	}
}

func TestEncodePNG(t *testing.T) {
	buf := solidBuffer(t, 12, 7, 0, 1, 0, 1)

	result, err := EncodePNG(buf)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if result.Width != 12 || result.Height != 7 || result.MimeType != "image/png" {
		t.Errorf("unexpected result header: %+v", result)
	}
	img := decodeResult(t, result)
	if r, g, b, _ := img.At(3, 3).RGBA(); r != 0 || g>>8 != 255 || b != 0 {
		t.Errorf("decoded pixel: got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}
}
