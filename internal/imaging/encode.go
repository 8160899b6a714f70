package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageResult carries an image encoded as base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as PNG and wraps it in an ImageResult.
func EncodePNG(img image.Image) (*ImageResult, error) {
	if b, ok := img.(*Buffer); ok {
		img = b.NRGBA()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &ImageResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes buf to path. The format is chosen from the file extension
// (.png, .jpg, .jpeg, .gif, .bmp, .tif).
func Save(buf *Buffer, path string) error {
	if err := imaging.Save(buf.NRGBA(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
