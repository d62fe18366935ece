// Package imaging downscales uploaded avatars before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
)

var ErrUnsupportedMIMEType = errors.New("unsupported MIME type")

var (
	decoders = map[string]func(io.Reader) (image.Image, error){
		"image/jpeg": jpeg.Decode,
		"image/png":  png.Decode,
	}
	encoders = map[string]func(io.Writer, image.Image) error{
		"image/jpeg": func(w io.Writer, i image.Image) error { return jpeg.Encode(w, i, &jpeg.Options{Quality: 85}) },
		"image/png":  png.Encode,
	}
)

// Resizer scales images down to Width keeping the aspect ratio.
// Images already narrower than Width are returned unchanged.
type Resizer struct {
	Width        int
	Interpolator draw.Interpolator
}

func NewResizer(width int) *Resizer {
	return &Resizer{Width: width, Interpolator: draw.CatmullRom}
}

func (r *Resizer) Resize(data []byte, contentType string) ([]byte, error) {
	ctype := normalizeType(contentType)
	decode, ok := decoders[ctype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMIMEType, contentType)
	}
	original, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := original.Bounds()
	if r.Width <= 0 || bounds.Dx() <= r.Width {
		return data, nil
	}
	ratio := float64(r.Width) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)
	if height < 1 {
		height = 1
	}

	bitmap := image.NewRGBA(image.Rect(0, 0, r.Width, height))
	interp := r.Interpolator
	if interp == nil {
		interp = draw.ApproxBiLinear
	}
	interp.Scale(bitmap, bitmap.Bounds(), original, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := encoders[ctype](&buf, bitmap); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func normalizeType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
