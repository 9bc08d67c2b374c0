// package media prepares uploaded photos for the generation backend.
//
// Photos travel to the backend as data URLs. JPEG and PNG sources are
// re-encoded as JPEG, downscaled to a maximum width; WebP has no stdlib
// decoder and passes through unmodified.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/glowstack/reel/internal/shared"
)

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateFile checks that path points to a supported image under the size
// cap. Returns nil when the file is acceptable.
func ValidateFile(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidImage, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", shared.ErrInvalidImage, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := mimeTypes[ext]; !ok {
		return fmt.Errorf("%w: unsupported type %q (use JPEG, PNG, or WebP)", shared.ErrInvalidImage, ext)
	}

	if maxBytes > 0 && info.Size() > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", shared.ErrImageTooLarge, info.Size(), maxBytes)
	}

	return nil
}

// ReadAsDataURL reads the file and encodes it as a base64 data URL.
func ReadAsDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported type", shared.ErrInvalidImage)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Compress decodes a data URL, downscales the image to at most maxWidth
// columns, and re-encodes it as a JPEG data URL at the given quality.
// Sources the stdlib cannot decode (WebP) are returned unchanged.
func Compress(dataURL string, maxWidth, quality int) (string, error) {
	raw, mime, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	if mime == "image/webp" {
		return dataURL, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidImage, err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = downscale(img, maxWidth)
	}

	if quality <= 0 || quality > 100 {
		quality = 80
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// downscale resamples img to the target width, preserving aspect ratio.
// Nearest-neighbor is good enough here: the backend re-processes the pixels
// anyway, this only keeps request bodies small.
func downscale(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	scale := float64(width) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * scale)
	if height < 1 {
		height = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + int(float64(y)/scale)
		for x := 0; x < width; x++ {
			srcX := bounds.Min.X + int(float64(x)/scale)
			out.Set(x, y, img.At(srcX, srcY))
		}
	}
	return out
}

// decodeDataURL splits a data URL into raw bytes and its MIME type.
func decodeDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", fmt.Errorf("%w: not a data URL", shared.ErrInvalidInput)
	}

	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return nil, "", fmt.Errorf("%w: malformed data URL", shared.ErrInvalidInput)
	}

	mime, _, _ := strings.Cut(meta, ";")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	return raw, mime, nil
}
