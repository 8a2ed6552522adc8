package ocr

import (
	"bytes"
	"image"
	"image/png"

	// Decoders accepted by PrepareImage.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
)

// ErrUnsupportedImage is returned when image data cannot be decoded.
var ErrUnsupportedImage = errors.New("ocr: unsupported image")

// PrepareImage returns image data Tesseract can read. PNG and JPEG data is
// returned unchanged; GIF, BMP, TIFF and WebP images are re-encoded as PNG.
// The second result is the detected source format.
func PrepareImage(data []byte) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrapf(ErrUnsupportedImage, "%v", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, format, errors.Wrapf(ErrUnsupportedImage, "empty %s image", format)
	}

	switch format {
	case "png", "jpeg":
		return data, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, errors.Wrapf(ErrUnsupportedImage, "decoding %s: %v", format, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, format, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), format, nil
}
