package pdfdoc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/lexdoc/normalize"
)

// Converter converts PDF files to HTML. The zero value extracts with
// NativeExtractor, repairs Thai text and applies no timeout.
type Converter struct {
	// Extractor reads the PDF text. Defaults to NativeExtractor.
	Extractor TextExtractor
	// Normalizer repairs the extracted text before classification.
	// Defaults to normalize.Thai().
	Normalizer normalize.Normalizer
	// Timeout bounds text extraction when positive.
	Timeout time.Duration
	// Logger defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Convert extracts the text of the PDF at path and formats it as HTML.
// Extraction failures, including timeouts, wrap ErrExtractionFailed.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	log := c.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	extractor := c.Extractor
	if extractor == nil {
		extractor = NativeExtractor{}
	}
	n := c.Normalizer
	if n == nil {
		n = normalize.Thai()
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := extractor.ExtractText(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrExtractionFailed) {
			err = errors.Wrapf(ErrExtractionFailed, "%s: %v", path, err)
		}
		return "", err
	}
	log.WithFields(logrus.Fields{
		"bytes":    len(text),
		"duration": time.Since(start),
	}).Debug("pdf text extracted")

	return Format(n.Normalize(text)), nil
}
