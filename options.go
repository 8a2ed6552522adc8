package lexdoc

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/lexdoc/docx"
	"github.com/tsawler/lexdoc/metrics"
	"github.com/tsawler/lexdoc/normalize"
	"github.com/tsawler/lexdoc/pdfdoc"
)

// DefaultTimeout bounds PDF text extraction unless WithTimeout says otherwise.
const DefaultTimeout = 60 * time.Second

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	timeout    time.Duration
	extractor  pdfdoc.TextExtractor
	normalizer normalize.Normalizer
	images     docx.ImageRecognizer
	logger     logrus.FieldLogger
	metrics    metrics.Metrics
}

// defaultOptions returns the default conversion options. Nil collaborators
// are filled in by the converters themselves.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		timeout:    DefaultTimeout,
		extractor:  nil, // pdfdoc.NativeExtractor
		normalizer: nil, // normalize.Thai()
		logger:     nil, // logrus.StandardLogger()
	}
}

// clone copies the options. Every field is a value or a shared,
// read-only collaborator.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}

func (o ConvertOptions) log() logrus.FieldLogger {
	if o.logger == nil {
		return logrus.StandardLogger()
	}
	return o.logger
}
