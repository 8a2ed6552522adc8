package lexdoc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/lexdoc/docx"
	"github.com/tsawler/lexdoc/format"
	"github.com/tsawler/lexdoc/internal/htmlutil"
	"github.com/tsawler/lexdoc/metrics"
	"github.com/tsawler/lexdoc/normalize"
	"github.com/tsawler/lexdoc/pdfdoc"
	"github.com/tsawler/lexdoc/segment"
)

// Converter provides a fluent interface for converting one document.
// Configuration methods return a new Converter and leave the receiver
// unchanged, so a configured Converter can be shared.
type Converter struct {
	path    string
	options ConvertOptions
}

// Result is a converted document together with its segmentation.
type Result struct {
	HTML       string
	Sections   []segment.Section
	References []segment.Reference
}

// clone creates a copy of the Converter for immutable chaining.
func (c *Converter) clone() *Converter {
	return &Converter{
		path:    c.path,
		options: c.options.clone(),
	}
}

// WithTimeout bounds PDF text extraction. A zero or negative value
// disables the bound.
func (c *Converter) WithTimeout(d time.Duration) *Converter {
	nc := c.clone()
	nc.options.timeout = d
	return nc
}

// WithExtractor sets the PDF text extractor.
//
// Example:
//
//	lexdoc.Open("scan.pdf").WithExtractor(pdfdoc.CommandExtractor{})
func (c *Converter) WithExtractor(e pdfdoc.TextExtractor) *Converter {
	nc := c.clone()
	nc.options.extractor = e
	return nc
}

// WithNormalizer replaces the text repair pipeline. Pass
// normalize.Identity to keep extracted text as is.
func (c *Converter) WithNormalizer(n normalize.Normalizer) *Converter {
	nc := c.clone()
	nc.options.normalizer = n
	return nc
}

// WithLogger sets the logger. Each conversion adds conversion_id, path
// and format fields.
func (c *Converter) WithLogger(l logrus.FieldLogger) *Converter {
	nc := c.clone()
	nc.options.logger = l
	return nc
}

// WithMetrics records conversions and segmentation counts in m.
func (c *Converter) WithMetrics(m metrics.Metrics) *Converter {
	nc := c.clone()
	nc.options.metrics = m
	return nc
}

// WithImageText supplies alt text for DOCX images that carry none,
// typically an *ocr.Client.
func (c *Converter) WithImageText(r docx.ImageRecognizer) *Converter {
	nc := c.clone()
	nc.options.images = r
	return nc
}

// Format returns the format chosen from the file extension. HTML files
// are taken to be the output of an earlier conversion and pass through
// with underline markup removed.
func (c *Converter) Format() format.Format {
	return format.Detect(c.path)
}

// HTML converts the document into a self-contained HTML document.
func (c *Converter) HTML(ctx context.Context) (string, error) {
	html, _, err := c.convert(ctx)
	return html, err
}

// Sections converts the document and segments the result.
func (c *Converter) Sections(ctx context.Context) (*Result, error) {
	html, log, err := c.convert(ctx)
	if err != nil {
		return nil, err
	}

	seg, err := (&segment.Segmenter{Logger: log}).Segment(html)
	if err != nil {
		log.WithError(err).Error("segmentation failed")
		return nil, err
	}

	if m := c.options.metrics; m != nil {
		for _, t := range []segment.Type{segment.Chapter, segment.Part, segment.Article, segment.Clause, segment.SubClause, segment.Schedule} {
			m.ObserveSections(string(t), seg.Count(t))
		}
		counts := make(map[segment.ReferenceKind]int)
		for _, r := range seg.References {
			counts[r.Kind]++
		}
		for kind, n := range counts {
			m.ObserveReferences(string(kind), n)
		}
	}

	return &Result{
		HTML:       html,
		Sections:   seg.Sections,
		References: seg.References,
	}, nil
}

// convert runs the format-specific converter and returns the logger
// carrying the conversion fields.
func (c *Converter) convert(ctx context.Context) (string, logrus.FieldLogger, error) {
	log := c.options.log().WithFields(logrus.Fields{
		"conversion_id": uuid.NewString(),
		"path":          c.path,
	})

	if _, err := os.Stat(c.path); err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrFileNotFound, "%s", c.path)
		}
		log.WithError(err).Error("cannot open document")
		return "", log, err
	}

	f := format.Detect(c.path)
	log = log.WithField("format", f.String())
	if detected, err := format.DetectFile(c.path); err == nil && detected != format.Unknown && detected != f {
		log.WithField("content_format", detected.String()).Warn("file content does not match extension")
	}

	start := time.Now()
	var (
		html string
		err  error
	)
	switch f {
	case format.DOCX:
		html, err = docx.Convert(c.path, docx.Options{
			Normalizer: c.options.normalizer,
			Images:     c.options.images,
			Logger:     log,
		})
	case format.PDF:
		pc := &pdfdoc.Converter{
			Extractor:  c.options.extractor,
			Normalizer: c.options.normalizer,
			Timeout:    c.options.timeout,
			Logger:     log,
		}
		html, err = pc.Convert(ctx, c.path)
	case format.HTML:
		// Output of an earlier conversion. Edited copies may have picked up
		// underlines, which converted documents never carry.
		var data []byte
		data, err = os.ReadFile(c.path)
		html = htmlutil.StripUnderline(string(data))
	default:
		err = errors.Wrapf(ErrUnsupportedFormat, "extension %q", strings.ToLower(filepath.Ext(c.path)))
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		log.WithError(err).WithField("kind", KindOf(err)).Error("conversion failed")
		html = ""
	} else {
		log.WithField("bytes", len(html)).Debug("conversion finished")
	}
	if m := c.options.metrics; m != nil {
		m.ObserveConversion(strings.ToLower(f.String()), outcome, time.Since(start).Seconds())
	}

	return html, log, err
}
