package docx

import (
	"bytes"
	"encoding/xml"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/lexdoc/internal/htmlutil"
	"github.com/tsawler/lexdoc/normalize"
)

// Options configures a DOCX conversion.
type Options struct {
	// Normalizer repairs extracted text. Defaults to normalize.Thai().
	Normalizer normalize.Normalizer
	// Images, when set, supplies alt text for images that have none.
	Images ImageRecognizer
	// Logger receives diagnostics. Defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
}

func (o Options) normalizer() normalize.Normalizer {
	if o.Normalizer == nil {
		return normalize.Thai()
	}
	return o.Normalizer
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Convert converts the DOCX file at filename into a self-contained HTML
// document. The archive is closed before Convert returns.
func Convert(filename string, opts Options) (string, error) {
	pkg, err := Open(filename)
	if err != nil {
		return "", err
	}
	defer pkg.Close()

	return ConvertPackage(pkg, opts)
}

// ConvertPackage converts an opened package. The caller keeps ownership
// of pkg.
func ConvertPackage(pkg *Package, opts Options) (string, error) {
	log := opts.logger()

	data, err := pkg.ReadPart(PartDocument)
	if err != nil {
		return "", err
	}
	var doc documentXML
	if err := decodeXML(data, &doc); err != nil {
		return "", errors.Wrapf(ErrMalformedXML, "%s: %v", PartDocument, err)
	}

	r := &renderer{
		styles:     NewStyleResolver(parseOptional[stylesXML](pkg, PartStyles, log)),
		numbering:  NewNumberingResolver(parseOptional[numberingXML](pkg, PartNumbering, log)),
		rels:       NewRelationshipResolver(pkg, parseOptional[relationshipsXML](pkg, PartRelationships, log)),
		normalizer: opts.normalizer(),
		images:     opts.Images,
		log:        log,
	}

	body := r.renderBody(doc.Body.Blocks)
	log.WithField("blocks", len(doc.Body.Blocks)).Debug("docx body rendered")

	return htmlutil.Document(body, "", htmlutil.DocumentCSS), nil
}

// parseOptional decodes an optional part. A missing or malformed part
// yields nil; malformed parts are logged and otherwise ignored.
func parseOptional[T any](pkg *Package, name string, log logrus.FieldLogger) *T {
	data, ok := pkg.Part(name)
	if !ok {
		return nil
	}
	v := new(T)
	if err := decodeXML(data, v); err != nil {
		log.WithError(err).WithField("part", name).Warn("ignoring malformed optional part")
		return nil
	}
	return v
}

// decodeXML decodes a package part, honouring non-UTF-8 declarations.
func decodeXML(data []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	return d.Decode(v)
}
