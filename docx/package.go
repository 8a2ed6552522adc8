// Package docx converts Office Open XML word-processing packages (.docx)
// into self-contained HTML.
//
// A conversion opens the package, parses the style, numbering and
// relationship parts into per-conversion resolvers, and walks the
// document body in order. No state is shared between conversions.
package docx

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// Errors returned when a package cannot be converted.
var (
	// ErrCorruptArchive is returned when the file is not a readable ZIP container.
	ErrCorruptArchive = errors.New("docx: corrupt archive")
	// ErrMissingRequiredPart is returned when the main document part is absent.
	ErrMissingRequiredPart = errors.New("docx: missing required part")
	// ErrMalformedXML is returned when a required part is not well-formed XML.
	ErrMalformedXML = errors.New("docx: malformed XML")
)

// Part names inside a WordprocessingML package.
const (
	PartDocument      = "word/document.xml"
	PartStyles        = "word/styles.xml"
	PartNumbering     = "word/numbering.xml"
	PartRelationships = "word/_rels/document.xml.rels"
)

// Package gives named access to the parts of an opened DOCX container.
// It owns the underlying archive handle until Close is called.
type Package struct {
	closer io.Closer
	files  map[string]*zip.File
}

// Open opens the DOCX file at filename.
func Open(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptArchive, "opening %s: %v", filename, err)
	}

	p := newPackage(&zr.Reader, zr)
	if err := p.validate(); err != nil {
		zr.Close()
		return nil, err
	}
	return p, nil
}

// NewPackage reads a DOCX container from r. The returned Package does not
// own r; Close is a no-op for the archive itself.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptArchive, "reading archive: %v", err)
	}

	p := newPackage(zr, nil)
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newPackage(zr *zip.Reader, closer io.Closer) *Package {
	p := &Package{
		closer: closer,
		files:  make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}
	return p
}

// validate checks that the main document part exists.
func (p *Package) validate() error {
	if _, ok := p.files[PartDocument]; !ok {
		return errors.Wrapf(ErrMissingRequiredPart, "%s not found", PartDocument)
	}
	return nil
}

// Close releases the archive handle. It is safe to call more than once.
func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// Has reports whether the package contains a part named name.
func (p *Package) Has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// Part returns the bytes of the named part. ok is false when the part is
// missing or cannot be read.
func (p *Package) Part(name string) (data []byte, ok bool) {
	data, err := p.ReadPart(name)
	if err != nil {
		return nil, false
	}
	return data, true
}

// ReadPart returns the bytes of the named part, failing with
// ErrMissingRequiredPart when it is absent and ErrCorruptArchive when its
// compressed data cannot be read.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, errors.Wrapf(ErrMissingRequiredPart, "%s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptArchive, "opening %s: %v", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptArchive, "reading %s: %v", name, err)
	}
	return data, nil
}
