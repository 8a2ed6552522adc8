package lexdoc

import (
	"os"

	"github.com/pkg/errors"

	"github.com/tsawler/lexdoc/docx"
	"github.com/tsawler/lexdoc/pdfdoc"
)

var (
	// ErrFileNotFound is returned when the input file does not exist.
	ErrFileNotFound = errors.New("lexdoc: file not found")
	// ErrUnsupportedFormat is returned for files that are neither DOCX nor PDF.
	ErrUnsupportedFormat = errors.New("lexdoc: unsupported format")
)

// Errors from the underlying converters, re-exported for errors.Is checks.
var (
	ErrCorruptArchive      = docx.ErrCorruptArchive
	ErrMissingRequiredPart = docx.ErrMissingRequiredPart
	ErrMalformedXML        = docx.ErrMalformedXML
	ErrExtractionFailed    = pdfdoc.ErrExtractionFailed
)

// ErrorKind groups errors by how a caller should react to them.
type ErrorKind string

const (
	// InputError means the file is missing, has an unsupported extension
	// or is not a readable container. Retrying will not help.
	InputError ErrorKind = "input"
	// StructuralParseError means a required document part is absent or
	// malformed. No partial output is produced.
	StructuralParseError ErrorKind = "structural_parse"
	// ExternalToolError means text extraction failed or timed out. The
	// caller may retry the conversion.
	ExternalToolError ErrorKind = "external_tool"
	// UnknownError covers everything else.
	UnknownError ErrorKind = "unknown"
)

// KindOf classifies err. It returns the empty kind for a nil error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFileNotFound),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrCorruptArchive):
		return InputError
	case errors.Is(err, ErrMissingRequiredPart),
		errors.Is(err, ErrMalformedXML):
		return StructuralParseError
	case errors.Is(err, ErrExtractionFailed):
		return ExternalToolError
	default:
		return UnknownError
	}
}
