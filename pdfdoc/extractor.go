// Package pdfdoc converts PDF documents to HTML from their extracted text.
//
// The PDF itself is read by a TextExtractor. Its plain-text output is
// repaired by a normalizer and classified line by line into headings,
// numbered items and paragraphs, each rendered with a fixed inline style.
package pdfdoc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ErrExtractionFailed is returned when text could not be extracted from a
// PDF, including when extraction ran past its deadline.
var ErrExtractionFailed = errors.New("pdfdoc: text extraction failed")

// TextExtractor extracts the plain text of a PDF file.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// NativeExtractor reads the text layer with a pure Go PDF parser. Pages
// are separated by form feeds.
type NativeExtractor struct{}

type extractResult struct {
	text string
	err  error
}

// ExtractText implements TextExtractor. The parser cannot be interrupted,
// so on cancellation the parse is abandoned and finishes in the background.
func (NativeExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	done := make(chan extractResult, 1)
	go func() {
		text, err := readPlainText(path)
		done <- extractResult{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.Wrapf(ErrExtractionFailed, "%s: %v", path, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", errors.Wrapf(ErrExtractionFailed, "%s: %v", path, res.err)
		}
		return res.text, nil
	}
}

func readPlainText(path string) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("parser panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		content, err := p.GetPlainText(fonts)
		if err != nil {
			return "", errors.Wrapf(err, "page %d", i)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\f"), nil
}

// DefaultCommand is the external extractor used by CommandExtractor.
const DefaultCommand = "pdftotext"

// CommandExtractor runs pdftotext in layout mode and reads its standard
// output. The process is killed when the context ends.
type CommandExtractor struct {
	// Path is the pdftotext executable. Defaults to DefaultCommand,
	// looked up in PATH.
	Path string
}

// ExtractText implements TextExtractor.
func (c CommandExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	bin := c.Path
	if bin == "" {
		bin = DefaultCommand
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-layout", "-enc", "UTF-8", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Wrapf(ErrExtractionFailed, "%s: %v", bin, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Wrapf(ErrExtractionFailed, "%s: %s", bin, msg)
	}
	return stdout.String(), nil
}
