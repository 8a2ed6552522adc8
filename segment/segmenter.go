package segment

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/tsawler/lexdoc/internal/htmlutil"
)

// Segmenter splits HTML into sections. The zero value is ready to use and
// logs to logrus.StandardLogger().
//
// A Segmenter carries no state between calls and may be shared.
type Segmenter struct {
	Logger logrus.FieldLogger
}

// Segment splits doc with a default Segmenter.
func Segment(doc string) (*Result, error) {
	return (&Segmenter{}).Segment(doc)
}

// Segment walks the element tree of doc and returns the detected sections
// in document order, followed by the references found between them.
func (s *Segmenter) Segment(doc string) (*Result, error) {
	log := s.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}

	w := &walker{log: log}
	w.walk(root)

	res := &Result{Sections: w.sections}
	res.References = DetectReferences(res.Sections)

	log.WithFields(logrus.Fields{
		"sections":   len(res.Sections),
		"references": len(res.References),
	}).Debug("segmentation complete")
	return res, nil
}

// walker holds the state of one segmentation pass.
type walker struct {
	log      logrus.FieldLogger
	sections []Section
	chapter  *int
	part     *int
}

// walk visits the children of n. Matched elements become sections and are
// not descended into; unmatched elements are searched recursively.
func (w *walker) walk(n *html.Node) {
	container := isContainer(n)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			// Loose text only counts at the top level of the document.
			if container {
				w.visit(c)
			}
		case html.ElementNode:
			if skipElement(c) {
				continue
			}
			if isContainer(c) {
				w.walk(c)
				continue
			}
			if !w.visit(c) {
				w.walk(c)
			}
		}
	}
}

// visit classifies n and records a section when it matches.
func (w *walker) visit(n *html.Node) bool {
	text := foldSpaces(htmlutil.TextContent(n))
	if text == "" {
		return false
	}

	h, name, ok := classify(text)
	if !ok {
		return false
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		w.log.WithError(err).Warn("rendering section markup")
	}

	w.add(h, buf.String(), text)
	w.log.WithFields(logrus.Fields{
		"rule":   name,
		"type":   h.Type,
		"number": h.Number,
	}).Debug("section detected")
	return true
}

// add appends a section and applies the parent rules: an article belongs
// to the open part, else the open chapter; a part belongs to the open
// chapter. A new chapter closes the open part.
func (w *walker) add(h Heading, markup, text string) {
	idx := len(w.sections)

	var parent *int
	switch h.Type {
	case Article:
		if w.part != nil {
			parent = w.part
		} else if w.chapter != nil {
			parent = w.chapter
		}
	case Part:
		parent = w.chapter
	}

	w.sections = append(w.sections, Section{
		Index:     idx,
		Type:      h.Type,
		Number:    h.Number,
		Label:     h.Label,
		HTML:      markup,
		Text:      text,
		SortOrder: idx,
		Parent:    copyIndex(parent),
	})

	switch h.Type {
	case Chapter:
		w.chapter = &idx
		w.part = nil
	case Part:
		w.part = &idx
	}
}

func copyIndex(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// isContainer reports whether n only groups sections: the document
// skeleton and the root block of converted documents.
func isContainer(n *html.Node) bool {
	switch n.Type {
	case html.DocumentNode:
		return true
	case html.ElementNode:
	default:
		return false
	}
	switch n.Data {
	case "html", "body":
		return true
	}
	return hasClass(n, htmlutil.RootClass)
}

func skipElement(n *html.Node) bool {
	switch n.Data {
	case "head", "style", "script", "template":
		return true
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
