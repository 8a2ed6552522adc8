package htmlutil

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// Escape escapes text for inclusion in element content or attribute values.
func Escape(s string) string {
	return html.EscapeString(s)
}

var (
	underlineTag  = regexp.MustCompile(`(?i)</?u(?:\s[^>]*)?>`)
	underlineDecl = regexp.MustCompile(`(?i)text-decoration(?:-line)?\s*:\s*underline[^;"']*;?`)
)

// StripUnderline removes <u> tags and CSS underline declarations from markup.
// Underline formatting is never carried into converted documents.
func StripUnderline(markup string) string {
	markup = underlineTag.ReplaceAllString(markup, "")
	return underlineDecl.ReplaceAllString(markup, "")
}

var spaceRun = regexp.MustCompile(` {2,}`)

// PreserveSpaces replaces every run of two or more spaces with the same
// number of &nbsp; entities.
func PreserveSpaces(s string) string {
	return spaceRun.ReplaceAllStringFunc(s, func(run string) string {
		return strings.Repeat("&nbsp;", len(run))
	})
}
