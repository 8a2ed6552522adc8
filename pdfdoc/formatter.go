package pdfdoc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/lexdoc/internal/htmlutil"
)

// Inline styles per line kind.
const (
	baseStyle       = "margin-bottom: 0.1em; line-height: 1.6; clear: both;"
	centeredStyle   = baseStyle + " text-align: center; font-weight: bold; font-size: 18pt; display: block; width: 100%; margin-top: 0.5em;"
	headingStyle    = baseStyle + " font-weight: bold; text-align: left; margin-top: 1.2em; font-size: 16pt;"
	subItemStyle    = baseStyle + " padding-left: 5em; text-align: justify;"
	dottedStyle     = baseStyle + " padding-left: 3em; text-align: justify;"
	indentedStyle   = baseStyle + " padding-left: 3em; text-indent: 2em; text-align: justify;"
	paragraphStyle  = baseStyle + " text-align: justify;"
	blankLineMarkup = `<p style="margin: 0; min-height: 1em;">&nbsp;</p>`
)

// Layout thresholds for centered lines.
const (
	centerIndent   = 12  // leading whitespace runes
	centerMaxRunes = 100 // trimmed length cap
	indentMin      = 2
)

// documentStyle is appended to the root block of converted PDFs.
const documentStyle = "padding:1in;background:#fff;"

// LineKind is the classification of one line of extracted text.
type LineKind int

// Line kinds, in classification priority order after Blank.
const (
	Blank LineKind = iota
	CenteredHeading
	NumberedHeading
	SubItem
	DottedItem
	IndentedParagraph
	Paragraph
)

var lineKindNames = [...]string{
	Blank:             "blank",
	CenteredHeading:   "centered-heading",
	NumberedHeading:   "numbered-heading",
	SubItem:           "sub-item",
	DottedItem:        "dotted-item",
	IndentedParagraph: "indented-paragraph",
	Paragraph:         "paragraph",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return "unknown"
	}
	return lineKindNames[k]
}

// line is one line of input with its leading whitespace measured.
type line struct {
	trimmed string
	indent  int
}

func newLine(raw string) line {
	indent := 0
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			break
		}
		indent++
	}
	return line{trimmed: strings.TrimSpace(raw), indent: indent}
}

const ordinal = `(?:[0-9]+|[๐-๙]+)`

var (
	centeredMarker  = regexp.MustCompile(`^(?:- ร่าง -|ขอบเขตของงาน|โครงการ|ประจำปีงบประมาณ|เรื่อง|TOR|Terms of Reference)`)
	parenthesized   = regexp.MustCompile(`^\(.*\)$`)
	numberedHeading = regexp.MustCompile(`^` + ordinal + `\.(?:[^0-9๐-๙]|$)`)
	headingKeyword  = regexp.MustCompile(`^(?:หมวด|ส่วนที่|บทเฉพาะกาล)`)
	subItem         = regexp.MustCompile(`^\(` + ordinal + `\)`)
	threeLevel      = regexp.MustCompile(`^` + ordinal + `\.` + ordinal + `\.` + ordinal)
	twoLevel        = regexp.MustCompile(`^` + ordinal + `\.` + ordinal + `\s`)
)

// lineRule pairs a predicate with the markup used for matching lines.
type lineRule struct {
	kind  LineKind
	match func(l line) bool
	tag   string
	style string
}

// lineRules are tried in order; the first match wins and Paragraph is the
// fallback.
var lineRules = []lineRule{
	{
		kind: CenteredHeading,
		match: func(l line) bool {
			return centeredMarker.MatchString(l.trimmed) ||
				parenthesized.MatchString(l.trimmed) ||
				(l.indent >= centerIndent && utf8.RuneCountInString(l.trimmed) < centerMaxRunes)
		},
		tag:   "div",
		style: centeredStyle,
	},
	{
		kind: NumberedHeading,
		match: func(l line) bool {
			return numberedHeading.MatchString(l.trimmed) || headingKeyword.MatchString(l.trimmed)
		},
		tag:   "div",
		style: headingStyle,
	},
	{
		kind:  SubItem,
		match: func(l line) bool { return subItem.MatchString(l.trimmed) },
		tag:   "p",
		style: subItemStyle,
	},
	{
		kind:  DottedItem,
		match: func(l line) bool { return threeLevel.MatchString(l.trimmed) },
		tag:   "p",
		style: subItemStyle,
	},
	{
		kind:  DottedItem,
		match: func(l line) bool { return twoLevel.MatchString(l.trimmed) },
		tag:   "p",
		style: dottedStyle,
	},
	{
		kind:  IndentedParagraph,
		match: func(l line) bool { return l.indent >= indentMin },
		tag:   "p",
		style: indentedStyle,
	},
}

var fallbackRule = lineRule{kind: Paragraph, tag: "p", style: paragraphStyle}

func classify(l line) lineRule {
	for _, r := range lineRules {
		if r.match(l) {
			return r
		}
	}
	return fallbackRule
}

// ClassifyLine returns the kind of a single raw line.
func ClassifyLine(raw string) LineKind {
	l := newLine(raw)
	if l.trimmed == "" {
		return Blank
	}
	return classify(l).kind
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n")

// Format renders extracted text as an HTML document. text should already
// be normalized. Every input line yields exactly one block and blank lines
// become empty paragraphs. Trailing line breaks are dropped.
func Format(text string) string {
	text = strings.TrimRight(lineBreaks.Replace(text), "\n")
	lines := strings.Split(text, "\n")

	var sb strings.Builder
	for i, raw := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeLine(&sb, newLine(raw))
	}
	return htmlutil.Document(sb.String(), documentStyle, "")
}

func writeLine(sb *strings.Builder, l line) {
	if l.trimmed == "" {
		sb.WriteString(blankLineMarkup)
		return
	}

	r := classify(l)
	sb.WriteByte('<')
	sb.WriteString(r.tag)
	sb.WriteString(` style="`)
	sb.WriteString(r.style)
	sb.WriteString(`">`)
	sb.WriteString(htmlutil.PreserveSpaces(htmlutil.Escape(l.trimmed)))
	sb.WriteString("</")
	sb.WriteString(r.tag)
	sb.WriteByte('>')
}
