package segment

import (
	"regexp"
	"strings"

	"github.com/tsawler/lexdoc/normalize"
)

// Heading is a classified heading line.
type Heading struct {
	Type   Type
	Number string
	Label  string
}

// rule is one heading grammar. build turns the submatches into a Heading.
type rule struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) Heading
}

func numbered(t Type) func(m []string) Heading {
	return func(m []string) Heading {
		return Heading{Type: t, Number: normalize.WesternDigits(m[1]), Label: strings.TrimSpace(m[2])}
	}
}

// grammar is evaluated in order and the first match wins.
//
//  1. chapter      หมวด [ที่] N
//  2. part         ส่วนที่ N
//  3. article      มาตรา N
//  4. clause       ข้อ N
//  5. clause       N. text (no label)
//  6. sub-clause   (N) or (ก)
//  7. sub-clause   N.M text
//  8. schedule     บทเฉพาะกาล
var grammar = []rule{
	{
		name:  "chapter",
		re:    regexp.MustCompile(`^หมวด\s*(?:ที่\s*)?([๐-๙0-9]+)\s*(.*)`),
		build: numbered(Chapter),
	},
	{
		name:  "part",
		re:    regexp.MustCompile(`^ส่วนที่\s*([๐-๙0-9]+)\s*(.*)`),
		build: numbered(Part),
	},
	{
		name:  "article",
		re:    regexp.MustCompile(`^มาตรา\s*([๐-๙0-9]+)\s*(.*)`),
		build: numbered(Article),
	},
	{
		name:  "clause",
		re:    regexp.MustCompile(`^ข้อ\s*([๐-๙0-9]+)\s*(.*)`),
		build: numbered(Clause),
	},
	{
		name: "numbered-clause",
		re:   regexp.MustCompile(`^([๐-๙0-9]+)\.\s+(.+)`),
		build: func(m []string) Heading {
			return Heading{Type: Clause, Number: normalize.WesternDigits(m[1])}
		},
	},
	{
		name:  "parenthesized",
		re:    regexp.MustCompile(`^\(([๐-๙0-9ก-ฮ]+)\)\s*(.*)`),
		build: numbered(SubClause),
	},
	{
		name: "dotted",
		re:   regexp.MustCompile(`^([๐-๙0-9]+)\.([๐-๙0-9]+)\s+(.*)`),
		build: func(m []string) Heading {
			return Heading{
				Type:   SubClause,
				Number: normalize.WesternDigits(m[1] + "." + m[2]),
				Label:  strings.TrimSpace(m[3]),
			}
		},
	},
	{
		name: "transitional",
		re:   regexp.MustCompile(`^บทเฉพาะกาล`),
		build: func([]string) Heading {
			return Heading{Type: Schedule, Number: "บทเฉพาะกาล"}
		},
	},
}

// Classify matches text against the heading grammar. Leading and
// trailing whitespace is ignored and non-breaking spaces count as spaces.
func Classify(text string) (Heading, bool) {
	h, _, ok := classify(foldSpaces(text))
	return h, ok
}

// classify also returns the name of the matching rule.
func classify(text string) (Heading, string, bool) {
	for _, r := range grammar {
		if m := r.re.FindStringSubmatch(text); m != nil {
			return r.build(m), r.name, true
		}
	}
	return Heading{}, "", false
}

var nbsp = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")

// foldSpaces turns non-breaking spaces into plain spaces and trims.
func foldSpaces(s string) string {
	return strings.TrimSpace(nbsp.Replace(s))
}
