package segment

import (
	"regexp"
	"strings"

	"github.com/tsawler/lexdoc/normalize"
)

var (
	articleRef = regexp.MustCompile(`ตามมาตรา\s*([๐-๙0-9]+)`)
	clauseRef  = regexp.MustCompile(`ตามข้อ\s*([๐-๙0-9]+)`)
)

const (
	amendedBy  = "แก้ไขเพิ่มเติมโดย"
	repealedBy = "ยกเลิกโดย"
)

// DetectReferences scans the text of each section for reference phrases.
//
// "ตามมาตรา N" and "ตามข้อ N" produce refers_to references when an article
// or clause numbered N exists among sections; unresolved ones are dropped.
// Amendment and repeal phrases are recorded without a target.
func DetectReferences(sections []Section) []Reference {
	var refs []Reference

	for i, s := range sections {
		refs = appendResolved(refs, sections, i, articleRef, Article, "อ้างอิงถึงมาตรา ")
		refs = appendResolved(refs, sections, i, clauseRef, Clause, "อ้างอิงถึงข้อ ")

		if strings.Contains(s.Text, amendedBy) {
			refs = append(refs, Reference{Source: i, Kind: Amends, Description: "มีการแก้ไขเพิ่มเติม"})
		}
		if strings.Contains(s.Text, repealedBy) {
			refs = append(refs, Reference{Source: i, Kind: Repeals, Description: "ถูกยกเลิก"})
		}
	}
	return refs
}

func appendResolved(refs []Reference, sections []Section, source int, re *regexp.Regexp, t Type, prefix string) []Reference {
	for _, m := range re.FindAllStringSubmatch(sections[source].Text, -1) {
		number := normalize.WesternDigits(m[1])
		target, ok := findSection(sections, t, number)
		if !ok {
			continue
		}
		refs = append(refs, Reference{
			Source:      source,
			Target:      &target,
			Kind:        RefersTo,
			Description: prefix + number,
		})
	}
	return refs
}

// findSection returns the index of the first section of type t numbered number.
func findSection(sections []Section, t Type, number string) (int, bool) {
	for i, s := range sections {
		if s.Type == t && s.Number == number {
			return i, true
		}
	}
	return 0, false
}
