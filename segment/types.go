// Package segment splits converted legal documents into a typed section
// hierarchy and detects cross references between sections.
//
// Segmentation works on the HTML produced by the docx and pdfdoc
// converters. Block elements whose text opens with a recognised heading
// (หมวด, ส่วนที่, มาตรา, ข้อ, numbered and parenthesised items) become
// sections; their markup is kept whole and not searched further.
package segment

// Type classifies a section.
type Type string

// Section types, from the broadest to the most specific.
const (
	Chapter   Type = "chapter"
	Part      Type = "part"
	Article   Type = "section"
	Clause    Type = "clause"
	SubClause Type = "sub_clause"
	Schedule  Type = "schedule"
)

// Section is one detected heading and the block that carries it.
type Section struct {
	// Index is the temporary index of the section within one result.
	// Parent and Reference indices refer to it.
	Index     int
	Type      Type
	Number    string // Western digits, e.g. "1" or "2.3"
	Label     string
	HTML      string
	Text      string
	SortOrder int
	Parent    *int
}

// ReferenceKind classifies a cross reference.
type ReferenceKind string

// Reference kinds.
const (
	RefersTo ReferenceKind = "refers_to"
	Amends   ReferenceKind = "amends"
	Repeals  ReferenceKind = "repeals"
)

// Reference links a section to another section, or records an amendment
// or repeal whose target lies outside the document.
type Reference struct {
	Source      int
	Target      *int
	Kind        ReferenceKind
	Description string
}

// Result is the output of a segmentation pass.
type Result struct {
	Sections   []Section
	References []Reference
}

// Count returns the number of sections of type t.
func (r *Result) Count(t Type) int {
	n := 0
	for _, s := range r.Sections {
		if s.Type == t {
			n++
		}
	}
	return n
}
