package docx

import (
	"strconv"
	"strings"
)

// maxStyleDepth bounds every based-on walk. A chain longer than this, or a
// cyclic one, resolves to no value.
const maxStyleDepth = 8

// Alignment is a resolved paragraph alignment.
type Alignment string

// Paragraph alignments. AlignNone means no value was set.
const (
	AlignNone    Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// parseAlignment maps a w:jc value onto an Alignment.
func parseAlignment(val string) Alignment {
	switch val {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "left", "start":
		return AlignLeft
	case "both", "justify", "distribute", "thaiDistribute", "lowKashida", "mediumKashida", "highKashida":
		return AlignJustify
	default:
		return AlignNone
	}
}

// Indentation is paragraph indentation in points.
type Indentation struct {
	Left      int
	Hanging   int
	FirstLine int
}

// IsZero reports whether no indentation is set.
func (i Indentation) IsZero() bool {
	return i.Left == 0 && i.Hanging == 0 && i.FirstLine == 0
}

// parseIndentation converts a w:ind element from twips to points.
func parseIndentation(ind indentXML) Indentation {
	left := ind.Left
	if left == "" {
		left = ind.Start
	}
	return Indentation{
		Left:      parseTwips(left),
		Hanging:   parseTwips(ind.Hanging),
		FirstLine: parseTwips(ind.FirstLine),
	}
}

// parseTwips converts a twips string to whole points (1pt = 20 twips).
func parseTwips(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		v = int(f)
	}
	return v / 20
}

// ParagraphStyle is one entry of the paragraph style table.
type ParagraphStyle struct {
	ID           string
	Name         string
	BasedOn      string
	Alignment    Alignment
	Indent       Indentation
	Bold         *bool
	OutlineLevel int // -1 when not set
}

// characterStyle carries the run toggles a character style can set.
type characterStyle struct {
	basedOn string
	bold    *bool
}

// StyleResolver resolves inherited paragraph and character properties by
// walking based-on chains. It is built once per conversion and read-only
// afterwards.
type StyleResolver struct {
	paragraph map[string]ParagraphStyle
	character map[string]characterStyle
}

// NewStyleResolver builds the style tables from parsed styles. A nil
// argument yields a resolver that resolves nothing.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		paragraph: make(map[string]ParagraphStyle),
		character: make(map[string]characterStyle),
	}
	if styles == nil {
		return sr
	}

	for _, def := range styles.Styles {
		switch def.Type {
		case "paragraph":
			ps := ParagraphStyle{
				ID:           def.StyleID,
				Name:         def.Name.Val,
				BasedOn:      def.BasedOn.Val,
				Alignment:    parseAlignment(def.PPr.Justification.Val),
				Indent:       parseIndentation(def.PPr.Indent),
				Bold:         toggle(def.RPr.Bold, def.RPr.BoldCS),
				OutlineLevel: -1,
			}
			if def.PPr.OutlineLvl.set() {
				if lvl, err := strconv.Atoi(def.PPr.OutlineLvl.Val); err == nil && lvl < 9 {
					ps.OutlineLevel = lvl
				}
			}
			sr.paragraph[def.StyleID] = ps
		case "character":
			sr.character[def.StyleID] = characterStyle{
				basedOn: def.BasedOn.Val,
				bold:    toggle(def.RPr.Bold, def.RPr.BoldCS),
			}
		}
	}
	return sr
}

// toggle returns nil when neither property is present, else whether any is on.
func toggle(props ...boolXML) *bool {
	var (
		seen bool
		on   bool
	)
	for _, p := range props {
		if p.set() {
			seen = true
			on = on || p.on()
		}
	}
	if !seen {
		return nil
	}
	return &on
}

// Style returns the paragraph style with the given id.
func (sr *StyleResolver) Style(styleID string) (ParagraphStyle, bool) {
	ps, ok := sr.paragraph[styleID]
	return ps, ok
}

// ResolveAlignment returns the first alignment set along the based-on
// chain of styleID.
func (sr *StyleResolver) ResolveAlignment(styleID string) (Alignment, bool) {
	for id, depth := styleID, 0; id != "" && depth <= maxStyleDepth; depth++ {
		ps, ok := sr.paragraph[id]
		if !ok {
			break
		}
		if ps.Alignment != AlignNone {
			return ps.Alignment, true
		}
		id = ps.BasedOn
	}
	return AlignNone, false
}

// ResolveIndentation returns the first non-zero indentation along the
// based-on chain of styleID.
func (sr *StyleResolver) ResolveIndentation(styleID string) (Indentation, bool) {
	for id, depth := styleID, 0; id != "" && depth <= maxStyleDepth; depth++ {
		ps, ok := sr.paragraph[id]
		if !ok {
			break
		}
		if !ps.Indent.IsZero() {
			return ps.Indent, true
		}
		id = ps.BasedOn
	}
	return Indentation{}, false
}

// ResolveBold reports whether runs in a paragraph of styleID are bold by default.
func (sr *StyleResolver) ResolveBold(styleID string) bool {
	for id, depth := styleID, 0; id != "" && depth <= maxStyleDepth; depth++ {
		ps, ok := sr.paragraph[id]
		if !ok {
			break
		}
		if ps.Bold != nil {
			return *ps.Bold
		}
		id = ps.BasedOn
	}
	return false
}

// resolveCharacterBold returns the bold toggle set by a character style chain.
func (sr *StyleResolver) resolveCharacterBold(styleID string) *bool {
	for id, depth := styleID, 0; id != "" && depth <= maxStyleDepth; depth++ {
		cs, ok := sr.character[id]
		if !ok {
			break
		}
		if cs.bold != nil {
			return cs.bold
		}
		id = cs.basedOn
	}
	return nil
}

// IsHeading reports whether styleID, or a style it is based on, is a
// heading: it carries an outline level or uses a built-in heading name.
func (sr *StyleResolver) IsHeading(styleID string) bool {
	for id, depth := styleID, 0; id != "" && depth <= maxStyleDepth; depth++ {
		if isBuiltInHeading(id) {
			return true
		}
		ps, ok := sr.paragraph[id]
		if !ok {
			break
		}
		if ps.OutlineLevel >= 0 || isBuiltInHeading(ps.Name) {
			return true
		}
		id = ps.BasedOn
	}
	return false
}

// isBuiltInHeading matches Word's built-in heading and title names.
func isBuiltInHeading(name string) bool {
	n := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if n == "title" {
		return true
	}
	if !strings.HasPrefix(n, "heading") {
		return false
	}
	lvl, err := strconv.Atoi(strings.TrimPrefix(n, "heading"))
	return err == nil && lvl >= 1 && lvl <= 9
}
