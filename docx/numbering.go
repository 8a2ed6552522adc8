package docx

import "strconv"

// ListKind is the HTML list flavour a numbering level renders as.
type ListKind int

const (
	// Ordered renders as <ol>.
	Ordered ListKind = iota
	// Unordered renders as <ul>.
	Unordered
)

// Tag returns the HTML element name for the kind.
func (k ListKind) Tag() string {
	if k == Unordered {
		return "ul"
	}
	return "ol"
}

// NumberingDefinition describes one level of a numbering definition.
type NumberingDefinition struct {
	Kind      ListKind
	Format    string // w:numFmt, e.g. decimal, bullet, thaiNumbers
	LevelText string // w:lvlText, e.g. "%1."
	Start     int
}

// listStyleType maps a numbering format onto a CSS list-style-type.
func (d NumberingDefinition) listStyleType() string {
	switch d.Format {
	case "decimal", "decimalZero":
		return "decimal"
	case "lowerLetter":
		return "lower-alpha"
	case "upperLetter":
		return "upper-alpha"
	case "lowerRoman":
		return "lower-roman"
	case "upperRoman":
		return "upper-roman"
	case "thaiNumbers", "thaiCounting":
		return "thai"
	default:
		return ""
	}
}

// NumberingResolver flattens the abstract numbering table and the
// numId bindings into a single (numId, level) lookup.
type NumberingResolver struct {
	defs map[string]map[int]NumberingDefinition
}

// NewNumberingResolver builds the lookup from parsed numbering.xml.
// A nil argument yields an empty resolver.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{defs: make(map[string]map[int]NumberingDefinition)}
	if numbering == nil {
		return nr
	}

	abstract := make(map[string]map[int]NumberingDefinition, len(numbering.AbstractNums))
	for _, an := range numbering.AbstractNums {
		levels := make(map[int]NumberingDefinition, len(an.Levels))
		for _, lvl := range an.Levels {
			ilvl, err := strconv.Atoi(lvl.ILvl)
			if err != nil {
				continue
			}
			levels[ilvl] = parseLevel(lvl)
		}
		abstract[an.AbstractNumID] = levels
	}

	for _, num := range numbering.Nums {
		levels, ok := abstract[num.AbstractNumID.Val]
		if !ok {
			continue
		}

		bound := make(map[int]NumberingDefinition, len(levels))
		for ilvl, def := range levels {
			bound[ilvl] = def
		}
		for _, o := range num.Overrides {
			ilvl, err := strconv.Atoi(o.ILvl)
			if err != nil || !o.StartOverride.set() {
				continue
			}
			if start, err := strconv.Atoi(o.StartOverride.Val); err == nil {
				def := bound[ilvl]
				def.Start = start
				bound[ilvl] = def
			}
		}
		nr.defs[num.NumID] = bound
	}
	return nr
}

func parseLevel(lvl lvlXML) NumberingDefinition {
	def := NumberingDefinition{
		Kind:      Ordered,
		Format:    lvl.NumFmt.Val,
		LevelText: lvl.LvlText.Val,
		Start:     1,
	}
	if def.Format == "" {
		def.Format = "decimal"
	}
	if def.Format == "bullet" {
		def.Kind = Unordered
	}
	if start, err := strconv.Atoi(lvl.Start.Val); err == nil {
		def.Start = start
	}
	return def
}

// Lookup returns the definition for numID at level.
func (nr *NumberingResolver) Lookup(numID string, level int) (NumberingDefinition, bool) {
	levels, ok := nr.defs[numID]
	if !ok {
		return NumberingDefinition{}, false
	}
	def, ok := levels[level]
	return def, ok
}
