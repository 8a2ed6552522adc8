package docx

import (
	"strconv"
	"strings"
)

// maxListLevel is the deepest indent level Word supports.
const maxListLevel = 8

// listFrame is one open list in a ListStack.
type listFrame struct {
	kind     ListKind
	level    int
	numID    string
	start    int
	counter  int
	itemOpen bool
}

// ListItem identifies the list a numbered paragraph belongs to.
type ListItem struct {
	NumID string
	Level int
	Def   NumberingDefinition
}

// ListStack tracks the lists open at each indent level while a body is
// rendered. Frame i always has level i. The zero value is an empty stack.
//
// A list item stays open until the next item at its level, a shallower
// item, or Close, so deeper lists nest inside their parent item.
type ListStack struct {
	frames []listFrame
	lookup func(numID string, level int) (NumberingDefinition, bool)
}

// NewListStack returns a stack that consults lookup for the definitions
// of intermediate levels opened implicitly.
func NewListStack(lookup func(numID string, level int) (NumberingDefinition, bool)) *ListStack {
	return &ListStack{lookup: lookup}
}

// Depth returns the number of open frames.
func (s *ListStack) Depth() int {
	return len(s.frames)
}

// Counter returns the item count of the innermost frame.
func (s *ListStack) Counter() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1].counter
}

// Item synchronizes the stack to the item's level and returns the markup
// that opens the item, preceded by any list open and close tags needed.
// liStyle is the inline style of the <li> element.
func (s *ListStack) Item(item ListItem, liStyle string) string {
	var sb strings.Builder

	level := item.Level
	if level < 0 {
		level = 0
	}
	if level > maxListLevel {
		level = maxListLevel
	}

	for len(s.frames) > level+1 {
		s.pop(&sb)
	}
	if len(s.frames) == level+1 && s.frames[level].kind != item.Def.Kind {
		s.pop(&sb)
	}
	for len(s.frames) <= level {
		l := len(s.frames)
		def := item.Def
		if l < level {
			def = s.intermediate(item.NumID, l)
		}
		s.push(&sb, listFrame{kind: def.Kind, level: l, numID: item.NumID, start: def.Start}, def)
		if l < level {
			// Placeholder item so the deeper list nests inside an <li>.
			sb.WriteString(`<li style="list-style-type:none">`)
			s.frames[l].itemOpen = true
		}
	}

	top := &s.frames[len(s.frames)-1]
	if top.itemOpen {
		sb.WriteString("</li>")
	}
	top.counter++
	top.itemOpen = true

	sb.WriteString(`<li style="`)
	sb.WriteString(liStyle)
	sb.WriteString(`">`)
	return sb.String()
}

// Close returns the markup closing every open item and frame.
func (s *ListStack) Close() string {
	if len(s.frames) == 0 {
		return ""
	}
	var sb strings.Builder
	for len(s.frames) > 0 {
		s.pop(&sb)
	}
	return sb.String()
}

func (s *ListStack) intermediate(numID string, level int) NumberingDefinition {
	if s.lookup != nil {
		if def, ok := s.lookup(numID, level); ok {
			return def
		}
	}
	return NumberingDefinition{Kind: Ordered, Format: "decimal", Start: 1}
}

func (s *ListStack) push(sb *strings.Builder, f listFrame, def NumberingDefinition) {
	s.frames = append(s.frames, f)

	sb.WriteByte('<')
	sb.WriteString(f.kind.Tag())
	sb.WriteString(` style="`)
	sb.WriteString(listStyle(f.level, def))
	sb.WriteByte('"')
	if f.kind == Ordered && f.start != 1 {
		sb.WriteString(` start="`)
		sb.WriteString(strconv.Itoa(f.start))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
}

func (s *ListStack) pop(sb *strings.Builder) {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	if f.itemOpen {
		sb.WriteString("</li>")
	}
	sb.WriteString("</")
	sb.WriteString(f.kind.Tag())
	sb.WriteByte('>')
}

// listStyle returns the inline style of a list element at level.
func listStyle(level int, def NumberingDefinition) string {
	style := "margin:0 0 0.35em 0;padding-left:" + strconv.Itoa(24+level*28) + "px;line-height:1.75;"
	if def.Kind == Ordered {
		if lst := def.listStyleType(); lst != "" {
			style += "list-style-type:" + lst + ";"
		}
	}
	return style
}

// itemStyle returns the inline style of a list item.
func itemStyle(ind Indentation, level int) string {
	left := 0
	if ind.Left > 0 {
		left = ind.Left
	}
	return "margin:0 0 0.25em 0;padding-left:" + strconv.Itoa(left+level*10) + "pt;text-align:justify;"
}
