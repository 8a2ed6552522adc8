package docx

import (
	"strconv"
	"strings"
)

// mergeState is a cell's vertical-merge declaration.
type mergeState int

const (
	mergeNone mergeState = iota
	mergeRestart
	mergeContinue
)

// parseMerge reads w:vMerge. A bare element means continue.
func parseMerge(v valXML) mergeState {
	if !v.set() {
		return mergeNone
	}
	if v.Val == "restart" {
		return mergeRestart
	}
	return mergeContinue
}

// gridCell is one cell of a CellGrid.
type gridCell struct {
	Content string
	Style   string
	ColSpan int
	RowSpan int
	Merge   mergeState
	Col     int
	Skip    bool
}

// CellGrid is a row-major matrix of table cells whose spans are resolved
// by ResolveMerges before rendering.
type CellGrid struct {
	Rows    [][]*gridCell
	Columns int // declared grid columns
}

// ResolveMerges assigns each cell its starting column, from the running
// sum of spans in its row, and turns vertical merges into row spans.
//
// A continuing cell extends the origin active in every column it spans
// and is skipped. An origin grows by at most one row per row, however many
// continuing cells sit under it. If any of its columns has no active
// origin it renders as an ordinary cell and becomes the origin for those
// columns. A cell without a merge clears tracking for its columns, a
// restart begins it. Spans running past the declared grid are cut at its
// edge.
func (g *CellGrid) ResolveMerges() {
	origins := make(map[int]*gridCell)

	for _, row := range g.Rows {
		touched := make(map[int]bool)
		extended := make(map[*gridCell]bool)
		col := 0
		for _, c := range row {
			if c.ColSpan < 1 {
				c.ColSpan = 1
			}
			if g.Columns > 0 && col+c.ColSpan > g.Columns {
				c.ColSpan = max(1, g.Columns-col)
			}
			c.RowSpan = 1
			c.Col = col

			switch c.Merge {
			case mergeContinue:
				if found := activeOrigins(origins, col, c.ColSpan); found != nil {
					for _, o := range found {
						if !extended[o] {
							extended[o] = true
							o.RowSpan++
						}
					}
					c.Skip = true
				} else {
					setOrigin(origins, col, c.ColSpan, c)
				}
			case mergeRestart:
				setOrigin(origins, col, c.ColSpan, c)
			default:
				for i := col; i < col+c.ColSpan; i++ {
					delete(origins, i)
				}
			}

			for i := col; i < col+c.ColSpan; i++ {
				touched[i] = true
			}
			col += c.ColSpan
		}

		// Columns a short row never reached end their merges.
		for i := range origins {
			if !touched[i] {
				delete(origins, i)
			}
		}
	}
}

// activeOrigins returns the distinct origins covering every column in
// [col, col+span), or nil if any column has none.
func activeOrigins(origins map[int]*gridCell, col, span int) []*gridCell {
	var found []*gridCell
	for i := col; i < col+span; i++ {
		o, ok := origins[i]
		if !ok {
			return nil
		}
		if len(found) == 0 || found[len(found)-1] != o {
			found = append(found, o)
		}
	}
	return found
}

func setOrigin(origins map[int]*gridCell, col, span int, c *gridCell) {
	for i := col; i < col+span; i++ {
		origins[i] = c
	}
}

// Render writes the table markup. Skipped cells emit nothing.
func (g *CellGrid) Render(sb *strings.Builder) {
	sb.WriteString(`<table class="doc-table"><tbody>`)
	for _, row := range g.Rows {
		sb.WriteString("<tr>")
		for _, c := range row {
			if c.Skip {
				continue
			}
			sb.WriteString(`<td class="doc-td"`)
			if c.ColSpan > 1 {
				sb.WriteString(` colspan="`)
				sb.WriteString(strconv.Itoa(c.ColSpan))
				sb.WriteByte('"')
			}
			if c.RowSpan > 1 {
				sb.WriteString(` rowspan="`)
				sb.WriteString(strconv.Itoa(c.RowSpan))
				sb.WriteByte('"')
			}
			if c.Style != "" {
				sb.WriteString(` style="`)
				sb.WriteString(c.Style)
				sb.WriteByte('"')
			}
			sb.WriteByte('>')
			sb.WriteString(c.Content)
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
}

// cellStyle returns the inline style for shading and vertical alignment.
func cellStyle(props cellPropsXML) string {
	var sb strings.Builder
	if fill := props.Shading.Fill; fill != "" && fill != "auto" {
		sb.WriteString("background-color:#")
		sb.WriteString(fill)
		sb.WriteByte(';')
	}
	switch props.VAlign.Val {
	case "center":
		sb.WriteString("vertical-align:middle;")
	case "bottom":
		sb.WriteString("vertical-align:bottom;")
	}
	return sb.String()
}

// parseSpan reads w:gridSpan, defaulting to 1.
func parseSpan(v valXML) int {
	n, err := strconv.Atoi(v.Val)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
