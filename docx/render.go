package docx

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/lexdoc/internal/htmlutil"
	"github.com/tsawler/lexdoc/normalize"
)

// emuPerPixel converts DrawingML extents (EMU) to CSS pixels at 96 DPI.
const emuPerPixel = 9525

const (
	tabSpacer        = `<span class="doc-tab" style="display:inline-block; min-width: 48px;">&nbsp;</span>`
	responsiveImage  = "max-width: 100%; height: auto;"
	defaultImageAlt  = "image"
	headingMargin    = "0.75em 0 0.5em 0"
	paragraphMargin  = "0 0 0.35em 0"
	paragraphLeading = "1.75"
)

// ImageRecognizer produces text for an embedded image. It is used for
// image alt text when the document carries none.
type ImageRecognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// renderer turns a parsed body into HTML. One renderer serves exactly one
// conversion; list state is threaded through renderBody explicitly.
type renderer struct {
	styles     *StyleResolver
	numbering  *NumberingResolver
	rels       *RelationshipResolver
	normalizer normalize.Normalizer
	images     ImageRecognizer
	log        logrus.FieldLogger
}

// renderBody renders blocks in order and closes any list left open.
func (r *renderer) renderBody(blocks []block) string {
	var sb strings.Builder
	lists := NewListStack(r.numbering.Lookup)

	for _, b := range blocks {
		switch b := b.(type) {
		case *tableXML:
			sb.WriteString(lists.Close())
			r.renderTable(&sb, b)
		case *paragraphXML:
			r.renderParagraph(&sb, b, lists)
		case unknownBlock:
			// Renders to nothing and leaves open lists alone.
		}
	}

	sb.WriteString(lists.Close())
	return sb.String()
}

// paragraphInfo is a paragraph with its effective formatting resolved.
type paragraphInfo struct {
	styleID string
	align   Alignment
	indent  Indentation
	content string
	out     *inlineOutput
}

// empty reports whether the paragraph has no visible content.
func (p paragraphInfo) empty() bool {
	return strings.TrimSpace(p.out.text.String()) == "" && p.out.images == 0
}

func (r *renderer) readParagraph(p *paragraphXML) paragraphInfo {
	props := p.Properties
	info := paragraphInfo{styleID: props.Style.Val}

	info.align = parseAlignment(props.Justification.Val)
	if info.align == AlignNone {
		info.align, _ = r.styles.ResolveAlignment(info.styleID)
	}

	if props.Indent.XMLName.Local != "" {
		info.indent = parseIndentation(props.Indent)
	} else {
		info.indent, _ = r.styles.ResolveIndentation(info.styleID)
	}

	info.out = &inlineOutput{}
	r.renderInlines(info.out, p.Inlines, r.styles.ResolveBold(info.styleID))
	info.content = r.normalizer.Normalize(info.out.html.String())
	return info
}

func (r *renderer) renderParagraph(sb *strings.Builder, p *paragraphXML, lists *ListStack) {
	info := r.readParagraph(p)
	item, isList := r.listItem(p.Properties)

	switch {
	case info.align == AlignCenter && !info.empty() && (info.out.allBold() || r.styles.IsHeading(info.styleID)):
		sb.WriteString(lists.Close())
		style := paragraphStyle(info.align, info.indent, isList)
		style.Set("text-align", "center").Set("margin", headingMargin)
		sb.WriteString(`<div class="doc-center-heading" style="`)
		sb.WriteString(style.String())
		sb.WriteString(`">`)
		sb.WriteString(info.content)
		sb.WriteString("</div>")

	case isList:
		sb.WriteString(lists.Item(item, itemStyle(info.indent, item.Level)))
		sb.WriteString(info.content)

	default:
		sb.WriteString(lists.Close())
		style := paragraphStyle(info.align, info.indent, false)
		if info.empty() {
			sb.WriteString(`<p class="doc-empty" style="`)
			sb.WriteString(style.String())
			sb.WriteString(`">&nbsp;</p>`)
			return
		}
		sb.WriteString(`<p style="`)
		sb.WriteString(style.String())
		sb.WriteString(`">`)
		sb.WriteString(info.content)
		sb.WriteString("</p>")
	}
}

// listItem returns the list membership of a paragraph. numId 0 removes
// numbering in OOXML.
func (r *renderer) listItem(props paragraphPropsXML) (ListItem, bool) {
	numID := props.NumPr.NumID.Val
	if numID == "" || numID == "0" {
		return ListItem{}, false
	}

	level, err := strconv.Atoi(props.NumPr.ILvl.Val)
	if err != nil || level < 0 {
		level = 0
	}

	def, ok := r.numbering.Lookup(numID, level)
	if !ok {
		def = NumberingDefinition{Kind: Ordered, Format: "decimal", Start: 1}
	}
	return ListItem{NumID: numID, Level: level, Def: def}, true
}

// paragraphStyle builds the inline style of a body paragraph. Indentation
// applies to non-list paragraphs only; list items indent through their list.
func paragraphStyle(align Alignment, ind Indentation, list bool) *htmlutil.Style {
	s := &htmlutil.Style{}
	textAlign := string(align)
	if align == AlignNone {
		textAlign = string(AlignJustify)
	}
	s.Set("text-align", textAlign).
		Set("margin", paragraphMargin).
		Set("line-height", paragraphLeading).
		Set("position", "relative")

	if list {
		return s
	}

	pad, indent := ind.Left, ind.FirstLine
	if ind.Hanging > 0 {
		pad += ind.Hanging
		indent = -ind.Hanging
	}
	if pad > 0 {
		s.Set("padding-left", strconv.Itoa(pad)+"pt")
	}
	if indent != 0 {
		s.Set("text-indent", strconv.Itoa(indent)+"pt")
	}
	return s
}

// inlineOutput accumulates the rendering of a paragraph's runs.
type inlineOutput struct {
	html     strings.Builder
	text     strings.Builder
	images   int
	textRuns int
	boldRuns int
}

// allBold reports whether every run carrying text is bold.
func (o *inlineOutput) allBold() bool {
	return o.textRuns > 0 && o.boldRuns == o.textRuns
}

func (r *renderer) renderInlines(out *inlineOutput, inlines []inline, paraBold bool) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *runXML:
			r.renderRun(out, in, paraBold)
		case *hyperlinkXML:
			out.html.WriteString(`<span class="doc-link"`)
			if rel, ok := r.rels.Lookup(in.ID); ok && rel.External {
				out.html.WriteString(` data-href="`)
				out.html.WriteString(htmlutil.Escape(rel.Target))
				out.html.WriteByte('"')
			}
			out.html.WriteByte('>')
			r.renderInlines(out, in.Inlines, paraBold)
			out.html.WriteString("</span>")
		}
	}
}

func (r *renderer) renderRun(out *inlineOutput, run *runXML, paraBold bool) {
	props := run.Properties

	bold := paraBold
	if cs := r.styles.resolveCharacterBold(props.Style.Val); cs != nil {
		bold = *cs
	}
	if direct := toggle(props.Bold, props.BoldCS); direct != nil {
		bold = *direct
	}
	italic := props.Italic.on() || props.ItalicCS.on()
	strike := props.Strike.on() || props.DStrike.on()

	var (
		body    strings.Builder
		hasText bool
	)
	for _, c := range run.Content {
		switch c := c.(type) {
		case runText:
			s := r.normalizer.Normalize(string(c))
			body.WriteString(htmlutil.Escape(s))
			out.text.WriteString(s)
			if strings.TrimSpace(s) != "" {
				hasText = true
			}
		case runTab:
			body.WriteString(tabSpacer)
			out.text.WriteByte('\t')
		case runBreak:
			body.WriteString("<br>")
			out.text.WriteByte('\n')
		case runDrawing:
			if f := c.Drawing.frame(); f != nil && f.Blip != nil {
				if img := r.renderImage(f.Blip.Embed, f.Extent, f.DocPr.Descr); img != "" {
					body.WriteString(img)
					out.images++
				}
			}
		case runPicture:
			if img := r.renderImage(c.RelID, extentXML{}, ""); img != "" {
				body.WriteString(img)
				out.images++
			}
		}
	}
	if body.Len() == 0 {
		return
	}

	if hasText {
		out.textRuns++
		if bold {
			out.boldRuns++
		}
	}

	markup := body.String()
	if bold {
		markup = "<strong>" + markup + "</strong>"
	}
	if italic {
		markup = "<em>" + markup + "</em>"
	}
	if strike {
		markup = "<s>" + markup + "</s>"
	}
	out.html.WriteString(markup)
}

// renderImage inlines the media behind relID as a data URI.
func (r *renderer) renderImage(relID string, ext extentXML, descr string) string {
	data, name, ok := r.rels.Media(relID)
	if !ok {
		r.log.WithField("rel_id", relID).Warn("image relationship not resolved")
		return ""
	}

	alt := strings.TrimSpace(descr)
	if alt == "" {
		alt = r.recognize(data)
	}
	if alt == "" {
		alt = defaultImageAlt
	}

	var sb strings.Builder
	sb.WriteString(`<img src="`)
	sb.WriteString(DataURI(MIMEType(name), data))
	sb.WriteString(`" style="`)
	sb.WriteString(imageStyle(ext))
	sb.WriteString(`" alt="`)
	sb.WriteString(htmlutil.Escape(alt))
	sb.WriteString(`">`)
	return sb.String()
}

func (r *renderer) recognize(data []byte) string {
	if r.images == nil {
		return ""
	}
	text, err := r.images.RecognizeImage(data)
	if err != nil {
		r.log.WithError(err).Debug("image text recognition failed")
		return ""
	}
	return strings.Join(strings.Fields(r.normalizer.Normalize(text)), " ")
}

// imageStyle sizes an image from its extent, falling back to a responsive
// width when either dimension does not convert to a positive pixel count.
func imageStyle(ext extentXML) string {
	w, h := emuToPixels(ext.CX), emuToPixels(ext.CY)
	if w <= 0 || h <= 0 {
		return responsiveImage
	}
	return "width:" + strconv.Itoa(w) + "px;height:" + strconv.Itoa(h) + "px;"
}

func emuToPixels(s string) int {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(float64(v) / emuPerPixel))
}

func (r *renderer) renderTable(sb *strings.Builder, t *tableXML) {
	grid := CellGrid{Columns: len(t.Grid.Cols)}
	for _, row := range t.Rows {
		cells := make([]*gridCell, 0, len(row.Cells))
		for i := range row.Cells {
			tc := &row.Cells[i]
			cells = append(cells, &gridCell{
				Content: r.renderCell(tc),
				Style:   cellStyle(tc.Properties),
				ColSpan: parseSpan(tc.Properties.GridSpan),
				Merge:   parseMerge(tc.Properties.VMerge),
			})
		}
		grid.Rows = append(grid.Rows, cells)
	}

	grid.ResolveMerges()
	grid.Render(sb)
}

// renderCell renders a cell's blocks. Paragraphs become cell-p blocks and
// nested tables render in place. A cell with no visible content renders
// a single non-breaking space.
func (r *renderer) renderCell(tc *tableCellXML) string {
	var (
		sb      strings.Builder
		visible bool
	)
	for _, b := range tc.Blocks {
		switch b := b.(type) {
		case *paragraphXML:
			info := r.readParagraph(b)
			sb.WriteString(`<div class="cell-p"`)
			if info.align != AlignNone && info.align != AlignJustify {
				sb.WriteString(` style="text-align:`)
				sb.WriteString(string(info.align))
				sb.WriteString(`;"`)
			}
			sb.WriteByte('>')
			if info.empty() {
				sb.WriteString("&nbsp;")
			} else {
				sb.WriteString(info.content)
				visible = true
			}
			sb.WriteString("</div>")
		case *tableXML:
			r.renderTable(&sb, b)
			visible = true
		}
	}
	if !visible {
		return "&nbsp;"
	}
	return sb.String()
}
