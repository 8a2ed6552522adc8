package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the body's block-level children in document order.
type bodyXML struct {
	Blocks []block
}

// UnmarshalXML keeps paragraphs and tables interleaved as they appear.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	blocks, err := decodeBlocks(d, nil)
	b.Blocks = blocks
	return err
}

// block is a body-level element. The set of variants is closed:
// *paragraphXML, *tableXML and unknownBlock.
type block interface {
	isBlock()
}

func (*paragraphXML) isBlock() {}
func (*tableXML) isBlock() {}
func (unknownBlock) isBlock() {}

// unknownBlock stands in for any unrecognized body element. It renders to
// nothing.
type unknownBlock struct {
	Name string
}

// decodeBlocks reads block-level children until the end of the current
// element. hook, when set, gets first refusal on every child element.
// Structured document tags and custom XML wrappers are transparent.
func decodeBlocks(d *xml.Decoder, hook func(xml.StartElement) (bool, error)) ([]block, error) {
	var blocks []block
	for {
		tok, err := d.Token()
		if err != nil {
			return blocks, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if hook != nil {
				handled, err := hook(t)
				if err != nil {
					return blocks, err
				}
				if handled {
					continue
				}
			}

			switch t.Name.Local {
			case "p":
				p := &paragraphXML{}
				if err := d.DecodeElement(p, &t); err != nil {
					return blocks, err
				}
				blocks = append(blocks, p)
			case "tbl":
				tbl := &tableXML{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return blocks, err
				}
				blocks = append(blocks, tbl)
			case "sdt", "sdtContent", "customXml":
				inner, err := decodeBlocks(d, nil)
				if err != nil {
					return blocks, err
				}
				blocks = append(blocks, inner...)
			default:
				if err := d.Skip(); err != nil {
					return blocks, err
				}
				blocks = append(blocks, unknownBlock{Name: t.Name.Local})
			}
		case xml.EndElement:
			return blocks, nil
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML
	Inlines    []inline
}

// UnmarshalXML collects runs and hyperlinks in order, flattening inline
// wrappers such as insertions, smart tags and simple fields.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	inlines, err := decodeInlines(d, &p.Properties)
	p.Inlines = inlines
	return err
}

// inline is a paragraph child: *runXML or *hyperlinkXML.
type inline interface {
	isInline()
}

func (*runXML) isInline() {}
func (*hyperlinkXML) isInline() {}

func decodeInlines(d *xml.Decoder, props *paragraphPropsXML) ([]inline, error) {
	var inlines []inline
	for {
		tok, err := d.Token()
		if err != nil {
			return inlines, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if props == nil {
					if err := d.Skip(); err != nil {
						return inlines, err
					}
					continue
				}
				if err := d.DecodeElement(props, &t); err != nil {
					return inlines, err
				}
			case "r":
				r := &runXML{}
				if err := d.DecodeElement(r, &t); err != nil {
					return inlines, err
				}
				inlines = append(inlines, r)
			case "hyperlink":
				h := &hyperlinkXML{}
				if err := d.DecodeElement(h, &t); err != nil {
					return inlines, err
				}
				inlines = append(inlines, h)
			case "del", "moveFrom":
				// Deleted revisions are not part of the document text.
				if err := d.Skip(); err != nil {
					return inlines, err
				}
			case "AlternateContent":
				err := decodeChoice(d, func() error {
					inner, err := decodeInlines(d, nil)
					inlines = append(inlines, inner...)
					return err
				})
				if err != nil {
					return inlines, err
				}
			default:
				inner, err := decodeInlines(d, nil)
				if err != nil {
					return inlines, err
				}
				inlines = append(inlines, inner...)
			}
		case xml.EndElement:
			return inlines, nil
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         valXML            `xml:"pStyle"`
	NumPr         numberingPropsXML `xml:"numPr"`
	Justification valXML            `xml:"jc"`
	Indent        indentXML         `xml:"ind"`
	OutlineLvl    valXML            `xml:"outlineLvl"`
}

// valXML is any element whose only interesting content is w:val.
type valXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// set reports whether the element was present.
func (v valXML) set() bool {
	return v.XMLName.Local != ""
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	XMLName xml.Name
	ILvl    valXML `xml:"ilvl"`
	NumID   valXML `xml:"numId"`
}

// indentXML represents paragraph indentation, in twips.
type indentXML struct {
	XMLName   xml.Name
	Left      string `xml:"left,attr"`
	Start     string `xml:"start,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// hyperlinkXML represents a hyperlink (<w:hyperlink>).
type hyperlinkXML struct {
	ID      string
	Anchor  string
	Inlines []inline
}

// UnmarshalXML reads the relationship id and the nested runs.
func (h *hyperlinkXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			h.ID = a.Value
		case "anchor":
			h.Anchor = a.Value
		}
	}
	inlines, err := decodeInlines(d, nil)
	h.Inlines = inlines
	return err
}

// runXML represents a text run (<w:r>) with its content in order.
type runXML struct {
	Properties runPropsXML
	Content    []runContent
}

// UnmarshalXML keeps text, tabs, breaks and drawings in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	content, err := decodeRunContent(d, &r.Properties)
	r.Content = content
	return err
}

// runContent is one piece of a run: runText, runTab, runBreak, runDrawing
// or runPicture.
type runContent interface {
	isRunContent()
}

type (
	// runText is literal text from <w:t>.
	runText string
	// runTab is a <w:tab>.
	runTab struct{}
	// runBreak is a <w:br> or <w:cr>.
	runBreak struct {
		Type string
	}
	// runDrawing is a DrawingML image.
	runDrawing struct {
		Drawing drawingXML
	}
	// runPicture is a legacy VML image.
	runPicture struct {
		RelID string
	}
)

func (runText) isRunContent() {}
func (runTab) isRunContent() {}
func (runBreak) isRunContent() {}
func (runDrawing) isRunContent() {}
func (runPicture) isRunContent() {}

func decodeRunContent(d *xml.Decoder, props *runPropsXML) ([]runContent, error) {
	var content []runContent
	for {
		tok, err := d.Token()
		if err != nil {
			return content, err
		}

		t, ok := tok.(xml.StartElement)
		if !ok {
			if _, end := tok.(xml.EndElement); end {
				return content, nil
			}
			continue
		}

		switch t.Name.Local {
		case "rPr":
			if props == nil {
				err = d.Skip()
				break
			}
			err = d.DecodeElement(props, &t)
		case "t":
			var s string
			if err = d.DecodeElement(&s, &t); err == nil {
				content = appendText(content, s)
			}
		case "tab", "ptab":
			content = append(content, runTab{})
			err = d.Skip()
		case "br", "cr":
			var br breakXML
			if err = d.DecodeElement(&br, &t); err == nil {
				content = append(content, runBreak{Type: br.Type})
			}
		case "noBreakHyphen":
			content = append(content, runText("-"))
			err = d.Skip()
		case "drawing":
			var dr drawingXML
			if err = d.DecodeElement(&dr, &t); err == nil {
				content = append(content, runDrawing{Drawing: dr})
			}
		case "pict":
			var pict pictXML
			if err = d.DecodeElement(&pict, &t); err == nil && pict.ImageData.RelID != "" {
				content = append(content, runPicture{RelID: pict.ImageData.RelID})
			}
		case "AlternateContent":
			var inner []runContent
			inner, err = decodeAlternateContent(d)
			content = append(content, inner...)
		default:
			err = d.Skip()
		}
		if err != nil {
			return content, err
		}
	}
}

// appendText adds s to content. Literal tabs become runTab like w:tab.
func appendText(content []runContent, s string) []runContent {
	for {
		i := strings.IndexByte(s, '\t')
		if i < 0 {
			break
		}
		if i > 0 {
			content = append(content, runText(s[:i]))
		}
		content = append(content, runTab{})
		s = s[i+1:]
	}
	if s != "" {
		content = append(content, runText(s))
	}
	return content
}

// decodeAlternateContent keeps the first mc:Choice and drops fallbacks.
func decodeAlternateContent(d *xml.Decoder) ([]runContent, error) {
	var content []runContent
	err := decodeChoice(d, func() error {
		inner, err := decodeRunContent(d, nil)
		content = append(content, inner...)
		return err
	})
	return content, err
}

// decodeChoice reads an mc:AlternateContent element. choose consumes the
// first mc:Choice through its end tag; every other child is skipped.
func decodeChoice(d *xml.Decoder, choose func() error) error {
	chosen := false
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Choice" && !chosen {
				chosen = true
				if err := choose(); err != nil {
					return err
				}
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style    valXML  `xml:"rStyle"`
	Bold     boolXML `xml:"b"`
	BoldCS   boolXML `xml:"bCs"`
	Italic   boolXML `xml:"i"`
	ItalicCS boolXML `xml:"iCs"`
	Strike   boolXML `xml:"strike"`
	DStrike  boolXML `xml:"dstrike"`
}

// boolXML represents an OOXML toggle property.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// set reports whether the property was present.
func (b boolXML) set() bool {
	return b.XMLName.Local != ""
}

// on reports whether the property was present and not switched off.
func (b boolXML) on() bool {
	if !b.set() {
		return false
	}
	switch b.Val {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// breakXML represents a break (line, page or column).
type breakXML struct {
	Type string `xml:"type,attr"`
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	Inline *graphicFrameXML `xml:"inline"`
	Anchor *graphicFrameXML `xml:"anchor"`
}

// frame returns whichever of the inline or anchored frames is present.
func (d drawingXML) frame() *graphicFrameXML {
	if d.Inline != nil {
		return d.Inline
	}
	return d.Anchor
}

// graphicFrameXML is the shared shape of wp:inline and wp:anchor.
type graphicFrameXML struct {
	Extent extentXML `xml:"extent"`
	DocPr  docPrXML  `xml:"docPr"`
	Blip   *blipXML  `xml:"graphic>graphicData>pic>blipFill>blip"`
}

// extentXML represents image dimensions.
type extentXML struct {
	CX string `xml:"cx,attr"` // Width in EMUs
	CY string `xml:"cy,attr"` // Height in EMUs
}

// docPrXML represents document properties of an image.
type docPrXML struct {
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"` // Alt text
}

// blipXML represents an image reference.
type blipXML struct {
	Embed string `xml:"embed,attr"` // Relationship ID
}

// pictXML represents a legacy VML picture (<w:pict>).
type pictXML struct {
	ImageData imageDataXML `xml:"shape>imagedata"`
}

// imageDataXML carries the relationship id of a VML image.
type imageDataXML struct {
	RelID string `xml:"id,attr"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Grid tableGridXML  `xml:"tblGrid"`
	Rows []tableRowXML `xml:"tr"`
}

// tableGridXML represents the declared grid columns.
type tableGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

// gridColXML represents a grid column.
type gridColXML struct {
	W string `xml:"w,attr"` // Width in twips
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>). A cell holds blocks of
// its own, including nested tables.
type tableCellXML struct {
	Properties cellPropsXML
	Blocks     []block
}

// UnmarshalXML decodes the cell properties and its block content.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	blocks, err := decodeBlocks(d, func(t xml.StartElement) (bool, error) {
		if t.Name.Local != "tcPr" {
			return false, nil
		}
		return true, d.DecodeElement(&c.Properties, &t)
	})
	c.Blocks = blocks
	return err
}

// cellPropsXML represents cell properties.
type cellPropsXML struct {
	GridSpan valXML     `xml:"gridSpan"`
	VMerge   valXML     `xml:"vMerge"`
	Shading  shadingXML `xml:"shd"`
	VAlign   valXML     `xml:"vAlign"`
}

// shadingXML represents cell shading.
type shadingXML struct {
	Fill string `xml:"fill,attr"` // Background color
}
