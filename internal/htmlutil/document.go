package htmlutil

import "strings"

// RootClass marks the outermost block of every converted document.
const RootClass = "legal-document"

// RootStyle holds the font and line-height declarations carried by the root block.
const RootStyle = "font-family:'Sarabun New','Sarabun',sans-serif;font-size:16pt;line-height:1.75;"

// DocumentCSS is embedded in converted DOCX output. It styles the doc-*
// classes emitted by the body renderer.
const DocumentCSS = `.legal-document{font-family:"Sarabun","Sarabun New","TH Sarabun New",sans-serif;font-size:16pt;line-height:1.75;padding:1in;background:#fff;color:#111;word-break:break-word;overflow-wrap:anywhere;}
.legal-document p{margin:0 0 0.35em 0;text-align:justify;}
.legal-document .doc-empty{min-height:1em;}
.legal-document .doc-center-heading{width:100%;}
.legal-document .doc-tab{display:inline-block;width:2.2em;}
.legal-document .doc-table{width:100%;border-collapse:collapse;table-layout:fixed;margin:0.75em 0;}
.legal-document .doc-td{border:1px solid #000;padding:10px 12px;vertical-align:top;}
.legal-document .cell-p{margin:0;line-height:1.6;}
.legal-document strong{font-weight:700;}
.legal-document em{font-style:italic;}`

// Document wraps body in the root block. extraStyle is appended to
// RootStyle; css, when not empty, is embedded in a <style> element.
func Document(body, extraStyle, css string) string {
	var sb strings.Builder
	sb.Grow(len(body) + len(css) + 256)
	sb.WriteString(`<div class="`)
	sb.WriteString(RootClass)
	sb.WriteString(`" style="`)
	sb.WriteString(RootStyle)
	sb.WriteString(extraStyle)
	sb.WriteString(`">`)
	sb.WriteByte('\n')
	if css != "" {
		sb.WriteString("<style>")
		sb.WriteString(css)
		sb.WriteString("</style>\n")
	}
	sb.WriteString(body)
	sb.WriteString("\n</div>")
	return sb.String()
}
