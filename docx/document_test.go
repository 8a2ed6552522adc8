package docx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcNamespace = `xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"`

func decodeParagraph(t *testing.T, inner string) *paragraphXML {
	t.Helper()
	var p paragraphXML
	require.NoError(t, decodeXML([]byte(`<w:p `+namespaces+` `+mcNamespace+`>`+inner+`</w:p>`), &p))
	return &p
}

// inlineText flattens the text of inlines, writing tabs as \t.
func inlineText(inlines []inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch in := in.(type) {
		case *runXML:
			for _, c := range in.Content {
				switch c := c.(type) {
				case runText:
					sb.WriteString(string(c))
				case runTab:
					sb.WriteByte('\t')
				}
			}
		case *hyperlinkXML:
			sb.WriteString(inlineText(in.Inlines))
		}
	}
	return sb.String()
}

func TestDecodeInlines_AlternateContent(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  string
	}{
		{
			name: "paragraph level",
			inner: `<mc:AlternateContent>` +
				`<mc:Choice Requires="wps"><w:r><w:t>CHOICE</w:t></w:r></mc:Choice>` +
				`<mc:Fallback><w:r><w:t>FALLBACK</w:t></w:r></mc:Fallback>` +
				`</mc:AlternateContent>`,
			want: "CHOICE",
		},
		{
			name: "run level",
			inner: `<w:r><mc:AlternateContent>` +
				`<mc:Choice Requires="wps"><w:t>CHOICE</w:t></mc:Choice>` +
				`<mc:Fallback><w:t>FALLBACK</w:t></mc:Fallback>` +
				`</mc:AlternateContent></w:r>`,
			want: "CHOICE",
		},
		{
			name: "only first choice",
			inner: `<mc:AlternateContent>` +
				`<mc:Choice Requires="wps"><w:r><w:t>first</w:t></w:r></mc:Choice>` +
				`<mc:Choice Requires="w14"><w:r><w:t>second</w:t></w:r></mc:Choice>` +
				`</mc:AlternateContent><w:r><w:t> after</w:t></w:r>`,
			want: "first after",
		},
		{
			name:  "fallback only",
			inner: `<mc:AlternateContent><mc:Fallback><w:r><w:t>FALLBACK</w:t></w:r></mc:Fallback></mc:AlternateContent>`,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeParagraph(t, tt.inner)
			assert.Equal(t, tt.want, inlineText(p.Inlines))
		})
	}
}

func TestConvert_ParagraphAlternateContent(t *testing.T) {
	body := `<w:p ` + mcNamespace + `><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:r><w:t>CHOICE</w:t></w:r></mc:Choice>` +
		`<mc:Fallback><w:r><w:t>FALLBACK</w:t></w:r></mc:Fallback>` +
		`</mc:AlternateContent></w:p>`
	html := convertBody(t, body)

	assert.Equal(t, 1, strings.Count(html, "CHOICE"))
	assert.NotContains(t, html, "FALLBACK")
}

func TestDecodeRunContent_TabInText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []runContent
	}{
		{"inner", "a\tb", []runContent{runText("a"), runTab{}, runText("b")}},
		{"leading and trailing", "\ta\t", []runContent{runTab{}, runText("a"), runTab{}}},
		{"consecutive", "a\t\tb", []runContent{runText("a"), runTab{}, runTab{}, runText("b")}},
		{"none", "plain", []runContent{runText("plain")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodeParagraph(t, `<w:r><w:t xml:space="preserve">`+tt.text+`</w:t></w:r>`)
			require.Len(t, p.Inlines, 1)
			assert.Equal(t, tt.want, p.Inlines[0].(*runXML).Content)
		})
	}
}

func TestConvert_TabInTextMatchesTabElement(t *testing.T) {
	literal := convertBody(t, `<w:p><w:r><w:t xml:space="preserve">ก`+"\t"+`ข</w:t></w:r></w:p>`)
	element := convertBody(t, `<w:p><w:r><w:t>ก</w:t><w:tab/><w:t>ข</w:t></w:r></w:p>`)

	assert.Contains(t, literal, tabSpacer)
	assert.NotContains(t, literal, "\t")
	assert.Equal(t, element, literal)
}
