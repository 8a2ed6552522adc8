package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestStyle(t *testing.T) {
	var s Style
	s.Set("text-align", "justify").Set("margin", "0").Set("text-align", "center")

	assert.Equal(t, "text-align:center;margin:0;", s.String())
	assert.Equal(t, 2, s.Len())

	v, ok := s.Get("margin")
	assert.True(t, ok)
	assert.Equal(t, "0", v)

	s.Delete("text-align")
	assert.Equal(t, "margin:0;", s.String())
}

func TestStripUnderline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tag", "<p><u>ข้อความ</u></p>", "<p>ข้อความ</p>"},
		{"tag with attrs", `<u class="x">a</u>`, "a"},
		{"declaration", `<span style="color:red;text-decoration: underline;">a</span>`, `<span style="color:red;">a</span>`},
		{"declaration at end", `<span style="text-decoration:underline">a</span>`, `<span style="">a</span>`},
		{"keeps ul", "<ul><li>a</li></ul>", "<ul><li>a</li></ul>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripUnderline(tt.in))
		})
	}
}

func TestPreserveSpaces(t *testing.T) {
	assert.Equal(t, "a b", PreserveSpaces("a b"))
	assert.Equal(t, "a&nbsp;&nbsp;&nbsp;b", PreserveSpaces("a   b"))
}

func TestTextContent(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<div><p>หมวด <b>๑</b></p><p>x</p></div>"))
	require.NoError(t, err)
	assert.Equal(t, "หมวด ๑x", TextContent(doc))
	assert.Equal(t, "", TextContent(nil))
}

func TestDocument(t *testing.T) {
	out := Document("<p>a</p>", "padding:1in;", "p{}")
	assert.True(t, strings.HasPrefix(out, `<div class="legal-document" style="`+RootStyle+`padding:1in;">`))
	assert.Contains(t, out, "<style>p{}</style>")
	assert.True(t, strings.HasSuffix(out, "</div>"))

	assert.NotContains(t, Document("", "", ""), "<style>")
}
