package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNumbering = `
<w:abstractNum w:abstractNumId="0">
  <w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/></w:lvl>
  <w:lvl w:ilvl="1"><w:start w:val="1"/><w:numFmt w:val="thaiNumbers"/><w:lvlText w:val="(%2)"/></w:lvl>
</w:abstractNum>
<w:abstractNum w:abstractNumId="1">
  <w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>
<w:num w:numId="3"><w:abstractNumId w:val="0"/><w:lvlOverride w:ilvl="0"><w:startOverride w:val="5"/></w:lvlOverride></w:num>
<w:num w:numId="4"><w:abstractNumId w:val="9"/></w:num>`

func parseNumbering(t *testing.T, content string) *NumberingResolver {
	t.Helper()
	var nx numberingXML
	require.NoError(t, decodeXML([]byte(numberingXMLPart(content)), &nx))
	return NewNumberingResolver(&nx)
}

func TestNumberingResolver_Lookup(t *testing.T) {
	nr := parseNumbering(t, testNumbering)

	tests := []struct {
		name  string
		numID string
		level int
		want  NumberingDefinition
		ok    bool
	}{
		{"decimal", "1", 0, NumberingDefinition{Kind: Ordered, Format: "decimal", LevelText: "%1.", Start: 1}, true},
		{"thai numbers", "1", 1, NumberingDefinition{Kind: Ordered, Format: "thaiNumbers", LevelText: "(%2)", Start: 1}, true},
		{"bullet", "2", 0, NumberingDefinition{Kind: Unordered, Format: "bullet", LevelText: "•", Start: 1}, true},
		{"start override", "3", 0, NumberingDefinition{Kind: Ordered, Format: "decimal", LevelText: "%1.", Start: 5}, true},
		{"override leaves other levels", "3", 1, NumberingDefinition{Kind: Ordered, Format: "thaiNumbers", LevelText: "(%2)", Start: 1}, true},
		{"unbound abstract", "4", 0, NumberingDefinition{}, false},
		{"unknown num", "99", 0, NumberingDefinition{}, false},
		{"unknown level", "1", 5, NumberingDefinition{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nr.Lookup(tt.numID, tt.level)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberingDefinition_ListStyleType(t *testing.T) {
	assert.Equal(t, "decimal", NumberingDefinition{Format: "decimal"}.listStyleType())
	assert.Equal(t, "thai", NumberingDefinition{Format: "thaiNumbers"}.listStyleType())
	assert.Equal(t, "lower-roman", NumberingDefinition{Format: "lowerRoman"}.listStyleType())
	assert.Equal(t, "", NumberingDefinition{Format: "bullet"}.listStyleType())
}

func TestNewNumberingResolver_Nil(t *testing.T) {
	_, ok := NewNumberingResolver(nil).Lookup("1", 0)
	assert.False(t, ok)
}
