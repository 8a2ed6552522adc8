package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveConversion(t *testing.T) {
	m := NewMetrics(InstanceInfo{Version: "test"}).(*metrics)

	m.ObserveConversion("docx", OutcomeSuccess, 0.2)
	m.ObserveConversion("docx", OutcomeSuccess, 0.3)
	m.ObserveConversion("pdf", OutcomeError, 1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.conversionsTotal.WithLabelValues("docx", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversionsTotal.WithLabelValues("pdf", OutcomeError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.conversionDuration))
}

func TestObserveSegmentation(t *testing.T) {
	m := NewMetrics(InstanceInfo{}).(*metrics)

	m.ObserveSections("chapter", 2)
	m.ObserveSections("section", 0)
	m.ObserveReferences("refers_to", 3)

	expected := `
# HELP lexdoc_segment_sections_total The total number of sections detected.
# TYPE lexdoc_segment_sections_total counter
lexdoc_segment_sections_total{type="chapter"} 2
`
	require.NoError(t, testutil.CollectAndCompare(m.sectionsTotal, strings.NewReader(expected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.referencesTotal.WithLabelValues("refers_to")))
}

func TestNilMetrics(t *testing.T) {
	var m *metrics
	assert.NotPanics(t, func() {
		m.ObserveConversion("pdf", OutcomeSuccess, 1)
		m.ObserveSections("chapter", 1)
		m.ObserveReferences("amends", 1)
	})
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics(InstanceInfo{Version: "1.2.3"})
	m.ObserveConversion("pdf", OutcomeSuccess, 0.1)

	path := filepath.Join(t.TempDir(), "lexdoc.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lexdoc_conversion_total{format="pdf",outcome="success"} 1`)
	assert.Contains(t, string(data), `lexdoc_system_info{version="1.2.3"} 1`)
}
