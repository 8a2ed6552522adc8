package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/lexdoc"
)

func writeDOCX(t *testing.T, lines ...string) string {
	t.Helper()

	var body strings.Builder
	for _, l := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + l + `</w:t></w:r></w:p>`)
	}

	path := filepath.Join(t.TempDir(), "law.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

// fakePdftotext writes a script that prints text regardless of input.
func fakePdftotext(t *testing.T, text string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "pdftotext")
	script := "#!/bin/sh\ncat <<'END'\n" + text + "\nEND\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lexdoc "+lexdoc.Version+"\n", out)
}

func TestConvert_Stdout(t *testing.T) {
	path := writeDOCX(t, "หมวด ๑ บททั่วไป")

	out, _, err := execute(t, "convert", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<div class="legal-document"`))
	assert.Contains(t, out, "หมวด ๑ บททั่วไป")
}

func TestConvert_OutputFile(t *testing.T) {
	path := writeDOCX(t, "ข้อ ๑ ทั่วไป")
	output := filepath.Join(t.TempDir(), "out.html")

	out, _, err := execute(t, "convert", path, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ข้อ ๑ ทั่วไป")
}

func TestConvert_MissingFile(t *testing.T) {
	_, _, err := execute(t, "convert", filepath.Join(t.TempDir(), "none.docx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, lexdoc.ErrFileNotFound)
	assert.Equal(t, 2, exitCode(err))
}

func TestSections_JSON(t *testing.T) {
	path := writeDOCX(t, "หมวด ๑ บททั่วไป", "มาตรา ๑ ความทั่วไป", "มาตรา ๒ ตามมาตรา ๑")

	out, _, err := execute(t, "sections", path)
	require.NoError(t, err)

	var got sectionsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Sections, 3)
	assert.Equal(t, "chapter", got.Sections[0].Type)
	assert.Nil(t, got.Sections[0].Parent)
	assert.Equal(t, "section", got.Sections[1].Type)
	require.NotNil(t, got.Sections[1].Parent)
	assert.Equal(t, 0, *got.Sections[1].Parent)
	assert.Empty(t, got.Sections[1].HTML)
	assert.Empty(t, got.HTML)

	require.Len(t, got.References, 1)
	assert.Equal(t, "refers_to", got.References[0].Kind)
	assert.Equal(t, "อ้างอิงถึงมาตรา 1", got.References[0].Description)
}

func TestSections_WithHTML(t *testing.T) {
	path := writeDOCX(t, "มาตรา ๑ ความทั่วไป")

	out, _, err := execute(t, "sections", "--html", path)
	require.NoError(t, err)

	var got sectionsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Sections, 1)
	assert.Contains(t, got.Sections[0].HTML, "<p")
	assert.Contains(t, got.HTML, "legal-document")
}

func TestSections_PdftotextFromConfig(t *testing.T) {
	script := fakePdftotext(t, "1. บททั่วไป\n(1) ข้อความ")
	cfg := filepath.Join(t.TempDir(), "lexdoc.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"extractor: pdftotext\npdftotext_path: "+script+"\ntimeout: 10s\nlog_level: warn\n"), 0o644))

	out, _, err := execute(t, "sections", "--config", cfg, writePDF(t))
	require.NoError(t, err)

	var got sectionsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "clause", got.Sections[0].Type)
	assert.Equal(t, "sub_clause", got.Sections[1].Type)
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "lexdoc.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_format: xml\n"), 0o644))

	_, _, err := execute(t, "version", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log format "xml"`)

	_, _, err = execute(t, "version", "--config", cfg, "--log-format", "json")
	require.NoError(t, err)
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"extractor", []string{"--extractor", "poppler"}, `unknown extractor "poppler"`},
		{"log level", []string{"--log-level", "loud"}, "log level"},
		{"missing config", []string{"--config", "/nonexistent/lexdoc.yaml"}, "reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"version"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyConfigFile(t *testing.T) {
	root := newRootCmd()
	flags := root.PersistentFlags()
	require.NoError(t, flags.Set(flagTimeout, "5s"))

	timeout := "90s"
	level := "debug"
	imageText := true
	require.NoError(t, applyConfigFile(flags, &fileConfig{
		Timeout:   &timeout,
		LogLevel:  &level,
		ImageText: &imageText,
	}))

	s, err := readSettings(flags)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.Timeout, "flag set on the command line wins")
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.ImageText)
	assert.Equal(t, extractorNative, s.Extractor)
}

func TestMetricsFile(t *testing.T) {
	path := writeDOCX(t, "หมวด ๑ บททั่วไป")
	metricsFile := filepath.Join(t.TempDir(), "lexdoc.prom")

	_, _, err := execute(t, "convert", "--metrics-file", metricsFile, path)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lexdoc_conversion_total{format="docx",outcome="success"} 1`)
}

func TestMetricsFile_WrittenOnFailure(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))
	metricsFile := filepath.Join(t.TempDir(), "lexdoc.prom")

	_, _, err := execute(t, "convert", "--metrics-file", metricsFile, broken)
	require.Error(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `outcome="error"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.Wrap(lexdoc.ErrUnsupportedFormat, "x"), 2},
		{lexdoc.ErrMalformedXML, 3},
		{lexdoc.ErrExtractionFailed, 4},
		{errors.New("usage"), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), tt.err.Error())
	}
}
