package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Flag names. Config file keys use the same names with underscores.
const (
	flagConfig        = "config"
	flagExtractor     = "extractor"
	flagPdftotextPath = "pdftotext-path"
	flagTimeout       = "timeout"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagImageText     = "image-text"
	flagOCRLanguage   = "ocr-language"
	flagMetricsFile   = "metrics-file"
)

const (
	extractorNative    = "native"
	extractorPdftotext = "pdftotext"
)

// fileConfig is the YAML configuration file. Pointer fields distinguish
// absent keys from zero values.
type fileConfig struct {
	Extractor     *string `yaml:"extractor"`
	PdftotextPath *string `yaml:"pdftotext_path"`
	Timeout       *string `yaml:"timeout"`
	LogLevel      *string `yaml:"log_level"`
	LogFormat     *string `yaml:"log_format"`
	ImageText     *bool   `yaml:"image_text"`
	OCRLanguage   *string `yaml:"ocr_language"`
	MetricsFile   *string `yaml:"metrics_file"`
}

// settings is the resolved CLI configuration.
type settings struct {
	Extractor     string
	PdftotextPath string
	Timeout       time.Duration
	LogLevel      string
	LogFormat     string
	ImageText     bool
	OCRLanguage   string
	MetricsFile   string
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return &cfg, nil
}

// applyConfigFile copies file values into flags the user did not set on
// the command line.
func applyConfigFile(flags *pflag.FlagSet, cfg *fileConfig) error {
	values := map[string]*string{
		flagExtractor:     cfg.Extractor,
		flagPdftotextPath: cfg.PdftotextPath,
		flagTimeout:       cfg.Timeout,
		flagLogLevel:      cfg.LogLevel,
		flagLogFormat:     cfg.LogFormat,
		flagOCRLanguage:   cfg.OCRLanguage,
		flagMetricsFile:   cfg.MetricsFile,
	}
	if cfg.ImageText != nil {
		v := strconv.FormatBool(*cfg.ImageText)
		values[flagImageText] = &v
	}

	for name, v := range values {
		if v == nil || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, *v); err != nil {
			return errors.Wrapf(err, "config key %s", name)
		}
	}
	return nil
}

// readSettings resolves the flag values.
func readSettings(flags *pflag.FlagSet) (settings, error) {
	var s settings
	var err error

	if s.Extractor, err = flags.GetString(flagExtractor); err != nil {
		return s, err
	}
	if s.PdftotextPath, err = flags.GetString(flagPdftotextPath); err != nil {
		return s, err
	}
	if s.Timeout, err = flags.GetDuration(flagTimeout); err != nil {
		return s, err
	}
	if s.LogLevel, err = flags.GetString(flagLogLevel); err != nil {
		return s, err
	}
	if s.LogFormat, err = flags.GetString(flagLogFormat); err != nil {
		return s, err
	}
	if s.ImageText, err = flags.GetBool(flagImageText); err != nil {
		return s, err
	}
	if s.OCRLanguage, err = flags.GetString(flagOCRLanguage); err != nil {
		return s, err
	}
	if s.MetricsFile, err = flags.GetString(flagMetricsFile); err != nil {
		return s, err
	}

	switch s.Extractor {
	case extractorNative, extractorPdftotext:
	default:
		return s, errors.Errorf("unknown extractor %q (want %s or %s)", s.Extractor, extractorNative, extractorPdftotext)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return s, errors.Errorf("unknown log format %q (want text or json)", s.LogFormat)
	}
	return s, nil
}
