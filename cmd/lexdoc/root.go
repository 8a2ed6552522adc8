package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/lexdoc"
	"github.com/tsawler/lexdoc/metrics"
	"github.com/tsawler/lexdoc/ocr"
	"github.com/tsawler/lexdoc/pdfdoc"
)

// app carries the state shared by subcommands for one invocation.
type app struct {
	settings settings
	logger   *logrus.Logger
	metrics  metrics.Metrics
	ocr      *ocr.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lexdoc",
		Short: "Convert legal documents to HTML and split them into sections",
		Long: `lexdoc converts DOCX and PDF legal documents into self-contained HTML
and detects their chapters, parts, articles and clauses.

Settings can be read from a YAML file given with --config. Flags given on
the command line override values from the file.`,
		Version:       lexdoc.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, "", "YAML configuration file")
	flags.String(flagExtractor, extractorNative, "PDF text extractor: native or pdftotext")
	flags.String(flagPdftotextPath, pdfdoc.DefaultCommand, "pdftotext binary used by the pdftotext extractor")
	flags.Duration(flagTimeout, lexdoc.DefaultTimeout, "PDF text extraction timeout (0 disables it)")
	flags.String(flagLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(flagLogFormat, "text", "log format: text or json")
	flags.Bool(flagImageText, false, "recognize text in images without alt text (needs an ocr build)")
	flags.String(flagOCRLanguage, ocr.DefaultLanguage, "Tesseract languages for --image-text")
	flags.String(flagMetricsFile, "", "write Prometheus metrics to this file after the run")

	root.AddCommand(convertCmd(a))
	root.AddCommand(sectionsCmd(a))
	root.AddCommand(versionCmd())

	return root
}

// setup loads the configuration file and builds the logger, metrics and
// OCR client.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if path, _ := flags.GetString(flagConfig); path != "" {
		cfg, err := loadConfigFile(path)
		if err != nil {
			return err
		}
		if err := applyConfigFile(flags, cfg); err != nil {
			return err
		}
	}

	s, err := readSettings(flags)
	if err != nil {
		return err
	}
	a.settings = s

	a.logger, err = newLogger(cmd.ErrOrStderr(), s.LogLevel, s.LogFormat)
	if err != nil {
		return err
	}

	if s.MetricsFile != "" {
		a.metrics = metrics.NewMetrics(metrics.InstanceInfo{Version: lexdoc.Version})
	}

	if s.ImageText {
		client, err := ocr.New(s.OCRLanguage)
		if err != nil {
			a.logger.WithError(err).Warn("image text recognition disabled")
		} else {
			a.ocr = client
		}
	}
	return nil
}

// run calls fn and then releases the OCR client and writes metrics, also
// when fn fails.
func (a *app) run(fn func() error) (err error) {
	defer func() {
		if terr := a.teardown(); err == nil {
			err = terr
		}
	}()
	return fn()
}

func (a *app) teardown() error {
	if a.ocr != nil {
		if err := a.ocr.Close(); err != nil {
			a.logger.WithError(err).Warn("closing OCR client")
		}
	}
	if a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.settings.MetricsFile); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}

// converter returns a configured converter for path.
func (a *app) converter(path string) *lexdoc.Converter {
	c := lexdoc.Open(path).
		WithTimeout(a.settings.Timeout).
		WithLogger(a.logger)

	if a.settings.Extractor == extractorPdftotext {
		c = c.WithExtractor(pdfdoc.CommandExtractor{Path: a.settings.PdftotextPath})
	} else {
		c = c.WithExtractor(pdfdoc.NativeExtractor{})
	}
	if a.metrics != nil {
		c = c.WithMetrics(a.metrics)
	}
	if a.ocr != nil {
		c = c.WithImageText(a.ocr)
	}
	return c
}

func newLogger(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger, nil
}
