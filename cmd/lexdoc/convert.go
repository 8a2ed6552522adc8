package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func convertCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a DOCX or PDF document to HTML",
		Long: `Convert a DOCX or PDF document into a self-contained HTML document.

Examples:
  lexdoc convert regulation.docx > regulation.html
  lexdoc convert --extractor pdftotext --timeout 2m scan.pdf -o scan.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func() error {
				html, err := a.converter(args[0]).HTML(cmd.Context())
				if err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write([]byte(html + "\n"))
					return err
				}
				if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
					return errors.Wrap(err, "writing output")
				}
				a.logger.WithField("output", output).Info("wrote HTML")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write HTML to this file instead of stdout")
	return cmd
}
