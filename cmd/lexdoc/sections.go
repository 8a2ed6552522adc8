package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tsawler/lexdoc"
)

type sectionJSON struct {
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Number    string `json:"number"`
	Label     string `json:"label,omitempty"`
	Text      string `json:"text"`
	HTML      string `json:"html,omitempty"`
	SortOrder int    `json:"sort_order"`
	Parent    *int   `json:"parent"`
}

type referenceJSON struct {
	Source      int    `json:"source"`
	Target      *int   `json:"target"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type sectionsJSON struct {
	Sections   []sectionJSON   `json:"sections"`
	References []referenceJSON `json:"references"`
	HTML       string          `json:"html,omitempty"`
}

func sectionsCmd(a *app) *cobra.Command {
	var withHTML bool

	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "List the sections and cross references of a document as JSON",
		Long: `Convert a document and print its sections and cross references as JSON.

Parent and reference targets are section indices within the output.

Examples:
  lexdoc sections regulation.docx
  lexdoc sections --html scan.pdf | jq '.sections[] | select(.type == "section")'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func() error {
				res, err := a.converter(args[0]).Sections(cmd.Context())
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(toJSON(res, withHTML))
			})
		},
	}

	cmd.Flags().BoolVar(&withHTML, "html", false, "include section and document HTML")
	return cmd
}

func toJSON(res *lexdoc.Result, withHTML bool) sectionsJSON {
	out := sectionsJSON{
		Sections:   make([]sectionJSON, 0, len(res.Sections)),
		References: make([]referenceJSON, 0, len(res.References)),
	}
	if withHTML {
		out.HTML = res.HTML
	}

	for _, s := range res.Sections {
		sj := sectionJSON{
			Index:     s.Index,
			Type:      string(s.Type),
			Number:    s.Number,
			Label:     s.Label,
			Text:      s.Text,
			SortOrder: s.SortOrder,
			Parent:    s.Parent,
		}
		if withHTML {
			sj.HTML = s.HTML
		}
		out.Sections = append(out.Sections, sj)
	}
	for _, r := range res.References {
		out.References = append(out.References, referenceJSON{
			Source:      r.Source,
			Target:      r.Target,
			Kind:        string(r.Kind),
			Description: r.Description,
		})
	}
	return out
}

