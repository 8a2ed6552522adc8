package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/lexdoc"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lexdoc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lexdoc %s\n", lexdoc.Version)
			return err
		},
	}
}
