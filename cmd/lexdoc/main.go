// Command lexdoc converts DOCX and PDF legal documents to HTML and lists
// their sections.
//
//	lexdoc convert regulation.docx -o regulation.html
//	lexdoc sections --config lexdoc.yaml scan.pdf
package main

import (
	"fmt"
	"os"

	"github.com/tsawler/lexdoc"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch lexdoc.KindOf(err) {
	case lexdoc.InputError:
		return 2
	case lexdoc.StructuralParseError:
		return 3
	case lexdoc.ExternalToolError:
		return 4
	default:
		return 1
	}
}
