package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

func newParseCmd(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the syntax tree of KIDL files",
		Long: `Print the lossless syntax tree of each file followed by its syntax errors.

If no file is provided, reads the schema from stdin.`,
		RunE: func(_ *cobra.Command, args []string) error {
			db := database.New(syntax.NewNodeCache())

			if len(args) == 0 {
				text, err := rope.FromReader(gs.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				return printParse(gs.stdout, db.Parse(db.PushRope("<stdin>", text)))
			}

			for _, path := range args {
				text, err := document.ReadFile(gs.fs, path)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					fmt.Fprintf(gs.stdout, "== %s ==\n", path)
				}
				if err := printParse(gs.stdout, db.Parse(db.PushRope(path, text))); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printParse(w io.Writer, parsed *database.Parsed) error {
	if _, err := io.WriteString(w, syntax.Debug(parsed.Syntax())); err != nil {
		return err
	}
	for _, e := range parsed.Errors {
		if _, err := fmt.Fprintf(w, "error %d..%d: %s\n", e.Range.Start, e.Range.End, e.Message); err != nil {
			return err
		}
	}
	return nil
}
