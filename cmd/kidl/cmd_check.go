package main

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"golang.org/x/sync/errgroup"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

// errCheckFailed is returned when at least one file has errors.
var errCheckFailed = errors.New("check failed")

const (
	checkMaxDepth = 10
	checkMaxFiles = 10000
)

func newCheckCmd(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report syntax errors and warnings in KIDL files",
		Long: `Parse every schema file under the given paths and report problems as
path:line:column: message, one per line. Directories are searched for .kidl
files. Lines and columns are 1-based; columns count UTF-16 code units.

The command exits with a non-zero status if any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(gs, args)
		},
	}
}

// fileReport holds the diagnostics of one file.
type fileReport struct {
	path        string
	diagnostics []protocol.Diagnostic
}

func runCheck(gs *globalState, args []string) error {
	var paths []string
	for _, arg := range args {
		found, err := workspace.Discover(gs.ctx, gs.fs, arg, checkMaxDepth, checkMaxFiles)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	db := database.New(syntax.NewNodeCache())
	reports := make([]fileReport, len(paths))

	g, ctx := errgroup.WithContext(gs.ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := document.ReadFile(gs.fs, path)
			if err != nil {
				return err
			}
			parsed := db.Parse(db.PushRope(path, text))
			reports[i] = fileReport{path: path, diagnostics: analysis.Diagnostics(parsed)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, report := range reports {
		for _, d := range report.diagnostics {
			severity := protocol.DiagnosticSeverityError
			if d.Severity != nil {
				severity = *d.Severity
			}

			prefix := ""
			if severity == protocol.DiagnosticSeverityError {
				failed = true
			} else {
				prefix = "warning: "
			}
			fmt.Fprintf(gs.stdout, "%s:%d:%d: %s%s\n",
				report.path, d.Range.Start.Line+1, d.Range.Start.Character+1, prefix, d.Message)
		}
	}

	stats := db.Stats()
	log.Debugf("checked %d file(s), %d parse(s)", len(paths), stats.Misses)

	if failed {
		return errCheckFailed
	}
	return nil
}
