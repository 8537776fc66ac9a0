package analysis

import (
	"fmt"
	"slices"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// DiagnosticSource is reported as the source of every diagnostic.
const DiagnosticSource = "kidl"

// Diagnostic codes.
const (
	CodeSyntax    = "syntax"
	CodeDuplicate = "duplicate"
)

// Diagnostics returns the syntax errors of parsed followed by duplicate
// declaration warnings, sorted by position.
func Diagnostics(parsed *database.Parsed) []protocol.Diagnostic {
	text := parsed.File.Text
	diagnostics := make([]protocol.Diagnostic, 0, len(parsed.Errors))

	for _, err := range parsed.Errors {
		diagnostic, ok := convertSyntaxError(text, err)
		if !ok {
			continue
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	diagnostics = append(diagnostics, detectDuplicates(parsed.Schema(), text)...)

	SortDiagnostics(diagnostics)
	return diagnostics
}

// convertSyntaxError maps a byte-ranged syntax error onto LSP positions.
func convertSyntaxError(text rope.Rope, err syntax.SyntaxError) (protocol.Diagnostic, bool) {
	r, convErr := rangeOf(text, err.Range)
	if convErr != nil {
		log.Errorf("dropping syntax error %q: %s", err.Message, convErr)
		return protocol.Diagnostic{}, false
	}

	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: CodeSyntax},
		Source:   stringPtr(DiagnosticSource),
		Message:  err.Message,
	}, true
}

// detectDuplicates warns about struct names declared more than once in a
// file and field names repeated within one struct.
func detectDuplicates(schema ast.Schema, text rope.Rope) []protocol.Diagnostic {
	if schema.Syntax() == nil {
		return nil
	}

	var diagnostics []protocol.Diagnostic
	structs := make(map[string]struct{})

	for s := range schema.Declarations() {
		if name, ok := s.Name(); ok {
			if _, exists := structs[name.Text()]; exists {
				diagnostics = appendDuplicate(diagnostics, text, name, "struct")
			}
			structs[name.Text()] = struct{}{}
		}

		fields := make(map[string]struct{})
		for field := range s.Fields() {
			name, ok := field.Name()
			if !ok {
				continue
			}
			if _, exists := fields[name.Text()]; exists {
				diagnostics = appendDuplicate(diagnostics, text, name, "field")
			}
			fields[name.Text()] = struct{}{}
		}
	}

	return diagnostics
}

func appendDuplicate(diagnostics []protocol.Diagnostic, text rope.Rope, name ast.Ident, what string) []protocol.Diagnostic {
	r, err := rangeOf(text, name.TextRange())
	if err != nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityWarning
	return append(diagnostics, protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: CodeDuplicate},
		Source:   stringPtr(DiagnosticSource),
		Message:  fmt.Sprintf("Duplicate %s '%s'", what, name.Text()),
	})
}

// SortDiagnostics sorts diagnostics by position (line first, then column).
func SortDiagnostics(diagnostics []protocol.Diagnostic) {
	slices.SortStableFunc(diagnostics, func(a, b protocol.Diagnostic) int {
		if a.Range.Start.Line != b.Range.Start.Line {
			return int(a.Range.Start.Line) - int(b.Range.Start.Line)
		}
		return int(a.Range.Start.Character) - int(b.Range.Start.Character)
	})
}

// TruncateDiagnostics keeps at most limit diagnostics. A limit of zero or
// less keeps everything.
func TruncateDiagnostics(diagnostics []protocol.Diagnostic, limit int) []protocol.Diagnostic {
	if limit <= 0 || len(diagnostics) <= limit {
		return diagnostics
	}
	return diagnostics[:limit]
}

func stringPtr(s string) *string {
	return &s
}
