package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
)

// PublishDiagnostics sends the diagnostics of parsed to the client, limited
// to maxProblems entries.
func PublishDiagnostics(context *glsp.Context, uri protocol.DocumentUri, parsed *database.Parsed, maxProblems int) {
	diagnostics := analysis.TruncateDiagnostics(analysis.Diagnostics(parsed), maxProblems)

	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)
	notify(context, protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// clearDiagnostics removes all diagnostics for uri from the client.
func clearDiagnostics(context *glsp.Context, uri protocol.DocumentUri) {
	notify(context, protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
}
