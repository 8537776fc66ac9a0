package lsp

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

// Hover handles the textDocument/hover request. Struct names and type
// references show the struct declaration, field names show the field.
func Hover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	req, ok := symbolAtPosition("Hover", params.TextDocument.URI, params.Position)
	if !ok {
		return nil, nil
	}

	kind := hoverMarkupKind(req.srv.GetClientCapabilities())
	block, quote := codeBlock, func(s string) string { return "`" + s + "`" }
	if kind == protocol.MarkupKindPlainText {
		block = func(s string) string { return s }
		quote = func(s string) string { return s }
	}

	var content string
	switch req.symbol.Kind {
	case analysis.SymbolField:
		content = block(analysis.FieldSignature(req.symbol.Field))
		if name, ok := req.symbol.Struct.Name(); ok {
			content += "\n\nField of " + quote(name.Text())
		}
	case analysis.SymbolStruct, analysis.SymbolTypeRef:
		defs := workspace.FindStructs(req.srv.Workspace().Snapshot(), req.symbol.Name, req.file.Path)
		if len(defs) == 0 {
			return nil, nil
		}
		content = block(analysis.StructSignature(defs[0].Struct))
		if defs[0].File.Path != req.file.Path {
			content += "\n\nDefined in " + quote(filepath.Base(defs[0].File.Path))
		}
		if len(defs) > 1 {
			content += fmt.Sprintf("\n\n%d declarations", len(defs))
		}
	}

	hover := &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  kind,
			Value: content,
		},
	}
	if rng, err := document.ByteRange(req.file.Text, req.symbol.Range.Start, req.symbol.Range.End); err == nil {
		hover.Range = &rng
	}
	return hover, nil
}

func codeBlock(code string) string {
	var sb strings.Builder
	sb.WriteString("```kidl\n")
	sb.WriteString(code)
	sb.WriteString("\n```")
	return sb.String()
}

// hoverMarkupKind picks the first hover format the client prefers that the
// server can produce. Clients that state no preference get markdown.
func hoverMarkupKind(caps *protocol.ClientCapabilities) protocol.MarkupKind {
	if caps == nil || caps.TextDocument == nil || caps.TextDocument.Hover == nil {
		return protocol.MarkupKindMarkdown
	}
	for _, kind := range caps.TextDocument.Hover.ContentFormat {
		if kind == protocol.MarkupKindMarkdown || kind == protocol.MarkupKindPlainText {
			return kind
		}
	}
	return protocol.MarkupKindMarkdown
}
