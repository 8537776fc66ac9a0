package workspace

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
)

// SymbolLocation is a symbol found somewhere in the workspace.
type SymbolLocation struct {
	Name          string
	Kind          protocol.SymbolKind
	Location      protocol.Location
	ContainerName string
	Detail        string
}

// Search returns the symbols of every file in snap whose names contain
// query, ignoring case. An empty query matches everything. Results follow
// file path order, then document order. maxResults <= 0 means no limit.
func Search(snap *database.Snapshot, query string, maxResults int) []SymbolLocation {
	queryLower := strings.ToLower(query)

	var results []SymbolLocation
	for file := range snap.Files() {
		parsed := snap.Parse(file)
		uri := PathToURI(file.Path)

		for _, symbol := range analysis.DocumentSymbols(parsed.Schema(), file.Text) {
			if collect(&results, symbol, "", uri, queryLower, maxResults) {
				return results
			}
		}
	}
	return results
}

// collect appends symbol and its children when they match and reports
// whether the result limit was reached.
func collect(results *[]SymbolLocation, symbol protocol.DocumentSymbol, container, uri, queryLower string, maxResults int) bool {
	if strings.Contains(strings.ToLower(symbol.Name), queryLower) {
		loc := SymbolLocation{
			Name:          symbol.Name,
			Kind:          symbol.Kind,
			Location:      protocol.Location{URI: uri, Range: symbol.SelectionRange},
			ContainerName: container,
		}
		if symbol.Detail != nil {
			loc.Detail = *symbol.Detail
		}
		*results = append(*results, loc)
		if maxResults > 0 && len(*results) >= maxResults {
			return true
		}
	}

	for _, child := range symbol.Children {
		if collect(results, child, symbol.Name, uri, queryLower, maxResults) {
			return true
		}
	}
	return false
}
