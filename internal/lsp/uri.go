package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// uriToPath converts a file:// URI to a clean filesystem path. Other URIs
// (untitled:, inmemory:) are used verbatim as document keys.
func uriToPath(uri protocol.DocumentUri) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
