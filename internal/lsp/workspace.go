package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

// settingsSection is the key of the server's settings in the client
// configuration.
const settingsSection = "kidl"

// DidChangeConfiguration handles workspace configuration changes from the client.
// Settings are read from the "kidl" section:
//
//	{
//	  "kidl": {
//	    "maxProblems": 100,
//	    "trace": "off",
//	    "semanticTokens": true
//	  }
//	}
func DidChangeConfiguration(context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	srv, ok := currentServer("DidChangeConfiguration")
	if !ok {
		return nil
	}

	settingsMap, ok := params.Settings.(map[string]any)
	if !ok {
		return nil
	}
	settings, ok := settingsMap[settingsSection].(map[string]any)
	if !ok {
		return nil
	}

	if maxProblems, ok := settings["maxProblems"].(float64); ok {
		srv.UpdateConfig(func(cfg *server.Config) {
			cfg.MaxProblems = int(maxProblems)
		})
		log.Infof("configuration updated: maxProblems = %d", int(maxProblems))
	}

	if trace, ok := settings["trace"].(string); ok {
		srv.UpdateConfig(func(cfg *server.Config) {
			cfg.Trace = trace
		})
		log.Infof("configuration updated: trace = %s", trace)
	}

	if enabled, ok := settings["semanticTokens"].(bool); ok {
		srv.UpdateConfig(func(cfg *server.Config) {
			cfg.SemanticTokens = enabled
		})
		if !enabled {
			srv.SemanticTokensCache().Clear()
		}
		log.Infof("configuration updated: semanticTokens = %t", enabled)
	}

	return nil
}

// DidChangeWorkspaceFolders handles changes to workspace folders. Added
// folders are indexed; removed folders stop being reported as workspace
// roots.
func DidChangeWorkspaceFolders(context *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	srv, ok := currentServer("DidChangeWorkspaceFolders")
	if !ok {
		return nil
	}

	removed := make(map[string]struct{}, len(params.Event.Removed))
	for _, folder := range params.Event.Removed {
		log.Infof("workspace folder removed: %s (%s)", folder.Name, folder.URI)
		if path, err := uriToPath(folder.URI); err == nil {
			removed[path] = struct{}{}
		}
	}

	var folders []string
	for _, folder := range srv.GetWorkspaceFolders() {
		if _, gone := removed[folder]; !gone {
			folders = append(folders, folder)
		}
	}

	var added []string
	for _, folder := range params.Event.Added {
		log.Infof("workspace folder added: %s (%s)", folder.Name, folder.URI)
		path, err := uriToPath(folder.URI)
		if err != nil {
			log.Warningf("could not convert URI to path: %s", folder.URI)
			continue
		}
		added = append(added, path)
	}

	srv.SetWorkspaceFolders(append(folders, added...))
	if len(added) > 0 {
		go indexFolders(srv, added)
	}
	return nil
}
