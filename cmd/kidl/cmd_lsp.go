package main

import (
	"github.com/spf13/cobra"
	glspserver "github.com/tliron/glsp/server"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/lsp"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

const serverName = "kidl-lsp"

func newLSPCmd(gs *globalState) *cobra.Command {
	var (
		tcpMode bool
		address string
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server.

The server speaks JSON-RPC over stdio unless --tcp is given.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := newServer(gs)
			lsp.SetServer(srv)

			handler := lsp.NewHandler()
			glspServer := glspserver.NewServer(&handler, serverName, gs.config.LogLevel == "debug")

			if tcpMode {
				log.Infof("%s %s listening on %s", serverName, version, address)
				return glspServer.RunTCP(address)
			}
			log.Infof("%s %s serving stdio", serverName, version)
			return glspServer.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&tcpMode, "tcp", false, "run server in TCP mode (for debugging)")
	cmd.Flags().StringVar(&address, "address", "127.0.0.1:8765", "TCP address to listen on (used with --tcp)")

	return cmd
}

// newServer builds the server state over the real filesystem.
func newServer(gs *globalState) *server.Server {
	db := database.New(syntax.NewNodeCache())
	ws := document.NewWorkspace(db, gs.fs)
	return server.New(ws, gs.config.Server())
}
