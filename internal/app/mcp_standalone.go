package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"questionnaire/internal/config"
	mcpserver "questionnaire/internal/mcp"
)

// ServeMCP runs the editor as an MCP server on stdin/stdout until the client
// disconnects or the process is interrupted.
func ServeMCP(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := New(cfg)
	if err != nil {
		return err
	}
	if err := a.Startup(ctx); err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Editor: a.Editor,
		Loader: a.Loader,
		List:   a.List,
		Keymap: a.Keymap,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	return mcpSrv.ServeStdio()
}
