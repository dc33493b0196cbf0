package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"questionnaire/internal/domain"
	"questionnaire/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the questionnaire editor.
// It exposes tools and resources so AI agents can build a questionnaire.
type Server struct {
	mcp *server.MCPServer

	editor *service.EditorService
	loader *service.QuestionnaireLoader
	list   *service.ListLoader
	keymap *service.Keymap
}

// Deps holds the services the MCP server drives. Loader and List may be nil
// when no questionnaire source is configured; their tools then report an error.
type Deps struct {
	Editor *service.EditorService
	Loader *service.QuestionnaireLoader
	List   *service.ListLoader
	Keymap *service.Keymap
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		editor: deps.Editor,
		loader: deps.Loader,
		list:   deps.List,
		keymap: deps.Keymap,
	}
	if s.keymap == nil {
		s.keymap = service.NewKeymap(deps.Editor)
	}

	s.mcp = server.NewMCPServer(
		"questionnaire-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerEditorTools()
	s.registerQuestionnaireTools()
	s.registerResources()

	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// documentResult returns the current document view.
func (s *Server) documentResult() (*mcp.CallToolResult, error) {
	return jsonResult(s.editor.View())
}

// snapshotResult renders the snapshot a tool's own dispatch produced.
func snapshotResult(st domain.DocumentState) (*mcp.CallToolResult, error) {
	return jsonResult(service.ViewOf(st))
}
