package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	documentURI = "questionnaire://document"
	registryURI = "questionnaire://registry"
)

func (s *Server) registerResources() {
	// ── questionnaire://document ───────────────────────
	s.mcp.AddResource(mcp.NewResource(
		documentURI,
		"Questionnaire Document",
		mcp.WithResourceDescription("The component list being edited, the selection and the clipboard state"),
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentResource)

	// ── questionnaire://registry ───────────────────────
	s.mcp.AddResource(mcp.NewResource(
		registryURI,
		"Component Types",
		mcp.WithResourceDescription("Palette groups and component types with their default props"),
		mcp.WithMIMEType("application/json"),
	), s.handleRegistryResource)
}

func (s *Server) handleDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(documentURI, s.editor.View())
}

func (s *Server) handleRegistryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	reg := s.editor.Registry()
	return jsonResource(registryURI, map[string]any{
		"groups":     reg.Groups(),
		"components": reg.Entries(),
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
