package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
	"questionnaire/internal/registry"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerEditorTools() {
	// ── list_component_types ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_component_types",
		mcp.WithDescription("List the component types that can be added to a questionnaire, with their default props"),
	), s.handleListComponentTypes)

	// ── get_document ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the component list, the selected component and whether the clipboard holds a component"),
	), s.handleGetDocument)

	// ── add_component ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_component",
		mcp.WithDescription("Add a component with default props after the selected component (or at the end) and select it"),
		mcp.WithString("type",
			mcp.Description("Component type, e.g. questionTitle, questionInput, questionRadio (see list_component_types)"),
			mcp.Required(),
		),
	), s.handleAddComponent)

	// ── select_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_component",
		mcp.WithDescription("Select a component by id. An empty id clears the selection."),
		mcp.WithString("id", mcp.Description("Component id (fe_id)")),
	), s.handleSelectComponent)

	// ── update_component_props ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_component_props",
		mcp.WithDescription("Merge props into a component. Keys not given keep their values."),
		mcp.WithString("id", mcp.Description("Component id (fe_id)"), mcp.Required()),
		mcp.WithString("props",
			mcp.Description(`JSON object of props to merge, e.g. {"title":"Your name","placeholder":"Type here"}`),
			mcp.Required(),
		),
	), s.handleUpdateComponentProps)

	// ── delete_selected ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_selected",
		mcp.WithDescription("Delete the selected component and select its visible neighbour"),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteSelected)

	// ── set_component_hidden ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_component_hidden",
		mcp.WithDescription("Hide or show a component. Hiding the selected component moves the selection."),
		mcp.WithString("id", mcp.Description("Component id (fe_id)"), mcp.Required()),
		mcp.WithBoolean("hidden", mcp.Description("true to hide, false to show"), mcp.Required()),
	), s.handleSetComponentHidden)

	// ── toggle_component_locked ────────────────────────
	s.mcp.AddTool(mcp.NewTool("toggle_component_locked",
		mcp.WithDescription("Lock or unlock a component"),
		mcp.WithString("id", mcp.Description("Component id (fe_id)"), mcp.Required()),
	), s.handleToggleComponentLocked)

	// ── copy_selected / paste_copied ───────────────────
	s.mcp.AddTool(mcp.NewTool("copy_selected",
		mcp.WithDescription("Copy the selected component to the clipboard"),
	), s.handleCopySelected)
	s.mcp.AddTool(mcp.NewTool("paste_copied",
		mcp.WithDescription("Paste the clipboard as a new component with a fresh id after the selection"),
	), s.handlePasteCopied)

	// ── select_prev / select_next ──────────────────────
	s.mcp.AddTool(mcp.NewTool("select_prev",
		mcp.WithDescription("Select the component above the current selection"),
	), s.handleSelectPrev)
	s.mcp.AddTool(mcp.NewTool("select_next",
		mcp.WithDescription("Select the component below the current selection"),
	), s.handleSelectNext)

	// ── dispatch ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("dispatch",
		mcp.WithDescription("Apply a raw editor action by name: reset, select, insert, updateProps, deleteSelected, setHidden, toggleLocked, copySelected, pasteCopied, selectPrev, selectNext"),
		mcp.WithString("action", mcp.Description("Action name"), mcp.Required()),
		mcp.WithString("payload", mcp.Description(`JSON payload, e.g. {"id":"abc","hidden":true} for setHidden`)),
	), s.handleDispatch)

	// ── press_key ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("press_key",
		mcp.WithDescription("Send a canvas keyboard shortcut: backspace, delete, ctrl.c, meta.c, ctrl.v, meta.v, uparrow, downarrow"),
		mcp.WithString("key", mcp.Description("Key chord"), mcp.Required()),
		mcp.WithBoolean("editingText", mcp.Description("true when a text field has focus (the key is then ignored)")),
	), s.handlePressKey)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListComponentTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"groups":     s.editor.Registry().Groups(),
		"components": s.editor.Registry().Entries(),
	})
}

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.documentResult()
}

func (s *Server) handleAddComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	t, err := requireString(args, "type")
	if err != nil {
		return nil, err
	}
	c, err := s.editor.AddComponent(ctx, domain.ComponentType(t))
	if err != nil {
		if errors.Is(err, registry.ErrUnknownComponentType) {
			return nil, fmt.Errorf("unknown component type %q (known: %s)", t, s.knownTypes())
		}
		return nil, err
	}
	return jsonResult(c)
}

func (s *Server) handleSelectComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.SelectComponent(ctx, getString(req.GetArguments(), "id", "")))
}

func (s *Server) handleUpdateComponentProps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	raw, err := requireString(args, "props")
	if err != nil {
		return nil, err
	}
	var props domain.Props
	if err := parseJSON(raw, &props); err != nil {
		return nil, fmt.Errorf("invalid props JSON: %w", err)
	}
	next := s.editor.UpdateComponentProps(ctx, id, props)
	if _, ok := next.Find(id); !ok {
		return nil, fmt.Errorf("component %s not found", id)
	}
	return snapshotResult(next)
}

func (s *Server) handleDeleteSelected(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.DeleteSelected(ctx))
}

func (s *Server) handleSetComponentHidden(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	return snapshotResult(s.editor.SetHidden(ctx, id, getBool(args, "hidden", true)))
}

func (s *Server) handleToggleComponentLocked(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "id")
	if err != nil {
		return nil, err
	}
	return snapshotResult(s.editor.ToggleLocked(ctx, id))
}

func (s *Server) handleCopySelected(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.CopySelected(ctx))
}

func (s *Server) handlePasteCopied(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.PasteCopied(ctx))
}

func (s *Server) handleSelectPrev(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.SelectPrev(ctx))
}

func (s *Server) handleSelectNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.editor.SelectNext(ctx))
}

func (s *Server) handleDispatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, err := requireString(args, "action")
	if err != nil {
		return nil, err
	}
	a, err := editor.DecodeAction(name, []byte(getString(args, "payload", "")))
	if err != nil {
		return nil, err
	}
	return snapshotResult(s.editor.Dispatch(ctx, a))
}

func (s *Server) handlePressKey(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	key, err := requireString(args, "key")
	if err != nil {
		return nil, err
	}
	next, ok := s.keymap.HandleKey(ctx, key, getBool(args, "editingText", false))
	if !ok {
		return textResult(fmt.Sprintf("Key %q ignored (bound keys: %s)", key, strings.Join(s.keymap.Keys(), ", "))), nil
	}
	return snapshotResult(next)
}

func (s *Server) knownTypes() string {
	entries := s.editor.Registry().Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = string(e.Type)
	}
	return strings.Join(names, ", ")
}
