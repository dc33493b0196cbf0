package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
	"questionnaire/internal/idgen"
	"questionnaire/internal/registry"
	"questionnaire/internal/service"
	"questionnaire/internal/source"

	"github.com/mark3labs/mcp-go/mcp"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	reg := registry.Default()
	store := editor.NewStore(editor.NewReducer(
		editor.WithIDFunc(idgen.Sequence("paste")),
		editor.WithTypeChecker(reg),
	))
	ed := service.NewEditorService(store, reg, idgen.Sequence("c"), nil)
	src := source.NewDir(dir)
	return New(Deps{
		Editor: ed,
		Loader: service.NewQuestionnaireLoader(src, ed, nil),
		List:   service.NewListLoader(src, nil),
	}), dir
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) string {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func callErr(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) error {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	_, err := h(context.Background(), req)
	if err == nil {
		t.Fatal("expected tool error")
	}
	return err
}

func decodeView(t *testing.T, text string) service.DocumentView {
	t.Helper()
	var v service.DocumentView
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		t.Fatalf("decode view: %v\n%s", err, text)
	}
	return v
}

func viewIDs(v service.DocumentView) string {
	ids := make([]string, len(v.ComponentList))
	for i, c := range v.ComponentList {
		ids[i] = c.ID
	}
	return strings.Join(ids, ",")
}

func TestNew_RegistersTools(t *testing.T) {
	s, _ := newTestServer(t)
	tools := s.MCP().ListTools()
	for _, name := range []string{
		"list_component_types", "get_document", "add_component", "select_component",
		"update_component_props", "delete_selected", "set_component_hidden",
		"toggle_component_locked", "copy_selected", "paste_copied", "select_prev",
		"select_next", "dispatch", "press_key", "load_questionnaire", "list_questionnaires",
	} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestAddComponent_UsesDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	text := call(t, s.handleAddComponent, map[string]any{"type": "questionInput"})

	var c domain.ComponentInstance
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.ID != "c1" || c.Type != domain.ComponentTypeInput {
		t.Errorf("unexpected component: %+v", c)
	}
	if c.Props["placeholder"] == nil {
		t.Errorf("expected default placeholder, props = %v", c.Props)
	}
	if got := s.editor.State().SelectedID; got != "c1" {
		t.Errorf("selected = %q, want c1", got)
	}
}

func TestAddComponent_UnknownType(t *testing.T) {
	s, _ := newTestServer(t)
	err := callErr(t, s.handleAddComponent, map[string]any{"type": "questionSlider"})
	if !strings.Contains(err.Error(), "questionTitle") {
		t.Errorf("error should list known types: %v", err)
	}
	if n := len(s.editor.State().ComponentList); n != 0 {
		t.Errorf("document changed: %d components", n)
	}
}

func TestEditingFlow(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleAddComponent, map[string]any{"type": "questionTitle"})
	call(t, s.handleAddComponent, map[string]any{"type": "questionInput"})
	call(t, s.handleAddComponent, map[string]any{"type": "questionRadio"})

	v := decodeView(t, call(t, s.handleSelectComponent, map[string]any{"id": "c1"}))
	if v.Selected == nil || v.Selected.ID != "c1" {
		t.Fatalf("selected = %+v", v.Selected)
	}

	v = decodeView(t, call(t, s.handleUpdateComponentProps, map[string]any{
		"id": "c1", "props": `{"text":"Customer survey"}`,
	}))
	if v.ComponentList[0].Props["text"] != "Customer survey" {
		t.Errorf("props = %v", v.ComponentList[0].Props)
	}
	if v.ComponentList[0].Props["level"] == nil {
		t.Error("merge dropped existing props")
	}

	call(t, s.handleCopySelected, nil)
	v = decodeView(t, call(t, s.handlePasteCopied, nil))
	if viewIDs(v) != "c1,paste1,c2,c3" || v.SelectedID != "paste1" || !v.HasClipboard {
		t.Fatalf("after paste: ids=%s selected=%s", viewIDs(v), v.SelectedID)
	}

	v = decodeView(t, call(t, s.handleSelectNext, nil))
	if v.SelectedID != "c2" {
		t.Errorf("select_next: selected = %s", v.SelectedID)
	}
	v = decodeView(t, call(t, s.handleSelectPrev, nil))
	if v.SelectedID != "paste1" {
		t.Errorf("select_prev: selected = %s", v.SelectedID)
	}

	v = decodeView(t, call(t, s.handleDeleteSelected, nil))
	if viewIDs(v) != "c1,c2,c3" || v.SelectedID != "c2" {
		t.Errorf("after delete: ids=%s selected=%s", viewIDs(v), v.SelectedID)
	}

	v = decodeView(t, call(t, s.handleSetComponentHidden, map[string]any{"id": "c2", "hidden": true}))
	if !v.ComponentList[1].Hidden || v.SelectedID != "c3" {
		t.Errorf("after hide: %+v selected=%s", v.ComponentList[1], v.SelectedID)
	}

	v = decodeView(t, call(t, s.handleToggleComponentLocked, map[string]any{"id": "c3"}))
	if !v.ComponentList[2].Locked {
		t.Error("expected c3 locked")
	}
}

func TestUpdateComponentProps_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleAddComponent, map[string]any{"type": "questionInput"})

	callErr(t, s.handleUpdateComponentProps, map[string]any{"id": "c1", "props": "{bad"})
	callErr(t, s.handleUpdateComponentProps, map[string]any{"id": "missing", "props": `{"a":1}`})
	callErr(t, s.handleUpdateComponentProps, map[string]any{"props": `{"a":1}`})
}

func TestDispatch(t *testing.T) {
	s, _ := newTestServer(t)
	v := decodeView(t, call(t, s.handleDispatch, map[string]any{
		"action":  "insert",
		"payload": `{"component":{"fe_id":"x","type":"questionParagraph","title":"P","props":{}}}`,
	}))
	if viewIDs(v) != "x" || v.SelectedID != "x" {
		t.Fatalf("after insert: ids=%s selected=%s", viewIDs(v), v.SelectedID)
	}

	v = decodeView(t, call(t, s.handleDispatch, map[string]any{"action": "deleteSelected"}))
	if len(v.ComponentList) != 0 || v.SelectedID != "" {
		t.Errorf("after delete: %+v", v)
	}

	callErr(t, s.handleDispatch, map[string]any{"action": "explode"})
	callErr(t, s.handleDispatch, map[string]any{"action": "select", "payload": "{"})
}

func TestPressKey(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleAddComponent, map[string]any{"type": "questionInput"})
	call(t, s.handleAddComponent, map[string]any{"type": "questionInput"})

	text := call(t, s.handlePressKey, map[string]any{"key": "backspace", "editingText": true})
	if !strings.Contains(text, "ignored") {
		t.Errorf("expected ignored while editing text, got %s", text)
	}
	if n := len(s.editor.State().ComponentList); n != 2 {
		t.Fatalf("components = %d, want 2", n)
	}

	v := decodeView(t, call(t, s.handlePressKey, map[string]any{"key": "upArrow"}))
	if v.SelectedID != "c1" {
		t.Errorf("selected = %s, want c1", v.SelectedID)
	}

	v = decodeView(t, call(t, s.handlePressKey, map[string]any{"key": "delete"}))
	if viewIDs(v) != "c2" || v.SelectedID != "c2" {
		t.Errorf("after delete key: ids=%s selected=%s", viewIDs(v), v.SelectedID)
	}

	text = call(t, s.handlePressKey, map[string]any{"key": "f5"})
	if !strings.Contains(text, "ignored") {
		t.Errorf("expected unbound key ignored, got %s", text)
	}
}

func TestLoadQuestionnaire(t *testing.T) {
	s, dir := newTestServer(t)
	doc := `{"title":"Team lunch","componentList":[
		{"fe_id":"a","type":"questionTitle","title":"T","props":{"text":"Lunch"}},
		{"fe_id":"b","type":"questionRadio","title":"Where","props":{}}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "lunch.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	text := call(t, s.handleLoadQuestionnaire, map[string]any{"id": "lunch"})
	var out struct {
		Questionnaire domain.QuestionnaireSummary `json:"questionnaire"`
		Document      service.DocumentView        `json:"document"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Questionnaire.Title != "Team lunch" {
		t.Errorf("title = %q", out.Questionnaire.Title)
	}
	if viewIDs(out.Document) != "a,b" || out.Document.SelectedID != "a" {
		t.Errorf("document ids=%s selected=%s", viewIDs(out.Document), out.Document.SelectedID)
	}

	callErr(t, s.handleLoadQuestionnaire, map[string]any{"id": "missing"})
	if got := viewIDs(s.editor.View()); got != "a,b" {
		t.Errorf("failed load changed document: %s", got)
	}
}

func TestListQuestionnaires(t *testing.T) {
	s, dir := newTestServer(t)
	for i := 0; i < 12; i++ {
		doc := `{"title":"Survey","isStar":` + map[bool]string{true: "true", false: "false"}[i%2 == 0] +
			`,"answerCount":1500,"createdAt":"2026-01-02T03:04:05Z"}`
		name := filepath.Join(dir, "q"+string(rune('a'+i))+".json")
		if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	text := call(t, s.handleListQuestionnaires, nil)
	if !strings.Contains(text, "Showing 10 of 12") || !strings.Contains(text, "more available") {
		t.Errorf("first page:\n%s", text)
	}
	if !strings.Contains(text, "1,500 answer(s)") || !strings.Contains(text, "ago") {
		t.Errorf("expected humanized counts and times:\n%s", text)
	}

	text = call(t, s.handleListQuestionnaires, map[string]any{"more": true})
	if !strings.Contains(text, "Showing 12 of 12") || strings.Contains(text, "more available") {
		t.Errorf("second page:\n%s", text)
	}

	text = call(t, s.handleListQuestionnaires, map[string]any{"isStar": true})
	if !strings.Contains(text, "Showing 6 of 6") {
		t.Errorf("starred:\n%s", text)
	}

	text = call(t, s.handleListQuestionnaires, map[string]any{"keyword": "nothing"})
	if text != "No questionnaires found" {
		t.Errorf("empty result: %s", text)
	}
}

func TestFormatList_CreatedLabel(t *testing.T) {
	now := time.Date(2026, 1, 5, 3, 4, 5, 0, time.UTC)
	st := service.ListState{
		Total: 1,
		Items: []domain.QuestionnaireSummary{{ID: "a", Title: "T", IsPublished: true, CreatedAt: "2026-01-02T03:04:05Z"}},
	}
	text := formatList(st, now)
	if !strings.Contains(text, "created 3 days ago") || !strings.Contains(text, "published") {
		t.Errorf("unexpected:\n%s", text)
	}

	st.Items[0].CreatedAt = "yesterday"
	if text := formatList(st, now); !strings.Contains(text, "created yesterday") {
		t.Errorf("unparseable time should be shown raw:\n%s", text)
	}
}

func TestResources(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleAddComponent, map[string]any{"type": "questionCheckbox"})

	contents, err := s.handleDocumentResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc := contents[0].(mcp.TextResourceContents)
	if tc.URI != documentURI || !strings.Contains(tc.Text, `"fe_id": "c1"`) {
		t.Errorf("document resource: %+v", tc)
	}

	contents, err = s.handleRegistryResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc = contents[0].(mcp.TextResourceContents)
	if !strings.Contains(tc.Text, "questionTextarea") || !strings.Contains(tc.Text, `"groups"`) {
		t.Errorf("registry resource missing entries:\n%s", tc.Text)
	}
}

func TestToolsWithoutSource(t *testing.T) {
	reg := registry.Default()
	ed := service.NewEditorService(editor.NewStore(nil), reg, nil, nil)
	s := New(Deps{Editor: ed})
	callErr(t, s.handleLoadQuestionnaire, map[string]any{"id": "x"})
	callErr(t, s.handleListQuestionnaires, nil)
}
