package service

import (
	"context"
	"fmt"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
	"questionnaire/internal/idgen"
	"questionnaire/internal/registry"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: the canvas surface over the document store
// ─────────────────────────────────────────────────────────────

// DocumentView is the payload of EventComponentsChanged.
type DocumentView struct {
	SelectedID    string                     `json:"selectedId"`
	ComponentList []domain.ComponentInstance `json:"componentList"`
	Selected      *domain.ComponentInstance  `json:"selected,omitempty"`
	HasClipboard  bool                       `json:"hasClipboard"`
}

// ViewOf derives the read view of a snapshot.
func ViewOf(s domain.DocumentState) DocumentView {
	list := s.ComponentList
	if list == nil {
		list = []domain.ComponentInstance{}
	}
	return DocumentView{
		SelectedID:    s.SelectedID,
		ComponentList: list,
		Selected:      editor.SelectedComponent(s),
		HasClipboard:  s.CopiedComponent != nil,
	}
}

// EditorService instantiates components from the registry and dispatches
// transitions. Every snapshot the store publishes is broadcast as
// EventComponentsChanged from the store's listener, so events leave in
// dispatch order even with several writers.
type EditorService struct {
	store       *editor.Store
	registry    *registry.Registry
	newID       idgen.Func
	unsubscribe func()
}

// NewEditorService creates an EditorService. newID may be nil to use
// idgen.New. emitter is called while the store is locked and must not
// dispatch.
func NewEditorService(store *editor.Store, reg *registry.Registry, newID idgen.Func, emitter EventEmitter) *EditorService {
	if newID == nil {
		newID = idgen.New
	}
	s := &EditorService{store: store, registry: reg, newID: newID, unsubscribe: func() {}}
	if emitter != nil {
		s.unsubscribe = store.Subscribe(func(next domain.DocumentState) {
			emitter.Emit(context.Background(), EventComponentsChanged, ViewOf(next))
		})
	}
	return s
}

// Close stops broadcasting snapshots.
func (s *EditorService) Close() {
	s.unsubscribe()
}

// Registry returns the component registry backing the palette.
func (s *EditorService) Registry() *registry.Registry {
	return s.registry
}

// State returns the current snapshot.
func (s *EditorService) State() domain.DocumentState {
	return s.store.State()
}

// View returns the derived read view of the current snapshot.
func (s *EditorService) View() DocumentView {
	return ViewOf(s.store.State())
}

// Dispatch applies a and returns the snapshot it produced.
func (s *EditorService) Dispatch(_ context.Context, a editor.Action) domain.DocumentState {
	return s.store.Dispatch(a)
}

// AddComponent creates an instance of the given type with default props and
// inserts it after the current selection.
func (s *EditorService) AddComponent(ctx context.Context, t domain.ComponentType) (*domain.ComponentInstance, error) {
	id := s.newID()
	if id == "" {
		return nil, fmt.Errorf("add component: %w", ErrNoID)
	}
	c, err := s.registry.NewInstance(t, id)
	if err != nil {
		return nil, fmt.Errorf("add component: %w", err)
	}
	next := s.Dispatch(ctx, editor.Insert{Component: c})
	placed, ok := next.Find(id)
	if !ok {
		return nil, fmt.Errorf("add component: id %q already in use", id)
	}
	return &placed, nil
}

// SelectComponent selects id.
func (s *EditorService) SelectComponent(ctx context.Context, id string) domain.DocumentState {
	return s.Dispatch(ctx, editor.Select{ID: id})
}

// UpdateComponentProps merges props into the instance with the given id.
func (s *EditorService) UpdateComponentProps(ctx context.Context, id string, props domain.Props) domain.DocumentState {
	return s.Dispatch(ctx, editor.UpdateProps{ID: id, Props: props})
}

// DeleteSelected removes the selected instance.
func (s *EditorService) DeleteSelected(ctx context.Context) domain.DocumentState {
	return s.Dispatch(ctx, editor.DeleteSelected{})
}

// SetHidden shows or hides an instance.
func (s *EditorService) SetHidden(ctx context.Context, id string, hidden bool) domain.DocumentState {
	return s.Dispatch(ctx, editor.SetHidden{ID: id, Hidden: hidden})
}

// ToggleLocked flips the locked flag of an instance.
func (s *EditorService) ToggleLocked(ctx context.Context, id string) domain.DocumentState {
	return s.Dispatch(ctx, editor.ToggleLocked{ID: id})
}

// CopySelected puts the selected instance on the clipboard.
func (s *EditorService) CopySelected(ctx context.Context) domain.DocumentState {
	return s.Dispatch(ctx, editor.CopySelected{})
}

// PasteCopied inserts a copy of the clipboard.
func (s *EditorService) PasteCopied(ctx context.Context) domain.DocumentState {
	return s.Dispatch(ctx, editor.PasteCopied{})
}

// SelectPrev moves the selection up.
func (s *EditorService) SelectPrev(ctx context.Context) domain.DocumentState {
	return s.Dispatch(ctx, editor.SelectPrev{})
}

// SelectNext moves the selection down.
func (s *EditorService) SelectNext(ctx context.Context) domain.DocumentState {
	return s.Dispatch(ctx, editor.SelectNext{})
}
