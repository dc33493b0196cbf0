package service

import (
	"context"
	"strings"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
)

// Key chords understood by the canvas.
const (
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyCtrlC     = "ctrl.c"
	KeyMetaC     = "meta.c"
	KeyCtrlV     = "ctrl.v"
	KeyMetaV     = "meta.v"
	KeyUpArrow   = "uparrow"
	KeyDownArrow = "downarrow"
)

// Keymap translates canvas key presses into editor transitions.
type Keymap struct {
	editor   *EditorService
	bindings map[string]func() editor.Action
}

// NewKeymap binds the default canvas shortcuts.
func NewKeymap(ed *EditorService) *Keymap {
	del := func() editor.Action { return editor.DeleteSelected{} }
	cp := func() editor.Action { return editor.CopySelected{} }
	paste := func() editor.Action { return editor.PasteCopied{} }
	return &Keymap{
		editor: ed,
		bindings: map[string]func() editor.Action{
			KeyBackspace: del,
			KeyDelete:    del,
			KeyCtrlC:     cp,
			KeyMetaC:     cp,
			KeyCtrlV:     paste,
			KeyMetaV:     paste,
			KeyUpArrow:   func() editor.Action { return editor.SelectPrev{} },
			KeyDownArrow: func() editor.Action { return editor.SelectNext{} },
		},
	}
}

// Action returns the transition bound to key, if any.
func (k *Keymap) Action(key string) (editor.Action, bool) {
	f, ok := k.bindings[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, false
	}
	return f(), true
}

// HandleKey dispatches the transition bound to key and returns the snapshot
// it produced. Presses made while a text field has focus belong to that
// field and are ignored.
func (k *Keymap) HandleKey(ctx context.Context, key string, editingText bool) (domain.DocumentState, bool) {
	if editingText {
		return domain.DocumentState{}, false
	}
	a, ok := k.Action(key)
	if !ok {
		return domain.DocumentState{}, false
	}
	return k.editor.Dispatch(ctx, a), true
}

// Keys returns the bound key chords.
func (k *Keymap) Keys() []string {
	return []string{KeyBackspace, KeyDelete, KeyCtrlC, KeyMetaC, KeyCtrlV, KeyMetaV, KeyUpArrow, KeyDownArrow}
}
