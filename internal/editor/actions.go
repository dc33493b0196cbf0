package editor

import "questionnaire/internal/domain"

// Action is one document transition. The concrete types below form a closed
// set; Reducer.Reduce ignores any other implementation.
type Action interface {
	// Name is the wire name used by DecodeAction.
	Name() string
}

// Reset replaces the whole document, typically after a questionnaire is loaded.
type Reset struct {
	State domain.DocumentState
}

// Select sets the selection without checking that the id exists.
type Select struct {
	ID string `json:"id"`
}

// Insert places a new instance after the current selection, or at the end.
type Insert struct {
	Component domain.ComponentInstance `json:"component"`
}

// UpdateProps shallow-merges Props into the instance's props.
type UpdateProps struct {
	ID    string       `json:"id"`
	Props domain.Props `json:"props"`
}

// DeleteSelected removes the selected instance.
type DeleteSelected struct{}

// SetHidden shows or hides an instance.
type SetHidden struct {
	ID     string `json:"id"`
	Hidden bool   `json:"hidden"`
}

// ToggleLocked flips the locked flag of an instance.
type ToggleLocked struct {
	ID string `json:"id"`
}

// CopySelected stores a deep copy of the selected instance on the clipboard.
type CopySelected struct{}

// PasteCopied inserts a re-identified copy of the clipboard.
type PasteCopied struct{}

// SelectPrev moves the selection one step up the full list.
type SelectPrev struct{}

// SelectNext moves the selection one step down the full list.
type SelectNext struct{}

const (
	NameReset          = "reset"
	NameSelect         = "select"
	NameInsert         = "insert"
	NameUpdateProps    = "updateProps"
	NameDeleteSelected = "deleteSelected"
	NameSetHidden      = "setHidden"
	NameToggleLocked   = "toggleLocked"
	NameCopySelected   = "copySelected"
	NamePasteCopied    = "pasteCopied"
	NameSelectPrev     = "selectPrev"
	NameSelectNext     = "selectNext"
)

func (Reset) Name() string          { return NameReset }
func (Select) Name() string         { return NameSelect }
func (Insert) Name() string         { return NameInsert }
func (UpdateProps) Name() string    { return NameUpdateProps }
func (DeleteSelected) Name() string { return NameDeleteSelected }
func (SetHidden) Name() string      { return NameSetHidden }
func (ToggleLocked) Name() string   { return NameToggleLocked }
func (CopySelected) Name() string   { return NameCopySelected }
func (PasteCopied) Name() string    { return NamePasteCopied }
func (SelectPrev) Name() string     { return NameSelectPrev }
func (SelectNext) Name() string     { return NameSelectNext }
