// Package editor is the questionnaire document model: the action set, the
// reducer applying them and the single-writer store that owns the current
// snapshot.
package editor

import (
	"questionnaire/internal/domain"
	"questionnaire/internal/idgen"
)

// TypeChecker reports whether a component type may be placed on the canvas.
// *registry.Registry satisfies it.
type TypeChecker interface {
	Known(t domain.ComponentType) bool
}

// maxIDAttempts bounds re-draws when an injected generator repeats an id.
const maxIDAttempts = 8

// Reducer applies actions to document snapshots. Reduce never mutates its
// input: each transition works on a deep copy and returns it.
type Reducer struct {
	newID idgen.Func
	types TypeChecker
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithIDFunc replaces the id generator used by paste.
func WithIDFunc(f idgen.Func) Option {
	return func(r *Reducer) { r.newID = f }
}

// WithTypeChecker makes insert reject component types the checker does not know.
func WithTypeChecker(tc TypeChecker) Option {
	return func(r *Reducer) { r.types = tc }
}

// NewReducer creates a Reducer using idgen.New unless overridden.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{newID: idgen.New}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Reduce returns the state that follows prev under a. Invalid payloads and
// unknown actions yield prev unchanged.
func (r *Reducer) Reduce(prev domain.DocumentState, a Action) domain.DocumentState {
	switch a := a.(type) {
	case Reset:
		return a.State.Clone()
	case Select:
		return r.selectID(prev, a.ID)
	case Insert:
		return r.insert(prev, a.Component)
	case UpdateProps:
		return r.updateProps(prev, a)
	case DeleteSelected:
		return r.deleteSelected(prev)
	case SetHidden:
		return r.setHidden(prev, a)
	case ToggleLocked:
		return r.toggleLocked(prev, a.ID)
	case CopySelected:
		return r.copySelected(prev)
	case PasteCopied:
		return r.pasteCopied(prev)
	case SelectPrev:
		return r.step(prev, -1)
	case SelectNext:
		return r.step(prev, +1)
	}
	return prev
}

func (r *Reducer) selectID(prev domain.DocumentState, id string) domain.DocumentState {
	next := prev.Clone()
	next.SelectedID = id
	return next
}

func (r *Reducer) insert(prev domain.DocumentState, c domain.ComponentInstance) domain.DocumentState {
	if c.ID == "" || prev.IndexOf(c.ID) >= 0 {
		return prev
	}
	if r.types != nil && !r.types.Known(c.Type) {
		return prev
	}
	next := prev.Clone()
	insertAfterSelection(&next, c.Clone())
	return next
}

// insertAfterSelection places c right after the resolved selection, or at
// the end when nothing resolves, and selects it.
func insertAfterSelection(s *domain.DocumentState, c domain.ComponentInstance) {
	i := s.IndexOf(s.SelectedID)
	if i < 0 {
		s.ComponentList = append(s.ComponentList, c)
	} else {
		s.ComponentList = append(s.ComponentList, domain.ComponentInstance{})
		copy(s.ComponentList[i+2:], s.ComponentList[i+1:])
		s.ComponentList[i+1] = c
	}
	s.SelectedID = c.ID
}

func (r *Reducer) updateProps(prev domain.DocumentState, a UpdateProps) domain.DocumentState {
	i := prev.IndexOf(a.ID)
	if i < 0 {
		return prev
	}
	next := prev.Clone()
	next.ComponentList[i].Props = next.ComponentList[i].Props.Merge(a.Props)
	return next
}

func (r *Reducer) deleteSelected(prev domain.DocumentState) domain.DocumentState {
	removeID := prev.SelectedID
	i := prev.IndexOf(removeID)
	if i < 0 {
		return prev
	}
	next := prev.Clone()
	next.SelectedID = NextSelectedID(removeID, next.ComponentList)
	next.ComponentList = append(next.ComponentList[:i], next.ComponentList[i+1:]...)
	return next
}

func (r *Reducer) setHidden(prev domain.DocumentState, a SetHidden) domain.DocumentState {
	i := prev.IndexOf(a.ID)
	if i < 0 {
		return prev
	}
	next := prev.Clone()
	if a.Hidden {
		// Compute over the list before the flag changes so the instance is
		// still located in the visible subsequence.
		if a.ID == next.SelectedID {
			next.SelectedID = NextSelectedID(a.ID, next.ComponentList)
		}
	} else {
		next.SelectedID = a.ID
	}
	next.ComponentList[i].Hidden = a.Hidden
	return next
}

func (r *Reducer) toggleLocked(prev domain.DocumentState, id string) domain.DocumentState {
	i := prev.IndexOf(id)
	if i < 0 {
		return prev
	}
	next := prev.Clone()
	next.ComponentList[i].Locked = !next.ComponentList[i].Locked
	return next
}

func (r *Reducer) copySelected(prev domain.DocumentState) domain.DocumentState {
	selected, ok := prev.Find(prev.SelectedID)
	if !ok {
		return prev
	}
	next := prev.Clone()
	cp := selected.Clone()
	next.CopiedComponent = &cp
	return next
}

func (r *Reducer) pasteCopied(prev domain.DocumentState) domain.DocumentState {
	if prev.CopiedComponent == nil {
		return prev
	}
	id := r.newID()
	for attempt := 1; prev.IndexOf(id) >= 0 || id == ""; attempt++ {
		if attempt == maxIDAttempts {
			return prev
		}
		id = r.newID()
	}
	next := prev.Clone()
	insertAfterSelection(&next, clonePasted(*prev.CopiedComponent, id))
	return next
}

// step moves the selection by delta over the full list, hidden entries included.
func (r *Reducer) step(prev domain.DocumentState, delta int) domain.DocumentState {
	i := prev.IndexOf(prev.SelectedID)
	if i < 0 {
		return prev
	}
	j := i + delta
	if j < 0 || j >= len(prev.ComponentList) {
		return prev
	}
	next := prev.Clone()
	next.SelectedID = next.ComponentList[j].ID
	return next
}
