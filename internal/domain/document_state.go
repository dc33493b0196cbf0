package domain

// DocumentState is the complete editable questionnaire document.
// A value handed out by the editor store is a snapshot and must not be mutated.
type DocumentState struct {
	SelectedID      string              `json:"selectedId" yaml:"selectedId"`
	ComponentList   []ComponentInstance `json:"componentList" yaml:"componentList"`
	CopiedComponent *ComponentInstance  `json:"copiedComponent" yaml:"copiedComponent"`
}

// Clone returns a deep copy of the state. Nil slices and pointers stay nil.
func (s DocumentState) Clone() DocumentState {
	out := DocumentState{SelectedID: s.SelectedID}
	if s.ComponentList != nil {
		out.ComponentList = make([]ComponentInstance, len(s.ComponentList))
		for i, c := range s.ComponentList {
			out.ComponentList[i] = c.Clone()
		}
	}
	if s.CopiedComponent != nil {
		cp := s.CopiedComponent.Clone()
		out.CopiedComponent = &cp
	}
	return out
}

// IndexOf returns the list position of id, or -1.
func (s DocumentState) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range s.ComponentList {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the instance with the given id.
func (s DocumentState) Find(id string) (ComponentInstance, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return ComponentInstance{}, false
	}
	return s.ComponentList[i], true
}
