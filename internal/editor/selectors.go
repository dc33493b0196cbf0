package editor

import "questionnaire/internal/domain"

// SelectedComponent returns a copy of the selected instance, or nil when the
// selection does not resolve.
func SelectedComponent(s domain.DocumentState) *domain.ComponentInstance {
	c, ok := s.Find(s.SelectedID)
	if !ok {
		return nil
	}
	c = c.Clone()
	return &c
}

// VisibleComponents returns the respondent-facing instances in document order.
func VisibleComponents(s domain.DocumentState) []domain.ComponentInstance {
	out := make([]domain.ComponentInstance, 0, len(s.ComponentList))
	for _, c := range s.ComponentList {
		if !c.Hidden {
			out = append(out, c.Clone())
		}
	}
	return out
}
