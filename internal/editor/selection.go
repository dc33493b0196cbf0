package editor

import "questionnaire/internal/domain"

// NextSelectedID returns the id that should be selected once removedID leaves
// the visible set. Only visible instances are considered: the following
// visible sibling wins, unless removedID is the last visible one, in which case
// the preceding sibling is chosen. The result is "" when removedID is not
// visible or nothing else would remain.
func NextSelectedID(removedID string, list []domain.ComponentInstance) string {
	visible := make([]string, 0, len(list))
	index := -1
	for _, c := range list {
		if c.Hidden {
			continue
		}
		if c.ID == removedID && index < 0 {
			index = len(visible)
		}
		visible = append(visible, c.ID)
	}
	if index < 0 || len(visible) <= 1 {
		return ""
	}
	if index+1 == len(visible) {
		return visible[index-1]
	}
	return visible[index+1]
}

// clonePasted copies the clipboard entry under a fresh id. The clipboard
// value itself is left untouched.
func clonePasted(copied domain.ComponentInstance, newID string) domain.ComponentInstance {
	c := copied.Clone()
	c.ID = newID
	return c
}
