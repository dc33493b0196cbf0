package editor_test

import (
	"testing"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
)

func comps(ids ...string) []domain.ComponentInstance {
	out := make([]domain.ComponentInstance, len(ids))
	for i, id := range ids {
		out[i] = domain.ComponentInstance{
			ID:    id,
			Type:  domain.ComponentTypeInput,
			Title: "Input " + id,
			Props: domain.Props{"title": id},
		}
	}
	return out
}

func TestNextSelectedID(t *testing.T) {
	hiddenB := comps("A", "B", "C", "D")
	hiddenB[1].Hidden = true

	tests := []struct {
		name    string
		removed string
		list    []domain.ComponentInstance
		want    string
	}{
		{"middle picks following", "B", comps("A", "B", "C"), "C"},
		{"tail picks preceding", "C", comps("A", "B", "C"), "B"},
		{"head picks following", "A", comps("A", "B", "C"), "B"},
		{"sole element", "A", comps("A"), ""},
		{"absent id", "Z", comps("A", "B"), ""},
		{"empty list", "A", nil, ""},
		{"empty id", "", comps("A", "B"), ""},
		{"skips hidden following", "A", hiddenB, "C"},
		{"skips hidden preceding", "C", hiddenB[:3], "A"},
		{"hidden removed id is absent", "B", hiddenB, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editor.NextSelectedID(tt.removed, tt.list); got != tt.want {
				t.Errorf("NextSelectedID(%q) = %q, want %q", tt.removed, got, tt.want)
			}
		})
	}
}

func TestNextSelectedID_OnlyOtherVisibleIsHidden(t *testing.T) {
	list := comps("A", "B")
	list[1].Hidden = true
	if got := editor.NextSelectedID("A", list); got != "" {
		t.Errorf("expected empty selection, got %q", got)
	}
}

func TestNextSelectedID_Deterministic(t *testing.T) {
	list := comps("A", "B", "C", "D")
	first := editor.NextSelectedID("C", list)
	for i := 0; i < 10; i++ {
		if got := editor.NextSelectedID("C", list); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}
