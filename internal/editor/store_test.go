package editor_test

import (
	"reflect"
	"sync"
	"testing"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
)

func TestStore_StartsEmpty(t *testing.T) {
	s := editor.NewStore(nil)
	if got := s.State(); !reflect.DeepEqual(got, domain.DocumentState{}) {
		t.Fatalf("expected empty state, got %+v", got)
	}
}

func TestStore_ResetRoundTrip(t *testing.T) {
	s := editor.NewStore(newReducer())
	in := doc("A", "A", "B")
	s.Dispatch(editor.Reset{State: in})
	if got := s.State(); !reflect.DeepEqual(got, in) {
		t.Fatalf("State() = %+v, want %+v", got, in)
	}
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	s := editor.NewStore(newReducer())
	s.Dispatch(editor.Reset{State: doc("A", "A")})

	snap := s.State()
	snap.ComponentList[0].Props["title"] = "mutated"
	snap.SelectedID = "mutated"

	if got := s.State(); got.ComponentList[0].Props["title"] != "A" || got.SelectedID != "A" {
		t.Fatalf("store state changed through a snapshot: %+v", got)
	}
}

func TestStore_OldSnapshotNeverChanges(t *testing.T) {
	s := editor.NewStore(newReducer())
	s.Dispatch(editor.Reset{State: doc("A", "A", "B")})
	before := s.State()
	s.Dispatch(editor.DeleteSelected{})
	s.Dispatch(editor.UpdateProps{ID: "B", Props: domain.Props{"title": "x"}})

	if !reflect.DeepEqual(before, doc("A", "A", "B")) {
		t.Fatalf("earlier snapshot changed: %+v", before)
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := editor.NewStore(newReducer())
	var got []string
	unsubscribe := s.Subscribe(func(st domain.DocumentState) {
		got = append(got, st.SelectedID)
	})

	s.Dispatch(editor.Reset{State: doc("A", "A", "B")})
	s.Dispatch(editor.SelectNext{})
	unsubscribe()
	unsubscribe()
	s.Dispatch(editor.SelectPrev{})

	if want := []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("listener saw %v, want %v", got, want)
	}
}

func TestStore_ConcurrentDispatchAndRead(t *testing.T) {
	s := editor.NewStore(newReducer())
	s.Dispatch(editor.Reset{State: doc("A", "A")})
	s.Dispatch(editor.CopySelected{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				s.Dispatch(editor.PasteCopied{})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				st := s.State()
				if st.SelectedID != "" && st.IndexOf(st.SelectedID) < 0 {
					t.Errorf("reader saw unresolved selection %q", st.SelectedID)
					return
				}
			}
		}()
	}
	wg.Wait()

	st := s.State()
	if len(st.ComponentList) != 1+8*25 {
		t.Fatalf("expected %d components, got %d", 1+8*25, len(st.ComponentList))
	}
	seen := map[string]bool{}
	for _, c := range st.ComponentList {
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}
