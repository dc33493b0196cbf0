package idgen_test

import (
	"strings"
	"testing"

	"questionnaire/internal/idgen"
)

func TestNew_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := idgen.New()
		if len(id) != idgen.Size {
			t.Fatalf("expected length %d, got %d (%q)", idgen.Size, len(id), id)
		}
		for _, r := range id {
			if !strings.ContainsRune(idgen.Alphabet, r) {
				t.Fatalf("id %q contains %q outside the alphabet", id, r)
			}
		}
	}
}

func TestNew_NoCollisions(t *testing.T) {
	seen := make(map[string]bool, 5000)
	for i := 0; i < 5000; i++ {
		id := idgen.New()
		if seen[id] {
			t.Fatalf("collision after %d ids: %q", i, id)
		}
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	next := idgen.Sequence("c")
	for _, want := range []string{"c1", "c2", "c3"} {
		if got := next(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestSequence_MultiDigit(t *testing.T) {
	next := idgen.Sequence("")
	var last string
	for i := 0; i < 12; i++ {
		last = next()
	}
	if last != "12" {
		t.Errorf("expected 12, got %q", last)
	}
}
