// Package idgen produces short URL-safe identifiers for component instances.
package idgen

import (
	"log"
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the 64-symbol URL-safe alphabet ids are drawn from.
const Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Size is the length of a generated id (126 bits of entropy).
const Size = 21

// Func generates a new id. Callers that need deterministic ids in tests
// inject their own.
type Func func() string

// New returns a fresh nanoid. It returns "" if the system random source
// fails; callers treat an empty id as unusable.
func New() string {
	id, err := gonanoid.Generate(Alphabet, Size)
	if err != nil {
		log.Printf("idgen: generate id: %v", err)
		return ""
	}
	return id
}

// Sequence returns a Func yielding prefix1, prefix2, ...
// It is not safe for concurrent use.
func Sequence(prefix string) Func {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
