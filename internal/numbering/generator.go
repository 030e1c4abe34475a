// Package numbering issues caller-facing account numbers.
package numbering

import (
	"fmt"
	"sync/atomic"
)

const accountNumberFormat = "2600%010d"

// Generator issues unique account numbers. It is injected into the account
// service so tests can substitute a deterministic implementation.
type Generator interface {
	Next() string
}

// Sequence is an atomic-counter Generator producing numbers in the fixed
// "2600" + 10 digit format. Safe for concurrent use.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence returns a Sequence continuing after last; the first issued
// number is last+1. Seed last from the store's highest issued number so
// restarts do not reissue numbers.
func NewSequence(last uint64) *Sequence {
	s := &Sequence{}
	s.last.Store(last)
	return s
}

func (s *Sequence) Next() string {
	return fmt.Sprintf(accountNumberFormat, s.last.Add(1))
}
