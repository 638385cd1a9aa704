// Package random provides the random byte sources used by the interpreter.
//
// The interpreter never reads a global random generator. A Source is injected
// into the machine, which allows deterministic runs by seeding or by using a
// Sequence in tests.
package random

import (
	"math/rand"
	"time"
)

// Source returns uniformly distributed random bytes.
type Source interface {
	Byte() byte
}

// Random is a seeded pseudo random Source.
type Random struct {
	seed int64
	rnd  *rand.Rand
}

// New returns a Source seeded with the given value. A seed of zero selects a
// seed based on the current time.
func New(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		seed: seed,
		rnd:  rand.New(rand.NewSource(seed)), //nolint:gosec // not used for security purposes
	}
}

// Seed returns the seed that the source was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

// Byte returns the next random byte.
func (r *Random) Byte() byte {
	return byte(r.rnd.Intn(256))
}

// Sequence is a Source that returns the given values in order and repeats
// them once exhausted. An empty sequence always returns zero.
type Sequence struct {
	values []byte
	pos    int
}

// NewSequence returns a Source that cycles through the given values.
func NewSequence(values ...byte) *Sequence {
	return &Sequence{values: values}
}

// Byte returns the next value of the sequence.
func (s *Sequence) Byte() byte {
	if len(s.values) == 0 {
		return 0
	}
	b := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return b
}
