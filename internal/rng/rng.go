// Package rng supplies the random draws used by event rolls, reversal rolls,
// interruption rolls, and cue selection. Every engine accepts a Source so a
// replay or a test can script the exact sequence of draws.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// #region source

// Source is the minimal randomness surface the engines consume.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform draw in [0, n). n must be > 0.
	Intn(n int) int
}

// #endregion source

// #region seeded

type seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded with the given value. Two sources built from the
// same seed produce identical draw sequences.
func New(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

// Default returns a time-seeded Source for production use.
func Default() Source {
	return New(time.Now().UnixNano())
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// #endregion seeded

// #region scripted

// Scripted replays a fixed sequence of draws. Once the sequence is exhausted
// every further Float64 draw returns 1.0, so probability rolls fail and
// nothing unscripted fires mid-fixture.
type Scripted struct {
	mu    sync.Mutex
	rolls []float64
	pos   int
}

// NewScripted builds a Scripted source from the given draw sequence.
func NewScripted(rolls ...float64) *Scripted {
	return &Scripted{rolls: rolls}
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.rolls) {
		return 1.0
	}
	v := s.rolls[s.pos]
	s.pos++
	return v
}

func (s *Scripted) Intn(n int) int {
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Remaining reports how many scripted draws are left.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rolls) - s.pos
}

// #endregion scripted
