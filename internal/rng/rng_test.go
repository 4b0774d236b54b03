package rng

import "testing"

// #region seeded-tests

func TestSeededIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestSeededIntnBounds(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		if n := src.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d, out of range", n)
		}
	}
}

// #endregion seeded-tests

// #region scripted-tests

func TestScriptedPlaysRollsInOrder(t *testing.T) {
	src := NewScripted(0.1, 0.2, 0.3)
	for i, want := range []float64{0.1, 0.2, 0.3} {
		if got := src.Float64(); got != want {
			t.Fatalf("draw %d = %v, want %v", i, got, want)
		}
	}
	if src.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", src.Remaining())
	}
}

func TestScriptedExhaustionFailsRolls(t *testing.T) {
	src := NewScripted()
	if got := src.Float64(); got != 1.0 {
		t.Fatalf("exhausted draw = %v, want 1.0", got)
	}
	// every probability roll compares draw < p, so 1.0 never fires
	if src.Float64() < 0.99 {
		t.Fatal("exhausted source should never satisfy a roll")
	}
}

func TestScriptedIntnStaysInRange(t *testing.T) {
	src := NewScripted(0.0, 0.5, 0.999)
	for i := 0; i < 5; i++ {
		if n := src.Intn(3); n < 0 || n >= 3 {
			t.Fatalf("Intn(3) = %d, out of range", n)
		}
	}
}

// #endregion scripted-tests
