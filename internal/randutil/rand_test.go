package randutil

import "testing"

func TestNewDeterministic(t *testing.T) {
	t.Parallel()

	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if got, want := a.Uint64(), b.Uint64(); got != want {
			t.Fatalf("sequence diverged at step %d: %d != %d", i, got, want)
		}
	}
}

func TestNewSeedsDiffer(t *testing.T) {
	t.Parallel()

	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 64 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestNewZeroSeedUsable(t *testing.T) {
	t.Parallel()

	// Zero must not collapse the PCG state; the mixer guarantees distinct
	// stream parameters even for adjacent or zero seeds.
	r := New(0)
	first := r.Uint64()
	if second := r.Uint64(); first == 0 && second == 0 {
		t.Fatal("zero seed produced a degenerate stream")
	}
}
