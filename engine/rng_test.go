package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Intn(6)
		b := rng2.Intn(6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		r := rng.Intn(6)
		if r < 0 || r >= 6 {
			t.Fatalf("draw out of range [0,6): got %d", r)
		}
	}
}

func TestRNG_Shuffle_Deterministic(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := append([]int(nil), a...)

	NewRNG(7).Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
	NewRNG(7).Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: got %d and %d from same seed", i, a[i], b[i])
		}
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.Intn(6)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.Shuffle(3, func(i, j int) {})
	if rng.Position() != 2 {
		t.Fatalf("expected position 2, got %d", rng.Position())
	}

	if rng.Seed() != 42 {
		t.Errorf("expected seed 42, got %d", rng.Seed())
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := NewRNG(1)
	rng2 := NewRNG(2)

	differs := false
	for i := 0; i < 20; i++ {
		if rng1.Intn(100) != rng2.Intn(100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
