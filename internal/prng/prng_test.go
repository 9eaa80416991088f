package prng

import "testing"

func TestDeterministic(t *testing.T) {
	a := NewSource(12345)
	b := NewSource(12345)
	for i := 0; i < 1000; i++ {
		av := a.NextInt(27)
		bv := b.NextInt(27)
		if av != bv {
			t.Fatalf("draw %d diverged: %d != %d", i, av, bv)
		}
		if av < 0 || av >= 27 {
			t.Fatalf("draw %d out of bounds: %d", i, av)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	same := true
	for i := 0; i < 32; i++ {
		if a.NextInt(1 << 30) != b.NextInt(1<<30) {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected seeds 1 and 2 to diverge within 32 draws")
	}
}

func TestPowerOfTwoBoundNeverNegative(t *testing.T) {
	s := NewSource(-141)
	for i := 0; i < 10000; i++ {
		if v := s.NextInt(1 << 16); v < 0 || v >= 1<<16 {
			t.Fatalf("out of range: %d", v)
		}
	}
}

func TestNonPowerOfTwoBoundRange(t *testing.T) {
	s := NewSource(4803524437)
	for i := 0; i < 10000; i++ {
		if v := s.NextInt(27); v < 0 || v >= 27 {
			t.Fatalf("out of range: %d", v)
		}
	}
}
