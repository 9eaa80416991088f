package coverage

import "testing"

func TestIsqrtFloor(t *testing.T) {
	cases := map[int64]int64{
		0:     0,
		1:     1,
		2:     1,
		3:     1,
		4:     2,
		15:    3,
		16:    4,
		16384: 128,
		16385: 128,
	}
	for in, want := range cases {
		if got := isqrtFloor(in); got != want {
			t.Errorf("isqrtFloor(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIntersectCount(t *testing.T) {
	if got := intersectCount(39, 61, 39, 61); got != 23 {
		t.Errorf("full overlap: got %d, want 23", got)
	}
	if got := intersectCount(100, 200, 39, 61); got != 0 {
		t.Errorf("disjoint: got %d, want 0", got)
	}
	if got := intersectCount(50, 70, 39, 61); got != 12 {
		t.Errorf("partial overlap: got %d, want 12", got)
	}
}

func TestScoreAtIsPositiveDirectlyUnderMonument(t *testing.T) {
	centers := []Center{{X: 0, Z: 0}}
	boxes := boxesFor(centers)
	s := scoreAt(boxes, 0, 0, true)
	if s.total <= 0 {
		t.Fatalf("expected positive coverage directly at the monument center, got %d", s.total)
	}
	if len(s.perMon) != 1 || s.perMon[0] != s.total {
		t.Fatalf("single-monument score should equal its only perMon entry: total=%d perMon=%v", s.total, s.perMon)
	}
}

func TestScoreAtZeroFarAway(t *testing.T) {
	centers := []Center{{X: 0, Z: 0}}
	boxes := boxesFor(centers)
	s := scoreAt(boxes, 100000, 100000, true)
	if s.total != 0 {
		t.Fatalf("expected zero coverage far from every monument, got %d", s.total)
	}
}

func TestFindBestStaysWithinCenterConstraint(t *testing.T) {
	centers := []Center{
		{X: 0, Z: 0},
		{X: 100, Z: 0},
	}
	cfg := DefaultOptimizerConfig()
	res, err := FindBest(centers, cfg, nil)
	if err != nil {
		t.Fatalf("FindBest: %v", err)
	}
	for _, c := range centers {
		dx := int64(c.X - res.X)
		dz := int64(c.Z - res.Z)
		if dx*dx+dz*dz > centerConstraintR2 {
			t.Fatalf("result (%d,%d) violates the 128-block constraint from center (%d,%d)", res.X, res.Z, c.X, c.Z)
		}
	}
	if res.TotalCovered <= 0 {
		t.Fatalf("expected positive total coverage, got %d", res.TotalCovered)
	}
	if res.PlaceBlockY != res.Y-1 {
		t.Fatalf("PlaceBlockY should be Y-1, got Y=%d PlaceBlockY=%d", res.Y, res.PlaceBlockY)
	}
}

func TestFindBestRejectsEmptyCenters(t *testing.T) {
	if _, err := FindBest(nil, DefaultOptimizerConfig(), nil); err == nil {
		t.Fatal("expected an error for an empty center list")
	}
}
