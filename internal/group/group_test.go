package group

import (
	"testing"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
)

func cand(cx, cz int32) placement.Candidate {
	return placement.Candidate{CenterX: cx, CenterZ: cz}
}

func TestSpatialHashNeighborhoodFindsNearbyPoints(t *testing.T) {
	points := []placement.Candidate{
		cand(0, 0),
		cand(100, 100),
		cand(10000, 10000),
	}
	h := NewSpatialHash(points)

	got := h.Neighborhood(0, 0, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors in range, got %d", len(got))
	}
}

func TestEnumerateFindsPairsWithinBound(t *testing.T) {
	candidates := []placement.Candidate{
		cand(0, 0),
		cand(100, 0),
		cand(10000, 10000),
	}
	groups, err := Enumerate(candidates, EnumeratorConfig{
		K:              2,
		PairwiseBlocks: 224,
		AFKRadius:      128,
		BatchSize:      25000,
		Workers:        2,
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	d := NewDeduper(len(groups))
	d.AddAll(groups)
	deduped := d.Groups()

	if len(deduped) != 1 {
		t.Fatalf("expected exactly 1 viable pair, got %d", len(deduped))
	}
	if len(deduped[0].Members) != 2 {
		t.Fatalf("expected pair to have 2 members, got %d", len(deduped[0].Members))
	}
}

func TestEnumerateRejectsOutOfRadiusTriple(t *testing.T) {
	// Two points 200 apart are within the 224 pairwise bound, but the third
	// point lies about 20000 blocks from both, far outside the pairwise
	// bound, so no 3-subset qualifies.
	candidates := []placement.Candidate{
		cand(0, 0),
		cand(200, 0),
		cand(100, 20000),
	}
	groups, err := Enumerate(candidates, EnumeratorConfig{
		K:              3,
		PairwiseBlocks: 224,
		AFKRadius:      128,
		BatchSize:      25000,
		Workers:        1,
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no viable triples, got %d", len(groups))
	}
}

func TestDeduperKeepsFirstSeenAndSortsOutput(t *testing.T) {
	d := NewDeduper(4)
	g1 := Group{Members: []placement.Candidate{cand(100, 0), cand(0, 0)}}
	g2 := Group{Members: []placement.Candidate{cand(0, 0), cand(100, 0)}} // same set, different order
	g3 := Group{Members: []placement.Candidate{cand(5, 5), cand(6, 6)}}

	if !d.Add(g1) {
		t.Fatal("expected g1 to be newly added")
	}
	if d.Add(g2) {
		t.Fatal("expected g2 to be recognized as a duplicate of g1")
	}
	if !d.Add(g3) {
		t.Fatal("expected g3 to be newly added")
	}

	out := d.Groups()
	if len(out) != 2 {
		t.Fatalf("expected 2 distinct groups, got %d", len(out))
	}
	if out[0].Members[0].CenterX != 0 {
		t.Fatalf("expected sorted output to start with the smaller centerX group, got %+v", out[0])
	}
}
