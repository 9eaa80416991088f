package group

import (
	"sort"

	"github.com/brentp/intintmap"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
)

// Deduper collects groups from every enumerator batch and keeps the first
// one seen under each canonical key, exactly as GroupEnumerator's per-batch
// i64set dedup does locally, but across batch boundaries. Canonical key
// equality means "same set of monument centers," independent of which
// member was the anchor or what order the subset loops produced it in.
type Deduper struct {
	seen  *intintmap.Map
	kept  []Group
}

// NewDeduper preallocates for an expected group count. A low or zero
// estimate only costs a few rehashes, never correctness.
func NewDeduper(expected int) *Deduper {
	if expected < 16 {
		expected = 16
	}
	return &Deduper{
		seen: intintmap.New(expected*2, 0.5),
		kept: make([]Group, 0, expected),
	}
}

// Add inserts g if its canonical key hasn't been seen, returning true if it
// was kept. The kept copy has its members in (centerX, centerZ) order. Not
// safe for concurrent use; the orchestrator calls it from a single goroutine
// after every enumerator batch has finished.
func (d *Deduper) Add(g Group) bool {
	key := canonicalKey(g.Members)
	if _, exists := d.seen.Get(key); exists {
		return false
	}
	members := make([]placement.Candidate, len(g.Members))
	copy(members, g.Members)
	sort.Slice(members, func(i, j int) bool {
		if members[i].CenterX != members[j].CenterX {
			return members[i].CenterX < members[j].CenterX
		}
		return members[i].CenterZ < members[j].CenterZ
	})
	d.seen.Put(key, int64(len(d.kept)))
	d.kept = append(d.kept, Group{Members: members})
	return true
}

// AddAll is a convenience wrapper around Add for a whole enumerator batch.
func (d *Deduper) AddAll(groups []Group) {
	for _, g := range groups {
		d.Add(g)
	}
}

// Groups returns every distinct group added so far, sorted by each member's
// (centerX, centerZ) so the final CSV output is stable across runs despite
// the enumerator's non-deterministic batch completion order.
func (d *Deduper) Groups() []Group {
	out := make([]Group, len(d.kept))
	copy(out, d.kept)
	sort.Slice(out, func(i, j int) bool {
		return groupLess(out[i], out[j])
	})
	return out
}

func groupLess(a, b Group) bool {
	n := len(a.Members)
	if len(b.Members) < n {
		n = len(b.Members)
	}
	for i := 0; i < n; i++ {
		am, bm := a.Members[i], b.Members[i]
		if am.CenterX != bm.CenterX {
			return am.CenterX < bm.CenterX
		}
		if am.CenterZ != bm.CenterZ {
			return am.CenterZ < bm.CenterZ
		}
	}
	return len(a.Members) < len(b.Members)
}
