package group

import (
	"sort"

	"github.com/scylladb/go-set/i64set"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/ohash"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/workerpool"
)

// Group is a k-element set of monument candidates whose pairwise distances
// are within the configured bound and whose centroid lies within the AFK
// radius of every member.
type Group struct {
	Members []placement.Candidate
}

// EnumeratorConfig holds §4.7's tunables.
type EnumeratorConfig struct {
	K              int
	PairwiseBlocks int32 // default 224
	AFKRadius      int32 // default 128
	BatchSize      int   // anchors per batch, default 25000
	Workers        int
}

// Enumerate finds every k-subset of candidates whose members are pairwise
// within PairwiseBlocks and whose centroid lies within AFKRadius of every
// member. Output ordering is non-deterministic; GroupDeduper and the
// orchestrator's final sort make external ordering deterministic.
func Enumerate(candidates []placement.Candidate, cfg EnumeratorConfig) ([]Group, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 25000
	}

	index := NewSpatialHash(candidates)
	n := len(candidates)
	numBatches := (n + batchSize - 1) / batchSize

	// Candidates arrive in scan order, which clusters geographically (a
	// contiguous slice of indices is a contiguous patch of the map). Since
	// Neighborhood cost tracks local candidate density, contiguous batches
	// would leave some workers stuck in dense patches while others idle.
	// Scatter anchors across batches by hashing their index instead.
	anchorBatches := make([][]int, numBatches)
	for i := range candidates {
		b := int(fnv1a.HashUint64(uint64(i)) % uint64(numBatches))
		anchorBatches[b] = append(anchorBatches[b], i)
	}

	pool := workerpool.New(workers)
	defer pool.Close()

	type batchResult struct {
		groups []Group
		err    error
	}
	results := make(chan batchResult, numBatches)

	for b := 0; b < numBatches; b++ {
		anchors := anchorBatches[b]
		pool.Submit(func() {
			groups, err := enumerateAnchors(candidates, index, anchors, cfg)
			results <- batchResult{groups: groups, err: err}
		})
	}

	var out []Group
	var firstErr error
	for b := 0; b < numBatches; b++ {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		if firstErr == nil {
			out = append(out, r.groups...)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func enumerateAnchors(candidates []placement.Candidate, index *SpatialHash, anchors []int, cfg EnumeratorConfig) (groups []Group, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError("group", r)
		}
	}()

	pairwise2 := int64(cfg.PairwiseBlocks) * int64(cfg.PairwiseBlocks)
	afkRadius2 := int64(cfg.AFKRadius) * int64(cfg.AFKRadius)

	local := make([]Group, 0, 64)
	seen := i64set.New()

	neighborBuf := make([]int32, 0, 256)
	for _, anchorIdx := range anchors {
		a := candidates[anchorIdx]

		neighborBuf = neighborBuf[:0]
		neighborBuf = index.Neighborhood(a.CenterX, a.CenterZ, neighborBuf)

		neighbors := make([]placement.Candidate, 0, len(neighborBuf))
		for _, idx := range neighborBuf {
			p := index.At(idx)
			if p.CenterX == a.CenterX && p.CenterZ == a.CenterZ {
				continue
			}
			if blockDist2(a.CenterX, a.CenterZ, p.CenterX, p.CenterZ) > pairwise2 {
				continue
			}
			neighbors = append(neighbors, p)
		}
		sort.Slice(neighbors, func(i, j int) bool {
			if neighbors[i].CenterX != neighbors[j].CenterX {
				return neighbors[i].CenterX < neighbors[j].CenterX
			}
			return neighbors[i].CenterZ < neighbors[j].CenterZ
		})

		candidatesFn := func(members []placement.Candidate) {
			if !pairwiseOk(members, pairwise2) {
				return
			}
			if !centroidFeasible(members, afkRadius2) {
				return
			}
			key := canonicalKey(members)
			if seen.Has(key) {
				return
			}
			seen.Add(key)
			cp := make([]placement.Candidate, len(members))
			copy(cp, members)
			sort.Slice(cp, func(i, j int) bool {
				if cp[i].CenterX != cp[j].CenterX {
					return cp[i].CenterX < cp[j].CenterX
				}
				return cp[i].CenterZ < cp[j].CenterZ
			})
			local = append(local, Group{Members: cp})
		}

		emitSubsets(a, neighbors, cfg.K, candidatesFn)
	}
	return local, nil
}

// emitSubsets enumerates every (k-1)-subset of neighbors to pair with the
// anchor a, using explicit k=2/3/4 loops rather than a generic combinator.
func emitSubsets(a placement.Candidate, neighbors []placement.Candidate, k int, emit func([]placement.Candidate)) {
	n := len(neighbors)
	switch k {
	case 2:
		for i := 0; i < n; i++ {
			emit([]placement.Candidate{a, neighbors[i]})
		}
	case 3:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				emit([]placement.Candidate{a, neighbors[i], neighbors[j]})
			}
		}
	case 4:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for t := j + 1; t < n; t++ {
					emit([]placement.Candidate{a, neighbors[i], neighbors[j], neighbors[t]})
				}
			}
		}
	}
}

func pairwiseOk(members []placement.Candidate, pairwise2 int64) bool {
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			if blockDist2(members[i].CenterX, members[i].CenterZ, members[j].CenterX, members[j].CenterZ) > pairwise2 {
				return false
			}
		}
	}
	return true
}

// centroidFeasible is the cheap necessary-but-not-sufficient pre-feasibility
// check: the centroid of the group must lie within afkRadius of every
// member. Exact feasibility is decided later by the CoverageOptimizer. The
// centroid is computed in float64, not truncating integer division, since
// this is a hard gate — an integer-truncation bias could reject a
// borderline-valid group before the optimizer ever sees it.
func centroidFeasible(members []placement.Candidate, afkRadius2 int64) bool {
	var sumX, sumZ float64
	for _, m := range members {
		sumX += float64(m.CenterX)
		sumZ += float64(m.CenterZ)
	}
	k := float64(len(members))
	cx := sumX / k
	cz := sumZ / k
	for _, m := range members {
		dx := float64(m.CenterX) - cx
		dz := float64(m.CenterZ) - cz
		if dx*dx+dz*dz > float64(afkRadius2) {
			return false
		}
	}
	return true
}

func blockDist2(ax, az, bx, bz int32) int64 {
	dx := int64(bx - ax)
	dz := int64(bz - az)
	return dx*dx + dz*dz
}

// canonicalKey sorts the group's centers lexicographically and folds them
// through the splitmix64-class mixer, identical to GroupDeduper's key so
// both stages agree on what "the same group" means.
func canonicalKey(members []placement.Candidate) int64 {
	sorted := make([]placement.Candidate, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CenterX != sorted[j].CenterX {
			return sorted[i].CenterX < sorted[j].CenterX
		}
		return sorted[i].CenterZ < sorted[j].CenterZ
	})

	h := ohash.Mix64(0) // non-zero starting state
	for _, m := range sorted {
		v := (int64(m.CenterX) << 32) ^ int64(uint32(m.CenterZ))
		h = ohash.Mix64(h ^ v)
	}
	return h
}

func panicToError(stage string, r any) error {
	return &panicError{stage: stage, cause: r}
}

type panicError struct {
	stage string
	cause any
}

func (e *panicError) Error() string {
	return e.stage + ": worker panic: " + formatCause(e.cause)
}

func formatCause(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "non-error panic value"
}
