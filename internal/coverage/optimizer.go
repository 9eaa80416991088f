package coverage

import (
	"container/heap"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/oerror"
)

// CenterConstraintRadius is the hard horizontal constraint: the AFK point
// must lie within this many blocks of every monument's center, so the
// optimizer can never drift into covering only a subset of the group. The
// group package uses the same constant when pre-filtering candidate groups,
// since a group the optimizer could never satisfy is not worth enumerating.
const CenterConstraintRadius = 128

var centerConstraintR2 = int64(CenterConstraintRadius * CenterConstraintRadius)

// OptimizerConfig exposes the local-search tunables the reference
// implementation reads from system properties; here they're explicit
// fields threaded in from the pipeline's Config instead.
type OptimizerConfig struct {
	KeepTop          int
	RefineRadius     int32
	RefineSteps      []int32
	RequireOutside24 bool
	LocalStep        int32
}

// DefaultOptimizerConfig matches AFKSpotFinder's defaults.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		KeepTop:          40,
		RefineRadius:     24,
		RefineSteps:      []int32{4, 2, 1},
		RequireOutside24: true,
		LocalStep:        32,
	}
}

// Result is the best AFK point found for a monument group.
type Result struct {
	X, Y, Z int32

	// PlaceBlockY is the block a player stands on, one below the AFK
	// point's feet position.
	PlaceBlockY int32

	TotalCovered       int64
	PerMonumentCovered []int64
}

// FindBest finds the AFK point maximizing coverage for the given monument
// centers, per §4.8: coarse scan over the intersection of every center's
// 128-block disk (seeded with pairwise circle-intersection points), then a
// coarse-to-fine multi-scale local search from the top candidates.
func FindBest(centers []Center, cfg OptimizerConfig, log *logrus.Entry) (Result, error) {
	if len(centers) == 0 {
		return Result{}, oerror.New("coverage: centers is empty")
	}

	boxes := boxesFor(centers)
	cx := make([]int32, len(centers))
	cz := make([]int32, len(centers))
	for i, c := range centers {
		cx[i], cz[i] = c.X, c.Z
	}

	var sumX, sumZ int64
	for _, c := range centers {
		sumX += int64(c.X)
		sumZ += int64(c.Z)
	}
	avgX := int32(math.Round(float64(sumX) / float64(len(centers))))
	avgZ := int32(math.Round(float64(sumZ) / float64(len(centers))))

	seeds := []point{{avgX, avgZ}}
	seeds = append(seeds, circleIntersectionSeeds(cx, cz, CenterConstraintRadius)...)

	bounds, ok := feasibleBounds(cx, cz, CenterConstraintRadius)
	if !ok {
		if log != nil {
			log.Warn("coverage: feasible region is empty, falling back to average center")
		}
		s := scoreAt(boxes, avgX, avgZ, cfg.RequireOutside24)
		return toResult(avgX, avgZ, s), nil
	}

	top := newTopN(max(1, cfg.KeepTop))

	for _, p := range seeds {
		if !withinAllCenters(cx, cz, p.x, p.z) {
			continue
		}
		s := scoreAt(boxes, p.x, p.z, cfg.RequireOutside24)
		top.offer(candidate{x: p.x, z: p.z, score: s.total, perMon: s.perMon})
	}

	step0 := max(int32(1), cfg.LocalStep)
	for x := floorToStep(bounds.xMin, step0); x <= bounds.xMax; x += step0 {
		for z := floorToStep(bounds.zMin, step0); z <= bounds.zMax; z += step0 {
			if !withinAllCenters(cx, cz, x, z) {
				continue
			}
			s := scoreAt(boxes, x, z, cfg.RequireOutside24)
			top.offer(candidate{x: x, z: z, score: s.total, perMon: s.perMon})
		}
	}

	seeded := top.sortedDesc()
	if len(seeded) == 0 {
		s := scoreAt(boxes, avgX, avgZ, cfg.RequireOutside24)
		return toResult(avgX, avgZ, s), nil
	}

	var best *Result
	var bestScore int64 = math.MinInt64

	refineSteps := cfg.RefineSteps
	if len(refineSteps) == 0 {
		refineSteps = []int32{4, 2, 1}
	}

	for _, seed := range seeded {
		rx, rz := seed.x, seed.z
		base := scoreAt(boxes, rx, rz, cfg.RequireOutside24)
		localBest := base.total
		bestPer := base.perMon

		for _, step := range refineSteps {
			r := cfg.RefineRadius
			for x := rx - r; x <= rx+r; x += step {
				for z := rz - r; z <= rz+r; z += step {
					if !withinAllCenters(cx, cz, x, z) {
						continue
					}
					s := scoreAt(boxes, x, z, cfg.RequireOutside24)
					if s.total > localBest {
						localBest = s.total
						rx, rz = x, z
						bestPer = s.perMon
					}
				}
			}
		}

		if localBest > bestScore {
			bestScore = localBest
			res := toResult(rx, rz, score{total: localBest, perMon: bestPer})
			best = &res
		}
	}

	return *best, nil
}

func toResult(x, z int32, s score) Result {
	return Result{
		X:                  x,
		Y:                  fixedAFKY,
		Z:                  z,
		PlaceBlockY:        fixedAFKY - 1,
		TotalCovered:       s.total,
		PerMonumentCovered: s.perMon,
	}
}

type point struct{ x, z int32 }

type bounds struct{ xMin, xMax, zMin, zMax int32 }

// feasibleBounds is the bounding rectangle of the intersection of every
// center's radius-r disk. A false second return means the intersection of
// disks is empty (ok only with pathological input since GroupEnumerator
// already enforces the centroid pre-feasibility check).
func feasibleBounds(cx, cz []int32, r int32) (bounds, bool) {
	b := bounds{xMin: math.MinInt32, xMax: math.MaxInt32, zMin: math.MinInt32, zMax: math.MaxInt32}
	for i := range cx {
		b.xMin = max(b.xMin, cx[i]-r)
		b.xMax = min(b.xMax, cx[i]+r)
		b.zMin = max(b.zMin, cz[i]-r)
		b.zMax = min(b.zMax, cz[i]+r)
	}
	return b, b.xMin <= b.xMax && b.zMin <= b.zMax
}

func withinAllCenters(cx, cz []int32, x, z int32) bool {
	for i := range cx {
		dx := int64(cx[i] - x)
		dz := int64(cz[i] - z)
		if dx*dx+dz*dz > centerConstraintR2 {
			return false
		}
	}
	return true
}

func floorToStep(v, step int32) int32 {
	if step <= 1 {
		return v
	}
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q * step
}

// circleIntersectionSeeds computes, for every pair of same-radius circles
// centered on the monument centers, the (rounded) points where the two
// circle boundaries cross. Scanning a coarse grid alone can miss the best
// AFK point when it sits exactly on the boundary of the feasible region;
// these seeds are scored directly alongside the grid.
func circleIntersectionSeeds(cx, cz []int32, r int32) []point {
	var out []point
	radius := float64(r)

	for i := 0; i < len(cx); i++ {
		for j := i + 1; j < len(cx); j++ {
			c0 := mgl64.Vec2{float64(cx[i]), float64(cz[i])}
			c1 := mgl64.Vec2{float64(cx[j]), float64(cz[j])}
			delta := c1.Sub(c0)
			d := delta.Len()
			if d == 0 || d > 2*radius {
				continue
			}

			mid := c0.Add(delta.Mul(0.5))
			h2 := radius*radius - (d*d)/4
			if h2 < 0 {
				continue
			}
			h := math.Sqrt(h2)

			perp := mgl64.Vec2{-delta[1] / d, delta[0] / d}.Mul(h)
			p1 := mid.Add(perp)
			p2 := mid.Sub(perp)

			out = append(out,
				point{int32(math.Round(p1[0])), int32(math.Round(p1[1]))},
				point{int32(math.Round(p2[0])), int32(math.Round(p2[1]))},
			)
		}
	}
	return out
}

// candidate is a scored (x, z) point kept by the coarse scan's top-N heap.
type candidate struct {
	x, z   int32
	score  int64
	perMon []int64
}

// topN is a bounded min-heap over candidate.score, keeping the n
// highest-scoring candidates seen across the whole coarse scan without
// retaining the full grid.
type topN struct {
	n int
	h candidateHeap
}

func newTopN(n int) *topN {
	return &topN{n: n}
}

func (t *topN) offer(c candidate) {
	if t.n <= 0 {
		return
	}
	if len(t.h) < t.n {
		heap.Push(&t.h, c)
		return
	}
	if c.score > t.h[0].score {
		heap.Pop(&t.h)
		heap.Push(&t.h, c)
	}
}

func (t *topN) sortedDesc() []candidate {
	out := make([]candidate, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
