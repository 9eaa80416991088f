package placement

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/assert"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/region"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/workerpool"
)

// Column is a dense per-regionX slice spanning the full regionZ range of the
// search. It is the unit of parallel work and of Stage A's sliding
// three-column window.
type Column struct {
	RegionX    int32
	MinRegionZ int32

	chunkX  []int32
	chunkZ  []int32
	present []bool
}

func newColumn(regionX, minRegionZ int32, length int) *Column {
	return &Column{
		RegionX:    regionX,
		MinRegionZ: minRegionZ,
		chunkX:     make([]int32, length),
		chunkZ:     make([]int32, length),
		present:    make([]bool, length),
	}
}

func (c *Column) index(regionZ int32) (int, bool) {
	idx := int(regionZ - c.MinRegionZ)
	if idx < 0 || idx >= len(c.present) {
		return 0, false
	}
	return idx, true
}

// Len returns the number of regionZ slots this column spans.
func (c *Column) Len() int {
	return len(c.present)
}

// HasAt reports whether a candidate survived bounds-filtering at regionZ.
func (c *Column) HasAt(regionZ int32) bool {
	idx, ok := c.index(regionZ)
	return ok && c.present[idx]
}

// At returns the candidate chunk coordinates stored at regionZ. Callers must
// check HasAt first.
func (c *Column) At(regionZ int32) (chunkX, chunkZ int32) {
	idx, _ := c.index(regionZ)
	return c.chunkX[idx], c.chunkZ[idx]
}

func (c *Column) set(regionZ, chunkX, chunkZ int32) {
	idx, ok := c.index(regionZ)
	if !ok {
		return
	}
	c.present[idx] = true
	c.chunkX[idx] = chunkX
	c.chunkZ[idx] = chunkZ
}

// Scanner scans a rectangle of chunk bounds, deriving region bounds via the
// modified-coordinate floor division, and computes one Column per regionX in
// parallel. Scanner only bounds-filters against [minChunk, maxChunk]; it
// never excludes a ring around the origin — a Column must hold every
// in-bounds candidate so excluded-region points still count as neighbors
// for bordering non-excluded candidates. Exclusion is applied later, at the
// point a candidate is chosen as a Stage A survivor.
type Scanner struct {
	oracle      *Oracle
	minChunk    int32
	maxChunk    int32
	workers     int
	inflightCap int
}

// NewScanner builds a Scanner. workers is clamped to at least 1; inflightCap
// defaults to 4x workers, bounding memory for in-flight columns.
func NewScanner(oracle *Oracle, minChunk, maxChunk int32, workers int) *Scanner {
	assert.IsTrue(minChunk <= maxChunk, "placement: minChunk %d must not exceed maxChunk %d", minChunk, maxChunk)
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		oracle:      oracle,
		minChunk:    minChunk,
		maxChunk:    maxChunk,
		workers:     workers,
		inflightCap: workers * 4,
	}
}

// RegionBounds returns the regionX/regionZ rectangle this Scanner covers,
// derived from the requested chunk bounds.
func (s *Scanner) RegionBounds() (minRegionX, maxRegionX, minRegionZ, maxRegionZ int32) {
	minRegionX = region.Of(s.minChunk)
	maxRegionX = region.Of(s.maxChunk)
	minRegionZ = region.Of(s.minChunk)
	maxRegionZ = region.Of(s.maxChunk)
	return
}

type columnResult struct {
	col *Column
	err error
}

// Scan computes one Column per regionX across the scanner's rectangle and
// invokes onColumn exactly once per regionX, strictly in increasing regionX
// order, even though computation itself runs unordered across workers. If
// onColumn or a worker returns an error (including a recovered panic), Scan
// stops submitting new work, drains in-flight results, and returns the first
// error. No partial columns are ever handed to onColumn after an error.
func (s *Scanner) Scan(onColumn func(*Column) error) error {
	minRegionX, maxRegionX, minRegionZ, maxRegionZ := s.RegionBounds()
	regionZLen := int(maxRegionZ - minRegionZ + 1)

	pool := workerpool.New(s.workers)
	defer pool.Close()

	results := make(chan columnResult, s.inflightCap)

	nextToSubmit := minRegionX
	inflight := 0
	submitMore := func() {
		for inflight < s.inflightCap && nextToSubmit <= maxRegionX {
			rx := nextToSubmit
			pool.Submit(func() {
				results <- s.computeColumn(rx, minRegionZ, maxRegionZ, regionZLen)
			})
			nextToSubmit++
			inflight++
		}
	}
	submitMore()

	// Out-of-order columns land here until their regionX comes up for
	// delivery. Kept in insertion order so a stuck consumer can be debugged
	// by walking pending columns in the order they actually finished.
	pending := orderedmap.NewOrderedMap[int32, *Column]()
	var firstErr error

	awaitColumn := func(rx int32) (*Column, error) {
		if c, ok := pending.Get(rx); ok {
			pending.Delete(rx)
			return c, nil
		}
		for {
			if firstErr != nil && inflight == 0 {
				return nil, firstErr
			}
			r := <-results
			inflight--
			if r.err != nil && firstErr == nil {
				firstErr = r.err
			}
			if firstErr != nil {
				continue
			}
			submitMore()
			if r.col.RegionX == rx {
				return r.col, nil
			}
			pending.Set(r.col.RegionX, r.col)
		}
	}

	for rx := minRegionX; rx <= maxRegionX; rx++ {
		col, err := awaitColumn(rx)
		if err != nil {
			return err
		}
		if err := onColumn(col); err != nil {
			return err
		}
	}
	return firstErr
}

func (s *Scanner) computeColumn(regionX, minRegionZ, maxRegionZ int32, regionZLen int) columnResult {
	var result columnResult
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = columnResult{err: fmt.Errorf("placement: worker panic computing region column %d: %v", regionX, r)}
			}
		}()
		col := newColumn(regionX, minRegionZ, regionZLen)
		for rz := minRegionZ; rz <= maxRegionZ; rz++ {
			cand := s.oracle.Candidate(regionX, rz)
			if cand.ChunkX < s.minChunk || cand.ChunkX > s.maxChunk ||
				cand.ChunkZ < s.minChunk || cand.ChunkZ > s.maxChunk {
				continue
			}
			col.set(rz, cand.ChunkX, cand.ChunkZ)
		}
		result = columnResult{col: col}
	}()
	return result
}
