// Package placement reproduces the game's regional structure-placement PRNG
// bit-for-bit and scans a chunk-coordinate rectangle for ocean monument
// candidates in parallel.
package placement

import (
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/prng"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/region"
)

const (
	salt         = 10387313
	magicNumber1 = 341873128712
	magicNumber2 = 132897987541

	// bound is Spacing-Separation: the upper bound of each triangular draw.
	bound = region.Spacing - region.Separation
)

// Candidate is a monument start chunk, plus the block-space center derived
// from it. It is immutable once constructed.
type Candidate struct {
	ChunkX, ChunkZ   int32
	CenterX, CenterZ int32
}

// Oracle computes candidate monument positions for arbitrary region
// coordinates. It holds nothing but the world seed and the center-offset
// convention, so it is safe to share across goroutines without
// synchronization.
type Oracle struct {
	seed         int64
	centerOffset int32
}

// NewOracle constructs an Oracle for the given world seed. centerOffset is
// added to chunk*16 when deriving a block-space center (0 for the chunk-
// aligned convention, 8 for center-of-chunk).
func NewOracle(seed int64, centerOffset int32) *Oracle {
	return &Oracle{seed: seed, centerOffset: centerOffset}
}

// RegionSeed computes the per-region seed used to draw a candidate's start
// chunk, exactly matching the game's region-seed formula.
func (o *Oracle) RegionSeed(regionX, regionZ int32) int64 {
	return int64(regionX)*magicNumber1 + int64(regionZ)*magicNumber2 + o.seed + salt
}

// Candidate returns the (unfiltered) candidate start chunk for the given
// region. The result may fall outside any particular chunk-bounds request;
// callers filter separately.
func (o *Oracle) Candidate(regionX, regionZ int32) Candidate {
	rnd := prng.NewSource(o.RegionSeed(regionX, regionZ))

	// Fixed draw order: X first, then Z.
	chunkX := regionX*region.Spacing + (rnd.NextInt(bound)+rnd.NextInt(bound))/2
	chunkZ := regionZ*region.Spacing + (rnd.NextInt(bound)+rnd.NextInt(bound))/2

	return Candidate{
		ChunkX:  chunkX,
		ChunkZ:  chunkZ,
		CenterX: chunkX*16 + o.centerOffset,
		CenterZ: chunkZ*16 + o.centerOffset,
	}
}
