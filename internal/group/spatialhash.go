// Package group enumerates k-subsets of monument candidates whose centers
// lie within a common feasible disk, and canonicalizes/deduplicates the
// resulting groups.
package group

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/region"
)

// cellSize is the spatial hash's cell width in blocks (§4.7).
const cellSize = 256

// SpatialHash indexes a fixed slice of candidates by 256-block cell so a
// caller can cheaply enumerate every candidate within 224 blocks of a given
// point. It is read-only once built: safe to share, unsynchronized, across
// every GroupEnumerator worker.
type SpatialHash struct {
	points  []placement.Candidate
	buckets map[uint64][]int32
}

// NewSpatialHash indexes points by cell. points must not be mutated for the
// lifetime of the returned SpatialHash.
func NewSpatialHash(points []placement.Candidate) *SpatialHash {
	h := &SpatialHash{
		points:  points,
		buckets: make(map[uint64][]int32, len(points)),
	}
	for i, p := range points {
		key := cellHash(cellOf(p.CenterX), cellOf(p.CenterZ))
		h.buckets[key] = append(h.buckets[key], int32(i))
	}
	return h
}

func cellOf(block int32) int32 {
	return region.FloorDiv(block, cellSize)
}

// cellHash hashes a packed (cellX, cellZ) pair through xxh3 so bucket
// distribution doesn't depend on the low bits of the raw packed coordinate,
// which are adversarially regular for any grid-aligned candidate set.
func cellHash(cellX, cellZ int32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(region.Key(cellX, cellZ)))
	return xxh3.Hash(buf[:])
}

// Neighborhood returns the indices (into the slice NewSpatialHash was built
// from) of every point in the 3x3 block of cells centered on (x, z). This is
// a superset of "within 224 blocks"; callers still filter by exact distance.
func (h *SpatialHash) Neighborhood(x, z int32, dst []int32) []int32 {
	cx, cz := cellOf(x), cellOf(z)
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			dst = append(dst, h.buckets[cellHash(cx+dx, cz+dz)]...)
		}
	}
	return dst
}

// At returns the point stored at index i.
func (h *SpatialHash) At(i int32) placement.Candidate {
	return h.points[i]
}
