// Package prune implements the two isolation-pruning passes: Stage A runs on
// placement-only candidates before validation, Stage C re-applies the same
// test after validation has removed some candidates. Both reject a
// candidate that has fewer than (k-1) distinct neighbors within a pairwise
// distance threshold — a monument with no peer close enough to share a
// 128-block AFK disk cannot participate in any double/triple/quad group.
package prune

import (
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
)

// StageAConfig holds the parameters Stage A needs. PairwiseBlocks defaults
// to 256 (the strict two-disks-intersect bound); K selects the required
// neighbor count (k-1), and CenterOffset is used to compute each surviving
// candidate's block-space center. ExcludeChunks, if > 0, suppresses a
// candidate from becoming a survivor when its Chebyshev chunk-distance from
// the origin is within the exclusion ring — it is never removed from the
// columns used for neighbor lookups, so an excluded candidate can still
// count as a neighbor for a bordering non-excluded one.
type StageAConfig struct {
	PairwiseBlocks int32
	K              int
	KeepAll        bool
	CenterOffset   int32
	ExcludeChunks  int32
}

func (c StageAConfig) excluded(chunkX, chunkZ int32) bool {
	if c.ExcludeChunks <= 0 {
		return false
	}
	cheb := chebyshevAbs(chunkX)
	if z := chebyshevAbs(chunkZ); z > cheb {
		cheb = z
	}
	return cheb <= c.ExcludeChunks
}

func chebyshevAbs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (c StageAConfig) requiredNeighbors() int {
	if c.K <= 1 {
		return 0
	}
	return c.K - 1
}

// RunStageA scans the given Scanner and returns every candidate chunk that
// survives the isolation filter (or every candidate, if KeepAll is set).
// It streams a three-column sliding window (previous, current, next) over
// the scanner's output, releasing each column as soon as the window slides
// past it.
func RunStageA(scanner *placement.Scanner, cfg StageAConfig) ([]placement.Candidate, error) {
	required := cfg.requiredNeighbors()
	pairwise2 := int64(cfg.PairwiseBlocks) * int64(cfg.PairwiseBlocks)

	survivors := make([]placement.Candidate, 0, 1024)

	var prev, curr *placement.Column
	processColumn := func(prev, curr, next *placement.Column) {
		if curr == nil {
			return
		}
		for idx := 0; idx < curr.Len(); idx++ {
			rz := curr.MinRegionZ + int32(idx)
			if !curr.HasAt(rz) {
				continue
			}
			axChunk, azChunk := curr.At(rz)
			if cfg.excluded(axChunk, azChunk) {
				continue
			}

			if cfg.KeepAll || required == 0 {
				survivors = append(survivors, toCandidate(axChunk, azChunk, cfg.CenterOffset))
				continue
			}

			neighborCount := 0
			for dx := int32(-1); dx <= 1 && neighborCount < required; dx++ {
				var col *placement.Column
				switch dx {
				case -1:
					col = prev
				case 0:
					col = curr
				case 1:
					col = next
				}
				if col == nil {
					continue
				}
				for dz := int32(-1); dz <= 1 && neighborCount < required; dz++ {
					if dx == 0 && dz == 0 {
						continue
					}
					nz := rz + dz
					if !col.HasAt(nz) {
						continue
					}
					bxChunk, bzChunk := col.At(nz)
					if blockDistance2(axChunk, azChunk, bxChunk, bzChunk) <= pairwise2 {
						neighborCount++
					}
				}
			}

			if neighborCount >= required {
				survivors = append(survivors, toCandidate(axChunk, azChunk, cfg.CenterOffset))
			}
		}
	}

	err := scanner.Scan(func(got *placement.Column) error {
		if curr != nil {
			processColumn(prev, curr, got)
		}
		prev, curr = curr, got
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Final column in the stream has no "next".
	processColumn(prev, curr, nil)

	return survivors, nil
}

func toCandidate(chunkX, chunkZ, centerOffset int32) placement.Candidate {
	return placement.Candidate{
		ChunkX:  chunkX,
		ChunkZ:  chunkZ,
		CenterX: chunkX*16 + centerOffset,
		CenterZ: chunkZ*16 + centerOffset,
	}
}

func blockDistance2(ax, az, bx, bz int32) int64 {
	dx := int64(bx-ax) << 4
	dz := int64(bz-az) << 4
	return dx*dx + dz*dz
}
