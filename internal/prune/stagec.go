package prune

import (
	"github.com/brentp/intintmap"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/ohash"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/region"
)

// StageCConfig mirrors StageAConfig but applies to the post-validation
// re-prune. PairwiseBlocks defaults to 224 here, tighter than Stage A's 256:
// two monuments exactly 256 apart share only a single AFK point with ~50%
// coverage per monument, so tightening the bound trims heap pressure
// without losing any high-coverage result.
type StageCConfig struct {
	PairwiseBlocks int32
	K              int
	KeepAll        bool
}

func (c StageCConfig) requiredNeighbors() int {
	if c.K <= 1 {
		return 0
	}
	return c.K - 1
}

// RunStageC rebuilds a region-keyed hash map over the viable survivors and
// re-counts viable neighbors in the 3x3 region window, dropping any
// candidate whose neighbor count fell below (k-1) once non-viable
// candidates were removed by the validator. The map is an open-addressed
// int64 table (github.com/brentp/intintmap) keyed by a splitmix64-mixed,
// packed (regionX, regionZ) key, never a generic string-keyed map.
func RunStageC(viable []placement.Candidate, cfg StageCConfig) []placement.Candidate {
	if cfg.KeepAll || len(viable) == 0 {
		return viable
	}
	required := cfg.requiredNeighbors()
	if required == 0 {
		return viable
	}
	pairwise2 := int64(cfg.PairwiseBlocks) * int64(cfg.PairwiseBlocks)

	m := intintmap.New(len(viable)*2, 0.5)
	for i, c := range viable {
		rx := region.Of(c.ChunkX)
		rz := region.Of(c.ChunkZ)
		m.Put(ohash.Mix64(region.Key(rx, rz)), int64(i))
	}

	kept := make([]placement.Candidate, 0, len(viable))
	for i, c := range viable {
		rx := region.Of(c.ChunkX)
		rz := region.Of(c.ChunkZ)

		neighborCount := 0
		for dx := int32(-1); dx <= 1 && neighborCount < required; dx++ {
			for dz := int32(-1); dz <= 1 && neighborCount < required; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				nkey := ohash.Mix64(region.Key(rx+dx, rz+dz))
				idx, ok := m.Get(nkey)
				if !ok || idx == int64(i) {
					continue
				}
				b := viable[idx]
				if blockDistance2(c.ChunkX, c.ChunkZ, b.ChunkX, b.ChunkZ) <= pairwise2 {
					neighborCount++
				}
			}
		}

		if neighborCount >= required {
			kept = append(kept, c)
		}
	}
	return kept
}
