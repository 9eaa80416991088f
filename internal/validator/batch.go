package validator

import "github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"

// FilterViable runs every candidate through v in batches of batchSize and
// returns the subset v reports as viable, preserving input order. A zero or
// negative batchSize is treated as "one batch."
func FilterViable(v Validator, candidates []placement.Candidate, batchSize int) ([]placement.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	if batchSize <= 0 {
		batchSize = len(candidates)
	}

	viable := make([]placement.Candidate, 0, len(candidates))
	xs := make([]int32, batchSize)
	zs := make([]int32, batchSize)
	flags := make([]bool, batchSize)

	for start := 0; start < len(candidates); start += batchSize {
		end := min(start+batchSize, len(candidates))
		n := end - start

		for i := 0; i < n; i++ {
			xs[i] = candidates[start+i].ChunkX
			zs[i] = candidates[start+i].ChunkZ
		}
		if err := v.IsViableBatch(xs[:n], zs[:n], flags[:n]); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if flags[i] {
				viable = append(viable, candidates[start+i])
			}
		}
	}
	return viable, nil
}
