package orchestrator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/coverage"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/group"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/prune"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/region"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/stats"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/validator"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/workerpool"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/oerror"
)

// Spot is one fully-scored monument group: its members and the AFK point
// that maximizes combined guardian coverage across them.
type Spot struct {
	Members []placement.Candidate
	AFK     coverage.Result
}

// Output is everything a run produced, in final sorted order.
type Output struct {
	RunID string
	Spots []Spot

	ScannedColumns     int
	PlacementSurvivors int
	ValidatedSurvivors int
	PrunedSurvivors    int
	GroupsFound        int
}

// Run executes the full pipeline for cfg against v (use validator.None{} to
// skip native viability checking) and returns every monument group found,
// sorted by total covered blocks descending.
func Run(cfg Config, v validator.Validator, log *logrus.Entry) (Output, error) {
	if err := cfg.Validate(); err != nil {
		return Output{}, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	runID := uuid.NewString()
	log = log.WithField("runID", runID)

	oracle := placement.NewOracle(cfg.Seed, cfg.CenterOffset)
	minChunk := region.FloorDiv(-cfg.RangeBlocks, 16)
	maxChunk := region.FloorDiv(cfg.RangeBlocks, 16)
	excludeChunks := int32(0)
	if cfg.ExcludeRadius > 0 {
		excludeChunks = region.FloorDiv(cfg.ExcludeRadius, 16)
	}
	scanner := placement.NewScanner(oracle, minChunk, maxChunk, cfg.Threads)
	minRegionX, maxRegionX, _, _ := scanner.RegionBounds()
	scannedColumns := int(maxRegionX-minRegionX) + 1

	log.WithFields(logrus.Fields{
		"seed":          cfg.Seed,
		"rangeBlocks":   cfg.RangeBlocks,
		"excludeRadius": cfg.ExcludeRadius,
		"groupSize":     cfg.GroupSize,
	}).Info("orchestrator: scanning chunk grid for monument placements")

	survivors, err := prune.RunStageA(scanner, prune.StageAConfig{
		PairwiseBlocks: cfg.PairwiseBlocksStageA,
		K:              cfg.GroupSize,
		KeepAll:        cfg.KeepAllCandidates,
		CenterOffset:   cfg.CenterOffset,
		ExcludeChunks:  excludeChunks,
	})
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: stage A: %w", err)
	}
	log.WithField("survivors", len(survivors)).Info("orchestrator: stage A isolation prune complete")

	viable, err := validator.FilterViable(v, survivors, cfg.ValidatorBatchSize)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: validation: %w", err)
	}
	log.WithField("viable", len(viable)).Info("orchestrator: viability validation complete")

	pruned := prune.RunStageC(viable, prune.StageCConfig{
		PairwiseBlocks: cfg.PairwiseBlocksStageC,
		K:              cfg.GroupSize,
		KeepAll:        cfg.KeepAllCandidates,
	})
	log.WithField("pruned", len(pruned)).Info("orchestrator: stage C re-prune complete")

	if len(pruned) < cfg.GroupSize {
		log.Warn("orchestrator: fewer surviving candidates than the requested group size, no groups possible")
		return Output{
			RunID:              runID,
			ScannedColumns:     scannedColumns,
			PlacementSurvivors: len(survivors),
			ValidatedSurvivors: len(viable),
			PrunedSurvivors:    len(pruned),
		}, nil
	}

	groups, err := group.Enumerate(pruned, group.EnumeratorConfig{
		K:              cfg.GroupSize,
		PairwiseBlocks: cfg.PairwiseBlocksStageC,
		AFKRadius:      coverage.CenterConstraintRadius,
		BatchSize:      cfg.GroupBatchSize,
		Workers:        cfg.Threads,
	})
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: group enumeration: %w", err)
	}

	dedup := group.NewDeduper(len(groups))
	dedup.AddAll(groups)
	deduped := dedup.Groups()
	log.WithField("groups", len(deduped)).Info("orchestrator: group enumeration and dedup complete")

	spots, err := scoreGroups(deduped, cfg, log)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: coverage optimization: %w", err)
	}

	sort.SliceStable(spots, func(i, j int) bool {
		a, b := spots[i].AFK, spots[j].AFK
		if a.TotalCovered != b.TotalCovered {
			return a.TotalCovered > b.TotalCovered
		}
		if da, db := originDist2(a.X, a.Z), originDist2(b.X, b.Z); da != db {
			return da < db
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})

	totals := lo.Map(spots, func(s Spot, _ int) int64 { return s.AFK.TotalCovered })
	summary := stats.Summarize(totals)
	log.WithFields(logrus.Fields{
		"mean":   summary.Mean,
		"stdDev": summary.StdDev,
		"min":    summary.Min,
		"max":    summary.Max,
	}).Info("orchestrator: coverage score summary")

	return Output{
		RunID:              runID,
		Spots:              spots,
		ScannedColumns:     scannedColumns,
		PlacementSurvivors: len(survivors),
		ValidatedSurvivors: len(viable),
		PrunedSurvivors:    len(pruned),
		GroupsFound:        len(deduped),
	}, nil
}

func originDist2(x, z int32) int64 {
	dx, dz := int64(x), int64(z)
	return dx*dx + dz*dz
}

// scoreGroups runs CoverageOptimizer for every candidate group concurrently
// on a bounded worker pool. A panic inside one group's scoring is fatal to
// the whole run, same as any other worker panic in this pipeline: it is
// recovered only so it can be surfaced as the run's error instead of
// crashing the process.
func scoreGroups(groups []group.Group, cfg Config, log *logrus.Entry) ([]Spot, error) {
	pool := workerpool.New(cfg.Threads)
	defer pool.Close()

	type result struct {
		spot Spot
		err  error
	}
	results := make(chan result, len(groups))

	for _, g := range groups {
		g := g
		pool.Submit(func() {
			results <- scoreOneGroup(g, cfg, log)
		})
	}

	spots := make([]Spot, 0, len(groups))
	var firstErr error
	for range groups {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if firstErr == nil {
			spots = append(spots, r.spot)
		}
	}
	if firstErr != nil {
		log.WithError(firstErr).Error("orchestrator: coverage scoring failed")
		return nil, firstErr
	}
	return spots, nil
}

func scoreOneGroup(g group.Group, cfg Config, log *logrus.Entry) (res struct {
	spot Spot
	err  error
}) {
	defer func() {
		if r := recover(); r != nil {
			res.err = oerror.New("panic scoring group: %v", r)
		}
	}()

	centers := make([]coverage.Center, len(g.Members))
	for i, m := range g.Members {
		centers[i] = coverage.Center{X: m.CenterX, Z: m.CenterZ}
	}

	afk, err := coverage.FindBest(centers, cfg.Coverage, log)
	if err != nil {
		res.err = err
		return
	}
	res.spot = Spot{Members: g.Members, AFK: afk}
	return
}
