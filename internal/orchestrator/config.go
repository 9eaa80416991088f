// Package orchestrator wires the pipeline's stages together: placement
// scanning, pruning, validation, group enumeration, deduplication, and
// coverage optimization, against one immutable Config.
package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/coverage"
)

// Config is every tunable the pipeline reads. It is built once by Load and
// never mutated afterward; every stage and worker goroutine reads from its
// own copy of the value, never from package-level state.
type Config struct {
	Seed int64

	// GroupSize is k: 2 for double, 3 for triple, 4 for quad.
	GroupSize int

	// RangeBlocks and ExcludeRadius are the CLI surface's horizontal scan
	// bounds, both in blocks: scan [-RangeBlocks, +RangeBlocks] in X/Z,
	// skipping the inner Chebyshev square of ExcludeRadius blocks. Threads
	// sizes every worker pool in the pipeline.
	RangeBlocks   int32
	ExcludeRadius int32
	Threads       int

	// CenterOffset is added to chunk*16 when deriving a monument's
	// block-space center; 0 is the structure-start convention, 8 selects
	// the center-of-chunk convention.
	CenterOffset int32

	PairwiseBlocksStageA int32
	PairwiseBlocksStageC int32
	KeepAllCandidates    bool

	ValidatorPath           string
	ValidatorVersionOrdinal int
	ValidatorBatchSize      int

	GroupBatchSize int

	Coverage coverage.OptimizerConfig

	OutputPath string
	Gzip       bool

	DashboardEnabled bool
}

// DefaultConfig holds the pipeline's out-of-the-box tunables.
func DefaultConfig() Config {
	return Config{
		GroupSize:            2,
		RangeBlocks:          20000,
		ExcludeRadius:        0,
		Threads:              4,
		CenterOffset:         0,
		PairwiseBlocksStageA: 256,
		PairwiseBlocksStageC: 224,
		ValidatorBatchSize:   10000,
		GroupBatchSize:       25000,
		Coverage:             coverage.DefaultOptimizerConfig(),
		OutputPath:           "results.csv",
	}
}

// SaveDefault writes the default config as TOML to path, refusing to
// overwrite an existing file.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("orchestrator: config file already exists")
	}
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("orchestrator: failed encoding default config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a TOML config file, then overlays any AFKFINDER_-prefixed
// environment variables on top of it. A missing path is not an error: the
// caller gets defaults, since every field also has a sane fallback.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return Config{}, fmt.Errorf("orchestrator: error reading config: %w", err)
			}
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("orchestrator: error decoding config: %w", err)
			}
		}
	}
	overlayEnv(&cfg)
	return cfg, nil
}

// overlayEnv applies AFKFINDER_SEED, AFKFINDER_GROUP_SIZE,
// AFKFINDER_CENTER_OFFSET, and AFKFINDER_DASHBOARD on top of whatever Load
// already parsed, letting a single environment variable override a
// checked-in config for one run without editing it.
func overlayEnv(cfg *Config) {
	if v, ok := os.LookupEnv("AFKFINDER_SEED"); ok {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v, ok := os.LookupEnv("AFKFINDER_GROUP_SIZE"); ok {
		if k, err := strconv.Atoi(v); err == nil {
			cfg.GroupSize = k
		}
	}
	if v, ok := os.LookupEnv("AFKFINDER_CENTER_OFFSET"); ok {
		if offset, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.CenterOffset = int32(offset)
		}
	}
	if v, ok := os.LookupEnv("AFKFINDER_DASHBOARD"); ok {
		cfg.DashboardEnabled = v == "1"
	}
}

// Validate enforces the CLI surface's argument contract: rangeBlocks > 0,
// 0 <= excludeRadius <= rangeBlocks, threads >= 1.
func (c Config) Validate() error {
	if c.GroupSize < 2 || c.GroupSize > 4 {
		return fmt.Errorf("orchestrator: group size must be 2, 3, or 4, got %d", c.GroupSize)
	}
	if c.RangeBlocks <= 0 {
		return fmt.Errorf("orchestrator: rangeBlocks must be > 0, got %d", c.RangeBlocks)
	}
	if c.ExcludeRadius < 0 || c.ExcludeRadius > c.RangeBlocks {
		return fmt.Errorf("orchestrator: excludeRadius must be within [0, rangeBlocks], got %d (rangeBlocks=%d)", c.ExcludeRadius, c.RangeBlocks)
	}
	if c.Threads < 1 {
		return fmt.Errorf("orchestrator: threads must be >= 1, got %d", c.Threads)
	}
	return nil
}
