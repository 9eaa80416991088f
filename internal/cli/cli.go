// Package cli parses and validates the tool's five positional arguments.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/orchestrator"
)

// Usage is printed to stderr on an argument error, exit code 1.
const Usage = `Usage:
  afkfinder <seed> <double|triple|quad> <rangeBlocks> <excludeRadius> <threads>

Examples:
  afkfinder 123456789 double 20000 10000 4`

// groupSizeFor maps the CLI's type token to k.
func groupSizeFor(s string) (int, error) {
	switch strings.ToLower(s) {
	case "double":
		return 2, nil
	case "triple":
		return 3, nil
	case "quad":
		return 4, nil
	default:
		return 0, fmt.Errorf("cli: type must be one of double, triple, quad, got %q", s)
	}
}

// Parse takes argv[1:] (no program name) and overlays it onto base, the
// config the caller already loaded from file/env. Precedence is file <
// env < CLI. It returns Usage-shaped errors the caller should print
// verbatim before exiting with code 1.
func Parse(args []string, base orchestrator.Config) (orchestrator.Config, error) {
	if len(args) != 5 {
		return orchestrator.Config{}, fmt.Errorf("cli: expected 5 arguments, got %d", len(args))
	}

	seed, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("cli: invalid seed %q", args[0])
	}

	groupSize, err := groupSizeFor(args[1])
	if err != nil {
		return orchestrator.Config{}, err
	}

	rangeBlocks, err := strconv.ParseInt(strings.TrimSpace(args[2]), 10, 32)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("cli: invalid rangeBlocks %q", args[2])
	}

	excludeRadius, err := strconv.ParseInt(strings.TrimSpace(args[3]), 10, 32)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("cli: invalid excludeRadius %q", args[3])
	}

	threads, err := strconv.Atoi(strings.TrimSpace(args[4]))
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("cli: invalid threads %q", args[4])
	}

	cfg := base
	cfg.Seed = seed
	cfg.GroupSize = groupSize
	cfg.RangeBlocks = int32(rangeBlocks)
	cfg.ExcludeRadius = int32(excludeRadius)
	cfg.Threads = threads

	if err := cfg.Validate(); err != nil {
		return orchestrator.Config{}, err
	}
	return cfg, nil
}
