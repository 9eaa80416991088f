package cli

import (
	"testing"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/orchestrator"
)

func TestParseValidArgs(t *testing.T) {
	cfg, err := Parse([]string{"123456789", "double", "20000", "10000", "4"}, orchestrator.DefaultConfig())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Seed != 123456789 {
		t.Errorf("Seed = %d, want 123456789", cfg.Seed)
	}
	if cfg.GroupSize != 2 {
		t.Errorf("GroupSize = %d, want 2", cfg.GroupSize)
	}
	if cfg.RangeBlocks != 20000 || cfg.ExcludeRadius != 10000 || cfg.Threads != 4 {
		t.Errorf("unexpected range/exclude/threads: %+v", cfg)
	}
}

func TestParseRejectsTooFewArgs(t *testing.T) {
	if _, err := Parse([]string{"1", "double"}, orchestrator.DefaultConfig()); err == nil {
		t.Fatal("expected an error for too few arguments")
	}
}

func TestParseRejectsBadType(t *testing.T) {
	if _, err := Parse([]string{"1", "quintuple", "100", "0", "1"}, orchestrator.DefaultConfig()); err == nil {
		t.Fatal("expected an error for an unrecognized type token")
	}
}

func TestParseRejectsExcludeGreaterThanRange(t *testing.T) {
	if _, err := Parse([]string{"1", "double", "100", "200", "1"}, orchestrator.DefaultConfig()); err == nil {
		t.Fatal("expected an error when excludeRadius exceeds rangeBlocks")
	}
}

func TestParseAcceptsAllThreeTypes(t *testing.T) {
	for tok, want := range map[string]int{"double": 2, "triple": 3, "quad": 4} {
		cfg, err := Parse([]string{"1", tok, "20000", "0", "1"}, orchestrator.DefaultConfig())
		if err != nil {
			t.Fatalf("Parse(%q): %v", tok, err)
		}
		if cfg.GroupSize != want {
			t.Errorf("type %q: GroupSize = %d, want %d", tok, cfg.GroupSize, want)
		}
	}
}
