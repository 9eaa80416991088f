package orchestrator

import (
	"testing"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/validator"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"bad group size", func(c *Config) { c.GroupSize = 5 }, true},
		{"zero range", func(c *Config) { c.RangeBlocks = 0 }, true},
		{"exclude exceeds range", func(c *Config) { c.ExcludeRadius = c.RangeBlocks + 1 }, true},
		{"negative exclude", func(c *Config) { c.ExcludeRadius = -1 }, true},
		{"zero threads", func(c *Config) { c.Threads = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RangeBlocks = 0
	if _, err := Run(cfg, validator.None{}, nil); err == nil {
		t.Fatal("expected Run to reject an invalid config before doing any work")
	}
}

func TestRunOnTinyRangeFindsNoGroupsGracefully(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RangeBlocks = 32
	cfg.Threads = 1
	cfg.GroupSize = 4

	out, err := Run(cfg, validator.None{}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Spots) != 0 {
		t.Fatalf("expected no groups in a tiny scan range requiring 4-way groups, got %d", len(out.Spots))
	}
}
