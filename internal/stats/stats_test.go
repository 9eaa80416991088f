package stats

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Fatalf("expected zero-value summary for empty input, got %+v", s)
	}
}

func TestSummarizeBasic(t *testing.T) {
	s := Summarize([]int64{10, 20, 30})
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Mean != 20 {
		t.Errorf("Mean = %v, want 20", s.Mean)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("Min/Max = %d/%d, want 10/30", s.Min, s.Max)
	}
	wantStdDev := 8.16496580927726
	if diff := s.StdDev - wantStdDev; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, wantStdDev)
	}
}
