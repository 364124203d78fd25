package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "render") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(5)
	steps := []struct {
		percent float64
		stage   string
		want    bool
	}{
		{0, "render", true},
		{3, "render", false},
		{5, "render", true},
		{7, "render", false},
		{10, "  render  ", true},
		{10, "finalize", true},
		{4, "finalize", false},
		{95, "finalize", true},
		{100, "finalize", true},
		{105, "finalize", false},
		{-1, "finalize", false},
	}
	for i, step := range steps {
		if got := s.ShouldLog(step.percent, step.stage); got != step.want {
			t.Fatalf("step %d ShouldLog(%v, %q) = %v, want %v", i, step.percent, step.stage, got, step.want)
		}
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(50, "render")
	s.Reset()
	if s.lastStage != "" || s.lastBucket != -1 {
		t.Fatalf("state after reset = %q/%d", s.lastStage, s.lastBucket)
	}
	if !s.ShouldLog(50, "render") {
		t.Error("should log after reset")
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		done, total int64
		want        float64
	}{
		{0, 100, 0},
		{50, 200, 25},
		{300, 200, 100},
		{10, 0, -1},
	}
	for _, tc := range cases {
		if got := Percent(tc.done, tc.total); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %v, want %v", tc.done, tc.total, got, tc.want)
		}
	}
}
