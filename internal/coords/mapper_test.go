package coords

import (
	"errors"
	"math"
	"testing"
	"time"

	"trimline/internal/interval"
)

func mustMapper(t *testing.T, fps, fpp int64) Mapper {
	t.Helper()
	m, err := NewMapper(fps, fpp)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	return m
}

func TestNewMapperClampsZoom(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{in: 1, want: MinFramesPerPixel},
		{in: 441, want: 441},
		{in: 1_000_000, want: MaxFramesPerPixel},
		{in: -5, want: MinFramesPerPixel},
	}
	for _, tc := range cases {
		if got := mustMapper(t, 44100, tc.in).FramesPerPixel(); got != tc.want {
			t.Fatalf("NewMapper(fpp=%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if got := mustMapper(t, 44100, 441).WithFramesPerPixel(10).FramesPerPixel(); got != MinFramesPerPixel {
		t.Fatalf("WithFramesPerPixel = %d", got)
	}
	if _, err := NewMapper(0, 441); !errors.Is(err, ErrInvalidFrameRate) {
		t.Fatalf("err = %v", err)
	}
}

func TestPixelFrameConversions(t *testing.T) {
	m := mustMapper(t, 44100, 100)
	cases := []struct {
		frame, pixel int64
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{-1, -1},
		{-100, -1},
		{-101, -2},
	}
	for _, tc := range cases {
		if got := m.PixelOf(tc.frame); got != tc.pixel {
			t.Fatalf("PixelOf(%d) = %d, want %d", tc.frame, got, tc.pixel)
		}
	}
	if got := m.FrameOf(3); got != 300 {
		t.Fatalf("FrameOf(3) = %d", got)
	}
	if got := m.FrameRange(interval.New[int64](2, 4)); got != interval.New[int64](200, 499) {
		t.Fatalf("FrameRange = %s", got)
	}
	if got := m.PixelRange(interval.New[int64](200, 499)); got != interval.New[int64](2, 4) {
		t.Fatalf("PixelRange = %s", got)
	}
}

func TestPixelRangeRoundTrip(t *testing.T) {
	m := mustMapper(t, 48000, 441)
	for p := int64(-50); p < 50; p++ {
		px := interval.New(p, p+3)
		if got := m.PixelRange(m.FrameRange(px)); got != px {
			t.Fatalf("PixelRange(FrameRange(%s)) = %s", px, got)
		}
	}
}

func TestMillisConversions(t *testing.T) {
	m := mustMapper(t, 44100, 441)
	if got := m.MillisOf(44100); got != 1000 {
		t.Fatalf("MillisOf(44100) = %d", got)
	}
	if got := m.MillisOf(44); got != 0 {
		t.Fatalf("MillisOf(44) = %d", got)
	}
	if got := m.MillisOf(45); got != 1 {
		t.Fatalf("MillisOf(45) = %d", got)
	}
	if got := m.FrameOfMillis(1500); got != 66150 {
		t.Fatalf("FrameOfMillis(1500) = %d", got)
	}
	if got := m.MillisOf(-1); got != -1 {
		t.Fatalf("MillisOf(-1) = %d", got)
	}
	for ms := int64(0); ms < 5000; ms += 7 {
		if got := m.MillisOf(m.FrameOfMillis(ms)); got != ms {
			t.Fatalf("MillisOf(FrameOfMillis(%d)) = %d", ms, got)
		}
	}
	if got := m.DurationOf(22050); got != 500*time.Millisecond {
		t.Fatalf("DurationOf = %s", got)
	}
	if got := m.PixelOfDuration(time.Second); got != 100 {
		t.Fatalf("PixelOfDuration = %d", got)
	}
}

func TestMillisOfLargeFrames(t *testing.T) {
	m := mustMapper(t, 44100, 441)
	frame := int64(math.MaxInt64 / 256)
	got := m.MillisOf(frame)
	if got <= 0 || got > frame {
		t.Fatalf("MillisOf(%d) = %d overflowed", frame, got)
	}
}
