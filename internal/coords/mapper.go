// Package coords converts between the coordinate spaces of an audio track:
// waveform pixels, milliseconds, raw frames and frames of the edited timeline.
package coords

import (
	"errors"
	"fmt"
	"time"

	"trimline/internal/interval"
)

const (
	MinFramesPerPixel     = 20
	MaxFramesPerPixel     = 100_000
	DefaultFramesPerPixel = 441
	DefaultFrameRate      = 44_100
)

// ErrInvalidFrameRate is returned for a non-positive frame rate.
var ErrInvalidFrameRate = errors.New("frame rate must be positive")

// Mapper translates frames to pixels and milliseconds at a fixed frame rate
// and zoom level. The zero value is not usable; call NewMapper.
type Mapper struct {
	framesPerSecond int64
	framesPerPixel  int64
}

// NewMapper returns a mapper for the given frame rate. framesPerPixel is
// clamped to [MinFramesPerPixel, MaxFramesPerPixel].
func NewMapper(framesPerSecond, framesPerPixel int64) (Mapper, error) {
	if framesPerSecond <= 0 {
		return Mapper{}, fmt.Errorf("%w: %d", ErrInvalidFrameRate, framesPerSecond)
	}
	return Mapper{
		framesPerSecond: framesPerSecond,
		framesPerPixel:  clampZoom(framesPerPixel),
	}, nil
}

func clampZoom(fpp int64) int64 {
	return min(max(fpp, MinFramesPerPixel), MaxFramesPerPixel)
}

func (m Mapper) FramesPerSecond() int64 { return m.framesPerSecond }

func (m Mapper) FramesPerPixel() int64 { return m.framesPerPixel }

// WithFramesPerPixel returns a copy of m at another zoom level, clamped like
// NewMapper.
func (m Mapper) WithFramesPerPixel(fpp int64) Mapper {
	m.framesPerPixel = clampZoom(fpp)
	return m
}

// PixelOf returns the pixel column holding frame. Negative frames map to
// negative pixels.
func (m Mapper) PixelOf(frame int64) int64 {
	return floorDiv(frame, m.framesPerPixel)
}

// FrameOf returns the first frame of pixel column pixel.
func (m Mapper) FrameOf(pixel int64) int64 {
	return pixel * m.framesPerPixel
}

// PixelRange maps both endpoints of a frame range to pixels.
func (m Mapper) PixelRange(frames interval.Interval[int64]) interval.Interval[int64] {
	if frames.IsEmpty() {
		return interval.Empty[int64]()
	}
	return interval.New(m.PixelOf(frames.Start), m.PixelOf(frames.End))
}

// FrameRange returns every frame drawn in the given pixel columns, from the
// first frame of the first column to the last frame of the last one.
func (m Mapper) FrameRange(pixels interval.Interval[int64]) interval.Interval[int64] {
	if pixels.IsEmpty() {
		return interval.Empty[int64]()
	}
	return interval.New(m.FrameOf(pixels.Start), m.FrameOf(pixels.End+1)-1)
}

// MillisOf returns the whole millisecond frame falls in.
func (m Mapper) MillisOf(frame int64) int64 {
	return mulDivFloor(frame, 1000, m.framesPerSecond)
}

// FrameOfMillis returns the first frame that plays during millisecond ms.
// At frame rates of 1000 and above MillisOf(FrameOfMillis(ms)) == ms.
func (m Mapper) FrameOfMillis(ms int64) int64 {
	return -mulDivFloor(-ms, m.framesPerSecond, 1000)
}

// MillisRange maps both endpoints of a frame range to milliseconds.
func (m Mapper) MillisRange(frames interval.Interval[int64]) interval.Interval[int64] {
	if frames.IsEmpty() {
		return interval.Empty[int64]()
	}
	return interval.New(m.MillisOf(frames.Start), m.MillisOf(frames.End))
}

// FrameRangeOfMillis maps both endpoints of a millisecond range to frames.
func (m Mapper) FrameRangeOfMillis(ms interval.Interval[int64]) interval.Interval[int64] {
	if ms.IsEmpty() {
		return interval.Empty[int64]()
	}
	return interval.New(m.FrameOfMillis(ms.Start), m.FrameOfMillis(ms.End))
}

// DurationOf returns how long frames frames play for.
func (m Mapper) DurationOf(frames int64) time.Duration {
	return time.Duration(mulDivFloor(frames, int64(time.Second), m.framesPerSecond))
}

// PixelOfDuration returns the pixel column reached after d of playback.
func (m Mapper) PixelOfDuration(d time.Duration) int64 {
	return m.PixelOf(mulDivFloor(int64(d), m.framesPerSecond, int64(time.Second)))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mulDivFloor computes floor(a*mul/div) for positive mul and div without
// overflowing on a*mul, as long as div*mul fits in an int64.
func mulDivFloor(a, mul, div int64) int64 {
	q := floorDiv(a, div)
	r := a - q*div
	return q*mul + (r*mul)/div
}
