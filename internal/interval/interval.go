package interval

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Integer is the set of coordinate types an Interval can be built over.
type Integer interface {
	constraints.Signed
}

// Interval is a closed range [Start, End]. Any interval with End < Start is
// empty; Empty returns the canonical empty value.
type Interval[T Integer] struct {
	Start T
	End   T
}

// New returns the interval [start, end].
func New[T Integer](start, end T) Interval[T] {
	return Interval[T]{Start: start, End: end}
}

// FromLength returns the interval that starts at start and spans length units.
func FromLength[T Integer](start, length T) Interval[T] {
	return Interval[T]{Start: start, End: start + length - 1}
}

// Empty returns the canonical empty interval.
func Empty[T Integer]() Interval[T] {
	return Interval[T]{Start: 0, End: -1}
}

// IsEmpty reports whether the interval holds no points.
func (r Interval[T]) IsEmpty() bool {
	return r.End < r.Start
}

// Len returns the number of points in the interval, or 0 when empty.
func (r Interval[T]) Len() T {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Equal compares two intervals, treating all empty intervals as equal.
func (r Interval[T]) Equal(other Interval[T]) bool {
	if r.IsEmpty() && other.IsEmpty() {
		return true
	}
	return r == other
}

// Contains reports whether point lies inside r.
func (r Interval[T]) Contains(point T) bool {
	return r.Start <= point && point <= r.End
}

// Covers reports whether other is non-empty and lies wholly inside r.
func (r Interval[T]) Covers(other Interval[T]) bool {
	if other.IsEmpty() || r.IsEmpty() {
		return false
	}
	return r.Start <= other.Start && other.End <= r.End
}

// Intersects reports whether r and other share at least one point.
func (r Interval[T]) Intersects(other Interval[T]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return !(r.Start > other.End || other.Start > r.End)
}

// Intersect returns the overlap of r and other, or the empty interval.
func (r Interval[T]) Intersect(other Interval[T]) Interval[T] {
	if !r.Intersects(other) {
		return Empty[T]()
	}
	return Interval[T]{Start: max(r.Start, other.Start), End: min(r.End, other.End)}
}

// Clamp returns the part of r that lies inside bounds.
func (r Interval[T]) Clamp(bounds Interval[T]) Interval[T] {
	return r.Intersect(bounds)
}

// Shift translates r by delta. It fails with ErrRangeOverflow instead of
// wrapping around the coordinate type.
func (r Interval[T]) Shift(delta T) (Interval[T], error) {
	if r.IsEmpty() {
		return r, nil
	}
	hi, lo := maxValue[T](), minValue[T]()
	if delta > 0 && r.End > hi-delta {
		return r, fmt.Errorf("%w: shift %s by %d", ErrRangeOverflow, r, delta)
	}
	if delta < 0 && r.Start < lo-delta {
		return r, fmt.Errorf("%w: shift %s by %d", ErrRangeOverflow, r, delta)
	}
	return Interval[T]{Start: r.Start + delta, End: r.End + delta}, nil
}

func (r Interval[T]) String() string {
	if r.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// touchesFrom reports whether an interval ending at end overlaps or is
// adjacent to a point at start or later.
func touchesFrom[T Integer](end, start T) bool {
	return end >= start || end+1 == start
}

// beyond reports whether an interval starting at start lies strictly after
// end with at least one unit of gap.
func beyond[T Integer](start, end T) bool {
	return start > end && start-1 != end
}

func maxValue[T Integer]() T {
	var m T = 1
	for m<<1 > 0 {
		m = m<<1 | 1
	}
	return m
}

func minValue[T Integer]() T {
	return -maxValue[T]() - 1
}
