package interval

import (
	"slices"
	"sort"
	"strings"
)

// Set is an ordered collection of disjoint intervals.
//
// Invariant: ranges are strictly ascending by Start, pairwise non-overlapping
// and pairwise non-adjacent (at least one unit of gap between neighbours).
// Every method relies on this, so ranges is only mutated through Union,
// Exclude, Shift, Load and Clear.
type Set[T Integer] struct {
	ranges []Interval[T]

	// sums[i] is the total length of ranges[:i]; nil when stale.
	sums   []T
	cursor cursor[T]
}

// cursor remembers where the previous Impose query landed so that queries with
// non-decreasing starts can resume the scan instead of searching again.
type cursor[T Integer] struct {
	valid bool
	at    T
	index int
	acc   T
}

// NewSet returns a set holding the union of the given intervals.
func NewSet[T Integer](ranges ...Interval[T]) *Set[T] {
	s := &Set[T]{}
	for _, r := range ranges {
		s.Union(r)
	}
	return s
}

// Ranges returns a copy of the stored intervals in ascending order.
func (s *Set[T]) Ranges() []Interval[T] {
	return slices.Clone(s.ranges)
}

// Len returns the number of stored intervals.
func (s *Set[T]) Len() int {
	return len(s.ranges)
}

// IsEmpty reports whether the set holds no intervals.
func (s *Set[T]) IsEmpty() bool {
	return len(s.ranges) == 0
}

// TotalLength returns the number of points covered by the set.
func (s *Set[T]) TotalLength() T {
	var total T
	for _, r := range s.ranges {
		total += r.Len()
	}
	return total
}

// Clear removes every interval.
func (s *Set[T]) Clear() {
	s.ranges = s.ranges[:0]
	s.invalidate()
}

// Union inserts r, fusing it with every stored interval it overlaps or
// touches. Empty intervals are ignored.
func (s *Set[T]) Union(r Interval[T]) {
	if r.IsEmpty() {
		return
	}
	s.invalidate()
	lo := sort.Search(len(s.ranges), func(i int) bool {
		return touchesFrom(s.ranges[i].End, r.Start)
	})
	hi := sort.Search(len(s.ranges), func(i int) bool {
		return beyond(s.ranges[i].Start, r.End)
	})
	if lo >= hi {
		s.ranges = slices.Insert(s.ranges, lo, r)
		return
	}
	merged := Interval[T]{
		Start: min(r.Start, s.ranges[lo].Start),
		End:   max(r.End, s.ranges[hi-1].End),
	}
	s.ranges = slices.Replace(s.ranges, lo, hi, merged)
}

// Exclude removes every point of r from the set, splitting stored intervals
// into left and right remainders where r cuts through them. Empty intervals
// are ignored.
func (s *Set[T]) Exclude(r Interval[T]) {
	if r.IsEmpty() {
		return
	}
	lo, hi := s.overlapping(r)
	if lo >= hi {
		return
	}
	s.invalidate()
	first, last := s.ranges[lo], s.ranges[hi-1]
	remainders := make([]Interval[T], 0, 2)
	if first.Start < r.Start {
		remainders = append(remainders, Interval[T]{Start: first.Start, End: r.Start - 1})
	}
	if last.End > r.End {
		remainders = append(remainders, Interval[T]{Start: r.End + 1, End: last.End})
	}
	s.ranges = slices.Replace(s.ranges, lo, hi, remainders...)
}

// Contains reports whether r is non-empty and lies wholly inside a single
// stored interval. A range that straddles a gap is not contained.
func (s *Set[T]) Contains(r Interval[T]) bool {
	if r.IsEmpty() {
		return false
	}
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= r.Start
	})
	return i < len(s.ranges) && s.ranges[i].Covers(r)
}

// ContainsPoint reports whether point is covered by the set.
func (s *Set[T]) ContainsPoint(point T) bool {
	return s.Contains(Interval[T]{Start: point, End: point})
}

// Intersection returns, in ascending order, the overlap of r with every
// stored interval it touches.
func (s *Set[T]) Intersection(r Interval[T]) []Interval[T] {
	if r.IsEmpty() {
		return nil
	}
	lo, hi := s.overlapping(r)
	if lo >= hi {
		return nil
	}
	out := make([]Interval[T], 0, hi-lo)
	for _, stored := range s.ranges[lo:hi] {
		out = append(out, stored.Intersect(r))
	}
	return out
}

// Shift translates every stored interval by delta. The set is left untouched
// and ErrRangeOverflow is returned if any endpoint would overflow.
func (s *Set[T]) Shift(delta T) error {
	if delta == 0 || len(s.ranges) == 0 {
		return nil
	}
	shifted := make([]Interval[T], len(s.ranges))
	for i, r := range s.ranges {
		next, err := r.Shift(delta)
		if err != nil {
			return err
		}
		shifted[i] = next
	}
	s.ranges = shifted
	s.invalidate()
	return nil
}

// Copy returns a deep copy of the set.
func (s *Set[T]) Copy() *Set[T] {
	return &Set[T]{ranges: slices.Clone(s.ranges)}
}

// Load replaces the contents of s with a copy of other.
func (s *Set[T]) Load(other *Set[T]) {
	s.ranges = append(s.ranges[:0], other.ranges...)
	s.invalidate()
}

// Equal reports whether both sets hold exactly the same intervals.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.ranges, other.ranges)
}

func (s *Set[T]) String() string {
	parts := make([]string, 0, len(s.ranges))
	for _, r := range s.ranges {
		parts = append(parts, r.String())
	}
	return "IntervalSet(" + strings.Join(parts, ", ") + ")"
}

// overlapping returns the half-open index range of stored intervals that share
// at least one point with r.
func (s *Set[T]) overlapping(r Interval[T]) (int, int) {
	lo := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= r.Start
	})
	hi := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Start > r.End
	})
	return lo, hi
}

func (s *Set[T]) invalidate() {
	s.sums = nil
	s.cursor = cursor[T]{}
}
