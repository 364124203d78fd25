package interval

import "sort"

// Impose re-expresses r in the coordinate space obtained by deleting every
// stored interval and sliding later coordinates left to close the gaps.
//
// Each endpoint moves left by the total stored length that precedes it. Parts
// of r that overlap stored intervals have no image in the compacted space, so
// the result is never longer than r, and a range lying wholly inside stored
// intervals imposes to the empty interval.
//
// Queries issued with non-decreasing starts resume from the previous query's
// position; any other order falls back to a binary search. Both paths return
// the same value.
func (s *Set[T]) Impose(r Interval[T]) Interval[T] {
	if r.IsEmpty() {
		return Empty[T]()
	}
	idx, accStart := s.seek(r.Start)
	start := r.Start - accStart - s.partial(idx, r.Start)

	// r.End can only land at or after the start position.
	j := idx
	if j < len(s.ranges) && s.ranges[j].End < r.End {
		tail := s.ranges[idx:]
		j = idx + sort.Search(len(tail), func(i int) bool {
			return tail[i].End >= r.End
		})
	}
	removed := accStart + s.lengthBetween(idx, j) + s.partial(j, r.End)
	if j < len(s.ranges) && s.ranges[j].Contains(r.End) {
		removed++
	}
	end := r.End - removed

	if end < start {
		return Empty[T]()
	}
	return Interval[T]{Start: start, End: end}
}

// ImposePoint returns the compacted position of point. A point inside a stored
// interval maps to the position where that interval was removed.
func (s *Set[T]) ImposePoint(point T) T {
	idx, acc := s.seek(point)
	return point - acc - s.partial(idx, point)
}

// Overlay is the inverse of Impose: it maps a range of the compacted space
// back to the original coordinates. Each endpoint lands on the surviving
// point that imposes onto it.
func (s *Set[T]) Overlay(r Interval[T]) Interval[T] {
	if r.IsEmpty() {
		return Empty[T]()
	}
	return Interval[T]{Start: s.OverlayPoint(r.Start), End: s.OverlayPoint(r.End)}
}

// OverlayPoint maps a compacted coordinate back to the original coordinate of
// the surviving point at that position.
func (s *Set[T]) OverlayPoint(point T) T {
	sums := s.prefix()
	// ranges[i].Start - sums[i] is the compacted position of the gap left by
	// interval i; it is strictly increasing in i.
	j := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Start-sums[i] > point
	})
	return point + sums[j]
}

// ResetCursor drops the forward cursor used by Impose. Results never depend on
// it; this only exists so callers can measure or test the fallback path.
func (s *Set[T]) ResetCursor() {
	s.cursor = cursor[T]{}
}

// seek returns the index of the first stored interval that does not end
// before point, and the total length of every interval preceding it.
func (s *Set[T]) seek(point T) (int, T) {
	var (
		idx int
		acc T
	)
	if s.cursor.valid && s.cursor.at <= point {
		idx, acc = s.cursor.index, s.cursor.acc
		for idx < len(s.ranges) && s.ranges[idx].End < point {
			acc += s.ranges[idx].Len()
			idx++
		}
	} else {
		sums := s.prefix()
		idx = sort.Search(len(s.ranges), func(i int) bool {
			return s.ranges[i].End >= point
		})
		acc = sums[idx]
	}
	s.cursor = cursor[T]{valid: true, at: point, index: idx, acc: acc}
	return idx, acc
}

// partial returns how much of ranges[idx] lies strictly before point.
func (s *Set[T]) partial(idx int, point T) T {
	if idx >= len(s.ranges) || s.ranges[idx].Start >= point {
		return 0
	}
	return point - s.ranges[idx].Start
}

// lengthBetween returns the total length of ranges[from:to].
func (s *Set[T]) lengthBetween(from, to int) T {
	if from == to {
		return 0
	}
	sums := s.prefix()
	return sums[to] - sums[from]
}

func (s *Set[T]) prefix() []T {
	if s.sums != nil {
		return s.sums
	}
	sums := make([]T, len(s.ranges)+1)
	for i, r := range s.ranges {
		sums[i+1] = sums[i] + r.Len()
	}
	s.sums = sums
	return sums
}
