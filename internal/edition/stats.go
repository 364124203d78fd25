package edition

import "trimline/internal/interval"

// Stats totals the frames carrying each label.
type Stats struct {
	Span            interval.Interval[int64]
	CutFrames       int64
	MutedFrames     int64
	UnchangedFrames int64
	Regions         int
}

// EditedFrames is the length of span once CUT regions are removed.
func (s Stats) EditedFrames() int64 {
	return s.MutedFrames + s.UnchangedFrames
}

// Stats reports per-label totals within span.
func (m *Model) Stats(span interval.Interval[int64]) Stats {
	st := Stats{Span: span}
	for _, e := range m.EditionsWithin(span) {
		switch e.Label {
		case Cut:
			st.CutFrames += e.Range.Len()
		case Mute:
			st.MutedFrames += e.Range.Len()
		default:
			st.UnchangedFrames += e.Range.Len()
		}
		st.Regions++
	}
	return st
}
