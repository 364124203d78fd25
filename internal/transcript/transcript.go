// Package transcript keeps time-stamped transcript words consistent with an
// edition model: words inside CUT regions are excluded, words inside MUTE
// regions are muted and everything else is presented.
package transcript

import (
	"fmt"
	"sort"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/interval"
)

// State is how a word appears in the edited track.
type State int

const (
	Presented State = iota
	Muted
	Excluded
)

func (s State) String() string {
	switch s {
	case Presented:
		return "presented"
	case Muted:
		return "muted"
	case Excluded:
		return "excluded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateFor returns the word state a label produces.
func StateFor(label edition.Label) State {
	switch label {
	case edition.Cut:
		return Excluded
	case edition.Mute:
		return Muted
	default:
		return Presented
	}
}

// Word is one transcript token. Range is in milliseconds.
type Word struct {
	Text  string
	Range interval.Interval[int64]
	State State
}

// Synchronize returns a copy of words with states derived from editions. A
// word takes the state of the edition that wholly contains it; a word that
// straddles an edition boundary keeps its current state.
func Synchronize(words []Word, editions []edition.Edition, mapper coords.Mapper) []Word {
	spans := make([]interval.Interval[int64], len(editions))
	for i, e := range editions {
		spans[i] = mapper.MillisRange(e.Range)
	}

	out := make([]Word, len(words))
	copy(out, words)
	for i, w := range out {
		if w.Range.IsEmpty() {
			continue
		}
		j := sort.Search(len(spans), func(k int) bool {
			return spans[k].End >= w.Range.Start
		})
		// Millisecond spans of neighbouring editions can share their boundary
		// millisecond, so more than one may start at or before the word.
		for k := j; k < len(spans) && spans[k].Start <= w.Range.Start; k++ {
			if spans[k].Covers(w.Range) {
				out[i].State = StateFor(editions[k].Label)
				break
			}
		}
	}
	return out
}

// FrameRangeOf returns the frames a word spans.
func FrameRangeOf(w Word, mapper coords.Mapper) interval.Interval[int64] {
	return mapper.FrameRangeOfMillis(w.Range)
}

// Counts tallies words per state.
func Counts(words []Word) map[State]int {
	out := make(map[State]int, 3)
	for _, w := range words {
		out[w.State]++
	}
	return out
}
