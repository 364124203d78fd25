package edition

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"trimline/internal/interval"
)

// DomainMax is the last frame a model covers. It is a sentinel rather than a
// track length: DomainMax * 256 still fits in an int64, so the byte offset of
// any frame in the domain, for frames up to 256 bytes wide, never overflows.
// The length of the whole domain in bytes does not fit; consumers count
// lengths in frames.
const DomainMax = math.MaxInt64 / 256

// Domain returns [0, DomainMax].
func Domain() interval.Interval[int64] {
	return interval.New[int64](0, DomainMax)
}

// Edition is a labelled timeline region.
type Edition struct {
	Range interval.Interval[int64]
	Label Label
}

func (e Edition) String() string {
	return e.Range.String() + ": " + e.Label.String()
}

// Model is the CUT/MUTE/NO_CHANGE partition of a track timeline.
type Model struct {
	sets [3]*interval.Set[int64]

	// editions caches Editions until the next mutation.
	editions []Edition

	listeners   map[int]func()
	nextID      int
	updateDepth int
	pending     bool
}

// NewModel returns a model with the whole domain labelled NO_CHANGE.
func NewModel() *Model {
	m := &Model{}
	for _, l := range Labels {
		m.sets[l] = interval.NewSet[int64]()
	}
	m.sets[NoChange].Union(Domain())
	return m
}

// Cut labels r CUT.
func (m *Model) Cut(r interval.Interval[int64]) {
	m.relabel(r, Cut)
}

// Mute labels r MUTE.
func (m *Model) Mute(r interval.Interval[int64]) {
	m.relabel(r, Mute)
}

// Undo restores r to NO_CHANGE. It is a relabel, not a command undo; see
// the history package for that.
func (m *Model) Undo(r interval.Interval[int64]) {
	m.relabel(r, NoChange)
}

// Apply labels r with label.
func (m *Model) Apply(r interval.Interval[int64], label Label) {
	m.relabel(r, label)
}

// Reset labels the entire domain NO_CHANGE.
func (m *Model) Reset() {
	m.relabel(Domain(), NoChange)
}

func (m *Model) relabel(r interval.Interval[int64], target Label) {
	if !target.valid() {
		panic(fmt.Sprintf("edition: invalid label %d", int(target)))
	}
	r = r.Clamp(Domain())
	if r.IsEmpty() {
		return
	}
	for _, l := range Labels {
		if l != target {
			m.sets[l].Exclude(r)
		}
	}
	m.sets[target].Union(r)
	m.changed()
}

// Editions returns the partition as one ascending, non-overlapping sequence
// covering [0, DomainMax]. The returned slice must not be modified.
func (m *Model) Editions() []Edition {
	if m.editions != nil {
		return m.editions
	}
	total := 0
	for _, s := range m.sets {
		total += s.Len()
	}
	out := make([]Edition, 0, total)
	for _, l := range Labels {
		for _, r := range m.sets[l].Ranges() {
			out = append(out, Edition{Range: r, Label: l})
		}
	}
	slices.SortFunc(out, func(a, b Edition) int {
		switch {
		case a.Range.Start < b.Range.Start:
			return -1
		case a.Range.Start > b.Range.Start:
			return 1
		default:
			return 0
		}
	})
	m.editions = out
	return out
}

// EditionsWithin returns the editions clipped to span.
func (m *Model) EditionsWithin(span interval.Interval[int64]) []Edition {
	var out []Edition
	for _, e := range m.Editions() {
		clipped := e.Range.Intersect(span)
		if clipped.IsEmpty() {
			continue
		}
		out = append(out, Edition{Range: clipped, Label: e.Label})
	}
	return out
}

// LabelAt returns the label of frame. Frames outside the domain report
// NoChange.
func (m *Model) LabelAt(frame int64) Label {
	for _, l := range []Label{Cut, Mute} {
		if m.sets[l].ContainsPoint(frame) {
			return l
		}
	}
	return NoChange
}

// Ranges returns the intervals carrying label.
func (m *Model) Ranges(label Label) []interval.Interval[int64] {
	return m.sets[label].Ranges()
}

// CutSet returns a copy of the CUT intervals.
func (m *Model) CutSet() *interval.Set[int64] {
	return m.sets[Cut].Copy()
}

// Impose maps a raw frame range onto the edited timeline, where CUT regions
// no longer exist.
func (m *Model) Impose(r interval.Interval[int64]) interval.Interval[int64] {
	return m.sets[Cut].Impose(r)
}

// ImposePoint maps a raw frame onto the edited timeline.
func (m *Model) ImposePoint(frame int64) int64 {
	return m.sets[Cut].ImposePoint(frame)
}

// Overlay maps an edited-timeline range back to raw frames.
func (m *Model) Overlay(r interval.Interval[int64]) interval.Interval[int64] {
	return m.sets[Cut].Overlay(r)
}

// OverlayPoint maps an edited-timeline frame back to a raw frame.
func (m *Model) OverlayPoint(frame int64) int64 {
	return m.sets[Cut].OverlayPoint(frame)
}

// Shift moves every CUT and MUTE region by delta frames. Regions pushed
// outside the domain are clipped and the vacated frames become NO_CHANGE.
// On overflow the model is left untouched.
func (m *Model) Shift(delta int64) error {
	if delta == 0 {
		return nil
	}
	cut, mute := m.sets[Cut].Copy(), m.sets[Mute].Copy()
	if err := cut.Shift(delta); err != nil {
		return fmt.Errorf("shift cut regions: %w", err)
	}
	if err := mute.Shift(delta); err != nil {
		return fmt.Errorf("shift mute regions: %w", err)
	}

	end := m.BeginUpdate()
	defer end()
	m.Reset()
	for _, r := range cut.Ranges() {
		m.Cut(r)
	}
	for _, r := range mute.Ranges() {
		m.Mute(r)
	}
	return nil
}

// Copy returns a deep snapshot of the partition. Listeners are not copied.
func (m *Model) Copy() *Model {
	c := &Model{}
	for _, l := range Labels {
		c.sets[l] = m.sets[l].Copy()
	}
	return c
}

// Load replaces the partition with a copy of other's and notifies listeners.
func (m *Model) Load(other *Model) {
	for _, l := range Labels {
		m.sets[l].Load(other.sets[l])
	}
	m.changed()
}

// Equal reports whether both models label every frame the same way.
func (m *Model) Equal(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	for _, l := range Labels {
		if !m.sets[l].Equal(other.sets[l]) {
			return false
		}
	}
	return true
}

// IsPristine reports whether nothing is labelled CUT or MUTE.
func (m *Model) IsPristine() bool {
	return m.sets[Cut].IsEmpty() && m.sets[Mute].IsEmpty()
}

func (m *Model) String() string {
	parts := make([]string, 0, len(m.Editions()))
	for _, e := range m.Editions() {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FromEditions rebuilds a model from a persisted edition list. Regions not
// mentioned stay NO_CHANGE; later entries win where entries overlap.
func FromEditions(editions []Edition) (*Model, error) {
	m := NewModel()
	for i, e := range editions {
		if !e.Label.valid() {
			return nil, fmt.Errorf("edition %d: invalid label %d", i, int(e.Label))
		}
		m.relabel(e.Range, e.Label)
	}
	return m, nil
}

// Changes returns only the CUT and MUTE editions, which is all that is
// needed to rebuild the model with FromEditions.
func (m *Model) Changes() []Edition {
	var out []Edition
	for _, e := range m.Editions() {
		if e.Label != NoChange {
			out = append(out, e)
		}
	}
	return out
}
