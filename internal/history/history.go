// Package history keeps undo and redo snapshots of an edition model.
package history

import (
	"errors"

	"trimline/internal/edition"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History is an in-memory undo/redo stack. Record must be called before each
// mutation so Undo can restore the prior state.
type History struct {
	undo  []*edition.Model
	redo  []*edition.Model
	depth int
}

// New returns a history holding at most depth undo steps. A depth of zero or
// less keeps every step.
func New(depth int) *History {
	return &History{depth: depth}
}

// Record snapshots m as the state to return to and drops any redo steps.
func (h *History) Record(m *edition.Model) {
	h.undo = append(h.undo, m.Copy())
	if h.depth > 0 && len(h.undo) > h.depth {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.depth:]...)
	}
	h.redo = h.redo[:0]
}

// Undo restores the most recently recorded state into m.
func (h *History) Undo(m *edition.Model) error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, m.Copy())
	m.Load(prev)
	return nil
}

// Redo reapplies the most recently undone state into m.
func (h *History) Redo(m *edition.Model) error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, m.Copy())
	m.Load(next)
	return nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear forgets all steps.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
