package history

import (
	"context"
	"fmt"

	"trimline/internal/edition"
	"trimline/internal/store"
)

// SnapshotStore is the subset of store.Store that Persisted needs.
type SnapshotStore interface {
	RecordEdit(ctx context.Context, trackID string, before []byte, model *edition.Model, limit int) error
	StepHistory(ctx context.Context, trackID string, from, to store.SnapshotKind, current []byte, limit int,
		decode func([]byte) (*edition.Model, error)) (*edition.Model, bool, error)
}

// Persisted keeps a track's undo/redo stacks in the database so they survive
// between CLI invocations. Snapshots use the model's text encoding.
//
// Every step writes the resulting model together with the stacks, so the
// stored editions always match the top of the history.
type Persisted struct {
	snapshots SnapshotStore
	trackID   string
	depth     int
}

// NewPersisted binds a history to one track.
func NewPersisted(snapshots SnapshotStore, trackID string, depth int) *Persisted {
	return &Persisted{snapshots: snapshots, trackID: trackID, depth: depth}
}

// Record stores after as the track's editions, with before as the state to
// return to, and drops any redo steps.
func (p *Persisted) Record(ctx context.Context, before, after *edition.Model) error {
	payload, err := before.MarshalText()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return p.snapshots.RecordEdit(ctx, p.trackID, payload, after, p.depth)
}

// Undo restores the most recently recorded state into m.
func (p *Persisted) Undo(ctx context.Context, m *edition.Model) error {
	return p.swap(ctx, m, store.SnapshotUndo, store.SnapshotRedo, ErrNothingToUndo)
}

// Redo reapplies the most recently undone state into m.
func (p *Persisted) Redo(ctx context.Context, m *edition.Model) error {
	return p.swap(ctx, m, store.SnapshotRedo, store.SnapshotUndo, ErrNothingToRedo)
}

func (p *Persisted) swap(ctx context.Context, m *edition.Model, from, to store.SnapshotKind, empty error) error {
	current, err := m.MarshalText()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	restored, ok, err := p.snapshots.StepHistory(ctx, p.trackID, from, to, current, p.depth, decodeSnapshot)
	if err != nil {
		return err
	}
	if !ok {
		return empty
	}
	m.Load(restored)
	return nil
}

func decodeSnapshot(payload []byte) (*edition.Model, error) {
	m := edition.NewModel()
	if err := m.UnmarshalText(payload); err != nil {
		return nil, err
	}
	return m, nil
}
