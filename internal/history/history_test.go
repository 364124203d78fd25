package history_test

import (
	"context"
	"errors"
	"testing"

	"trimline/internal/edition"
	"trimline/internal/history"
	"trimline/internal/interval"
	"trimline/internal/store"
	"trimline/internal/testsupport"
)

func iv(start, end int64) interval.Interval[int64] {
	return interval.New(start, end)
}

func TestUndoRedo(t *testing.T) {
	m := edition.NewModel()
	h := history.New(0)

	if err := h.Undo(m); !errors.Is(err, history.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}

	h.Record(m)
	m.Cut(iv(10, 19))
	afterCut := m.Copy()
	h.Record(m)
	m.Mute(iv(30, 39))
	afterMute := m.Copy()

	if err := h.Undo(m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !m.Equal(afterCut) {
		t.Fatalf("after first undo got %s", m)
	}
	if err := h.Undo(m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !m.IsPristine() {
		t.Fatalf("after second undo got %s", m)
	}
	if h.CanUndo() {
		t.Fatal("expected undo stack to be exhausted")
	}

	if err := h.Redo(m); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if err := h.Redo(m); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !m.Equal(afterMute) {
		t.Fatalf("after redo got %s", m)
	}
	if err := h.Redo(m); !errors.Is(err, history.ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestRecordDropsRedo(t *testing.T) {
	m := edition.NewModel()
	h := history.New(0)
	h.Record(m)
	m.Cut(iv(0, 9))
	if err := h.Undo(m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	h.Record(m)
	m.Mute(iv(0, 9))
	if h.CanRedo() {
		t.Fatal("expected new edit to drop redo steps")
	}
}

func TestDepthBound(t *testing.T) {
	m := edition.NewModel()
	h := history.New(2)
	for i := int64(0); i < 5; i++ {
		h.Record(m)
		m.Cut(iv(i*10, i*10+4))
	}
	undone := 0
	for h.CanUndo() {
		if err := h.Undo(m); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		undone++
	}
	if undone != 2 {
		t.Fatalf("undid %d steps, want 2", undone)
	}
	if got := m.Ranges(edition.Cut); len(got) != 3 {
		t.Fatalf("expected the three oldest cuts to remain, got %v", got)
	}
}

func TestUndoNotifiesSubscribers(t *testing.T) {
	m := edition.NewModel()
	h := history.New(0)
	h.Record(m)
	m.Cut(iv(0, 9))

	calls := 0
	unsubscribe := m.Subscribe(func() { calls++ })
	defer unsubscribe()
	if err := h.Undo(m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
}

func TestPersistedAcrossReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	track := testsupport.AddTrack(t, st, "voice", 1000)
	ctx := context.Background()

	// requireStored fails unless the database holds the same editions as m.
	requireStored := func(m *edition.Model) {
		t.Helper()
		stored, err := st.LoadModel(ctx, track.ID)
		if err != nil {
			t.Fatalf("LoadModel: %v", err)
		}
		if !stored.Equal(m) {
			t.Fatalf("stored %s, in memory %s", stored, m)
		}
	}

	m := edition.NewModel()
	p := history.NewPersisted(st, track.ID, cfg.History.Depth)
	before := m.Copy()
	m.Cut(iv(100, 199))
	if err := p.Record(ctx, before, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	requireStored(m)
	before = m.Copy()
	m.Mute(iv(300, 399))
	if err := p.Record(ctx, before, m); err != nil {
		t.Fatalf("Record: %v", err)
	}
	requireStored(m)
	final := m.Copy()

	// A fresh adapter sees the same stacks.
	p = history.NewPersisted(st, track.ID, cfg.History.Depth)
	if err := p.Undo(ctx, m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := m.Ranges(edition.Mute); len(got) != 0 {
		t.Fatalf("mute not undone: %v", got)
	}
	requireStored(m)
	if err := p.Undo(ctx, m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !m.IsPristine() {
		t.Fatalf("expected pristine after two undos, got %s", m)
	}
	requireStored(m)
	if err := p.Undo(ctx, m); !errors.Is(err, history.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}

	if err := p.Redo(ctx, m); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if err := p.Redo(ctx, m); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !m.Equal(final) {
		t.Fatalf("redo mismatch: got %s want %s", m, final)
	}
	requireStored(m)
	if err := p.Redo(ctx, m); !errors.Is(err, history.ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

// failingSteps rejects every history step.
type failingSteps struct {
	history.SnapshotStore
}

func (failingSteps) StepHistory(context.Context, string, store.SnapshotKind, store.SnapshotKind, []byte, int,
	func([]byte) (*edition.Model, error)) (*edition.Model, bool, error) {
	return nil, false, errors.New("database is locked")
}

func TestPersistedUndoFailureKeepsModel(t *testing.T) {
	m := edition.NewModel()
	m.Cut(iv(10, 19))
	want := m.Copy()

	p := history.NewPersisted(failingSteps{}, "track", 10)
	if err := p.Undo(context.Background(), m); err == nil {
		t.Fatal("expected Undo to fail")
	}
	if !m.Equal(want) {
		t.Fatalf("model changed after failed undo: %s", m)
	}
}
