package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trimline/internal/edition"
)

// SnapshotKind names one of the two snapshot stacks kept per track.
type SnapshotKind string

const (
	SnapshotUndo SnapshotKind = "undo"
	SnapshotRedo SnapshotKind = "redo"
)

func (k SnapshotKind) valid() bool {
	return k == SnapshotUndo || k == SnapshotRedo
}

func checkKinds(kinds ...SnapshotKind) error {
	for _, k := range kinds {
		if !k.valid() {
			return fmt.Errorf("invalid snapshot kind %q", k)
		}
	}
	return nil
}

// RecordEdit stores one edit atomically: before goes onto the undo stack,
// the redo stack is emptied and model becomes the track's editions. When
// limit is positive the undo stack keeps at most limit entries.
func (s *Store) RecordEdit(ctx context.Context, trackID string, before []byte, model *edition.Model, limit int) error {
	ctx = ensureContext(ctx)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := pushSnapshotTx(ctx, tx, trackID, SnapshotUndo, before, limit); err != nil {
			return err
		}
		if err := clearSnapshotsTx(ctx, tx, trackID, SnapshotRedo); err != nil {
			return err
		}
		return saveModelTx(ctx, tx, trackID, model)
	})
	if err != nil {
		return fmt.Errorf("record edit: %w", err)
	}
	return nil
}

// StepHistory moves a track one step along its history atomically. It pops
// the newest entry of from, decodes it, pushes current onto to and stores the
// decoded model as the track's editions. The boolean is false, and nothing
// changes, when from is empty. An error from decode rolls the step back.
func (s *Store) StepHistory(
	ctx context.Context,
	trackID string,
	from, to SnapshotKind,
	current []byte,
	limit int,
	decode func([]byte) (*edition.Model, error),
) (*edition.Model, bool, error) {
	if err := checkKinds(from, to); err != nil {
		return nil, false, err
	}
	ctx = ensureContext(ctx)
	var restored *edition.Model
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		restored = nil
		payload, ok, err := popSnapshotTx(ctx, tx, trackID, from)
		if err != nil || !ok {
			return err
		}
		model, err := decode(payload)
		if err != nil {
			return fmt.Errorf("decode %s snapshot: %w", from, err)
		}
		if err := pushSnapshotTx(ctx, tx, trackID, to, current, limit); err != nil {
			return err
		}
		if err := saveModelTx(ctx, tx, trackID, model); err != nil {
			return err
		}
		restored = model
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("step %s history: %w", from, err)
	}
	return restored, restored != nil, nil
}

// PushSnapshot appends payload to the given stack. When limit is positive the
// oldest entries beyond limit are discarded.
func (s *Store) PushSnapshot(ctx context.Context, trackID string, kind SnapshotKind, payload []byte, limit int) error {
	if err := checkKinds(kind); err != nil {
		return err
	}
	ctx = ensureContext(ctx)
	if err := s.inTx(ctx, func(tx *sql.Tx) error {
		return pushSnapshotTx(ctx, tx, trackID, kind, payload, limit)
	}); err != nil {
		return fmt.Errorf("push %s snapshot: %w", kind, err)
	}
	return nil
}

// PopSnapshot removes and returns the newest entry of the given stack. The
// boolean is false when the stack is empty.
func (s *Store) PopSnapshot(ctx context.Context, trackID string, kind SnapshotKind) ([]byte, bool, error) {
	if err := checkKinds(kind); err != nil {
		return nil, false, err
	}
	ctx = ensureContext(ctx)
	var (
		payload []byte
		found   bool
	)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		payload, found, err = popSnapshotTx(ctx, tx, trackID, kind)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("pop %s snapshot: %w", kind, err)
	}
	return payload, found, nil
}

// ClearSnapshots drops the given stack for a track.
func (s *Store) ClearSnapshots(ctx context.Context, trackID string, kind SnapshotKind) error {
	if err := checkKinds(kind); err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx, `DELETE FROM snapshots WHERE track_id = ? AND kind = ?`, trackID, string(kind)); err != nil {
		return fmt.Errorf("clear %s snapshots: %w", kind, err)
	}
	return nil
}

// SnapshotDepth reports how many entries the given stack holds.
func (s *Store) SnapshotDepth(ctx context.Context, trackID string, kind SnapshotKind) (int, error) {
	var n int
	if err := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT COUNT(1) FROM snapshots WHERE track_id = ? AND kind = ?`,
		trackID, string(kind),
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s snapshots: %w", kind, err)
	}
	return n, nil
}

func pushSnapshotTx(ctx context.Context, tx *sql.Tx, trackID string, kind SnapshotKind, payload []byte, limit int) error {
	var next int64
	if err := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM snapshots WHERE track_id = ? AND kind = ?`,
		trackID, string(kind),
	).Scan(&next); err != nil {
		return fmt.Errorf("next snapshot seq: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO snapshots (track_id, kind, seq, payload) VALUES (?, ?, ?, ?)`,
		trackID, string(kind), next, string(payload),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if limit > 0 {
		if _, err := tx.ExecContext(
			ctx,
			`DELETE FROM snapshots WHERE track_id = ? AND kind = ? AND seq <= ?`,
			trackID, string(kind), next-int64(limit),
		); err != nil {
			return fmt.Errorf("trim snapshots: %w", err)
		}
	}
	return nil
}

func popSnapshotTx(ctx context.Context, tx *sql.Tx, trackID string, kind SnapshotKind) ([]byte, bool, error) {
	var (
		seq     int64
		payload string
	)
	err := tx.QueryRowContext(
		ctx,
		`SELECT seq, payload FROM snapshots WHERE track_id = ? AND kind = ? ORDER BY seq DESC LIMIT 1`,
		trackID, string(kind),
	).Scan(&seq, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM snapshots WHERE track_id = ? AND kind = ? AND seq = ?`,
		trackID, string(kind), seq,
	); err != nil {
		return nil, false, fmt.Errorf("delete snapshot: %w", err)
	}
	return []byte(payload), true, nil
}

func clearSnapshotsTx(ctx context.Context, tx *sql.Tx, trackID string, kind SnapshotKind) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE track_id = ? AND kind = ?`, trackID, string(kind)); err != nil {
		return fmt.Errorf("clear %s snapshots: %w", kind, err)
	}
	return nil
}
