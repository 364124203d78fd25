package store

import (
	"context"
	"database/sql"
	"fmt"

	"trimline/internal/edition"
	"trimline/internal/interval"
)

// LoadModel rebuilds the edition model persisted for a track. A track with no
// stored editions yields a pristine model.
func (s *Store) LoadModel(ctx context.Context, trackID string) (*edition.Model, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT start, "end", label FROM editions WHERE track_id = ? ORDER BY seq`, trackID)
	if err != nil {
		return nil, fmt.Errorf("query editions: %w", err)
	}
	defer rows.Close()

	var editions []edition.Edition
	for rows.Next() {
		var (
			start, end int64
			raw        string
		)
		if err := rows.Scan(&start, &end, &raw); err != nil {
			return nil, fmt.Errorf("scan edition: %w", err)
		}
		label, err := edition.ParseLabel(raw)
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", trackID, err)
		}
		editions = append(editions, edition.Edition{Range: interval.New(start, end), Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return edition.FromEditions(editions)
}

// SaveModel replaces the stored editions for a track with the CUT and MUTE
// regions of model.
func (s *Store) SaveModel(ctx context.Context, trackID string, model *edition.Model) error {
	ctx = ensureContext(ctx)
	if err := s.inTx(ctx, func(tx *sql.Tx) error {
		return saveModelTx(ctx, tx, trackID, model)
	}); err != nil {
		return fmt.Errorf("save editions: %w", err)
	}
	return nil
}

func saveModelTx(ctx context.Context, tx *sql.Tx, trackID string, model *edition.Model) error {
	if err := touchTrack(ctx, tx, trackID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM editions WHERE track_id = ?`, trackID); err != nil {
		return fmt.Errorf("clear editions: %w", err)
	}
	for seq, e := range model.Changes() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO editions (track_id, seq, start, "end", label) VALUES (?, ?, ?, ?, ?)`,
			trackID, seq, e.Range.Start, e.Range.End, e.Label.String(),
		); err != nil {
			return fmt.Errorf("insert edition: %w", err)
		}
	}
	return nil
}
