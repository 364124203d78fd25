package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trimline/internal/interval"
)

// Track is a registered PCM source whose editions are persisted.
type Track struct {
	ID         string
	Name       string
	Path       string
	FrameRate  int64
	FrameSize  int64
	FrameCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Span returns the frames covered by the source, or the empty interval for a
// track without audio.
func (t *Track) Span() interval.Interval[int64] {
	if t.FrameCount <= 0 {
		return interval.Empty[int64]()
	}
	return interval.FromLength(0, t.FrameCount)
}

const trackColumns = `id, name, path, frame_rate, frame_size, frame_count, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*Track, error) {
	var (
		t                Track
		created, updated string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Path, &t.FrameRate, &t.FrameSize, &t.FrameCount, &created, &updated); err != nil {
		return nil, err
	}
	t.CreatedAt = parseTimestamp(created)
	t.UpdatedAt = parseTimestamp(updated)
	return &t, nil
}

func parseTimestamp(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// AddTrack registers a new track and assigns it an identifier.
func (s *Store) AddTrack(ctx context.Context, track Track) (*Track, error) {
	track.Name = strings.TrimSpace(track.Name)
	if track.Name == "" {
		return nil, errors.New("track name is required")
	}
	if track.Path == "" {
		return nil, errors.New("track path is required")
	}
	if track.FrameRate <= 0 || track.FrameSize <= 0 {
		return nil, fmt.Errorf("track %q: frame rate and frame size must be positive", track.Name)
	}
	if track.FrameCount < 0 {
		return nil, fmt.Errorf("track %q: negative frame count", track.Name)
	}

	track.ID = uuid.NewString()
	now := time.Now().UTC()
	track.CreatedAt = now
	track.UpdatedAt = now
	timestamp := now.Format(time.RFC3339Nano)

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO tracks (`+trackColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		track.ID,
		track.Name,
		track.Path,
		track.FrameRate,
		track.FrameSize,
		track.FrameCount,
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert track: %w", err)
	}
	return &track, nil
}

// GetTrack resolves a track by identifier, name, or unique identifier prefix.
func (s *Store) GetTrack(ctx context.Context, ref string) (*Track, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrTrackNotFound)
	}
	ctx = ensureContext(ctx)

	row := s.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id = ? OR name = ? LIMIT 1`, ref, ref)
	track, err := scanTrack(row)
	if err == nil {
		return track, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get track: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id LIKE ? || '%' LIMIT 2`, ref)
	if err != nil {
		return nil, fmt.Errorf("get track by prefix: %w", err)
	}
	defer rows.Close()
	var matches []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("track reference %q is ambiguous", ref)
	}
}

// ListTracks returns all tracks ordered by creation time.
func (s *Store) ListTracks(ctx context.Context) ([]*Track, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+trackColumns+` FROM tracks ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// RemoveTrack deletes a track along with its editions and snapshots.
func (s *Store) RemoveTrack(ctx context.Context, id string) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	return nil
}

func touchTrack(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `UPDATE tracks SET updated_at = ? WHERE id = ?`, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("touch track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	return nil
}
