// Package fileutil provides file helpers shared by commands that write
// user-visible output.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned when the destination exists and overwrite is off.
var ErrExists = errors.New("destination already exists")

// AtomicFile stages writes in a temporary file next to its destination.
// Nothing appears at the destination until Commit succeeds.
type AtomicFile struct {
	*os.File
	target    string
	overwrite bool
	done      bool
}

// CreateAtomic opens a staging file for target with mode 0o644.
func CreateAtomic(target string, overwrite bool) (*AtomicFile, error) {
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, target)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat destination: %w", err)
		}
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("chmod staging file: %w", err)
	}
	return &AtomicFile{File: tmp, target: target, overwrite: overwrite}, nil
}

// Target returns the final destination path.
func (f *AtomicFile) Target() string {
	return f.target
}

// Commit syncs the staged data, verifies it holds wantSize bytes, and moves
// it into place. A negative wantSize skips the size check. The staging file
// is removed on any failure.
func (f *AtomicFile) Commit(wantSize int64) error {
	if f.done {
		return errors.New("atomic file already finished")
	}
	f.done = true
	staged := f.Name()
	fail := func(err error) error {
		_ = f.File.Close()
		_ = os.Remove(staged)
		return err
	}

	if err := f.Sync(); err != nil {
		return fail(fmt.Errorf("sync staging file: %w", err))
	}
	info, err := f.Stat()
	if err != nil {
		return fail(fmt.Errorf("stat staging file: %w", err))
	}
	if wantSize >= 0 && info.Size() != wantSize {
		return fail(fmt.Errorf("size mismatch: expected %d bytes, staged %d bytes", wantSize, info.Size()))
	}
	if err := f.File.Close(); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("close staging file: %w", err)
	}
	if !f.overwrite {
		if _, err := os.Stat(f.target); err == nil {
			_ = os.Remove(staged)
			return fmt.Errorf("%w: %s", ErrExists, f.target)
		}
	}
	if err := os.Rename(staged, f.target); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("move into place: %w", err)
	}
	return nil
}

// Abort discards the staged data. It is safe to call after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.File.Close()
	_ = os.Remove(f.Name())
}
