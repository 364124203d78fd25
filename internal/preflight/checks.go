package preflight

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"trimline/internal/config"
	"trimline/internal/media/wav"
	"trimline/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabase opens the store and reports whether its schema is current.
// On success the open store is returned and the caller must close it.
func CheckDatabase(cfg *config.Config) (*store.Store, Result) {
	const name = "Database"

	st, err := store.Open(cfg)
	if err != nil {
		if errors.Is(err, store.ErrSchemaMismatch) {
			return nil, Result{Name: name, Detail: fmt.Sprintf("%s (error: schema mismatch)", cfg.DatabasePath())}
		}
		return nil, Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.DatabasePath(), err)}
	}
	return st, Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (schema ok)", st.Path())}
}

// CheckTrackSource verifies that a track's WAV file is still readable and
// matches the frame layout recorded when it was added.
func CheckTrackSource(track *store.Track) Result {
	name := "Track " + track.Name
	if err := unix.Access(track.Path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: unreadable: %v)", track.Path, err)}
	}
	f, err := wav.Open(track.Path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", track.Path, err)}
	}
	defer f.Close()

	if int64(f.Format.FrameSize()) != track.FrameSize || int64(f.Format.SampleRate) != track.FrameRate {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: format changed to %s)", track.Path, f.Format)}
	}
	if frames := f.Frames(); frames != track.FrameCount {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %d frames on disk, %d recorded)", track.Path, frames, track.FrameCount)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", track.Path, f.Format)}
}
