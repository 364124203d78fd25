package testsupport

import (
	"context"
	"testing"

	"trimline/internal/config"
	"trimline/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddTrack registers a track with the given frame count for tests.
func AddTrack(t testing.TB, st *store.Store, name string, frames int64) *store.Track {
	t.Helper()

	track, err := st.AddTrack(context.Background(), store.Track{
		Name:       name,
		Path:       "/media/" + name + ".wav",
		FrameRate:  44100,
		FrameSize:  4,
		FrameCount: frames,
	})
	if err != nil {
		t.Fatalf("store.AddTrack: %v", err)
	}
	return track
}
