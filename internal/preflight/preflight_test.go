package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trimline/internal/media/wav"
	"trimline/internal/store"
	"trimline/internal/testsupport"
)

var mono16 = wav.Format{AudioFormat: wav.FormatPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTrackSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	testsupport.WriteWAV(t, path, mono16, 100)

	track := &store.Track{Name: "a", Path: path, FrameRate: 8000, FrameSize: 2, FrameCount: 100}
	if result := CheckTrackSource(track); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}

	track.FrameCount = 99
	if result := CheckTrackSource(track); result.Passed || !strings.Contains(result.Detail, "recorded") {
		t.Fatalf("expected frame count mismatch, got: %+v", result)
	}

	track.FrameCount = 100
	track.FrameSize = 4
	if result := CheckTrackSource(track); result.Passed || !strings.Contains(result.Detail, "format changed") {
		t.Fatalf("expected format mismatch, got: %+v", result)
	}

	track.Path = filepath.Join(t.TempDir(), "missing.wav")
	if result := CheckTrackSource(track); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	st := testsupport.MustOpenStore(t, cfg)
	path := filepath.Join(testsupport.BaseDir(cfg), "voice.wav")
	testsupport.WriteWAV(t, path, mono16, 50)
	if _, err := st.AddTrack(context.Background(), store.Track{
		Name: "voice", Path: path, FrameRate: 8000, FrameSize: 2, FrameCount: 50,
	}); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}
	if results[3].Name != "Track voice" {
		t.Fatalf("unexpected last check %q", results[3].Name)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil, got %+v", results)
	}
}
