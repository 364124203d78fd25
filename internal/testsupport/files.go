package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"trimline/internal/media/wav"
)

// WriteWAV writes a PCM file whose frames are filled with their own index
// (mod 256) in every byte, so edited output can be checked frame by frame.
func WriteWAV(t testing.TB, path string, format wav.Format, frames int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	frameSize := format.FrameSize()
	if err := wav.WriteHeader(f, format, frames*int64(frameSize)); err != nil {
		t.Fatalf("write header %s: %v", path, err)
	}
	frame := make([]byte, frameSize)
	for i := int64(0); i < frames; i++ {
		for j := range frame {
			frame[j] = byte(i)
		}
		if _, err := f.Write(frame); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
