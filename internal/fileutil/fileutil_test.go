package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicFileCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.bin")

	f, err := CreateAtomic(target, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("hello world")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("target visible before commit: %v", err)
	}
	if err := f.Commit(11); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("mode = %v, want 0644", info.Mode().Perm())
	}
	f.Abort()
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("Abort after Commit removed target: %v", err)
	}
}

func TestAtomicFileSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")

	f, err := CreateAtomic(target, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(5); err == nil {
		t.Fatal("expected size mismatch error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("staging file left behind: %v", entries)
	}
}

func TestAtomicFileAbortAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := CreateAtomic(target, false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	f, err := CreateAtomic(target, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("new")); err != nil {
		t.Fatal(err)
	}
	f.Abort()
	got, _ := os.ReadFile(target)
	if string(got) != "old" {
		t.Fatalf("abort touched target: %q", got)
	}

	f, err = CreateAtomic(target, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("new")); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(-1); err != nil {
		t.Fatal(err)
	}
	got, _ = os.ReadFile(target)
	if string(got) != "new" {
		t.Fatalf("overwrite failed: %q", got)
	}
}
