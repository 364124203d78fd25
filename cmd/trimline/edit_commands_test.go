package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEditShowUndoRedo(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTrack(t, "voice", 8000)

	out := mustRunCLI(t, env, "edit", "cut", "voice", "1000", "1999")
	requireContains(t, out, "Cut [1000, 1999] on voice (1000 frames")
	mustRunCLI(t, env, "edit", "mute", "voice", "500", "625", "--unit", "ms")

	out = mustRunCLI(t, env, "show", "voice")
	requireContains(t, out, "Cut")
	requireContains(t, out, "Mute")
	requireContains(t, out, "5000")
	requireContains(t, out, "Cut: 1000 frames")
	requireContains(t, out, "Muted: 1001 frames")
	requireContains(t, out, "Edited: 7000 frames")

	out = mustRunCLI(t, env, "edit", "cut", "voice", "1000", "1999")
	requireContains(t, out, "already Cut")

	mustRunCLI(t, env, "undo", "voice")
	out = mustRunCLI(t, env, "show", "voice")
	requireContains(t, out, "Muted: 0 frames")
	requireContains(t, out, "Cut: 1000 frames")

	mustRunCLI(t, env, "redo", "voice")
	out = mustRunCLI(t, env, "show", "voice")
	requireContains(t, out, "Muted: 1001 frames")

	if _, _, err := runCLI(t, []string{"redo", "voice"}, env.configPath); err == nil {
		t.Fatal("expected redo with empty stack to fail")
	}

	mustRunCLI(t, env, "edit", "reset", "voice")
	out = mustRunCLI(t, env, "show", "voice")
	requireContains(t, out, "No edits")
	requireContains(t, out, "Edited: 8000 frames")

	mustRunCLI(t, env, "undo", "voice")
	out = mustRunCLI(t, env, "show", "voice")
	requireContains(t, out, "Cut: 1000 frames")
}

func TestEditRestoreAndEditedTimeline(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTrack(t, "talk", 1000)

	mustRunCLI(t, env, "edit", "cut", "talk", "100", "199")
	// Edited frames 100..149 are raw frames 200..249.
	mustRunCLI(t, env, "edit", "mute", "talk", "100", "149", "--edited")
	out := mustRunCLI(t, env, "map", "talk", "--frame", "220")
	requireContains(t, out, "Mute")
	requireContains(t, out, "120")

	mustRunCLI(t, env, "edit", "restore", "talk", "0", "999")
	out = mustRunCLI(t, env, "show", "talk")
	requireContains(t, out, "No edits")
}

func TestEditRejectsBadRanges(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTrack(t, "short", 100)

	cases := [][]string{
		{"edit", "cut", "short", "50", "10"},
		{"edit", "cut", "short", "200", "300"},
		{"edit", "cut", "short", "x", "10"},
		{"edit", "cut", "short", "1"},
		{"edit", "cut", "short", "0", "10", "--unit", "parsecs"},
		{"edit", "cut", "short", "--word", "0"},
		{"edit", "cut", "missing", "0", "10"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}
}

func TestEditByTranscriptWord(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addTrack(t, "speech", 8000)

	path := filepath.Join(env.baseDir, "speech.json")
	payload := `{"segments":[{"text":"hello there","start":0,"end":0.75,"words":[
		{"word":"hello","start":0.0,"end":0.25},
		{"word":"there","start":0.5,"end":0.75}
	]}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	out := mustRunCLI(t, env, "words", "speech", "--transcript", path)
	requireContains(t, out, "2 words: 2 presented, 0 muted, 0 excluded")

	mustRunCLI(t, env, "edit", "cut", "speech", "--word", "1", "--transcript", path)
	out = mustRunCLI(t, env, "words", "speech", "--transcript", path)
	requireContains(t, out, "2 words: 1 presented, 0 muted, 1 excluded")
	requireContains(t, out, "Excluded")

	out = mustRunCLI(t, env, "words", "speech", "--transcript", path, "--state", "excluded")
	requireContains(t, out, "there")
	if strings.Contains(out, "hello") {
		t.Fatalf("state filter ignored:\n%s", out)
	}
}
