package main

import (
	"strings"
	"testing"
)

func TestTrackAddListRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "track", "list")
	requireContains(t, out, "No tracks registered")

	env.addTrack(t, "interview", 16000)
	out = mustRunCLI(t, env, "track", "list")
	requireContains(t, out, "interview")
	requireContains(t, out, "16000")
	requireContains(t, out, "0:02.000")

	if _, _, err := runCLI(t, []string{"track", "add", "/nonexistent.wav"}, env.configPath); err == nil {
		t.Fatal("expected missing file to fail")
	}

	out = mustRunCLI(t, env, "track", "rm", "interview")
	requireContains(t, out, "Removed track interview")
	out = mustRunCLI(t, env, "track", "list")
	if strings.Contains(out, "interview") {
		t.Fatalf("track still listed: %s", out)
	}
	if _, _, err := runCLI(t, []string{"track", "rm", "interview"}, env.configPath); err == nil {
		t.Fatal("expected removing unknown track to fail")
	}
}
