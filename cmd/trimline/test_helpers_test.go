package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trimline/internal/media/wav"
	"trimline/internal/testsupport"
)

var testFormat = wav.Format{AudioFormat: wav.FormatPCM, Channels: 1, SampleRate: 8000, BitsPerSample: 16}

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TRIMLINE_DATA_DIR", "")

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{baseDir: base, configPath: configPath, dataDir: cfg.Paths.DataDir}
}

// addTrack writes a WAV of the given length and registers it as name.
func (e *cliTestEnv) addTrack(t *testing.T, name string, frames int64) string {
	t.Helper()
	path := filepath.Join(e.baseDir, "media", name+".wav")
	testsupport.WriteWAV(t, path, testFormat, frames)
	out, _, err := runCLI(t, []string{"track", "add", path}, e.configPath)
	if err != nil {
		t.Fatalf("track add: %v", err)
	}
	requireContains(t, out, "Added track "+name)
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("trimline %s: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
