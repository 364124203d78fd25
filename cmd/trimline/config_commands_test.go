package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, filepath.Join(env.dataDir, "trimline.db"))

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireContains(t, out, filepath.Join(os.Getenv("HOME"), ".local", "share", "trimline", "trimline.db"))
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitWithDataDir(t *testing.T) {
	env := setupCLITestEnv(t)
	dataDir := filepath.Join(env.baseDir, "studio")
	target := filepath.Join(env.baseDir, "studio.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target, "--data-dir", dataDir}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, filepath.Join(dataDir, "trimline.db"))

	out = mustRunCLI(t, &cliTestEnv{baseDir: env.baseDir, configPath: target, dataDir: dataDir}, "config", "show")
	requireContains(t, out, target)
	requireContains(t, out, filepath.Join(dataDir, "trimline.db"))
	requireContains(t, out, filepath.Join(dataDir, "logs"))
	requireContains(t, out, "Undo depth")
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[timeline]\nframes_per_pixel = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"track", "list"}, path); err == nil {
		t.Fatal("expected invalid config to fail")
	}
}
