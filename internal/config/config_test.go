package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if want := filepath.Join(dir, "sub", DefaultDBName); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if cfg.UndoTimeout.Duration != 3*time.Second {
		t.Errorf("UndoTimeout = %v", cfg.UndoTimeout)
	}
	if cfg.Keys.Add != "n" || cfg.Keys.Undo != "u" {
		t.Errorf("Keys = %+v", cfg.Keys)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "undo_timeout") || !strings.Contains(string(data), "3s") {
		t.Errorf("written config missing undo_timeout:\n%s", data)
	}
}

func TestLoadOrCreateReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
db_path = "/var/lib/taskflow/tasks.db"
undo_timeout = "5s"
search_debounce = "50ms"
default_tag = "Design"

[keys]
quit = "x"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.DBPath != "/var/lib/taskflow/tasks.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.UndoTimeout.Duration != 5*time.Second {
		t.Errorf("UndoTimeout = %v", cfg.UndoTimeout)
	}
	if cfg.SearchDebounce.Duration != 50*time.Millisecond {
		t.Errorf("SearchDebounce = %v", cfg.SearchDebounce)
	}
	if cfg.DefaultTag != "Design" {
		t.Errorf("DefaultTag = %q", cfg.DefaultTag)
	}
	if cfg.Keys.Quit != "x" {
		t.Errorf("Keys.Quit = %q", cfg.Keys.Quit)
	}
	// Keys not mentioned keep their defaults.
	if cfg.Keys.Add != "n" {
		t.Errorf("Keys.Add = %q", cfg.Keys.Add)
	}
	if cfg.StorageKey != DefaultStorageKey {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
}

func TestLoadOrCreateRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte(`undo_timeout = "soon"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(envConfig, "/tmp/custom.toml")
	if got := ResolveConfigPath(); got != "/tmp/custom.toml" {
		t.Errorf("ResolveConfigPath = %q", got)
	}

	t.Setenv(envConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ResolveConfigPath(); got != filepath.Join("/xdg", "taskflow", DefaultConfigFileName) {
		t.Errorf("ResolveConfigPath = %q", got)
	}
}
