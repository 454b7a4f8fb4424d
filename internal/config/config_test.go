// ABOUTME: Tests for snipsearch configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, env overrides, validation, and store paths.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	// Set config path to a non-existent location
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Store.Path != "" {
		t.Errorf("expected empty store path in default config, got %q", cfg.Store.Path)
	}
	if cfg.Store.Backend != "json" {
		t.Errorf("expected json backend, got %q", cfg.Store.Backend)
	}
	if cfg.Search.TopK != DefaultTopK {
		t.Errorf("expected top_k %d, got %d", DefaultTopK, cfg.Search.TopK)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "snipsearch")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `store:
  path: "~/snippets/store.db"
  backend: sqlite
search:
  top_k: 3
log:
  level: debug
  format: json
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Store.Backend != "sqlite" {
		t.Errorf("expected backend 'sqlite', got %q", cfg.Store.Backend)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.Search.TopK)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "snippets", "store.db")
	if got, err := cfg.GetStorePath(); err != nil {
		t.Fatalf("GetStorePath() error: %v", err)
	} else if got != expected {
		t.Errorf("GetStorePath() = %q, want %q", got, expected)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "snipsearch")
	_ = os.MkdirAll(configDir, 0750)
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("search:\n  top_k: 2\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Search.TopK != 2 {
		t.Errorf("expected top_k 2, got %d", cfg.Search.TopK)
	}
	if cfg.Store.Backend != "json" {
		t.Errorf("expected default backend json, got %q", cfg.Store.Backend)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SNIPSEARCH_STORE_PATH", "/tmp/override.json")
	t.Setenv("SNIPSEARCH_SEARCH_TOP_K", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Path != "/tmp/override.json" {
		t.Errorf("expected env store path, got %q", cfg.Store.Path)
	}
	if cfg.Search.TopK != 7 {
		t.Errorf("expected env top_k 7, got %d", cfg.Search.TopK)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "snipsearch")
	_ = os.MkdirAll(configDir, 0750)
	_ = os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("store: [unclosed"), 0600)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Store.Path = "~/saved/store.json"
	cfg.Search.TopK = 4

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Store.Path != "~/saved/store.json" {
		t.Errorf("expected saved store path, got %q", loaded.Store.Path)
	}
	if loaded.Search.TopK != 4 {
		t.Errorf("expected top_k 4, got %d", loaded.Search.TopK)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"sqlite backend", func(c *Config) { c.Store.Backend = "sqlite" }, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"zero top_k", func(c *Config) { c.Search.TopK = 0 }, true},
		{"negative top_k", func(c *Config) { c.Search.TopK = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultStorePath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := Default()
	got, err := cfg.GetStorePath()
	if err != nil {
		t.Fatalf("GetStorePath() error: %v", err)
	}
	if want := filepath.Join(dataHome, "snipsearch", "store.json"); got != want {
		t.Errorf("GetStorePath() = %q, want %q", got, want)
	}

	cfg.Store.Backend = "sqlite"
	got, _ = cfg.GetStorePath()
	if want := filepath.Join(dataHome, "snipsearch", "store.db"); got != want {
		t.Errorf("GetStorePath() = %q, want %q", got, want)
	}
}
