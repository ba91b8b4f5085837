package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.MinVotes != 3 {
		t.Errorf("Engine.MinVotes = %d, want 3", cfg.Engine.MinVotes)
	}
	if cfg.Engine.MinGap != 2 {
		t.Errorf("Engine.MinGap = %d, want 2", cfg.Engine.MinGap)
	}
	if cfg.Engine.BatchPercent != 0.10 {
		t.Errorf("Engine.BatchPercent = %v, want 0.10", cfg.Engine.BatchPercent)
	}
	if cfg.Engine.FloorClasses != 5 || cfg.Engine.FloorFields != 5 || cfg.Engine.FloorMethods != 10 {
		t.Errorf("floors = %d/%d/%d, want 5/5/10", cfg.Engine.FloorClasses, cfg.Engine.FloorFields, cfg.Engine.FloorMethods)
	}
	if cfg.Engine.MaxIterations != 50 {
		t.Errorf("Engine.MaxIterations = %d, want 50", cfg.Engine.MaxIterations)
	}
	if len(cfg.Obfuscation.MeaningfulPrefixes) != 4 {
		t.Errorf("MeaningfulPrefixes = %v, want 4 entries", cfg.Obfuscation.MeaningfulPrefixes)
	}
	if !cfg.Rank.Enabled {
		t.Error("Rank should be enabled by default")
	}
	if cfg.Rank.TfidfWeight+cfg.Rank.KnnWeight != 1.0 {
		t.Errorf("rank weights sum to %v, want 1.0", cfg.Rank.TfidfWeight+cfg.Rank.KnnWeight)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should be enabled by default")
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero min votes", func(c *Config) { c.Engine.MinVotes = 0 }, true},
		{"negative min gap", func(c *Config) { c.Engine.MinGap = -1 }, true},
		{"batch percent zero", func(c *Config) { c.Engine.BatchPercent = 0 }, true},
		{"batch percent over one", func(c *Config) { c.Engine.BatchPercent = 1.5 }, true},
		{"zero max iterations", func(c *Config) { c.Engine.MaxIterations = 0 }, true},
		{"no meaningful prefixes", func(c *Config) { c.Obfuscation.MeaningfulPrefixes = nil }, true},
		{"unbalanced rank weights", func(c *Config) { c.Rank.TfidfWeight = 0.9 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() should have returned an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}
			if err != nil {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "engine.minVotes", Message: "must be at least 1"}
	got := err.Error()
	want := "config error in field 'engine.minVotes': must be at least 1"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoad_NoConfigFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldwd, _ := os.Getwd()
	defer os.Chdir(oldwd)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MinVotes != 3 {
		t.Errorf("Engine.MinVotes = %d, want 3 (default)", cfg.Engine.MinVotes)
	}
}

func TestLoad_FromExplicitYAMLPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.yaml")
	content := "engine:\n  minVotes: 7\n  minGap: 4\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MinVotes != 7 {
		t.Errorf("Engine.MinVotes = %d, want 7", cfg.Engine.MinVotes)
	}
	if cfg.Engine.MinGap != 4 {
		t.Errorf("Engine.MinGap = %d, want 4", cfg.Engine.MinGap)
	}
	// Untouched fields still carry their defaults.
	if cfg.Engine.MaxIterations != 50 {
		t.Errorf("Engine.MaxIterations = %d, want 50 (default, untouched by override)", cfg.Engine.MaxIterations)
	}
}

func TestLoad_FromExplicitTOMLPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	content := "[engine]\nminVotes = 9\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MinVotes != 9 {
		t.Errorf("Engine.MinVotes = %d, want 9", cfg.Engine.MinVotes)
	}
}

func TestLoad_MissingExplicitPathIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/directory/config.yaml")
	if err == nil {
		t.Error("Load() should return an error for a missing explicit config path")
	}
}

func TestConfig_SaveThenLoadRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Engine.MinVotes = 11

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if loaded.Engine.MinVotes != 11 {
		t.Errorf("loaded Engine.MinVotes = %d, want 11", loaded.Engine.MinVotes)
	}
}

func TestConfig_AsJSON(t *testing.T) {
	cfg := DefaultConfig()
	b, err := cfg.AsJSON()
	if err != nil {
		t.Fatalf("AsJSON() error = %v", err)
	}
	if len(b) == 0 {
		t.Error("AsJSON() returned empty output")
	}
}
