package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.HistoryCapacity != DefaultHistoryCapacity {
		t.Errorf("HistoryCapacity = %d, want %d", cfg.HistoryCapacity, DefaultHistoryCapacity)
	}
	if cfg.MaxSteps != DefaultMaxSteps {
		t.Errorf("MaxSteps = %d, want %d", cfg.MaxSteps, DefaultMaxSteps)
	}
	if cfg.MsPerTick != DefaultMsPerTick {
		t.Errorf("MsPerTick = %d, want %d", cfg.MsPerTick, DefaultMsPerTick)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned an error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, want %+v", cfg, Default())
	}
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("maxSteps: 1000\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if cfg.MaxSteps != 1000 {
		t.Errorf("MaxSteps = %d, want 1000", cfg.MaxSteps)
	}
	if cfg.HistoryCapacity != DefaultHistoryCapacity {
		t.Errorf("HistoryCapacity = %d, want the unchanged default %d", cfg.HistoryCapacity, DefaultHistoryCapacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadRejectsNonPositiveValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("maxSteps: 0\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a validation error for maxSteps: 0")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"all positive", Config{HistoryCapacity: 1, MaxSteps: 1, MsPerTick: 1}, false},
		{"zero history", Config{HistoryCapacity: 0, MaxSteps: 1, MsPerTick: 1}, true},
		{"negative steps", Config{HistoryCapacity: 1, MaxSteps: -1, MsPerTick: 1}, true},
		{"zero tick", Config{HistoryCapacity: 1, MaxSteps: 1, MsPerTick: 0}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
