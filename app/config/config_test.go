package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Thresholds.FuzzyAccept != 0.65 {
		t.Errorf("FuzzyAccept = %v, want 0.65", cfg.Thresholds.FuzzyAccept)
	}
	if cfg.Thresholds.FuzzyHigh != 0.8 {
		t.Errorf("FuzzyHigh = %v, want 0.8", cfg.Thresholds.FuzzyHigh)
	}
	if cfg.Thresholds.ScopedAccept != 0.78 {
		t.Errorf("ScopedAccept = %v, want 0.78", cfg.Thresholds.ScopedAccept)
	}
	if cfg.Bonuses.TopState != 0.05 || cfg.Bonuses.SecondState != 0.04 {
		t.Errorf("Bonuses = %+v, want 0.05/0.04", cfg.Bonuses)
	}
	if cfg.FragmentTopK != 5 || cfg.NationwideMax != 3 {
		t.Errorf("limits = %d/%d, want 5/3", cfg.FragmentTopK, cfg.NationwideMax)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resolver.yaml")
	body := []byte("thresholds:\n  fuzzy_accept: 0.7\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	orig := C
	defer func() { C = orig }()

	if err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if C.Thresholds.FuzzyAccept != 0.7 {
		t.Errorf("FuzzyAccept = %v, want 0.7 from file", C.Thresholds.FuzzyAccept)
	}
	// Untouched keys keep their defaults.
	if C.Thresholds.FuzzyHigh != 0.8 {
		t.Errorf("FuzzyHigh = %v, want default 0.8", C.Thresholds.FuzzyHigh)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
