package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"TALENTMATCH_PORT", "TALENTMATCH_METRICS_PORT", "TALENTMATCH_ADMIN_TOKEN",
		"TALENTMATCH_DATABASE_URL", "TALENTMATCH_EVENTS_URL",
		"TALENTMATCH_MIN_MATCH_RATE", "TALENTMATCH_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Matching.MinMatchRate != 70 {
		t.Errorf("expected min match rate 70, got %v", cfg.Matching.MinMatchRate)
	}
	if cfg.Matching.MaxCohortSize != 3 {
		t.Errorf("expected max cohort size 3, got %d", cfg.Matching.MaxCohortSize)
	}
	if cfg.Matching.TopThemeCount != 5 {
		t.Errorf("expected top theme count 5, got %d", cfg.Matching.TopThemeCount)
	}
	if cfg.Matching.IQFloor != 80 || cfg.Matching.IQCeiling != 140 {
		t.Errorf("expected IQ range 80-140, got %v-%v", cfg.Matching.IQFloor, cfg.Matching.IQCeiling)
	}
	if cfg.Matching.PAPIScaleMin != 1 || cfg.Matching.PAPIScaleMax != 9 {
		t.Errorf("expected PAPI range 1-9, got %v-%v", cfg.Matching.PAPIScaleMin, cfg.Matching.PAPIScaleMax)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9000
  admin_token: sekret
database:
  url: postgres://localhost/talent
matching:
  min_match_rate: 60
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "sekret" {
		t.Errorf("expected admin token from file, got %q", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/talent" {
		t.Errorf("expected database URL from file, got %q", cfg.Database.URL)
	}
	if cfg.Matching.MinMatchRate != 60 {
		t.Errorf("expected min match rate 60, got %v", cfg.Matching.MinMatchRate)
	}
	// Untouched sections keep defaults.
	if cfg.Matching.TopThemeCount != 5 {
		t.Errorf("expected default top theme count, got %d", cfg.Matching.TopThemeCount)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TALENTMATCH_PORT", "9100")
	t.Setenv("TALENTMATCH_DATABASE_URL", "postgres://db/talent")
	t.Setenv("TALENTMATCH_MIN_MATCH_RATE", "55.5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://db/talent" {
		t.Errorf("expected env database URL, got %q", cfg.Database.URL)
	}
	if cfg.Matching.MinMatchRate != 55.5 {
		t.Errorf("expected env min match rate 55.5, got %v", cfg.Matching.MinMatchRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("matching:\n  min_match_rate: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for out-of-range min_match_rate")
	}

	if err := os.WriteFile(path, []byte("matching:\n  iq_floor: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for inverted IQ range")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
