package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "firefighter.db" {
		t.Errorf("expected default database_path %q, got %q", "firefighter.db", cfg.DatabasePath)
	}
	if cfg.ConfidenceThreshold != 0.7 {
		t.Errorf("expected default confidence_threshold 0.7, got %f", cfg.ConfidenceThreshold)
	}
	if cfg.ResponseStyle != StyleProfessional {
		t.Errorf("expected default response_style %q, got %q", StyleProfessional, cfg.ResponseStyle)
	}
	if cfg.MaxResponseLength != 500 {
		t.Errorf("expected default max_response_length 500, got %d", cfg.MaxResponseLength)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.firefighter.yml")

	original := DefaultConfig()
	original.Port = 9999
	original.DatabasePath = "/tmp/test.db"
	original.ResponseStyle = StyleCasual
	original.EmojiEnabled = true
	original.ConfidenceThreshold = 0.85
	original.AllowedOrigins = []string{"https://a.example", "https://b.example"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DatabasePath != original.DatabasePath {
		t.Errorf("database_path: got %q, want %q", loaded.DatabasePath, original.DatabasePath)
	}
	if loaded.ResponseStyle != original.ResponseStyle {
		t.Errorf("response_style: got %q, want %q", loaded.ResponseStyle, original.ResponseStyle)
	}
	if loaded.EmojiEnabled != original.EmojiEnabled {
		t.Errorf("emoji_enabled: got %v, want %v", loaded.EmojiEnabled, original.EmojiEnabled)
	}
	if loaded.ConfidenceThreshold != original.ConfidenceThreshold {
		t.Errorf("confidence_threshold: got %f, want %f", loaded.ConfidenceThreshold, original.ConfidenceThreshold)
	}
	if len(loaded.AllowedOrigins) != len(original.AllowedOrigins) {
		t.Errorf("allowed_origins length: got %d, want %d", len(loaded.AllowedOrigins), len(original.AllowedOrigins))
	}
	for i, v := range loaded.AllowedOrigins {
		if v != original.AllowedOrigins[i] {
			t.Errorf("allowed_origins[%d]: got %q, want %q", i, v, original.AllowedOrigins[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override the port via env var.
	os.Setenv("FIREFIGHTER_PORT", "3000")
	defer os.Unsetenv("FIREFIGHTER_PORT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 3000 {
		t.Errorf("env override failed: got %d, want 3000", loaded.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 70000")
	}
}

func TestValidateEmptyDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DatabasePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty database_path")
	}
}

func TestValidateThresholdRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero confidence_threshold")
	}
	cfg.ConfidenceThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for confidence_threshold above 1")
	}
}

func TestValidateInvalidStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResponseStyle = "shouty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid response_style")
	}
}

func TestValidateNegativeRetention(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuditRetentionDays = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative audit_retention_days")
	}
}
