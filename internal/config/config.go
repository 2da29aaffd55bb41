package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FIREFIGHTER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: FIREFIGHTER_PORT -> port, etc.
	if err := k.Load(env.Provider("FIREFIGHTER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FIREFIGHTER_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validStyles is the set of recognized response styles.
var validStyles = map[Style]bool{
	StyleConcise:      true,
	StyleCasual:       true,
	StyleTechnical:    true,
	StyleProfessional: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}

	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %.2f must be in (0, 1]", c.ConfidenceThreshold)
	}

	if c.MaxResponseLength < 0 {
		return fmt.Errorf("max_response_length must be non-negative")
	}

	if c.ResponseStyle != "" && !validStyles[c.ResponseStyle] {
		return fmt.Errorf("invalid response_style %q: must be one of concise, casual, technical, professional", c.ResponseStyle)
	}

	if c.AuditRetentionDays < 0 {
		return fmt.Errorf("audit_retention_days must be non-negative")
	}

	return nil
}
