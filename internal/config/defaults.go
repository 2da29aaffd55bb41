package config

// DefaultPath is where the service looks for its configuration file.
const DefaultPath = ".firefighter.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:                "0.0.0.0",
		Port:                8080,
		DatabasePath:        "firefighter.db",
		AllowedOrigins:      []string{"*"},
		ConfidenceThreshold: 0.7,
		MaxResponseLength:   500,
		ResponseStyle:       StyleProfessional,
		EmojiEnabled:        false,
		VerboseResponses:    false,
		AuditRetentionDays:  90,
	}
}
