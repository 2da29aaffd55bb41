package config

import "strconv"

// Style names the response rendering styles the query pipeline supports.
type Style string

const (
	StyleConcise      Style = "concise"
	StyleCasual       Style = "casual"
	StyleTechnical    Style = "technical"
	StyleProfessional Style = "professional"
)

// Config is the top-level service configuration, corresponding to
// .firefighter.yml.
type Config struct {
	Host                string   `yaml:"host" koanf:"host"`
	Port                int      `yaml:"port" koanf:"port"`
	DatabasePath        string   `yaml:"database_path" koanf:"database_path"`
	AllowedOrigins      []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold" koanf:"confidence_threshold"`
	MaxResponseLength   int      `yaml:"max_response_length" koanf:"max_response_length"`
	ResponseStyle       Style    `yaml:"response_style" koanf:"response_style"`
	EmojiEnabled        bool     `yaml:"emoji_enabled" koanf:"emoji_enabled"`
	VerboseResponses    bool     `yaml:"verbose_responses" koanf:"verbose_responses"`
	AuditRetentionDays  int      `yaml:"audit_retention_days" koanf:"audit_retention_days"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
