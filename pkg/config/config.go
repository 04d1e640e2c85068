package config

import "time"

// Config represents the complete configuration for the taskdeck client.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server Server `koanf:"server" validate:"required"`
	Actor  Actor  `koanf:"actor"  validate:"required"`
	CLI    CLI    `koanf:"cli"`
}

// Server contains backend connection configuration.
type Server struct {
	BaseURL string        `koanf:"base_url" validate:"required,url" env:"SERVER_BASE_URL"`
	Token   string        `koanf:"token"                            env:"SERVER_TOKEN"`
	Timeout time.Duration `koanf:"timeout"                          env:"SERVER_TIMEOUT"`
}

// Actor carries the authenticated identity attached to task submissions.
// Authentication itself happens upstream; these values are opaque here.
type Actor struct {
	ID   int    `koanf:"id"   validate:"required,min=1" env:"ACTOR_ID"`
	Name string `koanf:"name" validate:"required"       env:"ACTOR_NAME"`
}

// CLI contains client behavior configuration.
type CLI struct {
	Format   string `koanf:"format"    validate:"oneof=auto json tui" env:"CLI_FORMAT"`
	LogLevel string `koanf:"log_level"                                env:"CLI_LOG_LEVEL"`
	LogJSON  bool   `koanf:"log_json"                                 env:"CLI_LOG_JSON"`
	NoColor  bool   `koanf:"no_color"                                 env:"CLI_NO_COLOR"`
}

// Default returns the built-in configuration values applied before
// environment overrides.
func Default() *Config {
	return &Config{
		Server: Server{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		CLI: CLI{
			Format:   "auto",
			LogLevel: "info",
		},
	}
}
