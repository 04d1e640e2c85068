package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces every environment variable the client reads.
const envPrefix = "TASKDECK_"

// envMappings maps environment variables to configuration paths. Only the
// variables listed here are consumed; everything else in the environment is
// ignored.
var envMappings = map[string]string{
	envPrefix + "SERVER_BASE_URL": "server.base_url",
	envPrefix + "SERVER_TOKEN":    "server.token",
	envPrefix + "SERVER_TIMEOUT":  "server.timeout",
	envPrefix + "ACTOR_ID":        "actor.id",
	envPrefix + "ACTOR_NAME":      "actor.name",
	envPrefix + "CLI_FORMAT":      "cli.format",
	envPrefix + "CLI_LOG_LEVEL":   "cli.log_level",
	envPrefix + "CLI_LOG_JSON":    "cli.log_json",
	envPrefix + "CLI_NO_COLOR":    "cli.no_color",
}

// Load builds the configuration from defaults and environment variables.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			if path, ok := envMappings[key]; ok {
				return path, value
			}
			return "", nil
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return unmarshalAndValidate(k)
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its declared constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
