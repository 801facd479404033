// Package config provides centralized configuration management. Values
// merge in three layers: built-in defaults, an optional YAML file, and
// VIZLENS_* environment variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// VIZLENS_SERPER_API_KEY maps to serper.api_key.
const EnvPrefix = "VIZLENS"

// Load reads configuration from the optional file path plus environment.
// An empty path searches the working directory and ~/.config/vizlens for
// vizlens.yaml; a missing file is not an error.
func Load(path string) (*Config, error) {
	// Best effort: a .env file is a development convenience, not a
	// requirement.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("vizlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vizlens")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.idle_timeout", "2m")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("logging.level", "info")

	v.SetDefault("fetch.timeout", "30s")

	v.SetDefault("serper.api_key", "")
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("serper.timeout", "20s")

	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("places.timeout", "15s")

	v.SetDefault("probes.enabled", true)
	v.SetDefault("probes.psi_api_key", "")
	v.SetDefault("probes.internal_limit", 75)
	v.SetDefault("probes.keyword_top", 20)

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openrouter.api_key", "")
	v.SetDefault("ai.openrouter.model", "openrouter/auto")
	v.SetDefault("ai.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.openrouter.site_url", "")
	v.SetDefault("ai.openrouter.app_title", "")
}
