package config

import "time"

// Config is the complete application configuration. Values merge three
// layers: built-in defaults, an optional YAML file, and VIZLENS_*
// environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Serper  SerperConfig  `mapstructure:"serper"`
	Places  PlacesConfig  `mapstructure:"places"`
	Probes  ProbesConfig  `mapstructure:"probes"`
	AI      AIConfig      `mapstructure:"ai"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// FetchConfig controls the website fetcher.
type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// SerperConfig configures the Serper search client. An empty APIKey
// disables search-based social resolution.
type SerperConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PlacesConfig configures the Google Places client. An empty APIKey
// disables listing resolution.
type PlacesConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProbesConfig controls the deep-probe runner.
type ProbesConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	PSIAPIKey     string `mapstructure:"psi_api_key"`
	InternalLimit int    `mapstructure:"internal_limit"`
	KeywordTop    int    `mapstructure:"keyword_top"`
}

// AIConfig selects and configures the completion provider.
type AIConfig struct {
	// Provider is "openai" or "openrouter". Anything else falls back to
	// openai.
	Provider   string           `mapstructure:"provider"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
}

// OpenAIConfig holds OpenAI credentials and routing.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// OpenRouterConfig holds OpenRouter credentials and attribution.
type OpenRouterConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	SiteURL  string `mapstructure:"site_url"`
	AppTitle string `mapstructure:"app_title"`
}
