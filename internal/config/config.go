package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for tripwise.
type Config struct {
	Claude   ClaudeConfig   `mapstructure:"claude"`
	Session  SessionConfig  `mapstructure:"session"`
	Services ServicesConfig `mapstructure:"services"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	API      APIConfig      `mapstructure:"api"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ClaudeConfig holds Anthropic Claude API settings. An empty APIKey
// disables the LLM and every answer comes from the rule responders.
type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// SessionConfig holds session store settings. Backend is "memory" or
// "redis".
type SessionConfig struct {
	Backend   string `mapstructure:"backend"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	TTLHours  int    `mapstructure:"ttl_hours"`
}

// ServicesConfig holds external data API settings. Empty base URLs
// select each service's public endpoint.
type ServicesConfig struct {
	GeocodeBaseURL string   `mapstructure:"geocode_base_url"`
	WeatherBaseURL string   `mapstructure:"weather_base_url"`
	CountryBaseURL string   `mapstructure:"country_base_url"`
	OverpassURLs   []string `mapstructure:"overpass_urls"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("claude.model", "claude-3-5-haiku-latest")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.ttl_hours", 24)

	v.SetDefault("services.geocode_base_url", "")
	v.SetDefault("services.weather_base_url", "")
	v.SetDefault("services.country_base_url", "")
	v.SetDefault("services.overpass_urls", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".tripwise"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("TRIPWISE")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("claude.model", "TRIPWISE_CLAUDE_MODEL")
	_ = v.BindEnv("session.backend", "TRIPWISE_SESSION_BACKEND")
	_ = v.BindEnv("session.redis_addr", "TRIPWISE_SESSION_REDIS_ADDR")
	_ = v.BindEnv("api.listen_addr", "TRIPWISE_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "TRIPWISE_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("session.backend must be \"memory\" or \"redis\", got %q", c.Session.Backend)
	}
	if c.Session.Backend == "redis" && c.Session.RedisAddr == "" {
		return fmt.Errorf("session.redis_addr must not be empty for the redis backend")
	}
	if c.Session.TTLHours < 0 {
		return fmt.Errorf("session.ttl_hours must be >= 0")
	}
	if c.Claude.Model == "" {
		return fmt.Errorf("claude.model must not be empty")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
