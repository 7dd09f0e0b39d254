package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (TALLY_PORT, TALLY_STORE, ...).
const EnvPrefix = "TALLY"

// Config holds application configuration.
type Config struct {
	// Bind is the interface the HTTP server listens on
	Bind string `mapstructure:"bind" json:"bind"`

	// Port is the HTTP port. The bare PORT variable is honored as well as TALLY_PORT.
	Port int `mapstructure:"port" json:"port"`

	// Store selects the record store backend: "memory" or "sqlite".
	// Both keep data for the life of the process only.
	Store string `mapstructure:"store" json:"store"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"log_level" json:"log_level"`

	// LogPretty switches from JSON lines to human-readable console output
	LogPretty bool `mapstructure:"log_pretty" json:"log_pretty"`

	// AllowedOrigins lists CORS origins; "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins,omitempty"`

	// MaxValueChars caps the character count of a stored value. 0 disables the limit.
	MaxValueChars int `mapstructure:"max_value_chars" json:"max_value_chars"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `mapstructure:"disabled_tools" json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "string", "query". Unknown type names are logged as warnings.
	DisabledTypes []string `mapstructure:"disabled_types" json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:            "0.0.0.0",
		Port:            3000,
		Store:           "memory",
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		MaxValueChars:   100000,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads baseDir/config.{json,yaml,toml} if present, then applies
// TALLY_* environment overrides on top of the defaults.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tally.
func Load(baseDir string) (*Config, error) {
	v := newViper()
	if baseDir != "" {
		v.AddConfigPath(baseDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AllowedOrigins = cleanStringSlice(cfg.AllowedOrigins)
	cfg.DisabledTools = cleanStringSlice(cfg.DisabledTools)
	cfg.DisabledTypes = cleanStringSlice(cfg.DisabledTypes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper builds a viper instance seeded with DefaultConfig and env bindings.
func newViper() *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("bind", def.Bind)
	v.SetDefault("port", def.Port)
	v.SetDefault("store", def.Store)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_pretty", def.LogPretty)
	v.SetDefault("allowed_origins", def.AllowedOrigins)
	v.SetDefault("max_value_chars", def.MaxValueChars)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)
	v.SetDefault("disabled_tools", []string{})
	v.SetDefault("disabled_types", []string{})

	// PaaS platforms hand out the port as plain PORT
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")

	return v
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("store must be one of: memory, sqlite (got %q)", c.Store)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.MaxValueChars < 0 {
		return fmt.Errorf("max_value_chars must not be negative")
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// cleanStringSlice trims whitespace and removes empty entries and duplicates.
func cleanStringSlice(in []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(in))

	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
