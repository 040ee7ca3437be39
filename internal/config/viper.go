// Package config provides Viper-based hierarchical configuration management.
//
// Precedence, lowest to highest: defaults, config.yaml, FINASSIST_* environment
// variables, provider variables (OPENROUTER_API_KEY, AI_BASE_URL, ...). The
// resulting Config is built once and passed to constructors; the engine never
// reads the environment itself.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the OpenAI-compatible endpoint used when none is configured.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		Model          string `mapstructure:"model" yaml:"model"`
		SiteURL        string `mapstructure:"site_url" yaml:"site_url"`
		SiteName       string `mapstructure:"site_name" yaml:"site_name"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"ai" yaml:"ai"`

	Bulk struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"bulk" yaml:"bulk"`

	Categorization struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"categorization" yaml:"categorization"`
}

// Timeout returns the bounded timeout applied to every external model call.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// InitializeConfig loads configuration. When configFile is empty the standard
// locations are searched and a missing file is not an error; an explicit file
// that cannot be read is.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finassist")
		v.AddConfigPath(".finassist")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FINASSIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Provider variables, first set wins
	bindings := map[string][]string{
		"ai.api_key":   {"FINASSIST_AI_API_KEY", "OPENROUTER_API_KEY", "AI_API_KEY"},
		"ai.base_url":  {"FINASSIST_AI_BASE_URL", "AI_BASE_URL"},
		"ai.model":     {"FINASSIST_AI_MODEL", "AI_MODEL"},
		"ai.site_url":  {"FINASSIST_AI_SITE_URL", "AI_SITE_URL"},
		"ai.site_name": {"FINASSIST_AI_SITE_NAME", "AI_SITE_NAME"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", DefaultBaseURL)
	v.SetDefault("ai.model", "openai/gpt-4o-mini")
	v.SetDefault("ai.site_url", "")
	v.SetDefault("ai.site_name", "")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("bulk.workers", 4)

	v.SetDefault("categorization.rules_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.AI.BaseURL) == "" {
		return fmt.Errorf("ai.base_url must not be empty")
	}
	config.AI.BaseURL = strings.TrimRight(strings.TrimSpace(config.AI.BaseURL), "/")

	if strings.TrimSpace(config.AI.Model) == "" {
		return fmt.Errorf("ai.model must not be empty")
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	if config.Bulk.Workers < 1 || config.Bulk.Workers > 64 {
		return fmt.Errorf("bulk.workers must be between 1 and 64, got: %d", config.Bulk.Workers)
	}

	return nil
}
