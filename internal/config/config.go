// Package config provides Viper-based hierarchical configuration management:
// defaults, then an optional config file, then FINSIGHT_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Classifier struct {
		ModelDir            string  `mapstructure:"model_dir" yaml:"model_dir"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		OverridesFile       string  `mapstructure:"overrides_file" yaml:"overrides_file"`
	} `mapstructure:"classifier" yaml:"classifier"`

	LocalModel struct {
		URL            string `mapstructure:"url" yaml:"url"`
		MaxTokens      int    `mapstructure:"max_tokens" yaml:"max_tokens"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"local_model" yaml:"local_model"`

	Remote struct {
		Model  string `mapstructure:"model" yaml:"model"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"remote" yaml:"remote"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finsight")
	v.AddConfigPath(".finsight")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log and continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("remote.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8000")

	v.SetDefault("database.path", "data/finsight.db")

	v.SetDefault("classifier.model_dir", "models/classifier")
	// Permissive by default: every prediction is accepted as-is.
	v.SetDefault("classifier.confidence_threshold", 0.0)
	v.SetDefault("classifier.overrides_file", "")

	v.SetDefault("local_model.url", "http://127.0.0.1:8080/completion")
	v.SetDefault("local_model.max_tokens", 200)
	v.SetDefault("local_model.timeout_seconds", 120)

	v.SetDefault("remote.model", "gemini-2.0-flash")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Classifier.ConfidenceThreshold < 0.0 || config.Classifier.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("classifier.confidence_threshold must be between 0.0 and 1.0, got: %f",
			config.Classifier.ConfidenceThreshold)
	}

	if config.LocalModel.MaxTokens < 1 || config.LocalModel.MaxTokens > 4096 {
		return fmt.Errorf("local_model.max_tokens must be between 1 and 4096, got: %d",
			config.LocalModel.MaxTokens)
	}

	if config.LocalModel.TimeoutSeconds < 1 || config.LocalModel.TimeoutSeconds > 600 {
		return fmt.Errorf("local_model.timeout_seconds must be between 1 and 600, got: %d",
			config.LocalModel.TimeoutSeconds)
	}

	return nil
}
