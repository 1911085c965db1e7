// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/pdfparser"
	"faturas/fatura-csv/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	minWorkers = 1
	maxWorkers = 64
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Format    string `mapstructure:"format" yaml:"format"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"output" yaml:"output"`

	PDF struct {
		Backend       string `mapstructure:"backend" yaml:"backend"`
		PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
		DebugText     bool   `mapstructure:"debug_text" yaml:"debug_text"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Profile struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"profile" yaml:"profile"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads the given
// file instead of searching the default locations when path is not empty.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fatura-csv")
		v.AddConfigPath(".fatura-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FATURA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly requested)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.format", validation.FormatCSV)
	v.SetDefault("output.delimiter", ",")

	v.SetDefault("pdf.backend", pdfparser.BackendNative)
	v.SetDefault("pdf.pdftotext_path", "pdftotext")
	v.SetDefault("pdf.debug_text", false)

	v.SetDefault("profile.file", "")

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return err
	}

	if _, err := validation.ParseDelimiter(config.Output.Delimiter); err != nil {
		return fmt.Errorf("invalid output delimiter: %w", err)
	}

	switch strings.ToLower(config.PDF.Backend) {
	case pdfparser.BackendNative, pdfparser.BackendPdftotext:
	default:
		return fmt.Errorf("invalid pdf backend: %s (must be '%s' or '%s')",
			config.PDF.Backend, pdfparser.BackendNative, pdfparser.BackendPdftotext)
	}

	if config.Batch.Workers < minWorkers || config.Batch.Workers > maxWorkers {
		return fmt.Errorf("batch.workers must be between %d and %d, got: %d", minWorkers, maxWorkers, config.Batch.Workers)
	}

	return nil
}

// Delimiter returns the configured output delimiter as a rune. The value
// has already been validated by InitializeConfig.
func (c *Config) Delimiter() rune {
	r, err := validation.ParseDelimiter(c.Output.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

// NewLogger builds the application logger from the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}
