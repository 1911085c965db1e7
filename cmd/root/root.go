// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/config"
	"faturas/fatura-csv/internal/container"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/validation"

	"github.com/spf13/cobra"
)

// ErrContainerNotInitialized is returned by commands run without the root
// command's PersistentPreRunE.
var ErrContainerNotInitialized = errors.New("container not initialized")

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fatura-csv",
		Short: "A CLI tool to extract Sicoob Mastercard credit-card invoices to CSV, JSON or XLSX.",
		Long: `fatura-csv reads the text of Sicoob Mastercard credit-card invoices (PDF or
pre-extracted text) and extracts the invoice header and the list of expenses.

The result can be written as CSV, JSON or XLSX. Invoices whose layout drifts
from the built-in rules can be handled with a statement profile that adds
extra header patterns and fee keywords.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE:  initContainer,
		PersistentPostRunE: closeContainer,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// ConfigFile overrides the config.yaml search when set
	ConfigFile string
	// Format overrides output.format when set
	Format string
	// LogLevel overrides log.level when set
	LogLevel string

	initOnce     sync.Once
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (stdout when empty)")
		Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
		Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default searches config.yaml in $HOME/.fatura-csv, .fatura-csv and .)")
		Cmd.PersistentFlags().StringVarP(&Format, "format", "f", "", "Output format: "+strings.Join(validation.OutputFormats, ", "))
		Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	})
}

// LoadConfig reads the configuration and applies the command-line overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.InitializeConfigFromFile(ConfigFile)
	if err != nil {
		return nil, err
	}

	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if Format != "" {
		if err := validation.IsValidOutputFormat(Format); err != nil {
			return nil, err
		}
		cfg.Output.Format = strings.ToLower(Format)
	}
	return cfg, nil
}

func initContainer(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	return nil
}

func closeContainer(cmd *cobra.Command, args []string) error {
	if appContainer == nil {
		return nil
	}
	err := appContainer.Close()
	appContainer = nil
	return err
}

// GetContainer returns the application container built for the running
// command, or nil before PersistentPreRunE ran.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the application container. Tests use it to run
// commands against a container built from a hand-made configuration.
func SetContainer(c *container.Container) {
	appContainer = c
}

// GetLogger returns the container logger, or a default logger when the
// container has not been built.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}

// ExportOptions returns the export settings of the running command.
func ExportOptions() common.ExportOptions {
	if appContainer != nil {
		return appContainer.ExportOptions()
	}
	return common.DefaultExportOptions()
}
