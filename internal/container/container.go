// Package container provides dependency injection for the fatura-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"strings"

	"faturas/fatura-csv/internal/batch"
	"faturas/fatura-csv/internal/common"
	"faturas/fatura-csv/internal/config"
	"faturas/fatura-csv/internal/invoiceparser"
	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"
	"faturas/fatura-csv/internal/parser"
	"faturas/fatura-csv/internal/pdfparser"
	"faturas/fatura-csv/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.ProfileStore
	profile  models.StatementProfile
	invoices *invoiceparser.Parser
	parser   *pdfparser.Adapter
	batch    *batch.Processor
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := cfg.NewLogger()

	profileStore := store.NewProfileStore(cfg.Profile.File, logger)
	profile, err := profileStore.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to load statement profile: %w", err)
	}

	extractor, err := pdfparser.NewExtractor(cfg.PDF.Backend, cfg.PDF.PdftotextPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF extractor: %w", err)
	}

	invoices, err := invoiceparser.New(
		invoiceparser.WithLogger(logger),
		invoiceparser.WithProfile(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice parser: %w", err)
	}

	adapter := pdfparser.NewAdapter(logger, extractor, invoices)
	adapter.SetDebugText(cfg.PDF.DebugText)

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, strings.ToLower(cfg.PDF.Backend)),
		logging.F(logging.FieldWorkers, cfg.Batch.Workers))

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    profileStore,
		profile:  profile,
		invoices: invoices,
		parser:   adapter,
		batch:    batch.NewProcessor(adapter, cfg.Batch.Workers, logger),
	}, nil
}

// GetParser returns the invoice file parser.
func (c *Container) GetParser() parser.FullParser {
	return c.parser
}

// GetInvoiceParser returns the text-level invoice parser.
func (c *Container) GetInvoiceParser() *invoiceparser.Parser {
	return c.invoices
}

// GetBatchProcessor returns the concurrent multi-file processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the profile store.
func (c *Container) GetStore() *store.ProfileStore {
	return c.store
}

// GetProfile returns the loaded statement profile.
func (c *Container) GetProfile() models.StatementProfile {
	return c.profile
}

// ExportOptions returns the configured output format and delimiter.
func (c *Container) ExportOptions() common.ExportOptions {
	return common.ExportOptions{
		Format:    strings.ToLower(c.config.Output.Format),
		Delimiter: c.config.Delimiter(),
	}
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
