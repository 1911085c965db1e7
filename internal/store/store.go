// Package store provides functionality for loading statement profiles from disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"faturas/fatura-csv/internal/logging"
	"faturas/fatura-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// ProfileLoader is implemented by anything that can supply a statement profile.
type ProfileLoader interface {
	LoadProfile() (models.StatementProfile, error)
}

// ProfileStore loads a statement profile from a YAML file
type ProfileStore struct {
	ProfileFile string
	logger      logging.Logger
}

// NewProfileStore creates a store for the given profile file. An empty file
// name means no profile is configured.
func NewProfileStore(profileFile string, logger logging.Logger) *ProfileStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ProfileStore{
		ProfileFile: profileFile,
		logger:      logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *ProfileStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("profiles", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Finally check the user's home directory under .config/fatura-csv/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "fatura-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadProfile reads the configured profile. When no file is configured, or
// the file cannot be found, an empty profile is returned and the built-in
// rules apply unchanged.
func (s *ProfileStore) LoadProfile() (models.StatementProfile, error) {
	if s.ProfileFile == "" {
		return models.StatementProfile{}, nil
	}

	filePath, err := s.FindConfigFile(s.ProfileFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Profile file not found, using built-in rules",
				logging.F(logging.FieldFile, s.ProfileFile))
			return models.StatementProfile{}, nil
		}
		return models.StatementProfile{}, fmt.Errorf("error resolving profile file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.StatementProfile{}, fmt.Errorf("error reading profile file: %w", err)
	}

	profile, err := DecodeProfile(data)
	if err != nil {
		return models.StatementProfile{}, fmt.Errorf("error parsing profile file %s: %w", filePath, err)
	}
	if profile.Name == "" {
		profile.Name = filepath.Base(filePath)
	}

	s.logger.Debug("Loaded statement profile",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(profile.FeeKeywords)))
	return profile, nil
}

// DecodeProfile parses a YAML profile document. Unknown keys are rejected
// so that typos in pattern lists do not go unnoticed.
func DecodeProfile(data []byte) (models.StatementProfile, error) {
	var profile models.StatementProfile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return models.StatementProfile{}, err
	}
	return profile, nil
}

// SaveProfile writes profile as YAML to path, creating parent directories.
func (s *ProfileStore) SaveProfile(path string, profile models.StatementProfile) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error marshaling profile: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating profile directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing profile file: %w", err)
	}
	s.logger.Info("Saved statement profile", logging.F(logging.FieldFile, path))
	return nil
}
