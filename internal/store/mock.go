package store

import (
	"faturas/fatura-csv/internal/models"
)

// MockProfileStore is a mock implementation of ProfileLoader for testing.
type MockProfileStore struct {
	Profile models.StatementProfile

	// LoadProfileError is returned by LoadProfile when set
	LoadProfileError error
	Calls            int
}

// LoadProfile returns the mock profile.
func (m *MockProfileStore) LoadProfile() (models.StatementProfile, error) {
	m.Calls++
	if m.LoadProfileError != nil {
		return models.StatementProfile{}, m.LoadProfileError
	}
	return m.Profile, nil
}
