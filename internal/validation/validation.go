// Package validation holds input checks shared by the CLI commands.
package validation

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// OutputFormats lists the accepted export formats.
var OutputFormats = []string{FormatCSV, FormatJSON, FormatXLSX}

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatCSV, FormatJSON, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
			format, strings.Join(OutputFormats, ", "))
	}
}

// ParseDelimiter returns the single rune of a CSV delimiter setting.
func ParseDelimiter(value string) (rune, error) {
	if value == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("CSV delimiter must be a single character, got %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if r == '"' || r == '\n' || r == '\r' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid CSV delimiter %q", value)
	}
	return r, nil
}
