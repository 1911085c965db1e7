package pdfparser

import (
	"path/filepath"
	"strings"

	"faturas/fatura-csv/internal/fileutils"
	"faturas/fatura-csv/internal/parsererror"
	"faturas/fatura-csv/internal/textutils"
)

// Input kinds accepted by the adapter.
const (
	ExtPDF  = ".pdf"
	ExtText = ".txt"
)

// IsSupportedInput reports whether path has an extension the adapter reads.
func IsSupportedInput(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ExtPDF || ext == ExtText
}

// ValidateInputFile checks that path names an existing .pdf or .txt file.
func ValidateInputFile(path string) error {
	if !IsSupportedInput(path) {
		return &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "file is not a PDF",
		}
	}
	if !fileutils.FileExists(path) {
		return &parsererror.ValidationError{
			FilePath: path,
			Reason:   "file does not exist",
		}
	}
	return nil
}

// ValidateText rejects extraction output with no visible characters.
func ValidateText(path, text string) error {
	if strings.TrimSpace(text) == "" {
		return &parsererror.DataExtractionError{
			FilePath:  path,
			FieldName: "text",
			Msg:       "could not extract text from PDF",
			Reason:    "extracted text is blank",
		}
	}
	return nil
}

func textSnippet(text string) string {
	return textutils.Snippet(textutils.CollapseSpaces(text), 500)
}
