package pdfparser

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"

	"faturas/fatura-csv/internal/parsererror"
)

// Supported extraction backends.
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
)

// PDFExtractor defines the interface for extracting text from PDF files.
// This interface allows for dependency injection and makes the PDF parser testable
// by providing different implementations for production and testing.
type PDFExtractor interface {
	// ExtractText returns the text of every page, pages joined by "\n".
	ExtractText(pdfPath string) (string, error)
}

// NewExtractor returns the extractor for a configured backend.
func NewExtractor(backend, pdftotextPath string) (PDFExtractor, error) {
	switch strings.ToLower(backend) {
	case "", BackendNative:
		return NewNativeExtractor(), nil
	case BackendPdftotext:
		return NewPdftotextExtractor(pdftotextPath), nil
	default:
		return nil, fmt.Errorf("unknown PDF backend %q", backend)
	}
}

// NativeExtractor reads PDFs in process with github.com/ledongthuc/pdf.
type NativeExtractor struct{}

// NewNativeExtractor creates a new NativeExtractor instance.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractText extracts the plain text of each page. Malformed documents can
// make the reader panic; that is reported as a DataExtractionError.
func (e *NativeExtractor) ExtractText(pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.DataExtractionError{
				FilePath:  pdfPath,
				FieldName: "text",
				Msg:       "PDF reader failed",
				Reason:    fmt.Sprint(r),
			}
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}
	defer func() {
		_ = f.Close()
	}()

	if r.NumPage() == 0 {
		return "", &parsererror.DataExtractionError{
			FilePath:  pdfPath,
			FieldName: "pages",
			Msg:       "PDF has no pages",
			Reason:    "empty document",
		}
	}

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", &parsererror.ParseError{
				Parser: "PDF",
				Field:  fmt.Sprintf("page %d", i),
				Value:  pdfPath,
				Err:    err,
			}
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// PdftotextExtractor runs the poppler pdftotext binary in layout mode,
// which keeps table columns on one line more often than the native reader.
type PdftotextExtractor struct {
	Binary string
}

// NewPdftotextExtractor creates an extractor for the given binary,
// defaulting to "pdftotext" on PATH.
func NewPdftotextExtractor(binary string) *PdftotextExtractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &PdftotextExtractor{Binary: binary}
}

// ExtractText extracts text from a PDF file using the pdftotext command.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.Binary, "-layout", "-enc", "UTF-8", pdfPath, "-") // #nosec G204 -- binary comes from local config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running %s: %w: %s", e.Binary, err, strings.TrimSpace(stderr.String()))
	}
	// pdftotext separates pages with form feeds
	return strings.ReplaceAll(stdout.String(), "\f", "\n"), nil
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined mock data instead of actually extracting from PDF files.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	Calls    []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
