package pdfvalidation

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLimits defines the validation limits for PDF uploads
type PDFLimits struct {
	MaxFileSizeMB    int
	MaxPages         int
	DocumentTypeName string // for error messages
}

var (
	// CartaLimits applies to cover letters attached to applications.
	CartaLimits = PDFLimits{
		MaxFileSizeMB:    100,
		MaxPages:         20,
		DocumentTypeName: "carta de presentación",
	}

	// DocumentoLimits applies to documents in the student review pipeline.
	DocumentoLimits = PDFLimits{
		MaxFileSizeMB:    100,
		MaxPages:         100,
		DocumentTypeName: "documento",
	}

	// FormatoLimits applies to shared templates.
	FormatoLimits = PDFLimits{
		MaxFileSizeMB:    50,
		MaxPages:         50,
		DocumentTypeName: "formato",
	}
)

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Error     string
}

// ValidatePDFFile validates a multipart upload against the given limits and
// returns the file bytes when valid.
func ValidatePDFFile(file *multipart.FileHeader, limits PDFLimits) (*ValidationResult, []byte, error) {
	result := &ValidationResult{
		FileSize: file.Size,
	}

	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
		return result, nil, nil
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		result.Error = "Only PDF files are supported"
		return result, nil, nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}

	pages, valid := ValidatePDFBytes(data, limits, result)
	if !valid {
		return result, nil, nil
	}

	result.Valid = true
	result.PageCount = pages
	return result, data, nil
}

// ValidatePDFBytes checks that data is a well-formed PDF within the page
// limit. It fills result.Error on failure and returns the page count.
func ValidatePDFBytes(data []byte, limits PDFLimits, result *ValidationResult) (int, bool) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		result.Error = fmt.Sprintf("The %s is not a valid PDF file", limits.DocumentTypeName)
		return 0, false
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Error = fmt.Sprintf("The %s could not be parsed as a PDF: %v", limits.DocumentTypeName, err)
		return 0, false
	}

	pages := reader.NumPage()
	if limits.MaxPages > 0 && pages > limits.MaxPages {
		result.Error = fmt.Sprintf("The %s exceeds the maximum of %d pages", limits.DocumentTypeName, limits.MaxPages)
		return pages, false
	}

	return pages, true
}
