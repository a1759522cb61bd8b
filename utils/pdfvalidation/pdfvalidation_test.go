package pdfvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePDFBytesRejectsNonPDF(t *testing.T) {
	result := &ValidationResult{}
	_, valid := ValidatePDFBytes([]byte("not a pdf"), CartaLimits, result)
	assert.False(t, valid)
	assert.Contains(t, result.Error, "carta de presentación")
}

func TestValidatePDFBytesRejectsTruncatedPDF(t *testing.T) {
	// Correct magic bytes but no cross-reference table.
	result := &ValidationResult{}
	_, valid := ValidatePDFBytes([]byte("%PDF-1.4\ngarbage"), DocumentoLimits, result)
	assert.False(t, valid)
	assert.NotEmpty(t, result.Error)
}
