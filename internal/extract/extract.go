// Package extract turns uploaded document blobs into plain text. Format
// handling is routed by declared MIME type and file extension; plain text
// and markdown pass through, PDF and Word documents go to specialized
// extractors.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileBytes caps uploaded document size.
const MaxFileBytes = 2 * 1024 * 1024

// ExtractionError indicates a file could not be parsed into text. It
// always names the offending file.
type ExtractionError struct {
	Filename string
	Reason   string
	cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.Filename, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.cause
}

// Extractor produces plain text from a document blob.
type Extractor interface {
	// ExtractText converts data into plain text, selecting the parser by
	// declared MIME type and filename extension.
	ExtractText(data []byte, filename, mimeType string) (string, error)
}

// FileExtractor is the production Extractor.
type FileExtractor struct{}

// NewFileExtractor creates an extractor covering text, markdown, PDF, and
// Word documents.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

var _ Extractor = (*FileExtractor)(nil)

// ExtractText implements Extractor.
func (e *FileExtractor) ExtractText(data []byte, filename, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", &ExtractionError{Filename: filename, Reason: "file content is empty"}
	}
	if len(data) > MaxFileBytes {
		return "", &ExtractionError{Filename: filename, Reason: "file size cannot exceed 2MB"}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case mimeType == "text/plain" || mimeType == "text/markdown" || ext == ".txt" || ext == ".md":
		return string(data), nil
	case mimeType == "application/pdf" || ext == ".pdf":
		return extractPDF(data, filename)
	case mimeType == "application/msword" ||
		mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		ext == ".docx" || ext == ".doc":
		return extractWord(data, filename)
	default:
		if mimeType == "" {
			mimeType = "unknown"
		}
		return "", &ExtractionError{
			Filename: filename,
			Reason:   fmt.Sprintf("unsupported file type: %s. Please upload a .txt, .md, .doc, .docx, or .pdf file", mimeType),
		}
	}
}
