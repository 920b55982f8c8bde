package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the text layer out of a PDF document.
func extractPDF(data []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}

	return strings.TrimSpace(buf.String()), nil
}
