package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractWord pulls the text runs out of a .docx document. A docx file is
// a zip archive whose word/document.xml holds the text in <w:t> runs,
// grouped into <w:p> paragraphs.
func extractWord(data []byte, filename string) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}

	var document *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", &ExtractionError{Filename: filename, Reason: "document.xml not found in archive"}
	}

	reader, err := document.Open()
	if err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}
	defer func() {
		_ = reader.Close()
	}()

	text, err := decodeDocumentXML(reader)
	if err != nil {
		return "", &ExtractionError{
			Filename: filename,
			Reason:   "the file might be corrupt or password-protected",
			cause:    err,
		}
	}
	return text, nil
}

func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	var inTextRun bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				builder.Write(t)
			}
		}
	}

	return strings.TrimSpace(builder.String()), nil
}
