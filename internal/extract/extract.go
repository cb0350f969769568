// Package extract turns uploaded resume files into plain text. PDF and DOCX
// documents are parsed with their respective readers; anything else is
// treated as plain text when the extension says so and rejected otherwise.
package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resumelens/internal/errors"
)

// MIME types accepted by FromBytes.
const (
	MIMEPlainText = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FromBytes extracts resume text from raw file content. The MIME type wins
// when set; otherwise the file extension decides. An empty extraction result
// is an error so callers never analyze a blank document.
func FromBytes(data []byte, fileName, mimeType string) (string, error) {
	text, err := dispatch(data, fileName, mimeType)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.NewExtractionError(errors.ErrCodeEmptyDocument,
			"Could not extract text from resume", nil).
			WithContext("file_name", fileName)
	}
	return text, nil
}

func dispatch(data []byte, fileName, mimeType string) (string, error) {
	switch mimeType {
	case MIMEPlainText:
		return string(data), nil
	case MIMEPDF:
		return fromPDF(data)
	case MIMEDocx:
		return fromDocx(data)
	case "":
		// fall through to extension sniffing
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			"unsupported file type: "+mimeType, nil)
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return fromPDF(data)
	case ".docx":
		return fromDocx(data)
	case ".txt", ".text", ".md", "":
		return string(data), nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			"unsupported file type: "+filepath.Ext(fileName), nil)
	}
}

func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeInvalidFormat,
			"failed to read pdf", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func fromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeInvalidFormat,
			"failed to parse docx", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
