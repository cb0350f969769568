package extract

import (
	"errors"
	"strings"
	"testing"

	apperrors "resumelens/internal/errors"
)

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes([]byte("Jane Doe\npython developer"), "resume.txt", "")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(text, "python developer") {
		t.Errorf("text = %q", text)
	}
}

func TestFromBytesExplicitMIME(t *testing.T) {
	text, err := FromBytes([]byte("content"), "whatever.bin", MIMEPlainText)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "content" {
		t.Errorf("text = %q", text)
	}
}

func TestFromBytesUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
	}{
		{"unknown mime", "resume.pdf", "image/png"},
		{"unknown extension", "resume.xlsx", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte("data"), tt.fileName, tt.mimeType)
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeUnsupportedFile {
				t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeUnsupportedFile)
			}
		})
	}
}

func TestFromBytesEmptyResult(t *testing.T) {
	_, err := FromBytes([]byte("   \n  "), "resume.txt", "")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeEmptyDocument {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeEmptyDocument)
	}
}

func TestFromBytesCorruptPDF(t *testing.T) {
	_, err := FromBytes([]byte("not a pdf"), "resume.pdf", MIMEPDF)
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeExtraction {
		t.Errorf("error = %v, want extraction type", err)
	}
}

func TestFromBytesCorruptDocx(t *testing.T) {
	_, err := FromBytes([]byte("not a docx"), "resume.docx", MIMEDocx)
	if err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}
