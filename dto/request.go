package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// SupportedExtensions are the upload formats the OCR collaborators accept.
var SupportedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg"}

// ExtractDocumentsRequest represents an upload of one or more documents
type ExtractDocumentsRequest struct {
	Files []*multipart.FileHeader `form:"files[]"`
}

// Validate performs basic validation on the request
func (r *ExtractDocumentsRequest) Validate(maxFileSize int64) error {
	if len(r.Files) == 0 {
		return errors.New("at least one file is required")
	}
	for _, f := range r.Files {
		if !IsSupportedFile(f.Filename) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFileType, f.Filename)
		}
		if maxFileSize > 0 && f.Size > maxFileSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Filename)
		}
	}
	return nil
}

// ExtractTextRequest carries already-OCRed text.
type ExtractTextRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceFile string `json:"source_file"`
	Store      bool   `json:"store"`
}

// IsSupportedFile checks the filename extension.
func IsSupportedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range SupportedExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
