package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type. Supported: PDF, PNG, JPG")
	ErrFileTooLarge        = errors.New("file exceeds maximum size")
	ErrEmptyDocument       = errors.New("no text could be extracted from the document")
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidRecord       = errors.New("record does not match schema")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractDocumentsResponse is returned by the upload endpoint
type ExtractDocumentsResponse struct {
	Results     []FileResult `json:"results"`
	Succeeded   int          `json:"succeeded"`
	Failed      int          `json:"failed"`
	ProcessedAt string       `json:"processed_at"`
}

// ListRecordsResponse is returned by the record listing endpoint
type ListRecordsResponse struct {
	Records []*StoredRecord `json:"records"`
	Count   int             `json:"count"`
}
