package dto

import "time"

// TextSource records how the document text was obtained.
type TextSource string

const (
	SourceText    TextSource = "text"
	SourcePDFText TextSource = "pdf_text"
	SourceOCR     TextSource = "ocr"
)

// DocumentQuality describes how trustworthy the extracted text is.
type DocumentQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	FinalScore    float64  `json:"final_score"`
	Issues        []string `json:"issues"`
}

// StoredRecord is an extraction result as persisted and served by the API.
type StoredRecord struct {
	ID          string           `json:"id"`
	SourceFile  string           `json:"source_file"`
	Source      TextSource       `json:"source"`
	ProcessedAt time.Time        `json:"processed_at"`
	Quality     DocumentQuality  `json:"quality"`
	Record      ExtractionRecord `json:"record"`
}

// FileResult is the per-file outcome of a batch upload.
type FileResult struct {
	Filename string        `json:"filename"`
	Record   *StoredRecord `json:"record,omitempty"`
	Error    string        `json:"error,omitempty"`
}
