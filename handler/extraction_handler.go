package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/gin-gonic/gin"
)

type ExtractionHandler struct {
	extractionService *service.ExtractionService
	maxFileSize       int64
	logger            *slog.Logger
}

func NewExtractionHandler(extractionService *service.ExtractionService, maxFileSize int64, logger *slog.Logger) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{
		extractionService: extractionService,
		maxFileSize:       maxFileSize,
		logger:            logger,
	}
}

// ExtractDocuments handles POST /documents/extract.
// Files arrive as multipart "files[]" (or a single "file").
func (h *ExtractionHandler) ExtractDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, h.logger, http.StatusBadRequest, CodeBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.ExtractDocumentsRequest{
		Files: append(form.File["files[]"], form.File["file"]...),
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		status, code := statusFor(err, http.StatusBadRequest, CodeBadRequest)
		sendError(c, h.logger, status, code, err.Error(), nil)
		return
	}

	docs := make([]service.Document, 0, len(request.Files))
	for _, fh := range request.Files {
		data, err := readUpload(fh)
		if err != nil {
			sendError(c, h.logger, http.StatusBadRequest, CodeBadRequest, "Failed to read upload", err)
			return
		}
		docs = append(docs, service.Document{Filename: fh.Filename, Data: data})
	}

	h.logger.Info("extract.request", "files", len(docs))
	results := h.extractionService.ProcessBatch(c.Request.Context(), docs)

	response := dto.ExtractDocumentsResponse{
		Results:     results,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, r := range results {
		if r.Error != "" {
			response.Failed++
		} else {
			response.Succeeded++
		}
	}

	status := http.StatusOK
	if response.Succeeded == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, response)
}

// ExtractText handles POST /documents/extract-text for text that was OCRed elsewhere.
func (h *ExtractionHandler) ExtractText(c *gin.Context) {
	var req dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, CodeBadRequest, "Invalid request body", err)
		return
	}

	store := req.Store && h.extractionService.Store() != nil
	rec, err := h.extractionService.ProcessText(c.Request.Context(), req.Text, req.SourceFile, store)
	if err != nil {
		status, code := statusFor(err, http.StatusInternalServerError, CodeExtraction)
		sendError(c, h.logger, status, code, "Failed to extract record", err)
		return
	}

	status := http.StatusOK
	if store {
		status = http.StatusCreated
	}
	c.JSON(status, rec)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fh.Filename, err)
	}
	return data, nil
}
