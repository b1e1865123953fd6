package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/gin-gonic/gin"
)

// Error codes carried in dto.ErrorResponse.Error.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeExtraction     = "EXTRACTION_FAILED"
	CodeNotFound       = "RECORD_NOT_FOUND"
	CodeStore          = "STORE_FAILED"
	CodeExport         = "EXPORT_FAILED"
	CodeNoStore        = "STORE_DISABLED"
	CodeUnsupported    = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge   = "FILE_TOO_LARGE"
	CodeEmptyDocument  = "EMPTY_DOCUMENT"
	CodeRequestTimeout = "TIMEOUT"
)

// statusFor maps sentinel errors to an HTTP status and error code.
func statusFor(err error, fallbackStatus int, fallbackCode string) (int, string) {
	switch {
	case errors.Is(err, dto.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, CodeUnsupported
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, CodeFileTooLarge
	case errors.Is(err, dto.ErrEmptyDocument):
		return http.StatusUnprocessableEntity, CodeEmptyDocument
	case errors.Is(err, dto.ErrRecordNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeRequestTimeout
	}
	return fallbackStatus, fallbackCode
}

// sendError sends a structured error response
func sendError(c *gin.Context, logger *slog.Logger, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		logger.Error(message, "err", err, "status", statusCode, "path", c.FullPath())
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
