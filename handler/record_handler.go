package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	store         service.RecordStore
	exportService *service.ExportService
	logger        *slog.Logger
}

func NewRecordHandler(store service.RecordStore, exportService *service.ExportService, logger *slog.Logger) *RecordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHandler{store: store, exportService: exportService, logger: logger}
}

func (h *RecordHandler) available(c *gin.Context) bool {
	if h.store == nil {
		sendError(c, h.logger, http.StatusServiceUnavailable, CodeNoStore, "Record store is not configured", nil)
		return false
	}
	return true
}

// ListRecords handles GET /records.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	if !h.available(c) {
		return
	}
	records, err := h.store.List()
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, CodeStore, "Failed to list records", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListRecordsResponse{Records: records, Count: len(records)})
}

// GetRecord handles GET /records/:id.
func (h *RecordHandler) GetRecord(c *gin.Context) {
	if !h.available(c) {
		return
	}
	rec, err := h.store.Get(c.Param("id"))
	if err != nil {
		status, code := statusFor(err, http.StatusInternalServerError, CodeStore)
		sendError(c, h.logger, status, code, "Failed to load record", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteRecord handles DELETE /records/:id.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if err := h.store.Delete(c.Param("id")); err != nil {
		status, code := statusFor(err, http.StatusInternalServerError, CodeStore)
		sendError(c, h.logger, status, code, "Failed to delete record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportRecords handles GET /records/export?format=csv|xlsx.
func (h *RecordHandler) ExportRecords(c *gin.Context) {
	if !h.available(c) {
		return
	}
	format, err := service.ParseExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	if err != nil {
		sendError(c, h.logger, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}

	records, err := h.store.List()
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, CodeStore, "Failed to list records", err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.Export(&buf, format, records); err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, CodeExport, "Failed to export records", err)
		return
	}

	filename := fmt.Sprintf("records-%s%s", time.Now().UTC().Format("20060102"), format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
