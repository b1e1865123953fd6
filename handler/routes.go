package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the document and record endpoints on api.
func RegisterRoutes(api *gin.RouterGroup, extraction *ExtractionHandler, records *RecordHandler) {
	documents := api.Group("/documents")
	{
		documents.POST("/extract", extraction.ExtractDocuments)
		documents.POST("/extract-text", extraction.ExtractText)
	}

	recs := api.Group("/records")
	{
		recs.GET("", records.ListRecords)
		recs.GET("/export", records.ExportRecords)
		recs.GET("/:id", records.GetRecord)
		recs.DELETE("/:id", records.DeleteRecord)
	}
}
