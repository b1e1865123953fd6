package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Aashish23092/ocr-invoice-extraction/app"
	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/Aashish23092/ocr-invoice-extraction/handler"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Failed to start server", "err", err)
		os.Exit(1)
	}
}

// run serves until the listener fails. The record store is closed before it returns.
func run(cfg *config.Config, logger *slog.Logger) error {
	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	router := newRouter(application, logger)

	logger.Info("Starting OCR Invoice Extraction Service", "port", cfg.ServerPort)
	return router.Run(":" + cfg.ServerPort)
}

func newRouter(application *app.App, logger *slog.Logger) *gin.Engine {
	extractionHandler := handler.NewExtractionHandler(application.Extraction, application.Config.MaxFileSize, logger)
	recordHandler := handler.NewRecordHandler(application.Store, application.Export, logger)

	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "OCR Invoice Extraction",
		})
	})

	handler.RegisterRoutes(router.Group("/api/v1"), extractionHandler, recordHandler)
	return router
}
