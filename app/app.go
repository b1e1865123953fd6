// Package app wires configuration into the services shared by the HTTP
// server and the invoicectl CLI.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aashish23092/ocr-invoice-extraction/client"
	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/invoice"
)

type App struct {
	Config     *config.Config
	Extraction *service.ExtractionService
	Export     *service.ExportService
	// Store is nil when persistence is disabled.
	Store  service.RecordStore
	Logger *slog.Logger
}

// New builds the service graph. The caller must Close the result.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lib, err := invoice.LoadLibrary(cfg.PatternsFile)
	if err != nil {
		return nil, err
	}
	if cfg.PatternsFile != "" {
		logger.Info("patterns.loaded", "file", cfg.PatternsFile)
	}

	validator, err := service.NewRecordValidator()
	if err != nil {
		return nil, err
	}

	var engines []service.OCREngine
	if cfg.PaddleOCRURL != "" {
		engines = append(engines, client.NewPaddleClient(cfg.PaddleOCRURL, cfg.OCRTimeout, logger))
	}
	engines = append(engines, client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage, logger))

	a := &App{Config: cfg, Logger: logger, Export: service.NewExportService(logger)}
	if cfg.DBPath != "" {
		store, err := service.NewBoltStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open record store: %w", err)
		}
		a.Store = store
	}

	a.Extraction = service.NewExtractionService(service.Options{
		Extractor:  invoice.NewExtractor(lib),
		OCR:        engines,
		PDF:        service.NewPDFProcessor(),
		QR:         client.NewQRDecoder(),
		Store:      a.Store,
		Validator:  validator,
		MaxWorkers: cfg.MaxWorkers,
		OCRTimeout: cfg.OCRTimeout,
		Logger:     logger,
	})

	engineNames := make([]string, len(engines))
	for i, e := range engines {
		engineNames[i] = e.Name()
	}
	logger.Info("app.ready", "ocr", engineNames, "store", cfg.DBPath, "workers", cfg.MaxWorkers)
	return a, nil
}

// RequireStore reports an error when persistence is disabled.
func (a *App) RequireStore() (service.RecordStore, error) {
	if a.Store == nil {
		return nil, errors.New("record store is disabled; set DB_PATH")
	}
	return a.Store, nil
}

func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
