package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/client"
	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/epcqr"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/invoice"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// below this many characters a PDF text layer is treated as a scan
	minPDFTextLen = 20
	minOCRTextLen = 5

	lowQualityScore = 60.0
)

// Quality issue codes reported on dto.DocumentQuality.
const (
	IssuePDFTextFailed   = "pdf_text_extraction_failed"
	IssuePDFImagesFailed = "pdf_image_extraction_failed"
	IssueScannedOCR      = "scanned_pdf_ocr_failed"
	IssueLowQuality      = "low_quality_document"
	IssueEPCPayment      = "epc_payment_qr"
)

// OCREngine turns an encoded image into text.
type OCREngine interface {
	Name() string
	ExtractText(ctx context.Context, image []byte) (client.OCRResult, error)
}

// QRReader finds a QR code payload in an image.
type QRReader interface {
	Decode(img image.Image) (string, error)
}

// Document is one uploaded or watched file.
type Document struct {
	Filename string
	Data     []byte
}

type Options struct {
	Extractor *invoice.Extractor
	// OCR engines are tried in order until one returns text.
	OCR        []OCREngine
	PDF        PDFProcessor
	QR         QRReader
	Store      RecordStore
	Validator  *RecordValidator
	MaxWorkers int
	OCRTimeout time.Duration
	Logger     *slog.Logger
}

type ExtractionService struct {
	extractor  *invoice.Extractor
	ocr        []OCREngine
	pdf        PDFProcessor
	qr         QRReader
	store      RecordStore
	validator  *RecordValidator
	maxWorkers int
	ocrTimeout time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewExtractionService(opts Options) *ExtractionService {
	s := &ExtractionService{
		extractor:  opts.Extractor,
		ocr:        opts.OCR,
		pdf:        opts.PDF,
		qr:         opts.QR,
		store:      opts.Store,
		validator:  opts.Validator,
		maxWorkers: opts.MaxWorkers,
		ocrTimeout: opts.OCRTimeout,
		logger:     opts.Logger,
		now:        time.Now,
	}
	if s.extractor == nil {
		s.extractor = invoice.Default()
	}
	if s.pdf == nil {
		s.pdf = NewPDFProcessor()
	}
	if s.maxWorkers <= 0 {
		s.maxWorkers = 4
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Store returns the configured record store, or nil.
func (s *ExtractionService) Store() RecordStore { return s.store }

// scan is the text of a document plus what was learned while reading it.
type scan struct {
	text    string
	source  dto.TextSource
	quality dto.DocumentQuality
	images  []image.Image
}

// ProcessDocument reads, extracts and (when a store is configured) persists one file.
func (s *ExtractionService) ProcessDocument(ctx context.Context, doc Document) (*dto.StoredRecord, error) {
	start := time.Now()
	if !dto.IsSupportedFile(doc.Filename) {
		return nil, fmt.Errorf("%w: %s", dto.ErrUnsupportedFileType, doc.Filename)
	}

	sc, err := s.readDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sc.text) == "" {
		return nil, fmt.Errorf("%s: %w", doc.Filename, dto.ErrEmptyDocument)
	}

	record := s.extractor.Extract(sc.text)
	if s.applyPaymentQR(sc.images, &record) {
		sc.quality.Issues = append(sc.quality.Issues, IssueEPCPayment)
	}

	stored := s.newStoredRecord(filepath.Base(doc.Filename), sc.source, sc.quality, record)
	if err := s.persist(stored); err != nil {
		return nil, err
	}

	s.logger.Info("extract.document.ok",
		"file", stored.SourceFile,
		"id", stored.ID,
		"type", record.DocumentType,
		"source", sc.source,
		"score", sc.quality.FinalScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return stored, nil
}

// ProcessText extracts a record from already-recognised text. The record is
// persisted only when store is set and a store is configured.
func (s *ExtractionService) ProcessText(ctx context.Context, text, sourceFile string, store bool) (*dto.StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := s.extractor.Extract(text)
	quality := dto.DocumentQuality{OcrConfidence: 100, FinalScore: 100, Issues: []string{}}
	stored := s.newStoredRecord(sourceFile, dto.SourceText, quality, record)

	if store {
		if err := s.persist(stored); err != nil {
			return nil, err
		}
	} else if s.validator != nil {
		if err := s.validator.Validate(stored); err != nil {
			return nil, err
		}
	}
	return stored, nil
}

// ProcessBatch processes docs concurrently, at most MaxWorkers at a time.
// A failing document does not stop the others; results keep input order.
func (s *ExtractionService) ProcessBatch(ctx context.Context, docs []Document) []dto.FileResult {
	results := make([]dto.FileResult, len(docs))

	var g errgroup.Group
	g.SetLimit(s.maxWorkers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i].Filename = doc.Filename
			rec, err := s.ProcessDocument(ctx, doc)
			if err != nil {
				s.logger.Warn("extract.document.failed", "file", doc.Filename, "err", err)
				results[i].Error = err.Error()
				return nil
			}
			results[i].Record = rec
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *ExtractionService) newStoredRecord(sourceFile string, source dto.TextSource, quality dto.DocumentQuality, record dto.ExtractionRecord) *dto.StoredRecord {
	if quality.Issues == nil {
		quality.Issues = []string{}
	}
	return &dto.StoredRecord{
		ID:          uuid.NewString(),
		SourceFile:  sourceFile,
		Source:      source,
		ProcessedAt: s.now().UTC(),
		Quality:     quality,
		Record:      record,
	}
}

func (s *ExtractionService) persist(rec *dto.StoredRecord) error {
	if s.validator != nil {
		if err := s.validator.Validate(rec); err != nil {
			return err
		}
	}
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(rec); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

func (s *ExtractionService) readDocument(ctx context.Context, doc Document) (scan, error) {
	if strings.EqualFold(filepath.Ext(doc.Filename), ".pdf") {
		return s.readPDF(ctx, doc)
	}

	sc := scan{source: dto.SourceOCR}
	if img, _, err := image.Decode(bytes.NewReader(doc.Data)); err == nil {
		sc.images = []image.Image{img}
	}

	res, err := s.recognize(ctx, doc.Data)
	if err != nil {
		return sc, fmt.Errorf("image OCR failed for %s: %w", doc.Filename, err)
	}
	sc.text = res.Text
	sc.quality = scoreOCR(res.Confidence)
	return sc, nil
}

func (s *ExtractionService) readPDF(ctx context.Context, doc Document) (scan, error) {
	sc := scan{source: dto.SourcePDFText}

	text, err := s.pdf.ExtractText(ctx, doc.Data)
	if err != nil {
		if ctx.Err() != nil {
			return sc, ctx.Err()
		}
		s.logger.Warn("pdf.text.failed", "file", doc.Filename, "err", err)
		sc.quality.Issues = append(sc.quality.Issues, IssuePDFTextFailed)
	}

	// page images are needed for OCR of scans, and for payment QR codes otherwise
	scanned := len(strings.TrimSpace(text)) < minPDFTextLen
	if scanned || s.qr != nil {
		images, imgErr := s.pdf.ExtractImages(ctx, doc.Data)
		if imgErr != nil && scanned {
			s.logger.Warn("pdf.images.failed", "file", doc.Filename, "err", imgErr)
		}
		sc.images = images
	}

	if !scanned {
		sc.text = text
		sc.quality.OcrConfidence = 100
		sc.quality.FinalScore = 100
		return sc, nil
	}

	s.logger.Info("pdf.scanned", "file", doc.Filename, "images", len(sc.images))
	sc.source = dto.SourceOCR
	if len(sc.images) == 0 {
		sc.quality.Issues = append(sc.quality.Issues, IssuePDFImagesFailed)
		sc.text = text
		return sc, nil
	}

	var (
		combined strings.Builder
		total    float64
		pages    int
	)
	for _, img := range sc.images {
		data, err := encodePNG(img)
		if err != nil {
			continue
		}
		res, err := s.recognize(ctx, data)
		if err != nil {
			if ctx.Err() != nil {
				return sc, ctx.Err()
			}
			s.logger.Warn("pdf.page.ocr.failed", "file", doc.Filename, "err", err)
			continue
		}
		combined.WriteString(res.Text)
		combined.WriteString("\n")
		total += res.Confidence
		pages++
	}

	if pages == 0 {
		sc.quality.Issues = append(sc.quality.Issues, IssueScannedOCR)
		sc.text = text
		return sc, nil
	}

	issues := sc.quality.Issues
	sc.quality = scoreOCR(total / float64(pages))
	sc.quality.Issues = append(issues, sc.quality.Issues...)
	sc.text = combined.String()
	return sc, nil
}

// recognize tries each OCR engine in turn.
func (s *ExtractionService) recognize(ctx context.Context, data []byte) (client.OCRResult, error) {
	if len(s.ocr) == 0 {
		return client.OCRResult{}, errors.New("no OCR engine configured")
	}

	var lastErr error
	for _, engine := range s.ocr {
		res, err := s.recognizeWith(ctx, engine, data)
		if err == nil && len(strings.TrimSpace(res.Text)) >= minOCRTextLen {
			return res, nil
		}
		if ctx.Err() != nil {
			return client.OCRResult{}, ctx.Err()
		}
		if err == nil {
			err = fmt.Errorf("%s returned too little text", engine.Name())
		}
		s.logger.Debug("ocr.engine.failed", "engine", engine.Name(), "err", err)
		lastErr = err
	}
	return client.OCRResult{}, lastErr
}

func (s *ExtractionService) recognizeWith(ctx context.Context, engine OCREngine, data []byte) (client.OCRResult, error) {
	if s.ocrTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.ocrTimeout)
		defer cancel()
	}
	return engine.ExtractText(ctx, data)
}

// applyPaymentQR fills seller bank details and a missing amount from the first
// EPC payment QR code found on the page images.
func (s *ExtractionService) applyPaymentQR(images []image.Image, record *dto.ExtractionRecord) bool {
	if s.qr == nil {
		return false
	}
	for _, img := range images {
		payload, err := s.qr.Decode(img)
		if err != nil {
			continue
		}
		payment, err := epcqr.Parse(payload)
		if err != nil {
			s.logger.Debug("qr.not_epc", "err", err)
			continue
		}
		MergePayment(record, payment)
		return true
	}
	return false
}

// MergePayment copies what the payment QR knows into fields the text left empty.
func MergePayment(record *dto.ExtractionRecord, p *epcqr.Payment) {
	if record.Amount.IsZero() && !p.Amount.IsZero() {
		record.Amount = p.Amount
		if record.Total.IsZero() {
			record.Total = p.Amount
		}
	}
	if record.Invoice == nil {
		return
	}
	seller := &record.Invoice.Seller
	if seller.IBAN == "" {
		seller.IBAN = p.IBAN
	}
	if seller.Name == "" {
		seller.Name = p.Name
	}
}

func scoreOCR(confidence float64) dto.DocumentQuality {
	q := dto.DocumentQuality{
		OcrConfidence: confidence,
		FinalScore:    confidence,
		Issues:        []string{},
	}
	if q.FinalScore < lowQualityScore {
		q.Issues = append(q.Issues, IssueLowQuality)
	}
	return q
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	return buf.Bytes(), nil
}
