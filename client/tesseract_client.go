package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

const (
	DefaultTessdataPrefix = "/usr/share/tesseract-ocr/5/tessdata/"
	DefaultLanguage       = "eng"
)

// OCRResult is the text of one image and the engine's confidence in it (0-100).
type OCRResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Engine     string  `json:"engine"`
}

type TesseractClient struct {
	dataPath string
	language string
	logger   *slog.Logger
}

func NewTesseractClient(dataPath, language string, logger *slog.Logger) *TesseractClient {
	if dataPath == "" {
		dataPath = DefaultTessdataPrefix
	}
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
		logger:   logger,
	}
}

func (tc *TesseractClient) Name() string { return "tesseract" }

// ExtractText runs OCR over an encoded image (PNG, JPEG, TIFF).
// Confidence is the mean word confidence; it is 0 when Tesseract cannot report boxes.
func (tc *TesseractClient) ExtractText(ctx context.Context, image []byte) (OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return OCRResult{}, err
	}

	client, err := tc.newClient()
	if err != nil {
		return OCRResult{}, err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return OCRResult{}, fmt.Errorf("failed to set image: %w", err)
	}
	return tc.recognize(client)
}

func (tc *TesseractClient) newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	client.SetTessdataPrefix(tc.dataPath)
	if err := client.SetLanguage(tc.language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	return client, nil
}

func (tc *TesseractClient) recognize(client *gosseract.Client) (OCRResult, error) {
	text, err := client.Text()
	if err != nil {
		return OCRResult{}, fmt.Errorf("failed to extract text: %w", err)
	}

	res := OCRResult{Text: text, Engine: tc.Name()}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		tc.logger.Warn("tesseract.boxes.failed", "err", err)
		return res, nil
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	if len(boxes) > 0 {
		res.Confidence = total / float64(len(boxes))
	}
	return res, nil
}
