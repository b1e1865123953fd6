package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultPaddleURL = "http://paddleocr:8866/predict/ocr_system"

// PaddleClient talks to a PaddleOCR hub serving endpoint.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPaddleClient builds a client for apiURL. A zero timeout means no limit
// beyond the caller's context.
func NewPaddleClient(apiURL string, timeout time.Duration, logger *slog.Logger) *PaddleClient {
	if apiURL == "" {
		apiURL = DefaultPaddleURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (p *PaddleClient) Name() string { return "paddleocr" }

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Msg     string `json:"msg"`
	Status  string `json:"status"`
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// ExtractText posts one base64-encoded image and joins the recognised lines.
// PaddleOCR reports confidence in [0,1]; it is rescaled to 0-100.
func (p *PaddleClient) ExtractText(ctx context.Context, image []byte) (OCRResult, error) {
	payload, err := json.Marshal(paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(image)},
	})
	if err != nil {
		return OCRResult{}, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return OCRResult{}, fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return OCRResult{}, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return OCRResult{}, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return OCRResult{}, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var (
		sb    strings.Builder
		total float64
		lines int
	)
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			if strings.TrimSpace(line.Text) == "" {
				continue
			}
			sb.WriteString(line.Text)
			sb.WriteString("\n")
			total += line.Confidence
			lines++
		}
	}
	if lines == 0 {
		return OCRResult{}, fmt.Errorf("PaddleOCR extracted no text from image")
	}

	p.logger.Debug("paddleocr.ok", "chars", sb.Len(), "lines", lines)
	return OCRResult{
		Text:       sb.String(),
		Confidence: total / float64(lines) * 100,
		Engine:     p.Name(),
	}, nil
}
