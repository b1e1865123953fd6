package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	// PaddleOCRURL enables the PaddleOCR engine ahead of Tesseract when set.
	PaddleOCRURL string
	MaxFileSize  int64
	MaxWorkers   int
	// DBPath of the bbolt record store; empty disables persistence.
	DBPath       string
	PatternsFile string
	OCRTimeout   time.Duration
}

// LoadConfig reads the environment. Malformed numbers are reported, unset
// variables take defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguage:       getEnv("OCR_LANGUAGE", "eng"),
		PaddleOCRURL:      os.Getenv("PADDLEOCR_API_URL"),
		DBPath:            getEnv("DB_PATH", "invoices.db"),
		PatternsFile:      os.Getenv("PATTERNS_FILE"),
	}

	var errs []error
	var err error
	if cfg.MaxFileSize, err = getEnvInt64("MAX_FILE_SIZE", 10*1024*1024); err != nil {
		errs = append(errs, err)
	}
	maxWorkers, err := getEnvInt64("MAX_WORKERS", 4)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.MaxWorkers = int(maxWorkers)
	if cfg.OCRTimeout, err = getEnvDuration("OCR_TIMEOUT", 60*time.Second); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	if port, err := strconv.Atoi(c.ServerPort); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("SERVER_PORT %q is not a valid port", c.ServerPort)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxWorkers < 1 || c.MaxWorkers > 64 {
		return fmt.Errorf("MAX_WORKERS must be between 1 and 64, got %d", c.MaxWorkers)
	}
	if c.OCRTimeout < 0 {
		return fmt.Errorf("OCR_TIMEOUT must not be negative, got %s", c.OCRTimeout)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
