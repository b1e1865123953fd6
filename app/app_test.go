package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		ServerPort:  "8080",
		OCRLanguage: "eng",
		MaxFileSize: 1 << 20,
		MaxWorkers:  2,
		DBPath:      filepath.Join(t.TempDir(), "records.db"),
		OCRTimeout:  time.Second,
	}
}

func TestNewWithStore(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	store, err := a.RequireStore()
	require.NoError(t, err)

	rec, err := a.Extraction.ProcessText(context.Background(), "Invoice no: 7\nGross worth: 12.00", "x.txt", true)
	require.NoError(t, err)

	got, err := store.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", got.Record.InvoiceNumber)
}

func TestNewWithoutStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = ""

	a, err := New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Store)
	assert.Nil(t, a.Extraction.Store())
	_, err = a.RequireStore()
	assert.Error(t, err)
}

func TestNewRejectsBadPatterns(t *testing.T) {
	cfg := testConfig(t)
	cfg.PatternsFile = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfg.PatternsFile, []byte("date_patterns: [{name: x, expr: '(', shape: mdy}]\n"), 0o644))

	_, err := New(cfg, nil)
	assert.Error(t, err)
}
