package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixtures() []*dto.StoredRecord {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []*dto.StoredRecord{
		storedRecord("inv", at, invoiceText),
		storedRecord("rec", at, receiptText),
	}
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, ".xlsx", f.Extension())

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func TestRecordCSV(t *testing.T) {
	var buf bytes.Buffer
	rec := invoice.Extract(receiptText)
	require.NoError(t, NewExportService(nil).RecordCSV(&buf, rec))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, dto.FieldKeys(dto.DocTypeReceipt), rows[0])

	values := map[string]string{}
	for i, k := range rows[0] {
		values[k] = rows[1][i]
	}
	assert.Equal(t, "13.50", values[dto.KeyAmount])
	assert.Equal(t, "receipt", values[dto.KeyInvoiceType])
}

func TestExportCSVCombined(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).Export(&buf, FormatCSV, exportFixtures()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, KeySourceFile, header[0])
	assert.Equal(t, dto.AllFieldKeys(), header[1:])

	col := func(key string) int {
		for i, h := range header {
			if h == key {
				return i
			}
		}
		t.Fatalf("missing column %s", key)
		return -1
	}

	assert.Equal(t, "inv.pdf", rows[1][0])
	assert.Equal(t, "51109338", rows[1][col(dto.KeyInvoiceNumber)])
	assert.Equal(t, "", rows[1][col(dto.KeyBillTo)])
	assert.Equal(t, "rec.pdf", rows[2][0])
	assert.Equal(t, "", rows[2][col(dto.KeySellerName)])
	assert.Equal(t, "13.50", rows[2][col(dto.KeyTotal)])
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).Export(&buf, FormatXLSX, exportFixtures()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheet}, f.GetSheetList())

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, KeySourceFile, rows[0][0])
	assert.Equal(t, "rec.pdf", rows[2][0])

	grossCol := 0
	for i, h := range rows[0] {
		if h == dto.KeyGrossWorth {
			grossCol = i + 1
		}
	}
	require.NotZero(t, grossCol)
	cell, err := excelize.CoordinatesToCellName(grossCol, 2)
	require.NoError(t, err)
	v, err := f.GetCellValue(exportSheet, cell)
	require.NoError(t, err)
	assert.Equal(t, "689.7", v)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportXLSXWriteError(t *testing.T) {
	err := NewExportService(nil).Export(failingWriter{}, FormatXLSX, exportFixtures())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewExportService(nil).Export(&buf, ExportFormat("ods"), nil))
}
