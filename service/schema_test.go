package service

import (
	"testing"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidator(t *testing.T) {
	v, err := NewRecordValidator()
	require.NoError(t, err)

	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, rec := range []*dto.StoredRecord{
		storedRecord("inv", at, invoiceText),
		storedRecord("rec", at, receiptText),
		storedRecord("empty", at, ""),
	} {
		assert.NoError(t, v.Validate(rec), rec.ID)
	}

	tests := []struct {
		name   string
		mutate func(r *dto.StoredRecord)
	}{
		{"bad date", func(r *dto.StoredRecord) { r.Record.Date = "13/04/2013" }},
		{"bad category", func(r *dto.StoredRecord) { r.Record.Category = "Snacks" }},
		{"empty vendor", func(r *dto.StoredRecord) { r.Record.Vendor = "" }},
		{"missing id", func(r *dto.StoredRecord) { r.ID = "" }},
		{"both details", func(r *dto.StoredRecord) { r.Record.Receipt = &dto.ReceiptDetails{} }},
		{"no details", func(r *dto.StoredRecord) { r.Record.Invoice = nil }},
		{"bad source", func(r *dto.StoredRecord) { r.Source = "fax" }},
		{"empty item", func(r *dto.StoredRecord) { r.Record.Items = []dto.LineItem{{}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := storedRecord("inv", at, invoiceText)
			tt.mutate(rec)
			assert.ErrorIs(t, v.Validate(rec), dto.ErrInvalidRecord)
		})
	}
}
