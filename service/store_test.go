package service

import (
	"testing"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(id string, at time.Time, text string) *dto.StoredRecord {
	return &dto.StoredRecord{
		ID:          id,
		SourceFile:  id + ".pdf",
		Source:      dto.SourcePDFText,
		ProcessedAt: at,
		Quality:     dto.DocumentQuality{OcrConfidence: 100, FinalScore: 100, Issues: []string{}},
		Record:      invoice.Extract(text),
	}
}

func TestBoltStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inv := storedRecord("b", base, invoiceText)
	rec := storedRecord("a", base.Add(time.Minute), receiptText)
	require.NoError(t, store.Save(inv))
	require.NoError(t, store.Save(rec))

	got, err := store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, inv.Record.Fields(), got.Record.Fields())
	assert.Nil(t, got.Record.Receipt)
	assert.Equal(t, inv.Quality, got.Quality)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "oldest first")
	assert.Equal(t, "a", list[1].ID)

	require.NoError(t, store.Delete("b"))
	_, err = store.Get("b")
	assert.ErrorIs(t, err, dto.ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete("b"), dto.ErrRecordNotFound)
}

func TestBoltStoreRejectsEmptyID(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(&dto.StoredRecord{}))
}
