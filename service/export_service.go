package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/xuri/excelize/v2"
)

// KeySourceFile is the extra leading column of combined exports.
const KeySourceFile = "Source_File"

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f ExportFormat) Extension() string { return "." + string(f) }

// ExportService renders records as spreadsheets.
type ExportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{logger: logger}
}

// RecordCSV writes a single record with the columns of its own document type.
func (s *ExportService) RecordCSV(w io.Writer, rec dto.ExtractionRecord) error {
	fields := rec.Fields()
	header := make([]string, len(fields))
	row := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Key
		row[i] = f.Value
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Export writes all records as one table. Columns are Source_File followed by
// the union of invoice and receipt keys; keys a record lacks are left empty.
func (s *ExportService) Export(w io.Writer, format ExportFormat, records []*dto.StoredRecord) error {
	start := time.Now()

	var err error
	switch format {
	case FormatCSV:
		err = s.writeCSV(w, records)
	case FormatXLSX:
		err = s.writeXLSX(w, records)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return err
	}

	s.logger.Info("export."+string(format)+".ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func combinedHeader() []string {
	return append([]string{KeySourceFile}, dto.AllFieldKeys()...)
}

func combinedRow(header []string, rec *dto.StoredRecord) []string {
	values := rec.Record.FieldMap()
	values[KeySourceFile] = rec.SourceFile
	row := make([]string, len(header))
	for i, key := range header {
		row[i] = values[key]
	}
	return row
}

func (s *ExportService) writeCSV(w io.Writer, records []*dto.StoredRecord) error {
	header := combinedHeader()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(combinedRow(header, rec)); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const exportSheet = "Records"

func (s *ExportService) writeXLSX(w io.Writer, records []*dto.StoredRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	activeIndex, err := f.NewSheet(exportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx delete default sheet: %w", err)
	}

	header := combinedHeader()
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return fmt.Errorf("xlsx header %s: %w", cell, err)
		}
	}

	for r, rec := range records {
		amounts := moneyValues(rec.Record)
		for c, v := range combinedRow(header, rec) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			var value any = v
			if amount, ok := amounts[header[c]]; ok {
				value = amount
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "A", last, 18); err != nil {
		return fmt.Errorf("xlsx column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// moneyValues holds the amount columns as numbers so spreadsheets can sum them.
func moneyValues(rec dto.ExtractionRecord) map[string]float64 {
	out := map[string]float64{
		dto.KeyAmount:   rec.Amount.Float64(),
		dto.KeySubtotal: rec.Subtotal.Float64(),
		dto.KeyDiscount: rec.Discount.Float64(),
		dto.KeyShipping: rec.Shipping.Float64(),
		dto.KeyTax:      rec.Tax.Float64(),
		dto.KeyVAT:      rec.VAT.Float64(),
		dto.KeyTotal:    rec.Total.Float64(),
	}
	if rec.Invoice != nil {
		out[dto.KeyNetWorth] = rec.Invoice.NetWorth.Float64()
		out[dto.KeyGrossWorth] = rec.Invoice.GrossWorth.Float64()
	}
	return out
}
