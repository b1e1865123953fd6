// Package invoice turns OCR text of receipts and invoices into
// dto.ExtractionRecord values.
//
// Every extractor is an ordered list of named strategies over a compiled
// Library. Nothing here does I/O or keeps state between calls, and an
// *Extractor may be shared by any number of goroutines.
package invoice

import "github.com/Aashish23092/ocr-invoice-extraction/dto"

// Extractor runs the extraction pipeline against one pattern library.
type Extractor struct {
	lib *Library
}

// NewExtractor returns an extractor for lib, or for the default library when lib is nil.
func NewExtractor(lib *Library) *Extractor {
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Extractor{lib: lib}
}

var defaultExtractor = NewExtractor(nil)

// Default returns the extractor backed by the built-in patterns.
func Default() *Extractor {
	return defaultExtractor
}

// Extract normalizes raw, classifies it and assembles the record. It never
// fails: a panicking field extractor leaves that field empty.
func (e *Extractor) Extract(raw string) dto.ExtractionRecord {
	text := guard("", func() string { return Normalize(raw) })
	docType := guard(dto.DocTypeInvoice, func() dto.DocumentType { return e.Classify(text) })

	common := dto.RecordCommon{
		InvoiceNumber: guard("", func() string { return e.ExtractInvoiceNumber(text) }),
		Date:          guard("", func() string { return e.ExtractDate(text) }),
		Vendor:        guard(UnknownVendor, func() string { return e.ExtractVendor(text, docType) }),
		Items:         guard([]dto.LineItem{}, func() []dto.LineItem { return e.ExtractItems(text, docType) }),
	}

	amounts := guard(dto.Amounts{}, func() dto.Amounts { return e.ExtractAmounts(text, docType) })
	common.Amount = amounts.Amount
	common.Subtotal = amounts.Subtotal
	common.Discount = amounts.Discount
	common.Shipping = amounts.Shipping
	common.Tax = amounts.Tax
	common.VAT = amounts.VAT
	common.Total = amounts.Total

	common.Category = guard(dto.CategoryOther, func() dto.Category {
		return e.Categorize(common.Vendor, common.Items)
	})

	if docType == dto.DocTypeReceipt {
		return dto.NewReceiptRecord(common, dto.ReceiptDetails{
			BillTo: guard("", func() string { return e.ExtractAddress(text, BillTo) }),
			ShipTo: guard("", func() string { return e.ExtractAddress(text, ShipTo) }),
		})
	}

	return dto.NewInvoiceRecord(common, dto.InvoiceDetails{
		Seller:     guard(dto.Party{}, func() dto.Party { return e.ExtractSeller(text) }),
		Client:     guard(dto.Party{}, func() dto.Party { return e.ExtractClient(text) }),
		NetWorth:   amounts.NetWorth,
		GrossWorth: amounts.GrossWorth,
	})
}

// Extract runs the default extractor.
func Extract(raw string) dto.ExtractionRecord {
	return defaultExtractor.Extract(raw)
}

// Classify runs the default classifier over normalized text.
func Classify(text string) dto.DocumentType {
	return defaultExtractor.Classify(Normalize(text))
}
