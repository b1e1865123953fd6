package invoice

import (
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// Scores counts how many indicators of each family the text contains.
func (e *Extractor) Scores(text string) (receipt, invoice int) {
	lower := strings.ToLower(text)
	for _, ind := range e.lib.receiptIndicators {
		if strings.Contains(lower, ind) {
			receipt++
		}
	}
	for _, ind := range e.lib.invoiceIndicators {
		if strings.Contains(lower, ind) {
			invoice++
		}
	}
	return receipt, invoice
}

// Classify returns Receipt only when receipt indicators strictly outnumber
// invoice indicators. Ties, including no indicators at all, are Invoice.
func (e *Extractor) Classify(text string) dto.DocumentType {
	receipt, invoice := e.Scores(text)
	if receipt > invoice {
		return dto.DocTypeReceipt
	}
	return dto.DocTypeInvoice
}
