package invoice

import (
	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/shopspring/decimal"
)

func parseAmount(s string) (dto.Money, bool) {
	m, err := dto.ParseMoney(s)
	return m, err == nil
}

// ExtractAmounts finds every labeled amount for the document type and
// resolves the primary amount.
func (e *Extractor) ExtractAmounts(text string, docType dto.DocumentType) dto.Amounts {
	found := e.labeledAmounts(text, docType)

	// balance due is what is actually owed, so it replaces a printed total
	if bd, ok := found[FieldBalanceDue]; ok {
		found[FieldTotal] = bd
	}

	primary, _, _ := firstSuccess(text, e.primaryStrategies(found))
	return dto.Amounts{
		Amount:     primary,
		Subtotal:   found[FieldSubtotal],
		Discount:   found[FieldDiscount],
		Shipping:   found[FieldShipping],
		Tax:        found[FieldTax],
		VAT:        found[FieldVAT],
		Total:      found[FieldTotal],
		NetWorth:   found[FieldNetWorth],
		GrossWorth: found[FieldGrossWorth],
	}
}

// labeledAmounts takes the last parseable match of each field's pattern.
// When a field has several patterns the first one that yields a value wins.
func (e *Extractor) labeledAmounts(text string, docType dto.DocumentType) map[string]dto.Money {
	found := make(map[string]dto.Money)
	for _, ap := range e.lib.amounts[docType] {
		if _, done := found[ap.field]; done {
			continue
		}
		if m, ok := lastMatch(ap.re, text, parseAmount); ok {
			found[ap.field] = m
		}
	}
	return found
}

func (e *Extractor) primaryStrategies(found map[string]dto.Money) []Strategy[dto.Money] {
	labeled := func(field string) Strategy[dto.Money] {
		return Strategy[dto.Money]{
			Name: field,
			Run: func(string) (dto.Money, bool) {
				m, ok := found[field]
				return m, ok && !m.IsZero()
			},
		}
	}
	return []Strategy[dto.Money]{
		labeled(FieldTotal),
		labeled(FieldGrossWorth),
		labeled(FieldSubtotal),
		{Name: "largest_amount", Run: e.largestAmount},
	}
}

// largestAmount is the biggest two-decimal number in the text, ignoring
// zero and anything at or above the noise ceiling.
func (e *Extractor) largestAmount(text string) (dto.Money, bool) {
	ceiling := decimal.NewFromInt(int64(e.lib.limits.MaxAmount))
	var best dto.Money
	found := false
	for _, m := range e.lib.fallbackAmount.FindAllStringSubmatch(text, -1) {
		v, ok := parseAmount(m[1])
		if !ok || v.IsZero() || !v.Decimal().LessThan(ceiling) {
			continue
		}
		if !found || v.GreaterThan(best) {
			best, found = v, true
		}
	}
	return best, found
}
