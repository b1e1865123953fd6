package invoice

import (
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

func TestExtractAmounts(t *testing.T) {
	e := Default()

	t.Run("thousands separator", func(t *testing.T) {
		a := e.ExtractAmounts("Total: $1,234.56", dto.DocTypeInvoice)
		assert.Equal(t, "1234.56", a.Amount.String())
		assert.Equal(t, "1234.56", a.Total.String())
	})

	t.Run("receipt fields", func(t *testing.T) {
		text := "SUBTOTAL 12.34\nTAX 1 7.000 % 0.81\nTOTAL 13.50\nCHANGE DUE 0.00"
		a := e.ExtractAmounts(text, dto.DocTypeReceipt)
		assert.Equal(t, "12.34", a.Subtotal.String())
		assert.Equal(t, "0.81", a.Tax.String())
		assert.Equal(t, "13.50", a.Total.String())
		assert.Equal(t, "13.50", a.Amount.String())
	})

	t.Run("last total wins", func(t *testing.T) {
		a := e.ExtractAmounts("Total: 10.00\nPayment\nTotal: 25.00", dto.DocTypeInvoice)
		assert.Equal(t, "25.00", a.Amount.String())
	})

	t.Run("balance due replaces total", func(t *testing.T) {
		a := e.ExtractAmounts("Total: 100.00\nPaid 60.00\nBalance Due: 40.00", dto.DocTypeInvoice)
		assert.Equal(t, "40.00", a.Total.String())
		assert.Equal(t, "40.00", a.Amount.String())
	})

	t.Run("paid invoice keeps the total", func(t *testing.T) {
		a := e.ExtractAmounts("Total: $500.00\nPaid: $500.00\nBalance Due: $0.00", dto.DocTypeInvoice)
		assert.Equal(t, "500.00", a.Amount.String())
	})

	t.Run("zero total falls through to subtotal", func(t *testing.T) {
		a := e.ExtractAmounts("SUBTOTAL 12.34\nTOTAL 0.00", dto.DocTypeReceipt)
		assert.True(t, a.Total.IsZero())
		assert.Equal(t, "12.34", a.Amount.String())
	})

	t.Run("invoice worth fields", func(t *testing.T) {
		text := "Net worth: 1 000.00\nVAT: 100.00\nGross worth: 1 100.00"
		a := e.ExtractAmounts(text, dto.DocTypeInvoice)
		assert.Equal(t, "1000.00", a.NetWorth.String())
		assert.Equal(t, "100.00", a.VAT.String())
		assert.Equal(t, "1100.00", a.GrossWorth.String())
		assert.Equal(t, "1100.00", a.Amount.String())
		assert.True(t, a.Subtotal.IsZero())
	})

	t.Run("receipt ignores invoice-only labels", func(t *testing.T) {
		a := e.ExtractAmounts("Gross worth: 50.00\nSUBTOTAL 20.00", dto.DocTypeReceipt)
		assert.True(t, a.GrossWorth.IsZero())
		assert.Equal(t, "20.00", a.Amount.String())
	})

	t.Run("discount and shipping", func(t *testing.T) {
		a := e.ExtractAmounts("Discount (20%): $12.00\nShipping: $7.50\nTotal: $45.50", dto.DocTypeReceipt)
		assert.Equal(t, "12.00", a.Discount.String())
		assert.Equal(t, "7.50", a.Shipping.String())
		assert.Equal(t, "45.50", a.Amount.String())
	})

	t.Run("label and value on different lines", func(t *testing.T) {
		a := e.ExtractAmounts("Gross worth\n1. Desk lamp 12.00", dto.DocTypeInvoice)
		assert.True(t, a.GrossWorth.IsZero())
		assert.Equal(t, "12.00", a.Amount.String())
	})

	t.Run("fallback picks largest plausible amount", func(t *testing.T) {
		a := e.ExtractAmounts("Coffee 3.50\nMuffin 2.25\nRef 1234567.00", dto.DocTypeInvoice)
		assert.Equal(t, "3.50", a.Amount.String())
	})

	t.Run("nothing found", func(t *testing.T) {
		a := e.ExtractAmounts("hello", dto.DocTypeInvoice)
		assert.True(t, a.Amount.IsZero())
		assert.Equal(t, "0.00", a.Amount.String())
	})
}

func TestAmountsNeverNegative(t *testing.T) {
	inputs := []string{
		"Total: -5.00", "Discount: -12.00\nTotal -1.00", "-3.50 -2.00",
		"TOTAL 0.00", "Total: 999999999999.99",
	}
	for _, in := range inputs {
		for _, dt := range []dto.DocumentType{dto.DocTypeInvoice, dto.DocTypeReceipt} {
			a := Default().ExtractAmounts(in, dt)
			for _, m := range []dto.Money{a.Amount, a.Subtotal, a.Discount, a.Shipping, a.Tax, a.VAT, a.Total, a.NetWorth, a.GrossWorth} {
				assert.False(t, m.Decimal().IsNegative(), "input %q", in)
				assert.Regexp(t, `^\d+\.\d{2}$`, m.String())
			}
		}
	}
}
