package invoice

import (
	"strings"
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

func TestExtractVendor(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		docType dto.DocumentType
		want    string
	}{
		{
			name:    "seller section",
			text:    "Seller: Acme Corp\nTax Id: 123\nClient: Beta LLC\n",
			docType: dto.DocTypeInvoice,
			want:    "Acme Corp",
		},
		{
			name:    "seller on next line",
			text:    "Invoice no: 1\nSeller:\nAndrews, Kirby and Valdez\n58861 Gonzalez Prairie\nTax Id: 945",
			docType: dto.DocTypeInvoice,
			want:    "Andrews, Kirby and Valdez",
		},
		{
			name:    "receipt header",
			text:    "WALMART SUPERCENTER\n(555) 555-5555\nST# 1234",
			docType: dto.DocTypeReceipt,
			want:    "WALMART SUPERCENTER",
		},
		{
			name:    "receipts ignore seller sections",
			text:    "Corner Deli\nSeller: Someone Else",
			docType: dto.DocTypeReceipt,
			want:    "Corner Deli",
		},
		{
			name:    "skips title and date lines",
			text:    "RECEIPT\n12/01/2020\n*** Joe's Cafe & Bar  Tel 555",
			docType: dto.DocTypeReceipt,
			want:    "Joe's Cafe & Bar",
		},
		{
			name:    "strips trailing store number",
			text:    "Best Buy #123",
			docType: dto.DocTypeReceipt,
			want:    "Best Buy",
		},
		{
			name:    "caps word count",
			text:    "One Two Three Four Five Six Seven Eight",
			docType: dto.DocTypeReceipt,
			want:    "One Two Three Four Five Six",
		},
		{
			name:    "skips too short names",
			text:    "AB\nXY Z",
			docType: dto.DocTypeReceipt,
			want:    "XY Z",
		},
		{
			name:    "invoice without seller falls back to header",
			text:    "INVOICE\nSuperstore Supplies\nBill To: Jane",
			docType: dto.DocTypeInvoice,
			want:    "Superstore Supplies",
		},
		{
			name:    "keeps accented letters",
			text:    "Café Müller\nTel 555",
			docType: dto.DocTypeReceipt,
			want:    "Café Müller",
		},
		{
			name:    "nothing usable",
			text:    "1234\n----\n$$$",
			docType: dto.DocTypeReceipt,
			want:    UnknownVendor,
		},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractVendor(tt.text, tt.docType))
		})
	}
}

func TestExtractVendorOnlyScansHeader(t *testing.T) {
	lines := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		lines = append(lines, "0000 1111")
	}
	lines = append(lines, "Late Vendor Name")

	assert.Equal(t, UnknownVendor, Default().ExtractVendor(strings.Join(lines, "\n"), dto.DocTypeReceipt))
}
