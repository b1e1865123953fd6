package invoice

import (
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want dto.DocumentType
	}{
		{
			name: "walmart receipt",
			text: "WALMART SUPERCENTER\nST# 1234 OP# 00\nTOTAL 13.50\nCHANGE DUE 0.00",
			want: dto.DocTypeReceipt,
		},
		{
			name: "invoice with parties",
			text: "Invoice no: 123\nSeller:\nAcme Corp\nTax Id: 1\nClient:\nBeta LLC",
			want: dto.DocTypeInvoice,
		},
		{name: "no indicators", text: "hello world", want: dto.DocTypeInvoice},
		{name: "empty", text: "", want: dto.DocTypeInvoice},
		{name: "tie goes to invoice", text: "SUPERCENTER\nSeller: x", want: dto.DocTypeInvoice},
		{name: "case insensitive", text: "thank you for shopping\nitems sold 3", want: dto.DocTypeReceipt},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Classify(tt.text))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "WALMART SUPERCENTER\nST# 5\nBill To: someone"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestScores(t *testing.T) {
	r, i := Default().Scores("Seller: a\nClient: b\nTax Id: 1\nSTORE # 9")
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, i)
}
