package invoice

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

func descriptions(items []dto.LineItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}

func TestExtractItemsInvoiceSection(t *testing.T) {
	text := `ITEMS
No. Description Qty UM Net price Net worth VAT [%] Gross worth
1. Wireless Optical Mouse 2,00 each 10,00 20,00 10% 22,00
2. USB-C Charging Cable 1,00 each 5,00 5,00 10% 5,50
3. Pen 1,00 each 1,00 1,00 10% 1,10
SUMMARY
Total 27.50`

	items := Default().ExtractItems(text, dto.DocTypeInvoice)
	assert.Equal(t, []string{"Wireless Optical Mouse", "USB-C Charging Cable"}, descriptions(items))
}

func TestExtractItemsUnitWordEndsDescription(t *testing.T) {
	text := "ITEMS\n1 Heavy Duty Stapler Set piece 3 4\nNotes: none"
	items := Default().ExtractItems(text, dto.DocTypeInvoice)
	assert.Equal(t, []string{"Heavy Duty Stapler Set"}, descriptions(items))
}

func TestExtractItemsTableFallback(t *testing.T) {
	text := `Bill To: Jane Doe
Item Quantity Rate Amount
Bush Somerset Collection Bookcase, Furniture, FUR-BO-5957 2 $261.96 $523.92
$1,234.56
Hon Deluxe Fabric Upholstered Stacking Chairs, Chairs, FUR-CH-4421 3 $731.94 $2,195.82
12 345.00
Subtotal: $2,719.74`

	items := Default().ExtractItems(text, dto.DocTypeInvoice)
	assert.Equal(t, []string{
		"Bush Somerset Collection Bookcase",
		"Hon Deluxe Fabric Upholstered Stacking",
	}, descriptions(items))
}

func TestExtractItemsReceipt(t *testing.T) {
	text := `WALMART SUPERCENTER
ST# 1234 OP# 00 TE# 12 TR# 0042
BANANAS 000000004011K 1.76 N
GV MILK 007874235186 3.48 F
2.56 lb @ 0.68 /lb
POTATO CHIPS 2.50 X
VITAMIN C 4.99
12345 9.99
TOMATO 000000004664K 1.74 N
SUBTOTAL 9.48
TOTAL 10.10
GUM 0.99`

	items := Default().ExtractItems(text, dto.DocTypeReceipt)
	assert.Equal(t, []string{"BANANAS", "GV MILK", "POTATO CHIPS", "VITAMIN C", "TOMATO"}, descriptions(items))
}

func TestExtractItemsReceiptNeedsStartMarker(t *testing.T) {
	items := Default().ExtractItems("BREAD 2.50\nMILK 1.99", dto.DocTypeReceipt)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestExtractItemsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("ITEMS\n")
	for i := 1; i <= 50; i++ {
		fmt.Fprintf(&b, "%d. Premium Widget Model %d 1,00 each 2,00\n", i, i)
	}
	items := Default().ExtractItems(b.String(), dto.DocTypeInvoice)
	assert.Len(t, items, 20)
	assert.Equal(t, "Premium Widget Model 1", items[0].Description)

	b.Reset()
	b.WriteString("ST# 1\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "ITEM %d 1.00\n", i)
	}
	assert.Len(t, Default().ExtractItems(b.String(), dto.DocTypeReceipt), 20)
}

func TestExtractItemsNone(t *testing.T) {
	items := Default().ExtractItems("nothing to see", dto.DocTypeInvoice)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
