package invoice

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

const sampleInvoice = `Invoice no: 51109338
Date of issue: 04/13/2013
Seller:
Andrews, Kirby and Valdez
58861 Gonzalez Prairie
Lake Daniellefurt, IN 57228
Tax Id: 945-82-2137
IBAN: GB75MCRL06841367619257
Client:
Becker Ltd
8012 Stewart Summit Apt. 455
North Douglas, AZ 95355
Tax Id: 942-80-0517
ITEMS
No. Description Qty UM Net price Net worth VAT [%] Gross worth
1. CLEARANCE! Fast Dell Desktop Computer PC 3,00 each 209,00 627,00 10% 689,70
SUMMARY
Net worth: 627.00
VAT: 62.70
Gross worth: 689.70`

func TestExtractSeller(t *testing.T) {
	got := Default().ExtractSeller(sampleInvoice)
	assert.Equal(t, dto.Party{
		Name:    "Andrews, Kirby and Valdez",
		Address: "58861 Gonzalez Prairie, Lake Daniellefurt, IN 57228",
		TaxID:   "945-82-2137",
		IBAN:    "GB75MCRL06841367619257",
	}, got)
}

func TestExtractSellerAddressLimitedToThreeLines(t *testing.T) {
	text := "Seller: Acme\nLine 1\nLine 2\nLine 3\nLine 4\nClient: Beta"
	got := Default().ExtractSeller(text)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "Line 1, Line 2, Line 3", got.Address)
}

func TestExtractClient(t *testing.T) {
	got := Default().ExtractClient(sampleInvoice)
	assert.Equal(t, dto.Party{
		Name:    "Becker Ltd",
		Address: "8012 Stewart Summit Apt. 455, North Douglas, AZ 95355",
		TaxID:   "942-80-0517",
	}, got)
}

func TestExtractClientFallsBackToBillTo(t *testing.T) {
	text := "INVOICE\nBill To: Jane Doe\n123 Elm St\nShip Mode: First Class"
	got := Default().ExtractClient(text)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "123 Elm St", got.Address)
}

func TestExtractPartiesMissing(t *testing.T) {
	assert.Equal(t, dto.Party{}, Default().ExtractSeller("no parties"))
	assert.Equal(t, dto.Party{}, Default().ExtractClient("no parties"))
}

func TestExtractAddress(t *testing.T) {
	text := "Bill To: John Smith\n42 Oak Road\nShip To: Jane Smith\n7 Pine Ave\nShip Mode: Standard"
	e := Default()
	assert.Equal(t, "John Smith 42 Oak Road", e.ExtractAddress(text, BillTo))
	assert.Equal(t, "Jane Smith 7 Pine Ave", e.ExtractAddress(text, ShipTo))
	assert.Equal(t, "", e.ExtractAddress("nothing", BillTo))
}

func TestExtractAddressTruncated(t *testing.T) {
	text := "Bill To: " + strings.Repeat("Long Street ", 50)
	got := Default().ExtractAddress(text, BillTo)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 200)
	assert.True(t, strings.HasPrefix(got, "Long Street Long Street"))
}
