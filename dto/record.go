package dto

import "strings"

// RecordCommon carries the fields every document type has.
type RecordCommon struct {
	InvoiceNumber string     `json:"invoice_number"`
	Date          string     `json:"date"` // YYYY-MM-DD or empty
	Vendor        string     `json:"vendor"`
	Amount        Money      `json:"amount"`
	Subtotal      Money      `json:"subtotal"`
	Discount      Money      `json:"discount"`
	Shipping      Money      `json:"shipping"`
	Tax           Money      `json:"tax"`
	VAT           Money      `json:"vat"`
	Total         Money      `json:"total"`
	Items         []LineItem `json:"items"`
	Category      Category   `json:"category"`
}

// InvoiceDetails are present only on invoice records.
type InvoiceDetails struct {
	Seller     Party `json:"seller"`
	Client     Party `json:"client"`
	NetWorth   Money `json:"net_worth"`
	GrossWorth Money `json:"gross_worth"`
}

// ReceiptDetails are present only on receipt records.
type ReceiptDetails struct {
	BillTo string `json:"bill_to"`
	ShipTo string `json:"ship_to"`
}

// ExtractionRecord is the canonical output for one document.
// Exactly one of Invoice and Receipt is set, matching DocumentType.
type ExtractionRecord struct {
	DocumentType DocumentType `json:"document_type"`
	RecordCommon
	Invoice *InvoiceDetails `json:"invoice,omitempty"`
	Receipt *ReceiptDetails `json:"receipt,omitempty"`
}

func NewInvoiceRecord(common RecordCommon, details InvoiceDetails) ExtractionRecord {
	return ExtractionRecord{
		DocumentType: DocTypeInvoice,
		RecordCommon: common.withDefaults(),
		Invoice:      &details,
	}
}

func NewReceiptRecord(common RecordCommon, details ReceiptDetails) ExtractionRecord {
	return ExtractionRecord{
		DocumentType: DocTypeReceipt,
		RecordCommon: common.withDefaults(),
		Receipt:      &details,
	}
}

func (c RecordCommon) withDefaults() RecordCommon {
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	if !c.Category.Valid() {
		c.Category = CategoryOther
	}
	return c
}

// Canonical flat keys, in output order.
const (
	KeyInvoiceNumber = "Invoice_Number"
	KeyDate          = "Date"
	KeyVendor        = "Vendor"
	KeyInvoiceType   = "Invoice_Type"
	KeyAmount        = "Amount"
	KeySubtotal      = "Subtotal"
	KeyDiscount      = "Discount"
	KeyShipping      = "Shipping"
	KeyTax           = "Tax"
	KeyVAT           = "VAT"
	KeyTotal         = "Total"
	KeyItems         = "Items"
	KeyCategory      = "Category"

	KeySellerName    = "Seller_Name"
	KeySellerAddress = "Seller_Address"
	KeySellerTaxID   = "Seller_Tax_ID"
	KeySellerIBAN    = "Seller_IBAN"
	KeyClientName    = "Client_Name"
	KeyClientAddress = "Client_Address"
	KeyClientTaxID   = "Client_Tax_ID"
	KeyNetWorth      = "Net_Worth"
	KeyGrossWorth    = "Gross_Worth"

	KeyBillTo = "Bill_To"
	KeyShipTo = "Ship_To"
)

var (
	commonKeys = []string{
		KeyInvoiceNumber, KeyDate, KeyVendor, KeyInvoiceType, KeyAmount,
		KeySubtotal, KeyDiscount, KeyShipping, KeyTax, KeyVAT, KeyTotal,
		KeyItems, KeyCategory,
	}
	invoiceKeys = []string{
		KeySellerName, KeySellerAddress, KeySellerTaxID, KeySellerIBAN,
		KeyClientName, KeyClientAddress, KeyClientTaxID, KeyNetWorth, KeyGrossWorth,
	}
	receiptKeys = []string{KeyBillTo, KeyShipTo}
)

// FieldKeys lists the flat keys a record of the given type carries.
func FieldKeys(t DocumentType) []string {
	keys := append([]string{}, commonKeys...)
	if t == DocTypeReceipt {
		return append(keys, receiptKeys...)
	}
	return append(keys, invoiceKeys...)
}

// AllFieldKeys is the union of both shapes, used for combined exports.
func AllFieldKeys() []string {
	keys := append([]string{}, commonKeys...)
	keys = append(keys, invoiceKeys...)
	return append(keys, receiptKeys...)
}

// Field is one entry of the flat record mapping.
type Field struct {
	Key   string
	Value string
}

// ItemsText joins item descriptions the way exports show them.
func (r ExtractionRecord) ItemsText() string {
	parts := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		parts = append(parts, it.Description)
	}
	return strings.Join(parts, "; ")
}

// Fields flattens the record into the canonical ordered mapping.
// Every key for the record's type is present, possibly with an empty value.
func (r ExtractionRecord) Fields() []Field {
	fields := []Field{
		{KeyInvoiceNumber, r.InvoiceNumber},
		{KeyDate, r.Date},
		{KeyVendor, r.Vendor},
		{KeyInvoiceType, string(r.DocumentType)},
		{KeyAmount, r.Amount.String()},
		{KeySubtotal, r.Subtotal.String()},
		{KeyDiscount, r.Discount.String()},
		{KeyShipping, r.Shipping.String()},
		{KeyTax, r.Tax.String()},
		{KeyVAT, r.VAT.String()},
		{KeyTotal, r.Total.String()},
		{KeyItems, r.ItemsText()},
		{KeyCategory, string(r.Category)},
	}

	if r.DocumentType == DocTypeReceipt {
		var d ReceiptDetails
		if r.Receipt != nil {
			d = *r.Receipt
		}
		return append(fields,
			Field{KeyBillTo, d.BillTo},
			Field{KeyShipTo, d.ShipTo},
		)
	}

	var d InvoiceDetails
	if r.Invoice != nil {
		d = *r.Invoice
	}
	return append(fields,
		Field{KeySellerName, d.Seller.Name},
		Field{KeySellerAddress, d.Seller.Address},
		Field{KeySellerTaxID, d.Seller.TaxID},
		Field{KeySellerIBAN, d.Seller.IBAN},
		Field{KeyClientName, d.Client.Name},
		Field{KeyClientAddress, d.Client.Address},
		Field{KeyClientTaxID, d.Client.TaxID},
		Field{KeyNetWorth, d.NetWorth.String()},
		Field{KeyGrossWorth, d.GrossWorth.String()},
	)
}

// FieldMap is Fields as a map, for lookups.
func (r ExtractionRecord) FieldMap() map[string]string {
	out := make(map[string]string)
	for _, f := range r.Fields() {
		out[f.Key] = f.Value
	}
	return out
}
