package dto

// DocumentType is the structural family of a scanned document.
type DocumentType string

const (
	DocTypeReceipt DocumentType = "receipt"
	DocTypeInvoice DocumentType = "invoice"
)

func (t DocumentType) Valid() bool {
	return t == DocTypeReceipt || t == DocTypeInvoice
}

// Category is an expense account compatible with common bookkeeping imports.
type Category string

const (
	CategoryMeals          Category = "Meals & Entertainment"
	CategoryEquipment      Category = "Equipment"
	CategoryOfficeSupplies Category = "Office Supplies"
	CategoryTravel         Category = "Travel"
	CategoryAutoTruck      Category = "Auto & Truck Expenses"
	CategoryOther          Category = "Other Business Expenses"
)

var allCategories = []Category{
	CategoryMeals,
	CategoryEquipment,
	CategoryOfficeSupplies,
	CategoryTravel,
	CategoryAutoTruck,
	CategoryOther,
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// CategoryNames returns the category set as strings.
func CategoryNames() []string {
	out := make([]string, len(allCategories))
	for i, c := range allCategories {
		out[i] = string(c)
	}
	return out
}

func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Party is a seller, client or billing counterparty.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
	IBAN    string `json:"iban"`
}

// LineItem is one purchased item or service.
type LineItem struct {
	Description string `json:"description"`
}

// Amounts holds every monetary field the extractor knows about.
// Amount is the primary value resolved by priority chain.
type Amounts struct {
	Amount     Money `json:"amount"`
	Subtotal   Money `json:"subtotal"`
	Discount   Money `json:"discount"`
	Shipping   Money `json:"shipping"`
	Tax        Money `json:"tax"`
	VAT        Money `json:"vat"`
	Total      Money `json:"total"`
	NetWorth   Money `json:"net_worth"`
	GrossWorth Money `json:"gross_worth"`
}
