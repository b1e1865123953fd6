package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// DateShape says how the three capture groups of a date pattern map to a calendar date.
type DateShape string

const (
	ShapeTextMonth DateShape = "text_month" // month name, day, year
	ShapeMDY       DateShape = "mdy"
	ShapeMDYShort  DateShape = "mdy_short" // two-digit year
	ShapeYMD       DateShape = "ymd"
	ShapeTimestamp DateShape = "timestamp" // mdy followed by a clock time
)

// Amount field names used by AmountPattern.Field.
const (
	FieldNetWorth   = "net_worth"
	FieldVAT        = "vat"
	FieldGrossWorth = "gross_worth"
	FieldSubtotal   = "subtotal"
	FieldDiscount   = "discount"
	FieldTax        = "tax"
	FieldTotal      = "total"
	FieldBalanceDue = "balance_due" // folded into total
	FieldShipping   = "shipping"
)

// Section names used by PatternLibrary.Sections.
const (
	SectionVendorSeller = "vendor_seller"
	SectionSeller       = "seller"
	SectionClient       = "client"
	SectionBillTo       = "bill_to"
	SectionShipTo       = "ship_to"
	SectionItems        = "items"
	SectionItemTable    = "item_table"
)

var requiredSections = []string{
	SectionVendorSeller, SectionSeller, SectionClient, SectionBillTo,
	SectionShipTo, SectionItems, SectionItemTable,
}

type DatePattern struct {
	Name  string    `yaml:"name"`
	Expr  string    `yaml:"expr"`
	Shape DateShape `yaml:"shape"`
}

type AmountPattern struct {
	Field string `yaml:"field"`
	Expr  string `yaml:"expr"`
}

// SectionPattern delimits a labeled block of text: it starts after Start
// and ends at the earliest Stops match or at end of text.
type SectionPattern struct {
	Start string   `yaml:"start"`
	Stops []string `yaml:"stops"`
}

type CategoryRule struct {
	Category dto.Category `yaml:"category"`
	Keywords []string     `yaml:"keywords"`
}

type Limits struct {
	VendorScanLines int `yaml:"vendor_scan_lines"`
	VendorMaxWords  int `yaml:"vendor_max_words"`
	MaxItems        int `yaml:"max_items"`
	MaxAddressLen   int `yaml:"max_address_len"`
	MaxFieldLen     int `yaml:"max_field_len"`
	MaxAmount       int `yaml:"max_amount"` // fallback amounts at or above this are noise
}

// PatternLibrary is the whole tunable surface of the extractor.
// Order inside every slice is priority order.
type PatternLibrary struct {
	ReceiptIndicators     []string                  `yaml:"receipt_indicators"`
	InvoiceIndicators     []string                  `yaml:"invoice_indicators"`
	DatePatterns          []DatePattern             `yaml:"date_patterns"`
	InvoiceNumberPatterns []string                  `yaml:"invoice_number_patterns"`
	InvoiceAmounts        []AmountPattern           `yaml:"invoice_amounts"`
	ReceiptAmounts        []AmountPattern           `yaml:"receipt_amounts"`
	CommonAmounts         []AmountPattern           `yaml:"common_amounts"`
	FallbackAmount        string                    `yaml:"fallback_amount"`
	Sections              map[string]SectionPattern `yaml:"sections"`
	VendorSkipLines       []string                  `yaml:"vendor_skip_lines"`
	ItemHeaderWords       []string                  `yaml:"item_header_words"`
	ItemUnitWords         []string                  `yaml:"item_unit_words"`
	ItemTableSkipWords    []string                  `yaml:"item_table_skip_words"`
	ItemTablePriceTail    string                    `yaml:"item_table_price_tail"`
	ItemTableCategoryTail string                    `yaml:"item_table_category_tail"`
	ItemProductCode       string                    `yaml:"item_product_code"`
	ReceiptItemStart      []string                  `yaml:"receipt_item_start"`
	ReceiptItemStop       []string                  `yaml:"receipt_item_stop"`
	CategoryRules         []CategoryRule            `yaml:"category_rules"`
	Limits                Limits                    `yaml:"limits"`
}

// Amount labels and values must share a line.
const amountCapture = `\$?[ \t]*(\d[\d,]*(?:\.\d+)?)`

// amountCaptureSpaced also accepts spaces as thousands separators.
const amountCaptureSpaced = `\$?[ \t]*(\d[\d ,]*(?:\.\d+)?)`

// DefaultPatterns returns a fresh copy of the built-in tables.
func DefaultPatterns() PatternLibrary {
	return PatternLibrary{
		ReceiptIndicators: []string{
			"supercenter", "items sold", "cash tend", "change due",
			"thank you for shopping", "store #", "st#", "op#",
		},
		InvoiceIndicators: []string{
			"invoice no", "seller:", "client:", "bill to:", "ship to:",
			"tax id:", "iban:", "vat [%]", "gross worth",
		},
		DatePatterns: []DatePattern{
			{
				Name:  "text_month",
				Expr:  `(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2})[,\s]+(\d{4})\b`,
				Shape: ShapeTextMonth,
			},
			{Name: "mdy", Expr: `\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`, Shape: ShapeMDY},
			{Name: "mdy_short", Expr: `\b(\d{1,2})[/-](\d{1,2})[/-](\d{2})\b`, Shape: ShapeMDYShort},
			{Name: "ymd", Expr: `\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`, Shape: ShapeYMD},
			{Name: "timestamp", Expr: `\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\s+\d{1,2}:\d{2}`, Shape: ShapeTimestamp},
		},
		InvoiceNumberPatterns: []string{
			`(?i)invoice\s+no[:\s]+(\S+)`,
			`(?i)invoice\s*#[:\s]*(\S+)`,
			`(?i)order\s+id[:\s]+(\S+)`,
			`(?i)tc#\s*(\d+)`,
			`#\s*(\d{5,})`,
		},
		InvoiceAmounts: []AmountPattern{
			{Field: FieldNetWorth, Expr: `(?i)\bnet\s+worth[: \t]+` + amountCaptureSpaced},
			{Field: FieldVAT, Expr: `(?i)\bvat[: \t]+` + amountCaptureSpaced},
			{Field: FieldGrossWorth, Expr: `(?i)\bgross\s+worth[: \t]+` + amountCaptureSpaced},
		},
		ReceiptAmounts: []AmountPattern{
			{Field: FieldSubtotal, Expr: `(?i)\bsub[ \t]*total[: \t]+` + amountCapture},
			{Field: FieldDiscount, Expr: `(?i)\bdiscount[: \t(]*\d*%?\)?[: \t]+` + amountCapture},
			{Field: FieldTax, Expr: `(?i)\btax\b(?:[ \t]+\d+[ \t]+[\d.]+[ \t]*%)?[: \t]+` + amountCapture},
		},
		CommonAmounts: []AmountPattern{
			{Field: FieldTotal, Expr: `(?i)\btotal[: \t]+` + amountCaptureSpaced},
			{Field: FieldBalanceDue, Expr: `(?i)\bbalance\s+due[: \t]+` + amountCapture},
			{Field: FieldShipping, Expr: `(?i)\bshipping[: \t]+` + amountCapture},
		},
		FallbackAmount: `\$?\s*(\d[\d,]*\.\d{2})`,
		Sections: map[string]SectionPattern{
			SectionVendorSeller: {Start: `(?i)\bseller[:\s]+`, Stops: []string{`(?i)tax\s*id`, `(?i)client:`}},
			SectionSeller:       {Start: `(?i)\bseller[:\s]+`, Stops: []string{`(?i)client:`, `(?i)\bitems\b`}},
			SectionClient:       {Start: `(?i)\bclient[:\s]+`, Stops: []string{`(?i)\bitems\b`}},
			SectionBillTo: {
				Start: `(?i)\bbill\s+to[:\s]+`,
				Stops: []string{`(?i)ship\s+to`, `(?i)ship\s+mode`, `(?i)date`, `(?i)item`, `(?i)notes`},
			},
			SectionShipTo: {
				Start: `(?i)\bship\s+to[:\s]+`,
				Stops: []string{`(?i)ship\s+mode`, `(?i)date`, `(?i)item`, `(?i)notes`, `(?i)balance`},
			},
			SectionItems: {
				Start: `(?i)\bITEMS\s+`,
				Stops: []string{`(?i)SUMMARY`, `(?i)Total`, `(?i)Notes`, `(?i)Terms`},
			},
			SectionItemTable: {
				Start: `(?i)\bItem\s+Quantity[^\n]*(?:\n|$)`,
				Stops: []string{`(?i)Notes`, `(?i)Terms`, `(?i)Discount`, `(?i)Subtotal`},
			},
		},
		VendorSkipLines:       []string{"INVOICE", "RECEIPT", "BILL"},
		ItemHeaderWords:       []string{"description", "qty", "quantity", "net price", "no.", "rate", "amount"},
		ItemUnitWords:         []string{"each", "piece"},
		ItemTableSkipWords:    []string{"quantity", "rate"},
		ItemTablePriceTail:    `\s*\d+\s+\$[\d,.]+.*$`,
		ItemTableCategoryTail: `(?i),?\s*(Chairs?|Furniture|Office|Technology|Supplies).*$`,
		ItemProductCode:       `[A-Z]{3}-[A-Z]{2}-\d+`,
		ReceiptItemStart:      []string{"MANAGER", "ST#"},
		ReceiptItemStop:       []string{"SUBTOTAL", "TOTAL", "ITEMS SOLD", "DISCOUNT"},
		CategoryRules: []CategoryRule{
			{Category: dto.CategoryMeals, Keywords: []string{"walmart", "grocery", "food", "market", "banana", "produce", "supercenter"}},
			{Category: dto.CategoryEquipment, Keywords: []string{"computer", "pc", "laptop", "desktop", "gaming", "dell", "hp", "electronics", "tech"}},
			{Category: dto.CategoryOfficeSupplies, Keywords: []string{"chair", "desk", "furniture", "superstore", "table", "cabinet", "office"}},
			{Category: dto.CategoryTravel, Keywords: []string{"uber", "lyft", "taxi", "transport", "travel"}},
			{Category: dto.CategoryTravel, Keywords: []string{"hotel", "accommodation", "lodging"}},
			{Category: dto.CategoryAutoTruck, Keywords: []string{"fuel", "gas", "petrol"}},
		},
		Limits: Limits{
			VendorScanLines: 10,
			VendorMaxWords:  6,
			MaxItems:        20,
			MaxAddressLen:   200,
			MaxFieldLen:     200,
			MaxAmount:       1000000,
		},
	}
}

type compiledDate struct {
	name  string
	re    *regexp.Regexp
	shape DateShape
}

type compiledAmount struct {
	field string
	re    *regexp.Regexp
}

type compiledSection struct {
	start *regexp.Regexp
	stop  *regexp.Regexp
}

type compiledCategory struct {
	category dto.Category
	re       *regexp.Regexp
}

// Library is a compiled PatternLibrary. It is read-only and safe for concurrent use.
type Library struct {
	receiptIndicators []string
	invoiceIndicators []string
	dates             []compiledDate
	invoiceNumbers    []*regexp.Regexp
	amounts           map[dto.DocumentType][]compiledAmount
	fallbackAmount    *regexp.Regexp
	sections          map[string]compiledSection
	vendorSkip        map[string]bool
	itemHeaders       []string
	itemUnits         map[string]bool
	itemTableSkip     []string
	itemPriceTail     *regexp.Regexp
	itemCategoryTail  *regexp.Regexp
	itemProductCode   *regexp.Regexp
	receiptStart      []string
	receiptStop       []string
	categories        []compiledCategory
	limits            Limits
}

// Compile validates the tables and compiles every expression.
func (p PatternLibrary) Compile() (*Library, error) {
	lib := &Library{
		receiptIndicators: lowerAll(p.ReceiptIndicators),
		invoiceIndicators: lowerAll(p.InvoiceIndicators),
		amounts:           make(map[dto.DocumentType][]compiledAmount),
		sections:          make(map[string]compiledSection),
		vendorSkip:        make(map[string]bool),
		itemHeaders:       lowerAll(p.ItemHeaderWords),
		itemUnits:         make(map[string]bool),
		itemTableSkip:     lowerAll(p.ItemTableSkipWords),
		receiptStart:      upperAll(p.ReceiptItemStart),
		receiptStop:       upperAll(p.ReceiptItemStop),
		limits:            p.Limits,
	}

	for _, dp := range p.DatePatterns {
		re, err := regexp.Compile(dp.Expr)
		if err != nil {
			return nil, fmt.Errorf("date pattern %q: %w", dp.Name, err)
		}
		if re.NumSubexp() < 3 {
			return nil, fmt.Errorf("date pattern %q: needs 3 capture groups, has %d", dp.Name, re.NumSubexp())
		}
		switch dp.Shape {
		case ShapeTextMonth, ShapeMDY, ShapeMDYShort, ShapeYMD, ShapeTimestamp:
		default:
			return nil, fmt.Errorf("date pattern %q: unknown shape %q", dp.Name, dp.Shape)
		}
		lib.dates = append(lib.dates, compiledDate{name: dp.Name, re: re, shape: dp.Shape})
	}

	for _, expr := range p.InvoiceNumberPatterns {
		re, err := compileCapture(expr)
		if err != nil {
			return nil, fmt.Errorf("invoice number pattern: %w", err)
		}
		lib.invoiceNumbers = append(lib.invoiceNumbers, re)
	}

	invoiceAmounts, err := compileAmounts(append(append([]AmountPattern{}, p.InvoiceAmounts...), p.CommonAmounts...))
	if err != nil {
		return nil, err
	}
	receiptAmounts, err := compileAmounts(append(append([]AmountPattern{}, p.ReceiptAmounts...), p.CommonAmounts...))
	if err != nil {
		return nil, err
	}
	lib.amounts[dto.DocTypeInvoice] = invoiceAmounts
	lib.amounts[dto.DocTypeReceipt] = receiptAmounts

	if lib.fallbackAmount, err = compileCapture(p.FallbackAmount); err != nil {
		return nil, fmt.Errorf("fallback amount: %w", err)
	}

	for _, name := range requiredSections {
		sp, ok := p.Sections[name]
		if !ok {
			return nil, fmt.Errorf("section %q is not defined", name)
		}
		cs, err := compileSection(sp)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		lib.sections[name] = cs
	}

	for _, w := range p.VendorSkipLines {
		lib.vendorSkip[strings.ToUpper(strings.TrimSpace(w))] = true
	}
	for _, w := range p.ItemUnitWords {
		lib.itemUnits[strings.ToLower(w)] = true
	}
	if lib.itemPriceTail, err = regexp.Compile(p.ItemTablePriceTail); err != nil {
		return nil, fmt.Errorf("item price tail: %w", err)
	}
	if lib.itemCategoryTail, err = regexp.Compile(p.ItemTableCategoryTail); err != nil {
		return nil, fmt.Errorf("item category tail: %w", err)
	}
	if lib.itemProductCode, err = regexp.Compile(p.ItemProductCode); err != nil {
		return nil, fmt.Errorf("item product code: %w", err)
	}

	for _, rule := range p.CategoryRules {
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("category rule: unknown category %q", rule.Category)
		}
		if len(rule.Keywords) == 0 {
			continue
		}
		quoted := make([]string, len(rule.Keywords))
		for i, kw := range rule.Keywords {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(kw)))
		}
		re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)
		lib.categories = append(lib.categories, compiledCategory{category: rule.Category, re: re})
	}

	if err := p.Limits.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l Limits) validate() error {
	if l.VendorScanLines <= 0 || l.VendorMaxWords <= 0 || l.MaxItems <= 0 ||
		l.MaxAddressLen <= 0 || l.MaxFieldLen <= 0 || l.MaxAmount <= 0 {
		return fmt.Errorf("limits must all be positive: %+v", l)
	}
	return nil
}

func compileCapture(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%q has no capture group", expr)
	}
	return re, nil
}

func compileAmounts(patterns []AmountPattern) ([]compiledAmount, error) {
	out := make([]compiledAmount, 0, len(patterns))
	for _, ap := range patterns {
		switch ap.Field {
		case FieldNetWorth, FieldVAT, FieldGrossWorth, FieldSubtotal, FieldDiscount,
			FieldTax, FieldTotal, FieldBalanceDue, FieldShipping:
		default:
			return nil, fmt.Errorf("amount pattern: unknown field %q", ap.Field)
		}
		re, err := compileCapture(ap.Expr)
		if err != nil {
			return nil, fmt.Errorf("amount pattern %q: %w", ap.Field, err)
		}
		out = append(out, compiledAmount{field: ap.Field, re: re})
	}
	return out, nil
}

func compileSection(sp SectionPattern) (compiledSection, error) {
	start, err := regexp.Compile(sp.Start)
	if err != nil {
		return compiledSection{}, err
	}
	cs := compiledSection{start: start}
	if len(sp.Stops) > 0 {
		alts := make([]string, len(sp.Stops))
		for i, s := range sp.Stops {
			if _, err := regexp.Compile(s); err != nil {
				return compiledSection{}, err
			}
			alts[i] = "(?:" + s + ")"
		}
		cs.stop = regexp.MustCompile(strings.Join(alts, "|"))
	}
	return cs, nil
}

// find returns the text between the start anchor and the first stop marker.
func (s compiledSection) find(text string) (string, bool) {
	loc := s.start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if s.stop != nil {
		if end := s.stop.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}
	}
	return rest, true
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

var defaultLibrary = mustCompileDefault()

func mustCompileDefault() *Library {
	lib, err := DefaultPatterns().Compile()
	if err != nil {
		panic(fmt.Sprintf("invoice: default patterns do not compile: %v", err))
	}
	return lib
}

// DefaultLibrary returns the compiled built-in library.
func DefaultLibrary() *Library {
	return defaultLibrary
}
