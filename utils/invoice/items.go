package invoice

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

var (
	reDecimalToken = regexp.MustCompile(`^\d+[.,]\d+$`)
	reHasPrice     = regexp.MustCompile(`\d+\.\d{2}`)
	rePriceTail    = regexp.MustCompile(`\d+\.\d{2}.*$`)
	reWeightPrefix = regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*lb.*?@\s*`)
	reLongCode     = regexp.MustCompile(`\b\d{10,}[A-Z]?\b`)
	reNumericLine  = regexp.MustCompile(`^[\d\s.,$]+$`)
)

const (
	minSectionItemLen = 10
	minTableItemLen   = 5
	minReceiptItemLen = 2
)

func (e *Extractor) itemStrategies(docType dto.DocumentType) []Strategy[[]dto.LineItem] {
	if docType == dto.DocTypeReceipt {
		return []Strategy[[]dto.LineItem]{{Name: "receipt_lines", Run: e.receiptItems}}
	}
	return []Strategy[[]dto.LineItem]{
		{Name: "items_section", Run: e.sectionItems},
		{Name: "item_table", Run: e.tableItems},
	}
}

// ExtractItems returns at most Limits.MaxItems line items.
func (e *Extractor) ExtractItems(text string, docType dto.DocumentType) []dto.LineItem {
	items, _, ok := firstSuccess(text, e.itemStrategies(docType))
	if !ok {
		return []dto.LineItem{}
	}
	return items
}

// itemCollector bounds the item list and each description.
type itemCollector struct {
	items  []dto.LineItem
	max    int
	maxLen int
}

func (e *Extractor) newCollector() *itemCollector {
	return &itemCollector{max: e.lib.limits.MaxItems, maxLen: e.lib.limits.MaxFieldLen}
}

func (c *itemCollector) add(desc string) {
	c.items = append(c.items, dto.LineItem{Description: truncateRunes(desc, c.maxLen)})
}

func (c *itemCollector) full() bool { return len(c.items) >= c.max }

func (c *itemCollector) result() ([]dto.LineItem, bool) {
	return c.items, len(c.items) > 0
}

func (e *Extractor) sectionItems(text string) ([]dto.LineItem, bool) {
	section, ok := e.lib.sections[SectionItems].find(text)
	if !ok {
		return nil, false
	}

	c := e.newCollector()
	for _, line := range nonEmptyLines(section) {
		if c.full() {
			break
		}
		if containsAny(strings.ToLower(line), e.lib.itemHeaders) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) <= 2 {
			continue
		}

		start := 0
		if isDigits(strings.TrimRight(parts[0], ".")) {
			start = 1
		}
		var desc []string
		for _, p := range parts[start:] {
			if reDecimalToken.MatchString(p) || e.lib.itemUnits[strings.ToLower(p)] {
				break
			}
			desc = append(desc, p)
		}
		if d := strings.Join(desc, " "); utf8.RuneCountInString(d) > minSectionItemLen {
			c.add(d)
		}
	}
	return c.result()
}

func (e *Extractor) tableItems(text string) ([]dto.LineItem, bool) {
	section, ok := e.lib.sections[SectionItemTable].find(text)
	if !ok {
		return nil, false
	}

	c := e.newCollector()
	for _, line := range nonEmptyLines(section) {
		if c.full() {
			break
		}
		if reNumericLine.MatchString(line) || containsAny(strings.ToLower(line), e.lib.itemTableSkip) {
			continue
		}
		desc := e.lib.itemPriceTail.ReplaceAllString(line, "")
		desc = e.lib.itemProductCode.ReplaceAllString(desc, "")
		desc = e.lib.itemCategoryTail.ReplaceAllString(desc, "")
		desc = strings.Trim(strings.TrimSpace(desc), ",")
		desc = collapseSpace(desc)
		if utf8.RuneCountInString(desc) > minTableItemLen {
			c.add(desc)
		}
	}
	return c.result()
}

// receiptItems reads priced lines between a store header marker and the
// first totals marker.
func (e *Extractor) receiptItems(text string) ([]dto.LineItem, bool) {
	c := e.newCollector()
	inItems := false
	for _, line := range strings.Split(text, "\n") {
		if c.full() {
			break
		}
		upper := strings.ToUpper(line)
		if containsAny(upper, e.lib.receiptStart) {
			inItems = true
			continue
		}
		if !inItems {
			continue
		}
		if containsAny(upper, e.lib.receiptStop) {
			break
		}
		if !reHasPrice.MatchString(line) {
			continue
		}

		item := strings.TrimSpace(rePriceTail.ReplaceAllString(line, ""))
		item = strings.TrimSpace(reWeightPrefix.ReplaceAllString(item, ""))
		item = collapseSpace(reLongCode.ReplaceAllString(item, ""))
		if utf8.RuneCountInString(item) > minReceiptItemLen && !isDigits(item) {
			c.add(item)
		}
	}
	return c.result()
}
