package invoice

import (
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// Categorize maps vendor and items to an expense category. Rules are tried
// in order and the first keyword hit wins.
func (e *Extractor) Categorize(vendor string, items []dto.LineItem) dto.Category {
	var b strings.Builder
	b.WriteString(strings.ToLower(vendor))
	for _, it := range items {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(it.Description))
	}
	haystack := b.String()

	for _, c := range e.lib.categories {
		if c.re.MatchString(haystack) {
			return c.category
		}
	}
	return dto.CategoryOther
}
