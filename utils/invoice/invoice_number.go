package invoice

import "strings"

func (e *Extractor) invoiceNumberStrategies() []Strategy[string] {
	out := make([]Strategy[string], 0, len(e.lib.invoiceNumbers))
	for _, re := range e.lib.invoiceNumbers {
		out = append(out, Strategy[string]{
			Name: re.String(),
			Run: func(text string) (string, bool) {
				m := re.FindStringSubmatch(text)
				if m == nil {
					return "", false
				}
				n := strings.Trim(m[1], ":#.,")
				return n, n != ""
			},
		})
	}
	return out
}

// ExtractInvoiceNumber returns the document's reference number, or empty.
func (e *Extractor) ExtractInvoiceNumber(text string) string {
	n, _, _ := firstSuccess(text, e.invoiceNumberStrategies())
	return truncateRunes(n, e.lib.limits.MaxFieldLen)
}
