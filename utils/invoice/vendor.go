package invoice

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// UnknownVendor is returned when no line qualifies as a vendor name.
const UnknownVendor = "Unknown Vendor"

var (
	reVendorNoise     = regexp.MustCompile(`^[\d\s\p{P}\p{S}]+$`)
	reVendorDate      = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	reLeadingNonAlpha = regexp.MustCompile(`^[^\p{L}]+`)
	reColumnGap       = regexp.MustCompile(`\s{2,}|\t`)
	reNameTail        = regexp.MustCompile(`[^\p{L}\s&'★-].*$`)
)

func (e *Extractor) vendorStrategies(docType dto.DocumentType) []Strategy[string] {
	var out []Strategy[string]
	if docType == dto.DocTypeInvoice {
		out = append(out, Strategy[string]{Name: "seller_section", Run: e.vendorFromSeller})
	}
	return append(out, Strategy[string]{Name: "header_scan", Run: e.vendorFromHeader})
}

// ExtractVendor returns the vendor name or UnknownVendor.
func (e *Extractor) ExtractVendor(text string, docType dto.DocumentType) string {
	v, _, ok := firstSuccess(text, e.vendorStrategies(docType))
	if !ok {
		return UnknownVendor
	}
	return truncateRunes(v, e.lib.limits.MaxFieldLen)
}

func (e *Extractor) vendorFromSeller(text string) (string, bool) {
	section, ok := e.lib.sections[SectionVendorSeller].find(text)
	if !ok {
		return "", false
	}
	lines := nonEmptyLines(section)
	if len(lines) == 0 {
		return "", false
	}
	return lines[0], true
}

func (e *Extractor) vendorFromHeader(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > e.lib.limits.VendorScanLines {
		lines = lines[:e.lib.limits.VendorScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || e.lib.vendorSkip[strings.ToUpper(line)] {
			continue
		}
		if reVendorNoise.MatchString(line) || reVendorDate.MatchString(line) {
			continue
		}

		vendor := reLeadingNonAlpha.ReplaceAllString(line, "")
		vendor = reColumnGap.Split(vendor, 2)[0]
		vendor = strings.TrimSpace(reNameTail.ReplaceAllString(vendor, ""))
		if utf8.RuneCountInString(vendor) < 3 {
			continue
		}

		if words := strings.Fields(vendor); len(words) > e.lib.limits.VendorMaxWords {
			vendor = strings.Join(words[:e.lib.limits.VendorMaxWords], " ")
		}
		return vendor, true
	}
	return "", false
}
