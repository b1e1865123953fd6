package invoice

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// AddressKind selects which labeled address block ExtractAddress reads.
type AddressKind string

const (
	BillTo AddressKind = "bill_to"
	ShipTo AddressKind = "ship_to"
)

const sellerAddressLines = 3

var (
	reTaxID    = regexp.MustCompile(`(?i)\btax[ \t]*id[: \t]+(\S+)`)
	reIBAN     = regexp.MustCompile(`(?i)\biban[: \t]+(\S+)`)
	reTaxIDTag = regexp.MustCompile(`(?i)\btax\s*id\b`)
	reIBANTag  = regexp.MustCompile(`(?i)\biban\b`)
)

// ExtractSeller reads the "Seller:" block.
func (e *Extractor) ExtractSeller(text string) dto.Party {
	section, ok := e.lib.sections[SectionSeller].find(text)
	if !ok {
		return dto.Party{}
	}
	lines := nonEmptyLines(section)
	if len(lines) == 0 {
		return dto.Party{}
	}

	var addr []string
	for _, l := range lines[1:min(len(lines), 1+sellerAddressLines)] {
		if reTaxIDTag.MatchString(l) || reIBANTag.MatchString(l) {
			break
		}
		addr = append(addr, l)
	}

	return e.party(lines[0], addr, section, true)
}

// ExtractClient reads the "Client:" block, falling back to "Bill To:".
func (e *Extractor) ExtractClient(text string) dto.Party {
	p, _, _ := firstSuccess(text, []Strategy[dto.Party]{
		{Name: "client_section", Run: e.clientFromSection},
		{Name: "bill_to_section", Run: e.clientFromBillTo},
	})
	return p
}

func (e *Extractor) clientFromSection(text string) (dto.Party, bool) {
	section, ok := e.lib.sections[SectionClient].find(text)
	if !ok {
		return dto.Party{}, false
	}
	lines := nonEmptyLines(section)
	if len(lines) == 0 {
		return dto.Party{}, false
	}

	var addr []string
	for _, l := range lines[1:] {
		if reTaxIDTag.MatchString(l) {
			break
		}
		addr = append(addr, l)
	}
	return e.party(lines[0], addr, section, false), true
}

func (e *Extractor) clientFromBillTo(text string) (dto.Party, bool) {
	section, ok := e.lib.sections[SectionBillTo].find(text)
	if !ok {
		return dto.Party{}, false
	}
	lines := nonEmptyLines(section)
	if len(lines) == 0 {
		return dto.Party{}, false
	}
	return e.party(lines[0], lines[1:], section, false), true
}

func (e *Extractor) party(name string, addr []string, section string, withIBAN bool) dto.Party {
	p := dto.Party{
		Name:    truncateRunes(name, e.lib.limits.MaxFieldLen),
		Address: truncateRunes(strings.Join(addr, ", "), e.lib.limits.MaxAddressLen),
	}
	if m := reTaxID.FindStringSubmatch(section); m != nil {
		p.TaxID = truncateRunes(m[1], e.lib.limits.MaxFieldLen)
	}
	if withIBAN {
		if m := reIBAN.FindStringSubmatch(section); m != nil {
			p.IBAN = truncateRunes(m[1], e.lib.limits.MaxFieldLen)
		}
	}
	return p
}

// ExtractAddress returns the whitespace-collapsed Bill To or Ship To block.
func (e *Extractor) ExtractAddress(text string, which AddressKind) string {
	name := SectionBillTo
	if which == ShipTo {
		name = SectionShipTo
	}
	section, ok := e.lib.sections[name].find(text)
	if !ok {
		return ""
	}
	return truncateRunes(collapseSpace(section), e.lib.limits.MaxAddressLen)
}
