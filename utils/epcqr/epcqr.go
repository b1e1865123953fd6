// Package epcqr parses EPC069-12 ("GiroCode", SEPA credit transfer) QR
// payloads printed on invoices.
package epcqr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// ErrNotEPC means the payload is some other kind of QR code.
var ErrNotEPC = errors.New("not an EPC payment QR payload")

const (
	serviceTag     = "BCD"
	identification = "SCT"
	minLines       = 7 // up to and including the IBAN
	maxLines       = 12
	maxAmountLen   = 15 // "EUR" + 12 digits incl. separator
)

// Payment is the content of one EPC QR code.
type Payment struct {
	Version     string    `json:"version"`
	Encoding    string    `json:"encoding"`
	BIC         string    `json:"bic"`
	Name        string    `json:"name"`
	IBAN        string    `json:"iban"`
	Currency    string    `json:"currency"`
	Amount      dto.Money `json:"amount"`
	Purpose     string    `json:"purpose"`
	Reference   string    `json:"reference"`
	Text        string    `json:"text"`
	Information string    `json:"information"`
}

// Parse decodes an EPC payload. Optional trailing lines may be omitted.
func Parse(payload string) (*Payment, error) {
	payload = strings.ReplaceAll(payload, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(payload, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != serviceTag {
		return nil, ErrNotEPC
	}
	if len(lines) < minLines {
		return nil, fmt.Errorf("%w: %d lines, need at least %d", ErrNotEPC, len(lines), minLines)
	}
	if len(lines) > maxLines {
		return nil, fmt.Errorf("%w: %d lines, at most %d allowed", ErrNotEPC, len(lines), maxLines)
	}

	field := func(i int) string {
		if i < len(lines) {
			return strings.TrimSpace(lines[i])
		}
		return ""
	}

	p := &Payment{
		Version:     field(1),
		Encoding:    field(2),
		BIC:         field(4),
		Name:        field(5),
		IBAN:        strings.ToUpper(strings.ReplaceAll(field(6), " ", "")),
		Purpose:     field(8),
		Reference:   field(9),
		Text:        field(10),
		Information: field(11),
	}

	switch p.Version {
	case "001", "002":
	default:
		return nil, fmt.Errorf("unsupported EPC version %q", p.Version)
	}
	if field(3) != identification {
		return nil, fmt.Errorf("unsupported EPC identification %q", field(3))
	}
	if p.Version == "001" && p.BIC == "" {
		return nil, errors.New("EPC version 001 requires a BIC")
	}
	if p.Name == "" {
		return nil, errors.New("EPC payload has no beneficiary name")
	}
	if !ValidIBAN(p.IBAN) {
		return nil, fmt.Errorf("EPC payload has an invalid IBAN %q", p.IBAN)
	}

	if raw := field(7); raw != "" {
		if len(raw) > maxAmountLen || len(raw) < 4 {
			return nil, fmt.Errorf("invalid EPC amount %q", raw)
		}
		p.Currency = raw[:3]
		amount, err := dto.ParseMoney(raw[3:])
		if err != nil {
			return nil, fmt.Errorf("invalid EPC amount %q: %w", raw, err)
		}
		p.Amount = amount
	}

	return p, nil
}

// ValidIBAN checks length, country code and the mod-97 checksum.
func ValidIBAN(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	for i := 0; i < 2; i++ {
		if iban[i] < 'A' || iban[i] > 'Z' {
			return false
		}
	}

	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

// Party returns the beneficiary as an invoice seller.
func (p *Payment) Party() dto.Party {
	return dto.Party{Name: p.Name, IBAN: p.IBAN}
}
