package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RecordValidator checks stored records against the canonical JSON Schema
// before they are persisted or exported.
type RecordValidator struct {
	schema *jsonschema.Schema
}

func money() map[string]any {
	return map[string]any{"type": "number", "minimum": 0}
}

func partySchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "address", "tax_id", "iban"},
		"properties": map[string]any{
			"name":    map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
			"tax_id":  map[string]any{"type": "string"},
			"iban":    map[string]any{"type": "string"},
		},
	}
}

// RecordSchema returns the JSON Schema of dto.StoredRecord.
func RecordSchema() map[string]any {
	exclusive := func(want, other string) map[string]any {
		return map[string]any{
			"if": map[string]any{
				"properties": map[string]any{"document_type": map[string]any{"const": want}},
			},
			"then": map[string]any{
				"required": []string{want},
				"not":      map[string]any{"required": []string{other}},
			},
		}
	}

	record := map[string]any{
		"type": "object",
		"required": []string{
			"document_type", "invoice_number", "date", "vendor", "amount",
			"subtotal", "discount", "shipping", "tax", "vat", "total",
			"items", "category",
		},
		"properties": map[string]any{
			"document_type":  map[string]any{"enum": []string{string(dto.DocTypeInvoice), string(dto.DocTypeReceipt)}},
			"invoice_number": map[string]any{"type": "string"},
			"date":           map[string]any{"type": "string", "pattern": `^(\d{4}-\d{2}-\d{2})?$`},
			"vendor":         map[string]any{"type": "string", "minLength": 1},
			"amount":         money(),
			"subtotal":       money(),
			"discount":       money(),
			"shipping":       money(),
			"tax":            money(),
			"vat":            money(),
			"total":          money(),
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"required":   []string{"description"},
					"properties": map[string]any{"description": map[string]any{"type": "string", "minLength": 1}},
				},
			},
			"category": map[string]any{"enum": dto.CategoryNames()},
			"invoice": map[string]any{
				"type":     "object",
				"required": []string{"seller", "client", "net_worth", "gross_worth"},
				"properties": map[string]any{
					"seller":      partySchema(),
					"client":      partySchema(),
					"net_worth":   money(),
					"gross_worth": money(),
				},
			},
			"receipt": map[string]any{
				"type":     "object",
				"required": []string{"bill_to", "ship_to"},
				"properties": map[string]any{
					"bill_to": map[string]any{"type": "string"},
					"ship_to": map[string]any{"type": "string"},
				},
			},
		},
		"allOf": []any{
			exclusive(string(dto.DocTypeInvoice), string(dto.DocTypeReceipt)),
			exclusive(string(dto.DocTypeReceipt), string(dto.DocTypeInvoice)),
		},
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"id", "source_file", "source", "processed_at", "quality", "record"},
		"properties": map[string]any{
			"id":           map[string]any{"type": "string", "minLength": 1},
			"source_file":  map[string]any{"type": "string"},
			"source":       map[string]any{"enum": []string{string(dto.SourceText), string(dto.SourcePDFText), string(dto.SourceOCR)}},
			"processed_at": map[string]any{"type": "string"},
			"quality": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ocr_confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"final_score":    map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"issues":         map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
				},
			},
			"record": record,
		},
	}
}

func NewRecordValidator() (*RecordValidator, error) {
	b, err := json.Marshal(RecordSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &RecordValidator{schema: schema}, nil
}

// Validate wraps schema violations in dto.ErrInvalidRecord.
func (v *RecordValidator) Validate(rec *dto.StoredRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInvalidRecord, err)
	}
	return nil
}
