// Package record validates the serialized upload shape a reviewed receipt
// travels in before it is persisted or forwarded.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SebJones333/Receipt-Scanner/internal/entity"
)

// BuildUploadSchema returns a JSON-Schema (draft 2020-12 subset) as a generic
// map for the upload record: store, canonical short date, two-fraction-digit
// total. Unknown keys are rejected.
func BuildUploadSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"store": map[string]any{"type": "string", "minLength": 1},
			"date":  map[string]any{"type": "string", "pattern": `^\d{2}/\d{2}/\d{2}$`},
			"total": map[string]any{"type": "string", "pattern": `^\d+\.\d{2}$`},
		},
		"required": []string{"store", "date", "total"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// Decode sanitizes, validates and unmarshals an upload record payload.
func Decode(data []byte) (entity.UploadRecord, error) {
	clean, _, err := Sanitize(data)
	if err != nil {
		return entity.UploadRecord{}, err
	}
	if err := ValidateJSONAgainstSchema(BuildUploadSchema(), clean); err != nil {
		return entity.UploadRecord{}, err
	}
	var rec entity.UploadRecord
	if err := json.Unmarshal(clean, &rec); err != nil {
		return entity.UploadRecord{}, err
	}
	return rec, nil
}
