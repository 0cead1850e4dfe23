package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/spektr-org/tally/engine"
)

// ============================================================================
// JSON HELPER — Parses a JSON array of people into []engine.Family
// ============================================================================
//
//	[{"family": 1, "age": 34}, {"family": 1, "age": 36}, {"family": 2}]
//
// Rows are bound through engine.DomainAdapter, so a JSON file is validated
// exactly like the CSV rows: a missing or null age declares the family only.
// ============================================================================

type jsonRow map[string]any

// ParseFamiliesJSON parses a JSON array of objects into families.
func ParseFamiliesJSON(data []byte, familyKey, ageKey string) ([]engine.Family, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var rows []jsonRow
	if err := decoder.Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, errors.Wrap(err, "failed to decode JSON rows")
	}

	adapter := engine.NewDomainAdapter[jsonRow]().
		Dimension(familyKey, jsonText(familyKey)).
		Dimension(ageKey, jsonText(ageKey)).
		OptionalMeasure(ageKey, jsonNumber(ageKey))

	return engine.FamiliesFromView(adapter.Bind(rows), familyKey, ageKey)
}

// jsonText renders a value the way it would appear in a CSV cell.
func jsonText(key string) func(jsonRow) string {
	return func(r jsonRow) string {
		switch v := r[key].(type) {
		case nil:
			return ""
		case string:
			return v
		case json.Number:
			return v.String()
		default:
			return fmt.Sprint(v)
		}
	}
}

func jsonNumber(key string) func(jsonRow) (float64, bool) {
	return func(r jsonRow) (float64, bool) {
		n, ok := r[key].(json.Number)
		if !ok {
			return 0, false
		}
		f, err := n.Float64()
		return f, err == nil
	}
}
