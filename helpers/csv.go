package helpers

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/spektr-org/tally/engine"
)

// ============================================================================
// CSV HELPER — Parses CSV data into []engine.Record and []engine.Family
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, HTTP body).
// This helper converts the raw bytes into generic Records, then into
// families via engine.FamiliesFromView.
// ============================================================================

// ErrEmptyInput is returned when the CSV has no header row.
var ErrEmptyInput = errors.New("empty CSV input")

// ParseCSV parses CSV bytes into Records.
// Headers are snake_cased. Columns named in dimensionColumns (snake_case or
// original) always stay strings; other numeric cells become measures and the
// rest dimensions. Empty cells are left out of the record.
func ParseCSV(data []byte, dimensionColumns ...string) ([]engine.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV headers")
	}

	forced := make(map[string]bool, len(dimensionColumns))
	for _, c := range dimensionColumns {
		forced[toSnakeCase(strings.TrimSpace(c))] = true
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
	}

	var records []engine.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV line %d", line)
		}

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}

		for i, val := range row {
			if i >= len(keys) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}

			if !forced[keys[i]] {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					rec.Measures[keys[i]] = f
					continue
				}
			}
			rec.Dimensions[keys[i]] = val
		}

		records = append(records, rec)
	}

	return records, nil
}

// ParseCSVView parses CSV into a RecordView (convenience wrapper).
func ParseCSVView(data []byte, dimensionColumns ...string) (engine.RecordView, error) {
	records, err := ParseCSV(data, dimensionColumns...)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}

// ParseFamiliesCSV reads one person per row: familyColumn holds the family
// identifier, ageColumn the person's age. A row with an empty age declares a
// family without adding a member.
//
//	family,age
//	1,34
//	1,36
//	2,
func ParseFamiliesCSV(data []byte, familyColumn, ageColumn string) ([]engine.Family, error) {
	view, err := ParseCSVView(data, familyColumn)
	if err != nil {
		return nil, err
	}
	return engine.FamiliesFromView(view, toSnakeCase(familyColumn), toSnakeCase(ageColumn))
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
