package engine

import (
	"encoding/json"

	"github.com/cockroachdb/apd/v2"
)

// ============================================================================
// TALLY ENGINE TYPES
// ============================================================================
// Inputs are owned by the caller and never mutated.
// Outputs are allocated fresh on every call.
// ============================================================================

// ============================================================================
// FAMILY — Grouped people (input)
// ============================================================================

// Person is a single family member.
type Person struct {
	Age int `json:"age"`
}

// Family is a group of people sharing an identifier.
// ID is expected to be unique within one FamilyStatistic call.
type Family struct {
	ID      int      `json:"id"`
	Persons []Person `json:"persons"`
}

// FamilySummary is the per-family result of FamilyStatistic.
type FamilySummary struct {
	FamilyID              int         `json:"familyId"`
	NumberOfFamilyMembers int         `json:"numberOfFamilyMembers"`
	AverageAge            apd.Decimal `json:"averageAge"` // 0 for families without members
}

// AverageAgeFloat returns AverageAge as float64, for display and charts.
func (s FamilySummary) AverageAgeFloat() float64 {
	f, err := s.AverageAge.Float64()
	if err != nil {
		return 0
	}
	return f
}

// MarshalJSON renders AverageAge as a plain decimal string ("20", "12.5").
func (s FamilySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FamilyID              int    `json:"familyId"`
		NumberOfFamilyMembers int    `json:"numberOfFamilyMembers"`
		AverageAge            string `json:"averageAge"`
	}{
		FamilyID:              s.FamilyID,
		NumberOfFamilyMembers: s.NumberOfFamilyMembers,
		AverageAge:            s.AverageAge.Text('f'),
	})
}

// ============================================================================
// LETTER COUNT — Text frequency (output)
// ============================================================================

// LetterCount is the number of occurrences of one uppercase letter A–Z.
// Count is always at least 1.
type LetterCount struct {
	Letter byte `json:"letter"`
	Count  int  `json:"count"`
}

// String renders the pair as "L:3".
func (c LetterCount) String() string {
	return string(c.Letter) + ":" + FormatInt(c.Count)
}

// ============================================================================
// RECORD — Generic data row (CSV and other tabular sources)
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
//
// A CSV row "family=3, age=41" becomes
// Record{Dimensions["family"]="3", Measures["age"]=41}.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "decimal"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
