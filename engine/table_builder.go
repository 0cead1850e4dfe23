package engine

import (
	"fmt"
	"strconv"

	"github.com/go-softwarelab/common/pkg/slices"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from operation results
// ============================================================================
// One builder per result shape. Rows hold display strings; the Summary line
// carries the row count and, where meaningful, a total.
// ============================================================================

// BuildNumberTable renders a list of integers (evens or squares) as one column.
func BuildNumberTable[N ~int | ~int32](title string, values []N) *TableData {
	rows := slices.Map(values, func(v N) []string {
		return []string{strconv.FormatInt(int64(v), 10)}
	})

	var total int64
	for _, v := range values {
		total += int64(v)
	}

	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "value", Label: "Value", Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s values)", FormatInt(len(values))),
			Values: map[string]string{
				"value": strconv.FormatInt(total, 10),
			},
		},
	}
}

// BuildFamilyTable renders family summaries, one row per family.
// Average ages are shown with two decimal places.
func BuildFamilyTable(title string, summaries []FamilySummary) *TableData {
	var members int
	rows := slices.Map(summaries, func(s FamilySummary) []string {
		members += s.NumberOfFamilyMembers
		return []string{
			strconv.Itoa(s.FamilyID),
			strconv.Itoa(s.NumberOfFamilyMembers),
			FormatDecimal(&s.AverageAge, 2),
		}
	})

	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "family", Label: "Family", Type: "text", Align: "left"},
			{Key: "members", Label: "Members", Type: "number", Align: "center"},
			{Key: "averageAge", Label: "Average Age", Type: "decimal", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s families)", FormatInt(len(summaries))),
			Values: map[string]string{
				"members": FormatInt(members),
			},
		},
	}
}

// BuildLetterTable renders letter counts in the order given.
func BuildLetterTable(title string, counts []LetterCount) *TableData {
	var letters int
	rows := slices.Map(counts, func(c LetterCount) []string {
		letters += c.Count
		return []string{string(c.Letter), strconv.Itoa(c.Count)}
	})

	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "letter", Label: "Letter", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s distinct letters)", FormatInt(len(counts))),
			Values: map[string]string{
				"count": FormatInt(letters),
			},
		},
	}
}

// Headers returns the column labels, in order.
func (t *TableData) Headers() []string {
	return slices.Map(t.Columns, func(c Column) string { return c.Label })
}
