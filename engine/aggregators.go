package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// ============================================================================
// AGGREGATORS — Grouping and decimal averaging
// ============================================================================
// Grouping produces SubViews (index lists into parent view) in first-seen
// order. Averages are computed with apd so that no precision is lost before
// the configured rounding.
// ============================================================================

// group is one key of a grouped view.
type group struct {
	Key  string
	View RecordView
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := strings.TrimSpace(view.Dimension(i, dimension))
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]group, 0, len(order))
	for _, key := range order {
		groups = append(groups, group{
			Key:  key,
			View: newSubView(view, grouped[key]),
		})
	}
	return groups
}

// FamiliesFromView groups rows by familyKey into families, in first-seen order.
// Each row with an ageKey measure adds one Person; a row without it only
// declares the family. Returns ErrInvalidRecord for a non-integer family key
// or an age that is not a whole non-negative number.
func FamiliesFromView(view RecordView, familyKey, ageKey string) ([]Family, error) {
	groups := groupBySingle(view, familyKey)
	families := make([]Family, 0, len(groups))

	for _, g := range groups {
		id, err := strconv.Atoi(g.Key)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidRecord, "%s %q is not an integer", familyKey, g.Key)
		}

		persons := make([]Person, 0, g.View.Len())
		for i := 0; i < g.View.Len(); i++ {
			if !g.View.HasMeasure(i, ageKey) {
				if raw := g.View.Dimension(i, ageKey); raw != "" {
					return nil, errors.Wrapf(ErrInvalidRecord, "%s %q of %s %d is not a number", ageKey, raw, familyKey, id)
				}
				continue
			}
			age := g.View.Measure(i, ageKey)
			if age < 0 || age > math.MaxInt32 || age != math.Trunc(age) {
				return nil, errors.Wrapf(ErrInvalidRecord, "%s %v of %s %d is not a whole number in [0, %d]", ageKey, age, familyKey, id, math.MaxInt32)
			}
			persons = append(persons, Person{Age: int(age)})
		}

		families = append(families, Family{ID: id, Persons: persons})
	}
	return families, nil
}

// ============================================================================
// AGGREGATION
// ============================================================================

// AverageDecimal divides total by count in ctx's precision.
// Returns 0 when count is 0.
func AverageDecimal(ctx *apd.Context, total int64, count int) (*apd.Decimal, error) {
	avg := new(apd.Decimal)
	if count == 0 {
		return avg, nil
	}
	if _, err := ctx.Quo(avg, apd.New(total, 0), apd.New(int64(count), 0)); err != nil {
		return nil, errors.Wrapf(err, "average of %d over %d", total, count)
	}
	return avg, nil
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	digits := strconv.Itoa(n)
	var b strings.Builder
	if n < 0 {
		// digits, not -n: -math.MinInt overflows
		b.WriteByte('-')
		digits = digits[1:]
	}
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// FormatDecimal renders d in plain notation, rounded to places decimal places.
func FormatDecimal(d *apd.Decimal, places int32) string {
	exp := d.Exponent
	if exp < 0 {
		exp = -exp
	}
	digits := len(d.Coeff.String()) + int(exp) + int(places) + 1

	rounded := new(apd.Decimal)
	ctx := apd.BaseContext.WithPrecision(uint32(digits))
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(rounded, d, -places); err != nil {
		return d.Text('f')
	}
	return rounded.Text('f')
}
