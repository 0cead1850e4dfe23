package engine

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/go-softwarelab/common/pkg/slices"
	"github.com/pkg/errors"
)

// ============================================================================
// FAMILY STATISTIC — Member count and average age per family
// ============================================================================
// One summary per input family, in input order.
// Averages are exact decimals (apd) rounded to the configured precision.
// ============================================================================

// FamilyStatistic returns one FamilySummary per family in families.
// AverageAge is 0 for a family without persons.
// Returns ErrNilArgument if families is nil; an empty slice yields an empty result.
//
// Options:
//   - WithPrecision(digits) — significant digits of AverageAge (default 28)
//   - WithRounding(mode)    — rounding of inexact averages (default half-even)
func FamilyStatistic(families []Family, opts ...Option) ([]FamilySummary, error) {
	if families == nil {
		return nil, errors.Wrap(ErrNilArgument, "families")
	}

	ctx, err := applyOptions(opts).decimalContext()
	if err != nil {
		return nil, err
	}

	return slices.MapOrError(families, func(f Family) (FamilySummary, error) {
		return summarizeFamily(ctx, f)
	})
}

func summarizeFamily(ctx *apd.Context, f Family) (FamilySummary, error) {
	summary := FamilySummary{
		FamilyID:              f.ID,
		NumberOfFamilyMembers: len(f.Persons),
	}

	total := slices.Reduce(f.Persons, func(agg int64, p Person) int64 {
		return agg + int64(p.Age)
	}, int64(0))

	avg, err := AverageDecimal(ctx, total, summary.NumberOfFamilyMembers)
	if err != nil {
		return FamilySummary{}, errors.Wrapf(err, "family %d", f.ID)
	}
	summary.AverageAge = *avg
	return summary, nil
}
