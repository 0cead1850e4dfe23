package engine

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for FamilyStatistic()
// ============================================================================

// DefaultPrecision is the number of significant digits used for averages.
// Matches a 128-bit decimal.
const DefaultPrecision uint32 = 28

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Precision uint32      // significant digits for decimal division
	Rounding  string // apd rounding mode for inexact quotients
}

// WithPrecision sets the significant digits of computed averages.
func WithPrecision(digits uint32) Option {
	return func(c *config) {
		c.Precision = digits
	}
}

// WithRounding sets how inexact averages are rounded. rounding is one of
// the apd mode names, e.g. apd.RoundHalfUp or apd.RoundDown.
func WithRounding(rounding string) Option {
	return func(c *config) {
		c.Rounding = rounding
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Precision: DefaultPrecision,
		Rounding:  apd.RoundHalfEven,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// decimalContext builds a fresh apd context for one call.
func (c *config) decimalContext() (*apd.Context, error) {
	if c.Precision == 0 {
		return nil, errors.Wrap(ErrOutOfRange, "decimal precision must be at least 1")
	}
	if _, ok := apd.Roundings[c.Rounding]; !ok {
		return nil, errors.Wrapf(ErrOutOfRange, "unknown rounding mode %q", c.Rounding)
	}
	ctx := apd.BaseContext.WithPrecision(c.Precision)
	ctx.Rounding = c.Rounding
	return ctx, nil
}
