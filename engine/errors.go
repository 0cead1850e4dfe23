package engine

import "github.com/pkg/errors"

// ============================================================================
// ERRORS — Sentinels returned (wrapped) by engine operations
// ============================================================================
// Test with errors.Is. The engine never logs; errors go straight back to the
// caller and no partial result accompanies them.
// ============================================================================

var (
	// ErrOutOfRange reports an argument below its minimum (bound, divisor, precision).
	ErrOutOfRange = errors.New("argument out of range")

	// ErrNilArgument reports a required collection that was nil.
	ErrNilArgument = errors.New("argument must not be nil")

	// ErrOverflow reports a result above the safe threshold of its integer type.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrInvalidRecord reports a record that cannot be turned into a domain value.
	ErrInvalidRecord = errors.New("invalid record")
)
