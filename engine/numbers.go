package engine

import (
	"math"

	"github.com/go-softwarelab/common/pkg/seq"
	"github.com/pkg/errors"
)

// ============================================================================
// NUMBER GENERATORS — Bounded integer ranges
// ============================================================================
// EvenNumbers:           ascending evens in [1, bound)
// SquaresOfMultiplesOf7: descending squares of multiples of 7 in (0, bound)
//
// Overflow is detected by a pre-check against MaxSquare, never by wraparound.
// ============================================================================

// MaxSquare is the largest square SquaresOfMultiples will return.
// Half of the int32 range, so results stay safe to add together.
const MaxSquare int32 = math.MaxInt32 / 2

// maxRoot is the largest i with i*i <= MaxSquare.
const maxRoot int32 = 32767

// maxPrealloc caps up-front allocation; larger results grow by append.
const maxPrealloc = 1 << 16

// EvenNumbers returns all even integers in [1, exclusiveUpperBound), ascending.
// Returns ErrOutOfRange if exclusiveUpperBound is lower than 1.
func EvenNumbers(exclusiveUpperBound int) ([]int, error) {
	if exclusiveUpperBound < 1 {
		return nil, errors.Wrapf(ErrOutOfRange, "exclusive upper bound %d is lower than 1", exclusiveUpperBound)
	}

	result := make([]int, 0, evenCapacity(exclusiveUpperBound))
	for n := range seq.RangeWithStep(2, exclusiveUpperBound, 2) {
		result = append(result, n)
	}
	return result, nil
}

func evenCapacity(exclusiveUpperBound int) int {
	return min(exclusiveUpperBound/2, maxPrealloc)
}

// SquaresOfMultiplesOf7 returns the squares of the multiples of 7 in
// (0, exclusiveUpperBound), largest first.
// The result is empty if exclusiveUpperBound is lower than 1.
// Returns ErrOverflow (and no squares) if any square exceeds MaxSquare.
func SquaresOfMultiplesOf7(exclusiveUpperBound int32) ([]int32, error) {
	return SquaresOfMultiples(7, exclusiveUpperBound)
}

// SquaresOfMultiples is SquaresOfMultiplesOf7 for an arbitrary divisor.
// Returns ErrOutOfRange if divisor is lower than 1.
func SquaresOfMultiples(divisor, exclusiveUpperBound int32) ([]int32, error) {
	if divisor < 1 {
		return nil, errors.Wrapf(ErrOutOfRange, "divisor %d is lower than 1", divisor)
	}
	if exclusiveUpperBound < 1 {
		return []int32{}, nil
	}

	// no multiple above maxRoot can be squared without overflow
	result := make([]int32, 0, min(exclusiveUpperBound, maxRoot+1)/divisor)
	for i := exclusiveUpperBound - 1; i > 0; i-- {
		if i%divisor != 0 {
			continue
		}
		// i*i > MaxSquare  ⇔  i > MaxSquare/i  for positive i
		if i > MaxSquare/i {
			return nil, errors.Wrapf(ErrOverflow, "square of %d exceeds %d", i, MaxSquare)
		}
		result = append(result, i*i)
	}
	return result, nil
}
