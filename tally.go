// Package tally provides small, pure data-transformation utilities.
// Range filtering, squares with overflow detection, family age statistics,
// and letter frequencies.
//
// Usage:
//
//	import "github.com/spektr-org/tally/engine"
//
//	evens, err := engine.EvenNumbers(10)          // [2 4 6 8]
//	squares, err := engine.SquaresOfMultiplesOf7(50)
//	summaries, err := engine.FamilyStatistic(families,
//	    engine.WithPrecision(28),
//	)
//	letters := engine.LetterStatistic("Hello, World!")
//
// Every function allocates a fresh result and never mutates its input.
// CSV loading lives in the helpers package; the tally command wraps it all.
package tally
