package engine

import "encoding/json"

// ============================================================================
// LETTER STATISTIC — Case-insensitive A–Z frequencies
// ============================================================================
// Single pass over the bytes of the text. Only ASCII letters count: every
// multi-byte rune is skipped, even ones Unicode would upper-case into A–Z.
// ============================================================================

const alphabetSize = 'Z' - 'A' + 1

// LetterStatistic counts each letter A–Z in text, ignoring case.
// The result is ordered A to Z and omits letters that do not occur.
// Digits, punctuation, whitespace and non-ASCII characters are ignored.
func LetterStatistic(text string) []LetterCount {
	var counts [alphabetSize]int
	for i := 0; i < len(text); i++ {
		if letter, ok := upperASCII(text[i]); ok {
			counts[letter-'A']++
		}
	}

	result := make([]LetterCount, 0, alphabetSize)
	for i, n := range counts {
		if n > 0 {
			result = append(result, LetterCount{Letter: byte('A' + i), Count: n})
		}
	}
	return result
}

// upperASCII folds a-z to A-Z and reports whether c is a letter.
func upperASCII(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c, true
	case c >= 'a' && c <= 'z':
		return c - ('a' - 'A'), true
	default:
		return 0, false
	}
}

// MarshalJSON renders Letter as a one-character string.
func (c LetterCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string `json:"letter"`
		Count  int    `json:"count"`
	}{
		Letter: string(c.Letter),
		Count:  c.Count,
	})
}
