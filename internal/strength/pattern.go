package strength

import "github.com/nbutton23/zxcvbn-go"

// zxcvbn slows down sharply with the length of its input, only this many
// leading characters are scored.
const maxPatternLen = 100

// Pattern is an advisory, pattern aware score (dictionary words, keyboard walks,
// sequences, dates). It is shown next to the result but never changes the Label.
type Pattern struct {
	Score            int // 0 to 4
	CrackTimeDisplay string
}

func patternScore(password string) Pattern {
	if password == "" {
		return Pattern{Score: 0, CrackTimeDisplay: "instant"}
	}

	match := zxcvbn.PasswordStrength(patternInput(password), nil)
	return Pattern{Score: match.Score, CrackTimeDisplay: match.CrackTimeDisplay}
}

// patternInput cuts password to its first maxPatternLen characters.
func patternInput(password string) string {
	n := 0
	for i := range password {
		if n == maxPatternLen {
			return password[:i]
		}
		n++
	}
	return password
}
