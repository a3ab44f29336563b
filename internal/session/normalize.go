package session

import "strings"

// answerPunct is stripped before comparing typed answers, including the
// Spanish inverted marks.
const answerPunct = ".,!?;¿¡"

// Normalize canonicalizes a free-text answer: lowercase, punctuation
// stripped, whitespace collapsed to single spaces, no leading or
// trailing space. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(answerPunct, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
