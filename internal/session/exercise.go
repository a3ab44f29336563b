// Package session runs one ordered batch of exercises end-to-end and
// reports how it went. The machine is screen-agnostic: it owns answer
// state, scoring and mistake collection, while rendering and input stay
// in the UI layer.
package session

// Type identifies an exercise format. The values match the generation
// wire format.
type Type string

const (
	TypeMultipleChoice    Type = "MULTIPLE_CHOICE"
	TypeTranslateToTarget Type = "TRANSLATE_TO_TARGET"
	TypeTranslateToSource Type = "TRANSLATE_TO_SOURCE"
	TypeListening         Type = "LISTENING"
	TypePronunciation     Type = "PRONUNCIATION"
	TypeMatching          Type = "MATCHING"
)

// Pair is one source/target card pair of a matching exercise.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Exercise is a single generated task.
type Exercise struct {
	ID            string `json:"id"`
	Type          Type   `json:"type"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	// Options carries the choices for multiple choice and the word bank
	// for translation and listening tasks.
	Options []string `json:"options,omitempty"`
	Pairs   []Pair   `json:"pairs,omitempty"`
	Tip     string   `json:"tip,omitempty"`
}

// UsesWordBank reports whether the exercise is answered by assembling
// words from its option list rather than by free typing or choosing a
// single option.
func (e Exercise) UsesWordBank() bool {
	if e.Type == TypeMultipleChoice {
		return false
	}
	switch e.Type {
	case TypeTranslateToTarget, TypeTranslateToSource, TypeListening:
		return len(e.Options) > 0
	}
	return false
}

// Checkable reports whether the exercise resolves through Check.
// Pronunciation resolves through ResolvePronunciation or Skip, and
// matching resolves through its card board.
func (e Exercise) Checkable() bool {
	return e.Type != TypePronunciation && e.Type != TypeMatching
}
