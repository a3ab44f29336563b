package session

import (
	"math/rand"
	"testing"
)

func textExercise(typ Type, question, answer string, options ...string) Exercise {
	return Exercise{Type: typ, Question: question, CorrectAnswer: answer, Options: options}
}

func TestCheckMultipleChoice(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeMultipleChoice, "¿Cómo se dice 'gato'?", "cat", "cat", "dog", "bird", "house"),
	}, nil)

	if ok := m.Check("dog"); ok {
		t.Fatal("wrong option accepted")
	}
	if m.Status() != StatusIncorrect {
		t.Errorf("Status = %v", m.Status())
	}

	_, mistakes := m.Outcome()
	// Multiple choice records the question, not the answer.
	if len(mistakes) != 1 || mistakes[0] != "¿Cómo se dice 'gato'?" {
		t.Errorf("mistakes = %v", mistakes)
	}
}

func TestCheckMultipleChoiceIsVerbatim(t *testing.T) {
	// Option comparison bypasses normalization: the learner picks an
	// option, so case and punctuation must match exactly.
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeMultipleChoice, "q", "Cat.", "Cat.", "dog"),
	}, nil)
	if ok := m.Check("cat"); ok {
		t.Error("normalized form must not match a verbatim option")
	}
}

func TestCheckTranslationNormalizes(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeTranslateToTarget, "Hola", "Hello!"),
	}, nil)

	if ok := m.Check("  hello "); !ok {
		t.Fatal("normalized match rejected")
	}
	if m.Status() != StatusCorrect {
		t.Errorf("Status = %v", m.Status())
	}
	correct, mistakes := m.Outcome()
	if correct != 1 || len(mistakes) != 0 {
		t.Errorf("Outcome = %d, %v", correct, mistakes)
	}
}

func TestCheckTextMistakeRecordsAnswer(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeTranslateToSource, "Hello", "Hola"),
	}, nil)

	m.Check("Adiós")

	_, mistakes := m.Outcome()
	if len(mistakes) != 1 || mistakes[0] != "Hola" {
		t.Errorf("mistakes = %v, want the expected answer", mistakes)
	}
}

func TestCheckIsSingleShot(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeListening, "Hello", "Hello"),
	}, nil)

	m.Check("wrong")
	if ok := m.Check("Hello"); ok {
		t.Error("resolved exercise must not accept a second check")
	}
	correct, _ := m.Outcome()
	if correct != 0 {
		t.Errorf("correct = %d", correct)
	}
}

func TestWordBankAssembly(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeTranslateToTarget, "El gato come", "The cat eats", "eats", "The", "cat", "dog"),
	}, nil)

	m.PickWord(1) // The
	m.PickWord(1) // cat
	m.PickWord(0) // eats
	if got := m.AssembledAnswer(); got != "The cat eats" {
		t.Fatalf("AssembledAnswer = %q", got)
	}
	if bank := m.AvailableWords(); len(bank) != 1 || bank[0] != "dog" {
		t.Errorf("bank = %v", bank)
	}

	// Return the middle word and the bank gets it back.
	m.ReturnWord(1)
	if got := m.AssembledAnswer(); got != "The eats" {
		t.Errorf("after return, answer = %q", got)
	}
	if bank := m.AvailableWords(); len(bank) != 2 {
		t.Errorf("bank = %v", bank)
	}

	if !m.Current().UsesWordBank() {
		t.Error("exercise with options should use the word bank")
	}
}

func TestAdvanceAndOutcome(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeTranslateToTarget, "Hola", "Hello"),
		textExercise(TypeMultipleChoice, "q2", "a", "a", "b"),
		textExercise(TypeTranslateToSource, "Bye", "Adiós"),
	}, nil)

	m.Check("Hello")
	m.Advance()
	if m.Index() != 1 || m.Status() != StatusIdle {
		t.Fatalf("Index = %d Status = %v", m.Index(), m.Status())
	}

	m.Check("b") // wrong
	m.Advance()

	if !m.Last() {
		t.Fatal("expected cursor on the final exercise")
	}
	m.Check("adios") // wrong: accent matters
	m.Advance()

	if !m.Done() {
		t.Fatal("machine should be done")
	}
	correct, mistakes := m.Outcome()
	if correct != 1 {
		t.Errorf("correct = %d, want 1", correct)
	}
	if len(mistakes) != 2 || mistakes[0] != "q2" || mistakes[1] != "Adiós" {
		t.Errorf("mistakes = %v", mistakes)
	}
}

func TestAdvanceRequiresResolution(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypeTranslateToTarget, "Hola", "Hello"),
		textExercise(TypeTranslateToTarget, "Adiós", "Bye"),
	}, nil)

	m.Advance()
	if m.Index() != 0 {
		t.Error("idle exercise must not advance")
	}
}

func TestPronunciationSkipCountsCorrect(t *testing.T) {
	m := NewMachine(Lesson, []Exercise{
		textExercise(TypePronunciation, "Bonjour", "Bonjour"),
	}, nil)

	if m.Check("Bonjour") {
		t.Error("pronunciation must not resolve via Check")
	}

	m.Skip()
	if m.Status() != StatusSkipped {
		t.Fatalf("Status = %v, want skipped", m.Status())
	}
	m.Advance()
	correct, mistakes := m.Outcome()
	if correct != 1 || len(mistakes) != 0 {
		t.Errorf("Outcome = %d, %v; skip counts correct with no mistake", correct, mistakes)
	}
}

func TestPronunciationVerdicts(t *testing.T) {
	exercises := []Exercise{textExercise(TypePronunciation, "Bonjour", "Bonjour")}

	m := NewMachine(Lesson, exercises, nil)
	m.ResolvePronunciation(true)
	if m.Status() != StatusCorrect {
		t.Errorf("Status = %v", m.Status())
	}

	m = NewMachine(Lesson, exercises, nil)
	m.ResolvePronunciation(false)
	if m.Status() != StatusIncorrect {
		t.Errorf("Status = %v", m.Status())
	}
	m.Advance()
	_, mistakes := m.Outcome()
	if len(mistakes) != 0 {
		t.Errorf("pronunciation failure recorded a mistake: %v", mistakes)
	}

	// Skip applies only to pronunciation.
	m = NewMachine(Lesson, []Exercise{textExercise(TypeTranslateToTarget, "Hola", "Hello")}, nil)
	m.Skip()
	if m.Status() != StatusIdle {
		t.Error("Skip must not resolve a translation exercise")
	}
}

func TestEpochsAreUnique(t *testing.T) {
	ex := []Exercise{textExercise(TypeTranslateToTarget, "Hola", "Hello")}
	a := NewMachine(Lesson, ex, nil)
	b := NewMachine(Lesson, ex, nil)
	if a.Epoch() == b.Epoch() {
		t.Error("two sessions share an epoch")
	}
}

func matchingMachine(t *testing.T) *Machine {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	return NewMachine(Lesson, []Exercise{{
		Type: TypeMatching,
		Pairs: []Pair{
			{Source: "gato", Target: "cat"},
			{Source: "perro", Target: "dog"},
		},
	}}, rng)
}

// findPair locates the board indices of the two cards of one pair by text.
func findPair(t *testing.T, cards []Card, source, target string) (int, int) {
	t.Helper()
	a, b := -1, -1
	for i, c := range cards {
		switch c.Text {
		case source:
			a = i
		case target:
			b = i
		}
	}
	if a < 0 || b < 0 {
		t.Fatalf("pair %q/%q not found in %v", source, target, cards)
	}
	return a, b
}

func TestMatchingBoardFlow(t *testing.T) {
	m := matchingMachine(t)
	board := m.Board()
	if board == nil {
		t.Fatal("matching exercise should open a board")
	}
	cards := board.Cards()
	if len(cards) != 4 {
		t.Fatalf("cards = %d, want 4", len(cards))
	}

	g, c := findPair(t, cards, "gato", "cat")
	p, d := findPair(t, cards, "perro", "dog")

	// Select then deselect.
	if out := m.SelectCard(g); out != SelectPicked {
		t.Fatalf("first tap = %v", out)
	}
	if out := m.SelectCard(g); out != SelectCleared {
		t.Fatalf("second tap = %v", out)
	}

	// Mismatch flashes errors and blocks input until cleared.
	m.SelectCard(g)
	if out := m.SelectCard(d); out != SelectMismatch {
		t.Fatalf("mismatch = %v", out)
	}
	if !m.Board().HasErrors() {
		t.Fatal("mismatch should leave error cards")
	}
	if out := m.SelectCard(c); out != SelectNoop {
		t.Error("input during error flash should be ignored")
	}
	m.ClearCardErrors()
	if m.Board().HasErrors() {
		t.Fatal("ClearErrors left error cards")
	}

	// Match both pairs; the final match completes the exercise.
	m.SelectCard(g)
	if out := m.SelectCard(c); out != SelectMatched {
		t.Fatalf("match = %v", out)
	}
	if out := m.SelectCard(c); out != SelectNoop {
		t.Error("matched cards must be inert")
	}
	m.SelectCard(p)
	if out := m.SelectCard(d); out != SelectComplete {
		t.Fatalf("final match = %v", out)
	}

	if m.Status() != StatusCorrect {
		t.Fatalf("Status = %v, want correct", m.Status())
	}
	m.Advance()
	correct, mistakes := m.Outcome()
	// Mismatches along the way never count against the learner.
	if correct != 1 || len(mistakes) != 0 {
		t.Errorf("Outcome = %d, %v", correct, mistakes)
	}
}

func TestMatchingBoardShuffleDeterministicWithSeed(t *testing.T) {
	pairs := []Pair{{Source: "a", Target: "b"}, {Source: "c", Target: "d"}}
	a := NewMatchBoard(pairs, rand.New(rand.NewSource(7)))
	b := NewMatchBoard(pairs, rand.New(rand.NewSource(7)))
	ca, cb := a.Cards(), b.Cards()
	for i := range ca {
		if ca[i].Text != cb[i].Text {
			t.Fatalf("seeded shuffles differ at %d: %q vs %q", i, ca[i].Text, cb[i].Text)
		}
	}
}
