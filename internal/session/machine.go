package session

import (
	"math/rand"
	"strings"
	"sync/atomic"
)

// Kind tells the ledger how to treat a finished session.
type Kind int

const (
	Lesson Kind = iota
	Practice
	JumpExam
)

// AnswerStatus is the resolution state of the current exercise.
type AnswerStatus int

const (
	StatusIdle AnswerStatus = iota
	StatusCorrect
	StatusIncorrect
	// StatusSkipped counts as correct but renders differently.
	StatusSkipped
)

var epochCounter atomic.Int64

// Machine runs one batch of exercises. It is not safe for concurrent
// use; the UI drives it from a single update loop.
type Machine struct {
	kind      Kind
	exercises []Exercise
	epoch     int64
	rng       *rand.Rand

	index    int
	status   AnswerStatus
	done     bool
	correct  int
	mistakes []string

	// word bank assembly for the current exercise
	available []string
	assembled []string

	board *MatchBoard
}

// NewMachine starts a session over the given exercises. rng shuffles
// matching boards; pass nil for the default source.
func NewMachine(kind Kind, exercises []Exercise, rng *rand.Rand) *Machine {
	m := &Machine{
		kind:      kind,
		exercises: exercises,
		epoch:     epochCounter.Add(1),
		rng:       rng,
	}
	m.enter()
	return m
}

// enter resets per-exercise state for the exercise at the cursor.
func (m *Machine) enter() {
	m.status = StatusIdle
	m.available = nil
	m.assembled = nil
	m.board = nil
	if m.index >= len(m.exercises) {
		return
	}
	ex := m.exercises[m.index]
	if ex.UsesWordBank() {
		m.available = append([]string(nil), ex.Options...)
	}
	if ex.Type == TypeMatching {
		m.board = NewMatchBoard(ex.Pairs, m.rng)
	}
}

// Epoch identifies this session instance. Async results tagged with an
// older epoch belong to an abandoned session and must be dropped.
func (m *Machine) Epoch() int64 { return m.epoch }

// Kind returns the session kind.
func (m *Machine) Kind() Kind { return m.kind }

// Current returns the exercise at the cursor.
func (m *Machine) Current() Exercise {
	return m.exercises[m.index]
}

// Index returns the zero-based cursor position.
func (m *Machine) Index() int { return m.index }

// Len returns the batch size.
func (m *Machine) Len() int { return len(m.exercises) }

// Status returns the resolution state of the current exercise.
func (m *Machine) Status() AnswerStatus { return m.status }

// Done reports whether the last exercise has been advanced past.
func (m *Machine) Done() bool { return m.done }

// Last reports whether the cursor is on the final exercise.
func (m *Machine) Last() bool { return m.index == len(m.exercises)-1 }

// Board returns the matching board for the current exercise, or nil.
func (m *Machine) Board() *MatchBoard { return m.board }

// AvailableWords returns the unpicked word bank tiles.
func (m *Machine) AvailableWords() []string {
	return append([]string(nil), m.available...)
}

// AssembledWords returns the picked tiles in answer order.
func (m *Machine) AssembledWords() []string {
	return append([]string(nil), m.assembled...)
}

// PickWord moves a bank tile to the end of the assembled answer.
func (m *Machine) PickWord(i int) {
	if m.status != StatusIdle || i < 0 || i >= len(m.available) {
		return
	}
	m.assembled = append(m.assembled, m.available[i])
	m.available = append(m.available[:i], m.available[i+1:]...)
}

// ReturnWord moves an assembled tile back to the bank.
func (m *Machine) ReturnWord(i int) {
	if m.status != StatusIdle || i < 0 || i >= len(m.assembled) {
		return
	}
	m.available = append(m.available, m.assembled[i])
	m.assembled = append(m.assembled[:i], m.assembled[i+1:]...)
}

// AssembledAnswer joins the picked tiles into the answer string.
func (m *Machine) AssembledAnswer() string {
	return strings.Join(m.assembled, " ")
}

// Check resolves the current exercise against the given answer.
// Multiple choice compares the picked option verbatim; text kinds
// compare normalized forms. Returns true when correct. A wrong answer
// records the mistake concept: the question for multiple choice, the
// expected answer otherwise.
func (m *Machine) Check(answer string) bool {
	if m.status != StatusIdle {
		return false
	}
	ex := m.exercises[m.index]
	if !ex.Checkable() {
		return false
	}

	var ok bool
	if ex.Type == TypeMultipleChoice {
		ok = answer == ex.CorrectAnswer
	} else {
		ok = Normalize(answer) == Normalize(ex.CorrectAnswer)
	}

	if ok {
		m.status = StatusCorrect
		m.correct++
		return true
	}
	m.status = StatusIncorrect
	if ex.Type == TypeMultipleChoice {
		m.mistakes = append(m.mistakes, ex.Question)
	} else {
		m.mistakes = append(m.mistakes, ex.CorrectAnswer)
	}
	return false
}

// SelectCard taps a matching card and completes the exercise when the
// last pair matches.
func (m *Machine) SelectCard(i int) SelectOutcome {
	if m.status != StatusIdle || m.board == nil {
		return SelectNoop
	}
	out := m.board.Select(i)
	if out == SelectComplete {
		m.status = StatusCorrect
		m.correct++
	}
	return out
}

// ClearCardErrors reverts a mismatch flash on the board.
func (m *Machine) ClearCardErrors() {
	if m.board != nil {
		m.board.ClearErrors()
	}
}

// Skip resolves a pronunciation exercise without speaking. It counts
// as correct but keeps the distinct skipped status, and never records
// a mistake.
func (m *Machine) Skip() {
	if m.status != StatusIdle || m.exercises[m.index].Type != TypePronunciation {
		return
	}
	m.status = StatusSkipped
	m.correct++
}

// ResolvePronunciation applies an external pronunciation verdict.
// Failures cost a heart at the caller but never record a mistake.
func (m *Machine) ResolvePronunciation(correct bool) {
	if m.status != StatusIdle || m.exercises[m.index].Type != TypePronunciation {
		return
	}
	if correct {
		m.status = StatusCorrect
		m.correct++
	} else {
		m.status = StatusIncorrect
	}
}

// Advance moves past a resolved exercise. Advancing the last exercise
// finishes the session.
func (m *Machine) Advance() {
	if m.status == StatusIdle || m.done {
		return
	}
	if m.Last() {
		m.done = true
		return
	}
	m.index++
	m.enter()
}

// Outcome returns the final score and the collected mistake concepts.
// Valid once Done reports true, and stable thereafter.
func (m *Machine) Outcome() (correct int, mistakes []string) {
	return m.correct, append([]string(nil), m.mistakes...)
}
