package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/daylingo/internal/content"
	"github.com/abhisek/daylingo/internal/curriculum"
	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	"github.com/abhisek/daylingo/internal/screen"
	"github.com/abhisek/daylingo/internal/screens/summary"
	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/abhisek/daylingo/internal/ui/components"
	"github.com/abhisek/daylingo/internal/ui/layout"
)

// flashDuration is how long a matching mismatch stays highlighted.
const flashDuration = 800 * time.Millisecond

// Params selects what kind of session to run and against which lesson.
type Params struct {
	Kind   sess.Kind
	Track  curriculum.Track
	Lesson curriculum.Lesson // zero value for practice

	// JumpFee is the gem fee already charged for a jump exam. It is
	// refunded only when lesson generation fails.
	JumpFee int
}

// SessionScreen drives one exercise batch from generation to summary.
type SessionScreen struct {
	ledger    *player.Ledger
	eventRepo store.EventRepo
	generator *content.Service
	params    Params

	machine *sess.Machine
	input   components.TextInput
	cursor  int

	loading     bool
	spinnerTick int
	errMsg      string
	quitConfirm bool
	outOfHearts bool
	finished    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen. Generation starts on Init.
func New(ledger *player.Ledger, eventRepo store.EventRepo, generator *content.Service, params Params) *SessionScreen {
	return &SessionScreen{
		ledger:    ledger,
		eventRepo: eventRepo,
		generator: generator,
		params:    params,
		loading:   true,
		input:     components.NewTextInput("Type your answer...", false, 60),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.generate(), spinnerTick())
}

func (s *SessionScreen) Title() string {
	switch s.params.Kind {
	case sess.Practice:
		return "Practice"
	case sess.JumpExam:
		return "Level Exam"
	default:
		return s.params.Lesson.Title
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.outOfHearts {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.machine == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	if s.machine.Status() != sess.StatusIdle {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}

	switch s.machine.Current().Type {
	case sess.TypeMultipleChoice:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.TypeMatching:
		return []layout.KeyHint{
			{Key: "↑↓←→", Description: "Move"},
			{Key: "Enter", Description: "Flip"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.TypePronunciation:
		return []layout.KeyHint{
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		if s.machine.Current().UsesWordBank() {
			return []layout.KeyHint{
				{Key: "1-9", Description: "Pick word"},
				{Key: "Backspace", Description: "Undo"},
				{Key: "Enter", Description: "Check"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		return s.handleLessonReady(msg)

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinnerTick++
		return s, spinnerTick()

	case flashClearMsg:
		if s.machine != nil && msg.Epoch == s.machine.Epoch() {
			s.machine.ClearCardErrors()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and friends for the text input.
	if s.typingActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// typingActive reports whether the free-typing input owns the keyboard.
func (s *SessionScreen) typingActive() bool {
	if s.machine == nil || s.machine.Status() != sess.StatusIdle {
		return false
	}
	ex := s.machine.Current()
	switch ex.Type {
	case sess.TypeTranslateToTarget, sess.TypeTranslateToSource, sess.TypeListening:
		return !ex.UsesWordBank()
	}
	return false
}

// generate requests the exercise batch for this session.
func (s *SessionScreen) generate() tea.Cmd {
	state := s.ledger.State()
	params := s.params

	in := content.Input{
		Target:    params.Track.Code,
		Source:    state.SourceTrack,
		WeakWords: state.WeakWords,
	}
	switch params.Kind {
	case sess.Practice:
		in.Topic = content.PracticeTopic
	case sess.JumpExam:
		in.Topic = content.JumpExamTopic(params.Lesson.Topic)
		in.Level = "B1"
	default:
		in.Topic = params.Lesson.Topic
	}

	gen := s.generator
	return func() tea.Msg {
		if gen == nil {
			return lessonReadyMsg{Err: fmt.Errorf("%w: no lesson provider configured", content.ErrGeneration)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		exercises, err := gen.GenerateLesson(ctx, in)
		return lessonReadyMsg{Exercises: exercises, Err: err}
	}
}

func (s *SessionScreen) handleLessonReady(msg lessonReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		// A failed jump exam never costs gems.
		if s.params.JumpFee > 0 && errors.Is(msg.Err, content.ErrGeneration) {
			s.ledger.RefundSectionJump(s.params.JumpFee)
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.machine = sess.NewMachine(s.params.Kind, msg.Exercises, nil)
	s.resetExerciseUI()
	return s, nil
}

// resetExerciseUI clears per-exercise cursor and input state.
func (s *SessionScreen) resetExerciseUI() {
	s.cursor = 0
	s.input = components.NewTextInput("Type your answer...", false, 60)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.outOfHearts {
		return s, popCmd()
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, popCmd()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.loading {
		if key == "esc" {
			// Leaving before the exam ever starts: the in-flight
			// generation result will land on another screen, so the
			// refund has to happen here.
			if s.params.JumpFee > 0 {
				s.ledger.RefundSectionJump(s.params.JumpFee)
				s.params.JumpFee = 0
			}
			return s, popCmd()
		}
		return s, nil
	}

	if s.machine == nil {
		return s, nil
	}

	// Feedback showing: continue to the next exercise or finish.
	if s.machine.Status() != sess.StatusIdle {
		if key == "enter" || key == "space" {
			return s.advance()
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	ex := s.machine.Current()
	switch ex.Type {
	case sess.TypeMultipleChoice:
		return s.handleChoiceKey(key, ex)
	case sess.TypeMatching:
		return s.handleMatchingKey(key)
	case sess.TypePronunciation:
		if key == "s" || key == "S" {
			s.machine.Skip()
		}
		return s, nil
	default:
		if ex.UsesWordBank() {
			return s.handleWordBankKey(key)
		}
		return s.handleTypingKey(key, msg)
	}
}

func (s *SessionScreen) handleChoiceKey(key string, ex sess.Exercise) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(ex.Options)-1 {
			s.cursor++
		}
	case "enter":
		return s.submit(ex.Options[s.cursor])
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(ex.Options) {
			s.cursor = n - 1
		}
	}
	return s, nil
}

func (s *SessionScreen) handleWordBankKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "backspace":
		if n := len(s.machine.AssembledWords()); n > 0 {
			s.machine.ReturnWord(n - 1)
		}
	case "enter":
		return s.submit(s.machine.AssembledAnswer())
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.machine.AvailableWords()) {
			s.machine.PickWord(n - 1)
		}
	}
	return s, nil
}

func (s *SessionScreen) handleTypingKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if key == "enter" {
		return s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleMatchingKey(key string) (screen.Screen, tea.Cmd) {
	board := s.machine.Board()
	if board == nil {
		return s, nil
	}
	cards := board.Cards()
	half := (len(cards) + 1) / 2

	switch key {
	case "up", "k":
		if s.cursor > 0 && s.cursor != half {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(cards)-1 && s.cursor != half-1 {
			s.cursor++
		}
	case "left", "h":
		if s.cursor >= half {
			s.cursor -= half
		}
	case "right", "l":
		if s.cursor < half && s.cursor+half < len(cards) {
			s.cursor += half
		}
	case "enter", "space":
		out := s.machine.SelectCard(s.cursor)
		if out == sess.SelectMismatch {
			epoch := s.machine.Epoch()
			return s, tea.Tick(flashDuration, func(time.Time) tea.Msg {
				return flashClearMsg{Epoch: epoch}
			})
		}
	}
	return s, nil
}

// submit checks an answer and applies the heart cost of a miss.
func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	if !s.machine.Check(answer) {
		state := s.ledger.ApplyHeartLoss()
		if state.Hearts <= 0 {
			s.outOfHearts = true
		}
	}
	return s, nil
}

// advance moves to the next exercise, or finishes the session.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if s.outOfHearts {
		return s, popCmd()
	}
	s.machine.Advance()
	if s.machine.Done() {
		return s.finish()
	}
	s.resetExerciseUI()
	if s.typingActive() {
		return s, s.input.Init()
	}
	return s, nil
}

// finish settles the session against the ledger and shows the summary.
func (s *SessionScreen) finish() (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	s.finished = true

	correct, mistakes := s.machine.Outcome()
	total := s.machine.Len()

	completion := player.Completion{
		Kind:     ledgerKind(s.params.Kind),
		Track:    s.params.Track.Code,
		LessonID: s.params.Lesson.ID,
		Total:    total,
		Correct:  correct,
		Mistakes: mistakes,
	}
	result := s.ledger.ApplySessionCompletion(completion)

	if s.eventRepo != nil {
		_ = s.eventRepo.AppendSession(context.Background(), store.SessionEventData{
			Kind:     string(completion.Kind),
			Track:    completion.Track,
			LessonID: completion.LessonID,
			Total:    total,
			Correct:  correct,
			Accuracy: result.Accuracy,
			XP:       result.XP,
		})
	}

	sum := summary.New(summary.Stats{
		Kind:     s.params.Kind,
		Total:    total,
		Correct:  correct,
		Mistakes: mistakes,
		Result:   result,
	})
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

func ledgerKind(k sess.Kind) player.SessionKind {
	switch k {
	case sess.Practice:
		return player.KindPractice
	case sess.JumpExam:
		return player.KindJumpExam
	default:
		return player.KindLesson
	}
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
