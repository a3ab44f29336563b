package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	"github.com/abhisek/daylingo/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

type stubOnboarder struct {
	calls int
}

func (o *stubOnboarder) SetOnboarded(context.Context) error {
	o.calls++
	return nil
}

type welcomeFixture struct {
	screen    *WelcomeScreen
	ledger    *player.Ledger
	onboarder *stubOnboarder
	factoryN  int
}

func newTestWelcome() *welcomeFixture {
	f := &welcomeFixture{
		ledger:    player.NewLedger(player.DefaultState(), nil),
		onboarder: &stubOnboarder{},
	}
	f.screen = New(f.ledger, f.onboarder, func() screen.Screen {
		f.factoryN++
		return &stubScreen{}
	})
	return f
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestPhaseTransitions(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	// Initially at phase 0 — no banner visible
	view := w.View(80, 24)
	if strings.Contains(view, "Learn a language") {
		t.Error("tagline should not be visible at start")
	}

	// After 5 ticks (500ms) — phase 1 complete, sparkles start
	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	// After 30 ticks (3000ms) — animation done, banner visible
	sendTicks(w, 25)
	view = w.View(80, 24)
	if !strings.Contains(view, "Learn a language") {
		t.Error("tagline should be visible after the animation")
	}
}

func TestKeypressDuringAnimationIgnored(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	sendTicks(w, 3)
	w.Update(specialKey(' '))

	if w.step != stepSplash {
		t.Errorf("keypress mid-animation should not advance, got step %d", w.step)
	}
}

func TestKeypressAfterAnimationEntersNameStep(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	sendTicks(w, 45)
	w.Update(specialKey(' '))

	if w.step != stepName {
		t.Errorf("expected name step after animation keypress, got %d", w.step)
	}
	if !strings.Contains(w.View(80, 24), "What should we call you?") {
		t.Error("name prompt should be visible")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	sendTicks(w, 45)
	w.Update(specialKey(' '))
	w.Update(specialKey(tea.KeyEnter))

	if w.step != stepName {
		t.Errorf("empty name should keep the name step, got %d", w.step)
	}
}

func TestNameAdvancesToTrackStep(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	sendTicks(w, 45)
	w.Update(specialKey(' '))
	w.nameInput.Model.SetValue("Ana")
	w.Update(specialKey(tea.KeyEnter))

	if w.step != stepTrack {
		t.Errorf("expected track step, got %d", w.step)
	}
	if !strings.Contains(w.View(80, 40), "Inglés") {
		t.Error("track list should be visible")
	}
}

func TestTrackSelectionCompletesOnboarding(t *testing.T) {
	f := newTestWelcome()
	w := f.screen

	sendTicks(w, 45)
	w.Update(specialKey(' '))
	w.nameInput.Model.SetValue("Ana")
	w.Update(specialKey(tea.KeyEnter))

	// Select the first course (English).
	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from track selection")
	}

	msg := cmd()
	done, ok := msg.(onboardDoneMsg)
	if !ok {
		t.Fatalf("expected onboardDoneMsg, got %T", msg)
	}
	if done.Err != nil {
		t.Fatalf("unexpected onboarding error: %v", done.Err)
	}

	state := f.ledger.State()
	if state.Name != "Ana" {
		t.Errorf("expected profile name Ana, got %q", state.Name)
	}
	if state.CurrentTrack != "English" {
		t.Errorf("expected current track English, got %q", state.CurrentTrack)
	}
	if f.onboarder.calls != 1 {
		t.Errorf("expected SetOnboarded once, got %d", f.onboarder.calls)
	}

	// Delivering the done message must replace the screen exactly once.
	_, cmd = w.Update(done)
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if f.factoryN != 1 {
		t.Errorf("factory should be called once, got %d", f.factoryN)
	}

	_, cmd = w.Update(done)
	if cmd != nil {
		t.Error("second done message should not produce a command")
	}
}

func TestTitleEmpty(t *testing.T) {
	f := newTestWelcome()
	if f.screen.Title() != "" {
		t.Errorf("expected empty title, got %q", f.screen.Title())
	}
}
