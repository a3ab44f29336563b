package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/curriculum"
	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	"github.com/abhisek/daylingo/internal/screen"
	"github.com/abhisek/daylingo/internal/ui/components"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ╭─────╮  │
  │  │ ◉ ◉ │  │
  │  │  ▾  │  │
  │  ├─────┤  │
  │  │ ≋≋≋ │  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// onboardDoneMsg carries the result of persisting the new profile.
type onboardDoneMsg struct {
	Err error
}

type step int

const (
	stepSplash step = iota
	stepName
	stepTrack
)

// Onboarder persists the one-time onboarding flag.
type Onboarder interface {
	SetOnboarded(ctx context.Context) error
}

// WelcomeScreen plays a splash animation, then walks a new learner
// through naming their profile and picking a course.
type WelcomeScreen struct {
	ledger      *player.Ledger
	onboarder   Onboarder
	homeFactory func() screen.Screen

	step      step
	elapsed   time.Duration
	tickCount int

	nameInput components.TextInput
	trackMenu components.Menu
	errMsg    string

	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory once onboarding completes.
func New(ledger *player.Ledger, onboarder Onboarder, homeFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		ledger:      ledger,
		onboarder:   onboarder,
		homeFactory: homeFactory,
		nameInput:   components.NewTextInput("Your name...", false, 24),
	}

	items := make([]components.MenuItem, 0, len(curriculum.Tracks()))
	for _, tr := range curriculum.Tracks() {
		tr := tr
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%-14s %s", tr.Name, tr.Code),
			Action: func() tea.Cmd {
				return w.finish(tr.Code)
			},
		})
	}
	w.trackMenu = components.NewMenu(items)

	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.step {
	case stepName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case stepTrack:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose course"},
			{Key: "Enter", Description: "Start learning"},
		}
	default:
		return nil
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.step != stepSplash {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case onboardDoneMsg:
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		return w, w.transition()

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	if w.step == stepName {
		var cmd tea.Cmd
		w.nameInput, cmd = w.nameInput.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch w.step {
	case stepSplash:
		// Only advance once the full animation has played.
		if w.elapsed >= totalDur {
			w.step = stepName
			return w, w.nameInput.Init()
		}
		return w, nil

	case stepName:
		if msg.String() == "enter" {
			if strings.TrimSpace(w.nameInput.Value()) != "" {
				w.step = stepTrack
			}
			return w, nil
		}
		var cmd tea.Cmd
		w.nameInput, cmd = w.nameInput.Update(tea.Msg(msg))
		return w, cmd

	case stepTrack:
		var cmd tea.Cmd
		w.trackMenu, cmd = w.trackMenu.Update(tea.Msg(msg))
		return w, cmd
	}

	return w, nil
}

// finish commits the new profile and flips the onboarding flag.
func (w *WelcomeScreen) finish(trackCode string) tea.Cmd {
	name := strings.TrimSpace(w.nameInput.Value())
	return func() tea.Msg {
		state := w.ledger.State()
		w.ledger.ApplyProfileEdit(name, state.Avatar)
		w.ledger.SwitchTrack(trackCode)
		if w.onboarder != nil {
			if err := w.onboarder.SetOnboarded(context.Background()); err != nil {
				return onboardDoneMsg{Err: err}
			}
		}
		return onboardDoneMsg{}
	}
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	switch w.step {
	case stepName:
		return w.viewName(width, height)
	case stepTrack:
		return w.viewTrack(width, height)
	default:
		return w.viewSplash(width, height)
	}
}

func (w *WelcomeScreen) viewSplash(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: mascot
	rendered := mascotStyle.Render(mascotArt)

	// Phase 2+: sparkles around mascot
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(sparkle)
		s2 := secondaryStyle.Render(sparkle)

		// Place sparkles on sides of mascot
		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn a language in your terminal!")
		sections = append(sections, tagline)
	}

	// "press any key" hint
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewName(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("What should we call you?"))
	sections = append(sections, "")
	sections = append(sections, w.nameInput.View())

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewTrack(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Pick a course"))
	sections = append(sections, "")
	sections = append(sections, w.trackMenu.View())

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
