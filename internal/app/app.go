package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/content"
	"github.com/abhisek/daylingo/internal/curriculum"
	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	"github.com/abhisek/daylingo/internal/screen"
	"github.com/abhisek/daylingo/internal/screens/home"
	sessionscreen "github.com/abhisek/daylingo/internal/screens/session"
	"github.com/abhisek/daylingo/internal/screens/welcome"
	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/speech"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/abhisek/daylingo/internal/ui/layout"
)

// Deps carries everything the TUI needs. Voice may be nil when no
// Gemini key is configured; the talk tab degrades gracefully.
type Deps struct {
	Ledger    *player.Ledger
	Profile   *store.ProfileRepo
	EventRepo store.EventRepo
	Generator *content.Service
	Voice     *speech.Client
	Onboarded bool

	// StartPractice opens a practice session on top of the home screen
	// at startup (the `daylingo practice` shortcut).
	StartPractice bool
}

// heartTickMsg drives the heart-refill clock once per second.
type heartTickMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ledger *player.Ledger
	clock  *player.Clock
	width  int
	height int

	// startCmd is an optional navigation command dispatched once from
	// Init, after the base screen is up.
	startCmd tea.Cmd
}

func newAppModel(deps Deps) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(home.Deps{
			Ledger:    deps.Ledger,
			EventRepo: deps.EventRepo,
			Generator: deps.Generator,
			Voice:     deps.Voice,
		})
	}

	var start screen.Screen
	if deps.Onboarded {
		start = homeFactory()
	} else {
		start = welcome.New(deps.Ledger, deps.Profile, homeFactory)
	}

	m := AppModel{
		router: router.New(start),
		ledger: deps.Ledger,
		clock:  player.NewClock(deps.Ledger),
	}

	if deps.StartPractice && deps.Onboarded {
		m.startCmd = func() tea.Msg {
			state := deps.Ledger.State()
			track, ok := curriculum.TrackByCode(state.CurrentTrack)
			if !ok {
				track = curriculum.Track{Code: state.CurrentTrack, Name: state.CurrentTrack}
			}
			return router.PushScreenMsg{
				Screen: sessionscreen.New(deps.Ledger, deps.EventRepo, deps.Generator, sessionscreen.Params{
					Kind:  sess.Practice,
					Track: track,
				}),
			}
		}
	}

	return m
}

func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	if m.startCmd != nil {
		cmds = append(cmds, m.startCmd)
	}
	cmds = append(cmds, heartTick())
	return tea.Batch(cmds...)
}

func heartTick() tea.Cmd {
	return tea.Tick(player.TickInterval, func(time.Time) tea.Msg {
		return heartTickMsg{}
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case heartTickMsg:
		m.clock.Tick()
		return m, heartTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The welcome flow runs full-bleed; everything else gets the
	// header with the hearts/gems/streak readout.
	if title == "" {
		v.SetContent(active.View(m.width, m.height))
		return v
	}

	state := m.ledger.State()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Hearts: state.Hearts,
		Gems:   state.Gems,
		Streak: state.Streak,
	}, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := active.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
