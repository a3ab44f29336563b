package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	sessionscreen "github.com/abhisek/daylingo/internal/screens/session"
	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// recentSessionsMsg delivers the session history for the review tab.
type recentSessionsMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

// reviewTab offers practice sessions and shows what needs reviewing.
type reviewTab struct {
	deps Deps

	recent []store.SessionEvent
	loaded bool
}

func newReviewTab(deps Deps) *reviewTab {
	return &reviewTab{deps: deps}
}

func (t *reviewTab) keyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start practice"},
	}
}

// refresh reloads the recent session list.
func (t *reviewTab) refresh() tea.Cmd {
	repo := t.deps.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), 5)
		return recentSessionsMsg{Sessions: sessions, Err: err}
	}
}

func (t *reviewTab) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recentSessionsMsg:
		t.loaded = true
		if msg.Err == nil {
			t.recent = msg.Sessions
		}
		return nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return t.startPractice()
		}
	}
	return nil
}

// startPractice pushes a practice session. Practice stays available at
// zero hearts: it is the way to earn one back.
func (t *reviewTab) startPractice() tea.Cmd {
	deps := t.deps
	state := deps.Ledger.State()
	track := trackOrFallback(state.CurrentTrack)

	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(deps.Ledger, deps.EventRepo, deps.Generator, sessionscreen.Params{
				Kind:  sess.Practice,
				Track: track,
			}),
		}
	}
}

func (t *reviewTab) view(width, height int) string {
	state := t.deps.Ledger.State()

	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Practice")))
	b.WriteString("\n\n")

	blurb := "A short review session. Score 80% or better\nwith missing hearts and you earn one back."
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Align(lipgloss.Center).Render(blurb)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.ButtonActive.Render("▸ Start practice")))
	b.WriteString("\n\n")

	// Heart refill countdown.
	if wait := player.TimeToNextHeart(state, time.Now()); wait > 0 {
		mins := int(wait.Minutes())
		secs := int(wait.Seconds()) % 60
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Heart).
				Render(fmt.Sprintf("♥ next heart in %d:%02d", mins, secs))))
		b.WriteString("\n\n")
	}

	// Weak words, deduplicated for display.
	if words := uniqueWords(state.WeakWords); len(words) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Words you keep missing")))
		b.WriteString("\n")
		shown := words
		if len(shown) > 8 {
			shown = shown[:8]
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Join(shown, "  ·  "))))
		b.WriteString("\n\n")
	}

	// Recent sessions.
	if len(t.recent) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent sessions")))
		b.WriteString("\n")
		for _, ev := range t.recent {
			line := fmt.Sprintf("%-9s %-10s %2d/%-2d  %3d%%  +%d XP",
				ev.Kind, ev.Track, ev.Correct, ev.Total, ev.Accuracy, ev.XP)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// uniqueWords keeps first occurrences, newest-miss order preserved.
func uniqueWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
