package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/router"
	"github.com/abhisek/daylingo/internal/screen"
	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// Stats is everything the summary shows about a finished session.
type Stats struct {
	Kind     sess.Kind
	Total    int
	Correct  int
	Mistakes []string
	Result   player.Result
}

// SummaryScreen displays the session results.
type SummaryScreen struct {
	stats Stats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(stats Stats) *SummaryScreen {
	return &SummaryScreen{stats: stats}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.stats

	var b strings.Builder

	headline := "Lesson complete!"
	switch st.Kind {
	case sess.Practice:
		headline = "Practice complete!"
	case sess.JumpExam:
		if st.Result.Accuracy >= 80 {
			headline = "Exam passed!"
		} else {
			headline = "Exam failed"
		}
	}

	headStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true)
	if st.Kind == sess.JumpExam && st.Result.Accuracy < 80 {
		headStyle = headStyle.Foreground(theme.Error)
	}
	b.WriteString(headStyle.Render(headline))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %d%%",
		st.Correct, st.Total, st.Result.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// Rewards.
	rewards := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d XP", st.Result.XP)),
	}
	if st.Result.GemsEarned > 0 {
		rewards = append(rewards,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("+%d ◆", st.Result.GemsEarned)))
	}
	if st.Result.EarnedHeart {
		rewards = append(rewards,
			lipgloss.NewStyle().Foreground(theme.Heart).Render("+1 ♥"))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		strings.Join(rewards, "      ")))
	b.WriteString("\n\n")

	// Words to review.
	if len(st.Mistakes) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Words to review")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, w := range uniqueMistakes(st.Mistakes) {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(w)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// uniqueMistakes de-duplicates for display while the profile keeps the
// full repeat history.
func uniqueMistakes(words []string) []string {
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

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
