package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/ui/components"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.outOfHearts {
		return renderOutOfHearts(width, height)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.loading || s.machine == nil {
		return s.renderLoading(width, height)
	}
	return s.renderExercise(width, height)
}

func (s *SessionScreen) renderLoading(width, height int) string {
	frame := spinnerFrames[s.spinnerTick%len(spinnerFrames)]
	msg := lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Preparing your lesson...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func renderError(width, height int, errMsg string) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Could not start the session") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(errMsg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderOutOfHearts(width, height int) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Heart).
		Bold(true).
		Render("♥ You ran out of hearts!") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Hearts refill over time, or earn one\nback with a practice session.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderQuitConfirm(width, height int) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Progress in this lesson will be lost.  [y/n]")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SessionScreen) renderExercise(width, height int) string {
	m := s.machine
	ex := m.Current()

	var b strings.Builder

	// Progress bar across the top.
	percent := float64(m.Index()) / float64(m.Len())
	bar := components.NewProgressBar("", percent, false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d / %d", m.Index()+1, m.Len()))
	b.WriteString(counter)
	b.WriteString("\n\n")

	// Question.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(questionLabel(ex)))
	b.WriteString("\n\n")

	switch {
	case ex.Type == sess.TypeMultipleChoice:
		b.WriteString(s.renderChoices(width, ex))
	case ex.Type == sess.TypeMatching:
		b.WriteString(s.renderBoard(width))
	case ex.Type == sess.TypePronunciation:
		b.WriteString(s.renderPronunciation(width, ex))
	case ex.UsesWordBank():
		b.WriteString(s.renderWordBank(width))
	default:
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
	}

	if m.Status() != sess.StatusIdle {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width, ex))
	}

	return b.String()
}

// questionLabel prefixes the question with what the learner has to do.
func questionLabel(ex sess.Exercise) string {
	switch ex.Type {
	case sess.TypeListening:
		return "🔊 " + ex.Question
	case sess.TypePronunciation:
		return "Say: " + ex.Question
	default:
		return ex.Question
	}
}

func (s *SessionScreen) renderChoices(width int, ex sess.Exercise) string {
	var b strings.Builder
	for i, opt := range ex.Options {
		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		if i == s.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *SessionScreen) renderWordBank(width int) string {
	var b strings.Builder

	assembled := s.machine.AssembledWords()
	slots := lipgloss.NewStyle().Foreground(theme.TextDim).Render("…")
	if len(assembled) > 0 {
		slots = lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(strings.Join(assembled, " "))
	}
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(slots))
	b.WriteString("\n\n")

	var tiles []string
	for i, w := range s.machine.AvailableWords() {
		tile := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Foreground(theme.Text).
			Padding(0, 1).
			Render(fmt.Sprintf("%d %s", i+1, w))
		tiles = append(tiles, tile)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *SessionScreen) renderBoard(width int) string {
	board := s.machine.Board()
	if board == nil {
		return ""
	}
	cards := board.Cards()
	half := (len(cards) + 1) / 2

	var left, right []string
	for i, c := range cards {
		rendered := s.renderCard(c, i == s.cursor)
		if i < half {
			left = append(left, rendered)
		} else {
			right = append(right, rendered)
		}
	}

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, cols)
}

func (s *SessionScreen) renderCard(c sess.Card, focused bool) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(16)

	switch c.State {
	case sess.CardMatched:
		style = style.
			BorderForeground(theme.Border).
			Foreground(theme.TextDim)
	case sess.CardSelected:
		style = style.
			BorderForeground(theme.Secondary).
			Foreground(theme.Secondary).
			Bold(true)
	case sess.CardError:
		style = style.
			BorderForeground(theme.Error).
			Foreground(theme.Error)
	default:
		style = style.
			BorderForeground(theme.Border).
			Foreground(theme.Text)
	}
	if focused {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(c.Text)
}

func (s *SessionScreen) renderPronunciation(width int, ex sess.Exercise) string {
	content := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(ex.CorrectAnswer) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("No microphone here. Press S to skip; skips never cost a heart.")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *SessionScreen) renderFeedback(width int, ex sess.Exercise) string {
	var banner string
	switch s.machine.Status() {
	case sess.StatusCorrect:
		banner = lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!")
	case sess.StatusSkipped:
		banner = lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("Skipped")
	default:
		banner = lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite") +
			"\n" +
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", ex.CorrectAnswer))
	}

	if ex.Tip != "" {
		banner += "\n" + lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true).
			Render("Tip: "+ex.Tip)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(banner)
}
