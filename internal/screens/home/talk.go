package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/speech"
	"github.com/abhisek/daylingo/internal/ui/components"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// chatReplyMsg delivers the mascot's answer to a chat turn.
type chatReplyMsg struct {
	Reply speech.Reply
	Err   error
}

// talkTab is a text conversation with Capitán Gemi in the current
// course language.
type talkTab struct {
	deps Deps

	history []speech.Message
	input   components.TextInput
	focused bool
	busy    bool
	errMsg  string
}

func newTalkTab(deps Deps) *talkTab {
	return &talkTab{
		deps:  deps,
		input: components.NewTextInput("Say something...", false, 120),
	}
}

func (t *talkTab) captures() bool {
	return t.focused
}

func (t *talkTab) keyHints() []layout.KeyHint {
	if t.deps.Voice == nil {
		return nil
	}
	if t.focused {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Done typing"},
		}
	}
	return []layout.KeyHint{
		{Key: "I", Description: "Compose"},
	}
}

func (t *talkTab) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case chatReplyMsg:
		t.busy = false
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return nil
		}
		t.history = append(t.history, speech.Message{Role: speech.RoleModel, Text: msg.Reply.Text})
		return nil

	case tea.KeyMsg:
		if t.deps.Voice == nil {
			return nil
		}
		key := msg.String()

		if !t.focused {
			if key == "i" || key == "enter" {
				t.focused = true
				return t.input.Init()
			}
			return nil
		}

		switch key {
		case "esc":
			t.focused = false
			return nil
		case "enter":
			return t.send()
		}
	}

	if t.focused {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	return nil
}

// send dispatches the typed turn. History is captured before the async
// call so a later edit cannot race it.
func (t *talkTab) send() tea.Cmd {
	text := strings.TrimSpace(t.input.Value())
	if text == "" || t.busy {
		return nil
	}

	t.history = append(t.history, speech.Message{Role: speech.RoleUser, Text: text})
	t.input = components.NewTextInput("Say something...", false, 120)
	t.busy = true
	t.errMsg = ""

	state := t.deps.Ledger.State()
	voice := t.deps.Voice
	history := append([]speech.Message(nil), t.history...)
	target := state.CurrentTrack
	source := state.SourceTrack

	return tea.Batch(t.input.Init(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		reply, err := voice.Chat(ctx, history[:len(history)-1], target, source, text)
		return chatReplyMsg{Reply: reply, Err: err}
	})
}

func (t *talkTab) view(width, height int) string {
	if t.deps.Voice == nil {
		content := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Align(lipgloss.Center).
			Render("Talking to Capitán Gemi needs a Gemini API key.\nSet GEMINI_API_KEY and restart.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Capitán Gemi")))
	b.WriteString("\n\n")

	// Last turns, newest at the bottom.
	turns := t.history
	maxTurns := (height - 8) / 2
	if maxTurns > 0 && len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	for _, m := range turns {
		var line string
		if m.Role == speech.RoleUser {
			line = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Render(m.Text)
		} else {
			line = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Gemi: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Render(m.Text)
		}
		b.WriteString("  " + line + "\n")
	}

	if t.busy {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Gemi is thinking...") + "\n")
	}
	if t.errMsg != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Render(t.errMsg) + "\n")
	}

	b.WriteString("\n  > " + t.input.View())

	return b.String()
}
