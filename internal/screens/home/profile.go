package home

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/ui/components"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// avatarChoices is the emoji cycle offered on the profile tab.
var avatarChoices = []string{"🤠", "🦉", "🐸", "🐼", "🦊", "🐙", "🤖", "👽"}

// profileTab shows the learner profile and edits name and avatar.
type profileTab struct {
	deps Deps

	editing bool
	input   components.TextInput
}

func newProfileTab(deps Deps) *profileTab {
	return &profileTab{deps: deps}
}

func (t *profileTab) captures() bool {
	return t.editing
}

func (t *profileTab) keyHints() []layout.KeyHint {
	if t.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save name"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Edit name"},
		{Key: "A", Description: "Change avatar"},
	}
}

func (t *profileTab) update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if t.editing {
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return cmd
		}
		return nil
	}
	key := kmsg.String()

	if t.editing {
		switch key {
		case "enter":
			name := strings.TrimSpace(t.input.Value())
			if name != "" {
				state := t.deps.Ledger.State()
				t.deps.Ledger.ApplyProfileEdit(name, state.Avatar)
			}
			t.editing = false
		case "esc":
			t.editing = false
		default:
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(tea.Msg(kmsg))
			return cmd
		}
		return nil
	}

	switch key {
	case "e", "E":
		t.editing = true
		t.input = components.NewTextInput("Your name...", false, 24)
		t.input.Model.SetValue(t.deps.Ledger.State().Name)
		return t.input.Init()
	case "a", "A":
		t.cycleAvatar()
	}
	return nil
}

// cycleAvatar advances to the next emoji in the choice list.
func (t *profileTab) cycleAvatar() {
	state := t.deps.Ledger.State()
	next := avatarChoices[0]
	for i, glyph := range avatarChoices {
		if state.Avatar.Kind == player.AvatarEmoji && state.Avatar.Emoji == glyph {
			next = avatarChoices[(i+1)%len(avatarChoices)]
			break
		}
	}
	t.deps.Ledger.ApplyProfileEdit(state.Name, player.EmojiAvatar(next))
}

func (t *profileTab) view(width, height int) string {
	state := t.deps.Ledger.State()

	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(state.Avatar.Display())))
	b.WriteString("\n")

	name := state.Name
	if t.editing {
		name = t.input.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name)))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"League", string(state.League)},
		{"Total XP", fmt.Sprintf("%d", state.TotalXP())},
		{"Streak", fmt.Sprintf("%d days", state.Streak)},
		{"Gems", fmt.Sprintf("%d ◆", state.Gems)},
		{"Hearts", fmt.Sprintf("%d / %d ♥", state.Hearts, player.MaxHearts)},
		{"Course", state.CurrentTrack},
	}

	for _, row := range rows {
		line := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-10s", row.label)) +
			lipgloss.NewStyle().Foreground(theme.Text).Render(row.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	// Per-course progress.
	if len(state.Progress) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Courses")))
		b.WriteString("\n")
		tracks := make([]string, 0, len(state.Progress))
		for track := range state.Progress {
			tracks = append(tracks, track)
		}
		sort.Strings(tracks)
		for _, track := range tracks {
			prog := state.Progress[track]
			line := fmt.Sprintf("%-12s unit %-2d  %d lessons  %d XP",
				track, prog.CurrentUnit, len(prog.CompletedLessonIDs), prog.XP)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
