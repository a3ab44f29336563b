package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/curriculum"
	"github.com/abhisek/daylingo/internal/router"
	sessionscreen "github.com/abhisek/daylingo/internal/screens/session"
	sess "github.com/abhisek/daylingo/internal/session"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// JumpExamFee is the gem price of a level exam into a locked lesson.
const JumpExamFee = 50

type learnMode int

const (
	learnList learnMode = iota
	learnJumpConfirm
	learnCoursePicker
)

// learnTab renders the lesson path and starts lesson and jump sessions.
type learnTab struct {
	deps Deps

	track   curriculum.Track
	lessons []curriculum.Lesson
	cursor  int

	mode         learnMode
	courseCursor int
	notice       string
}

func newLearnTab(deps Deps) *learnTab {
	t := &learnTab{deps: deps}
	t.reload()
	return t
}

// reload rebuilds the path from the current profile. The cursor lands
// on the current unit so the next lesson is one keypress away.
func (t *learnTab) reload() {
	state := t.deps.Ledger.State()

	track := trackOrFallback(state.CurrentTrack)
	t.track = track

	prog := state.TrackProgressFor(track.Code)
	t.lessons = curriculum.WithStatus(curriculum.Generate(track.Code), curriculum.Progress{
		CompletedLessonIDs: prog.CompletedLessonIDs,
		CurrentUnit:        prog.CurrentUnit,
	})

	t.cursor = prog.CurrentUnit - 1
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(t.lessons) {
		t.cursor = len(t.lessons) - 1
	}
	t.notice = ""
}

func (t *learnTab) captures() bool {
	return t.mode != learnList
}

func (t *learnTab) keyHints() []layout.KeyHint {
	switch t.mode {
	case learnJumpConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Take the exam"},
			{Key: "N", Description: "Cancel"},
		}
	case learnCoursePicker:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose course"},
			{Key: "Enter", Description: "Switch"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Start lesson"},
			{Key: "C", Description: "Courses"},
		}
	}
}

func (t *learnTab) update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := kmsg.String()

	switch t.mode {
	case learnJumpConfirm:
		switch key {
		case "y", "Y":
			t.mode = learnList
			return t.startJumpExam()
		case "n", "N", "esc":
			t.mode = learnList
		}
		return nil

	case learnCoursePicker:
		catalog := curriculum.Tracks()
		switch key {
		case "up", "k":
			if t.courseCursor > 0 {
				t.courseCursor--
			}
		case "down", "j":
			if t.courseCursor < len(catalog)-1 {
				t.courseCursor++
			}
		case "enter":
			t.deps.Ledger.SwitchTrack(catalog[t.courseCursor].Code)
			t.mode = learnList
			t.reload()
		case "esc", "c":
			t.mode = learnList
		}
		return nil
	}

	t.notice = ""
	switch key {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(t.lessons)-1 {
			t.cursor++
		}
	case "c", "C":
		t.mode = learnCoursePicker
		t.courseCursor = 0
		for i, tr := range curriculum.Tracks() {
			if tr.Code == t.track.Code {
				t.courseCursor = i
			}
		}
	case "enter":
		return t.startSelected()
	}
	return nil
}

// startSelected begins a lesson, or prompts for a jump exam on a
// locked lesson.
func (t *learnTab) startSelected() tea.Cmd {
	if len(t.lessons) == 0 {
		return nil
	}
	lesson := t.lessons[t.cursor]
	state := t.deps.Ledger.State()

	if lesson.Locked {
		if state.Gems < JumpExamFee {
			t.notice = fmt.Sprintf("A level exam costs %d ◆ and you have %d.", JumpExamFee, state.Gems)
			return nil
		}
		t.mode = learnJumpConfirm
		return nil
	}

	if state.Hearts <= 0 {
		t.notice = "No hearts left. Practice to earn one back, or wait for a refill."
		return nil
	}

	deps := t.deps
	track := t.track
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(deps.Ledger, deps.EventRepo, deps.Generator, sessionscreen.Params{
				Kind:   sess.Lesson,
				Track:  track,
				Lesson: lesson,
			}),
		}
	}
}

// startJumpExam charges the fee and pushes the exam session. The fee
// comes back only if lesson generation fails.
func (t *learnTab) startJumpExam() tea.Cmd {
	lesson := t.lessons[t.cursor]
	t.deps.Ledger.ApplySectionJumpPurchase(JumpExamFee)

	deps := t.deps
	track := t.track
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(deps.Ledger, deps.EventRepo, deps.Generator, sessionscreen.Params{
				Kind:    sess.JumpExam,
				Track:   track,
				Lesson:  lesson,
				JumpFee: JumpExamFee,
			}),
		}
	}
}

func (t *learnTab) view(width, height int) string {
	switch t.mode {
	case learnJumpConfirm:
		return t.viewJumpConfirm(width, height)
	case learnCoursePicker:
		return t.viewCoursePicker(width, height)
	}

	var b strings.Builder

	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(t.track.Name)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, heading))
	b.WriteString("\n\n")

	mascotLines := 0
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		state := t.deps.Ledger.State()
		mascot := RenderMascot(mascotFor(state, time.Now().Format("2006-01-02")))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mascot))
		b.WriteString("\n\n")
		mascotLines = lipgloss.Height(mascot) + 2
	}

	if t.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(t.notice)))
		b.WriteString("\n\n")
	}

	// Window the path around the cursor.
	visible := height - 6 - mascotLines
	if visible < 5 {
		visible = 5
	}
	start := t.cursor - visible/2
	if start > len(t.lessons)-visible {
		start = len(t.lessons) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(t.lessons) {
		end = len(t.lessons)
	}

	for i := start; i < end; i++ {
		lesson := t.lessons[i]

		// Section header above the first lesson of each section.
		if lesson.Number()%curriculum.SectionSize == 1 {
			header := fmt.Sprintf("── %s ──", curriculum.SectionTitle(lesson.Number()))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(header)))
			b.WriteString("\n")
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			t.renderLesson(lesson, i == t.cursor)))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *learnTab) renderLesson(lesson curriculum.Lesson, focused bool) string {
	var marker string
	style := lipgloss.NewStyle().Foreground(theme.Text)

	switch {
	case lesson.Completed:
		marker = "✓"
		style = style.Foreground(theme.Success)
	case lesson.Locked:
		marker = "🔒"
		style = style.Foreground(theme.TextDim)
	default:
		marker = "○"
	}

	prefix := "  "
	if focused {
		prefix = "▸ "
		style = style.Bold(true)
		if !lesson.Locked {
			style = style.Foreground(theme.Primary)
		}
	}

	line := fmt.Sprintf("%s%s %-12s %s", prefix, marker, lesson.Title, lesson.Description)
	return style.Render(line)
}

func (t *learnTab) viewJumpConfirm(width, height int) string {
	lesson := t.lessons[t.cursor]
	content := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Jump to %s?", lesson.Title)) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Pass a level exam to unlock everything up to here.\nCosts %d ◆, refunded if the exam cannot start.  [y/n]", JumpExamFee))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (t *learnTab) viewCoursePicker(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Switch course"))
	b.WriteString("\n\n")

	for i, tr := range curriculum.Tracks() {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == t.courseCursor {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if tr.Code == t.track.Code {
			style = style.Underline(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-14s %s", prefix, tr.Name, tr.Code)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
