package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default green
	MascotCelebrating                      // Gold, star eyes: streak kept today
	MascotAlert                            // Red, exclamation: out of hearts
)

const mascotIdle = `╭─────╮
│ ◉ ◉ │
│  ▾  │
│ ≋≋≋ │
╰─────╯`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ▿  │
│ ≋≋≋ │
╰─╥═╥─╯
  ╚═╝`

const mascotAlert = `╭─────╮
│ ◉ ◉ │ !
│  ▽  │
│ ≋≋≋ │
╰─────╯`

// mascotFor picks the variant from the learner state.
func mascotFor(s player.State, today string) MascotVariant {
	if s.Hearts <= 0 {
		return MascotAlert
	}
	if s.Streak > 0 && s.LastLessonDate == today {
		return MascotCelebrating
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotAlert:
		art = mascotAlert
		fg = theme.Error
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
