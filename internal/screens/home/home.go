package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/daylingo/internal/content"
	"github.com/abhisek/daylingo/internal/curriculum"
	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/screen"
	"github.com/abhisek/daylingo/internal/speech"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/abhisek/daylingo/internal/ui/layout"
	"github.com/abhisek/daylingo/internal/ui/theme"
)

// Deps is everything the home tabs need to do their work. Voice is nil
// when no speech API key is configured.
type Deps struct {
	Ledger    *player.Ledger
	EventRepo store.EventRepo
	Generator *content.Service
	Voice     *speech.Client
}

// Tab indexes the four home tabs.
type Tab int

const (
	TabLearn Tab = iota
	TabReview
	TabTalk
	TabProfile
)

var tabNames = []string{"Learn", "Review", "Talk", "Profile"}

// HomeScreen hosts the tab bar and delegates to the active tab.
type HomeScreen struct {
	deps Deps
	tab  Tab

	learn   *learnTab
	review  *reviewTab
	talk    *talkTab
	profile *profileTab
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen with all four tabs.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{
		deps:    deps,
		learn:   newLearnTab(deps),
		review:  newReviewTab(deps),
		talk:    newTalkTab(deps),
		profile: newProfileTab(deps),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.review.refresh()
}

func (h *HomeScreen) Title() string {
	return tabNames[h.tab]
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	switch h.tab {
	case TabLearn:
		hints = append(hints, h.learn.keyHints()...)
	case TabReview:
		hints = append(hints, h.review.keyHints()...)
	case TabTalk:
		hints = append(hints, h.talk.keyHints()...)
	case TabProfile:
		hints = append(hints, h.profile.keyHints()...)
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	return hints
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Tab switching only when no tab holds a text input or overlay.
	if kmsg, ok := msg.(tea.KeyMsg); ok && !h.activeTabCaptures() {
		switch kmsg.String() {
		case "tab":
			h.tab = (h.tab + 1) % Tab(len(tabNames))
			return h, h.enterTab()
		case "shift+tab":
			h.tab = (h.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
			return h, h.enterTab()
		case "1", "2", "3", "4":
			h.tab = Tab(int(kmsg.String()[0] - '1'))
			return h, h.enterTab()
		}
	}

	var cmd tea.Cmd
	switch h.tab {
	case TabLearn:
		cmd = h.learn.update(msg)
	case TabReview:
		cmd = h.review.update(msg)
	case TabTalk:
		cmd = h.talk.update(msg)
	case TabProfile:
		cmd = h.profile.update(msg)
	}
	return h, cmd
}

// enterTab refreshes data a tab shows when it becomes active.
func (h *HomeScreen) enterTab() tea.Cmd {
	switch h.tab {
	case TabLearn:
		h.learn.reload()
	case TabReview:
		return h.review.refresh()
	}
	return nil
}

// activeTabCaptures reports whether the active tab owns raw key input,
// so the host must not steal Tab or digit keys.
func (h *HomeScreen) activeTabCaptures() bool {
	switch h.tab {
	case TabLearn:
		return h.learn.captures()
	case TabTalk:
		return h.talk.captures()
	case TabProfile:
		return h.profile.captures()
	}
	return false
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(renderTabBar(h.tab, width))
	b.WriteString("\n\n")

	body := ""
	bodyHeight := height - 3
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	switch h.tab {
	case TabLearn:
		body = h.learn.view(width, bodyHeight)
	case TabReview:
		body = h.review.view(width, bodyHeight)
	case TabTalk:
		body = h.talk.view(width, bodyHeight)
	case TabProfile:
		body = h.profile.view(width, bodyHeight)
	}
	b.WriteString(body)

	return b.String()
}

// trackOrFallback resolves a stored track code against the catalog so a
// profile written by a newer build still renders.
func trackOrFallback(code string) curriculum.Track {
	if track, ok := curriculum.TrackByCode(code); ok {
		return track
	}
	return curriculum.Track{Code: code, Name: code}
}

func renderTabBar(active Tab, width int) string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := " " + name + " "
		if Tab(i) == active {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(label))
		}
	}
	bar := strings.Join(parts, "  ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
