package player

import "time"

// MaxHearts is the heart cap. A full learner holds exactly this many.
const MaxHearts = 5

// League tiers, derived from lifetime XP across all tracks.
type League string

const (
	LeagueBronze  League = "bronze"
	LeagueSilver  League = "silver"
	LeagueGold    League = "gold"
	LeagueDiamond League = "diamond"
)

// leagueThresholds maps the minimum lifetime XP for each tier above bronze.
var leagueThresholds = []struct {
	XP     int
	League League
}{
	{2000, LeagueDiamond},
	{750, LeagueGold},
	{200, LeagueSilver},
}

// TrackProgress is the per-track slice of durable progress.
type TrackProgress struct {
	XP                 int      `json:"xp"`
	CompletedLessonIDs []string `json:"completed_lesson_ids"`
	CurrentUnit        int      `json:"current_unit"`
}

// Completed reports whether the given lesson ID is in the completed set.
func (p TrackProgress) Completed(lessonID string) bool {
	for _, id := range p.CompletedLessonIDs {
		if id == lessonID {
			return true
		}
	}
	return false
}

// State is the root learner aggregate. It is owned by the Ledger and
// mutated only through Ledger transactions; everything else sees copies.
type State struct {
	Name   string `json:"name"`
	Avatar Avatar `json:"avatar"`

	Hearts            int        `json:"hearts"`
	NextHeartRefillAt *time.Time `json:"next_heart_refill_at,omitempty"`
	Gems              int        `json:"gems"`
	Streak            int        `json:"streak"`
	LastLessonDate    string     `json:"last_lesson_date"` // YYYY-MM-DD, "" before first session

	CurrentTrack string                   `json:"current_track"`
	SourceTrack  string                   `json:"source_track"`
	Progress     map[string]TrackProgress `json:"progress"`

	// WeakWords is append-only and keeps duplicates: repeat misses are a
	// frequency signal, de-duplicated only at display time.
	WeakWords []string `json:"weak_words"`

	League League `json:"league"`
}

// DefaultState returns a fresh learner profile.
func DefaultState() State {
	return State{
		Name:         "Estudiante",
		Avatar:       EmojiAvatar("🤠"),
		Hearts:       MaxHearts,
		Gems:         100,
		CurrentTrack: "English",
		SourceTrack:  "Spanish",
		Progress:     map[string]TrackProgress{},
		League:       LeagueBronze,
	}
}

// TrackProgressFor returns the progress for a track, or the zero progress
// (unit 1, no XP) when the learner has never touched it.
func (s State) TrackProgressFor(track string) TrackProgress {
	if p, ok := s.Progress[track]; ok {
		return p
	}
	return TrackProgress{CurrentUnit: 1}
}

// TotalXP sums XP across all tracks.
func (s State) TotalXP() int {
	total := 0
	for _, p := range s.Progress {
		total += p.XP
	}
	return total
}

// leagueFor derives the league tier from lifetime XP.
func leagueFor(totalXP int) League {
	for _, t := range leagueThresholds {
		if totalXP >= t.XP {
			return t.League
		}
	}
	return LeagueBronze
}

// clone returns a deep copy safe to hand outside the Ledger's lock.
func (s State) clone() State {
	out := s
	if s.NextHeartRefillAt != nil {
		t := *s.NextHeartRefillAt
		out.NextHeartRefillAt = &t
	}
	out.Progress = make(map[string]TrackProgress, len(s.Progress))
	for track, p := range s.Progress {
		cp := p
		cp.CompletedLessonIDs = append([]string(nil), p.CompletedLessonIDs...)
		out.Progress[track] = cp
	}
	out.WeakWords = append([]string(nil), s.WeakWords...)
	return out
}
