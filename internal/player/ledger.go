package player

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"
)

// SessionKind distinguishes the three entry modes of a session.
type SessionKind string

const (
	KindLesson   SessionKind = "lesson"
	KindPractice SessionKind = "practice"
	KindJumpExam SessionKind = "jump"
)

// passAccuracy is the accuracy (percent) needed for a practice heart or a
// jump-exam pass.
const passAccuracy = 80

// Completion is the event payload a finished session hands to the Ledger.
type Completion struct {
	Kind     SessionKind
	Track    string
	LessonID string // target lesson ordinal; empty for practice
	Total    int
	Correct  int
	Mistakes []string
}

// Result is what the summary screen shows. Created once, then discarded.
type Result struct {
	XP          int
	Accuracy    int
	EarnedHeart bool
	GemsEarned  int
}

// Saver persists the profile after each transaction. Write failures are
// logged and dropped; they never abort a transaction.
type Saver interface {
	SaveProfile(ctx context.Context, s State) error
}

// Ledger is the single owner of learner State. All mutation goes through
// its transaction methods, each of which transforms the current value
// under the lock and then writes through to the Saver — a background
// refill tick and a user-triggered transaction can interleave but never
// clobber each other.
type Ledger struct {
	mu    sync.Mutex
	state State
	saver Saver
	now   func() time.Time
}

// NewLedger creates a Ledger around an initial state.
func NewLedger(initial State, saver Saver) *Ledger {
	if initial.Progress == nil {
		initial.Progress = map[string]TrackProgress{}
	}
	return &Ledger{state: initial, saver: saver, now: time.Now}
}

// State returns a deep copy of the current state.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// update runs a transaction and writes the result through to the Saver.
// The write-through happens under the same lock so concurrent
// transactions can never persist out of order.
func (l *Ledger) update(fn func(*State)) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(&l.state)
	out := l.state.clone()

	if l.saver != nil {
		if err := l.saver.SaveProfile(context.Background(), out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save profile: %v\n", err)
		}
	}
	return out
}

// ApplySessionCompletion is the central transaction: scoring, gems,
// streak, weak words, and curriculum advancement in one atomic step.
func (l *Ledger) ApplySessionCompletion(c Completion) Result {
	var res Result
	l.update(func(s *State) {
		accuracy := 0
		if c.Total > 0 {
			accuracy = int(math.Round(100 * float64(c.Correct) / float64(c.Total)))
		}
		xp := 10 * c.Correct
		if accuracy == 100 {
			xp += 5
		}

		earnedHeart := c.Kind == KindPractice && accuracy >= passAccuracy && s.Hearts < MaxHearts
		if earnedHeart {
			s.Hearts++
			if s.Hearts >= MaxHearts {
				s.NextHeartRefillAt = nil
			}
		}

		gems := c.Correct / 2
		s.Gems += gems

		prog := s.TrackProgressFor(c.Track)
		prog.XP += xp

		switch c.Kind {
		case KindJumpExam:
			if accuracy >= passAccuracy {
				if target, err := strconv.Atoi(c.LessonID); err == nil {
					for i := 1; i <= target; i++ {
						id := strconv.Itoa(i)
						if !prog.Completed(id) {
							prog.CompletedLessonIDs = append(prog.CompletedLessonIDs, id)
						}
					}
					if target+1 > prog.CurrentUnit {
						prog.CurrentUnit = target + 1
					}
				}
			}
			// A failed exam changes nothing; the gem spend stays spent.
		case KindLesson:
			if !prog.Completed(c.LessonID) {
				prog.CompletedLessonIDs = append(prog.CompletedLessonIDs, c.LessonID)
			}
			if n, err := strconv.Atoi(c.LessonID); err == nil && n >= prog.CurrentUnit {
				prog.CurrentUnit = n + 1
			}
		case KindPractice:
			// Practice never advances the curriculum.
		}
		s.Progress[c.Track] = prog

		today := dateKey(l.now())
		if s.LastLessonDate != today {
			yesterday := dateKey(l.now().AddDate(0, 0, -1))
			switch {
			case s.LastLessonDate == yesterday || s.Streak == 0:
				s.Streak++
			default:
				s.Streak = 1
			}
		}
		s.LastLessonDate = today

		// Practice drills the existing weak words; only lessons and
		// exams feed new ones.
		if c.Kind != KindPractice {
			s.WeakWords = append(s.WeakWords, c.Mistakes...)
		}
		s.League = leagueFor(s.TotalXP())

		res = Result{XP: xp, Accuracy: accuracy, EarnedHeart: earnedHeart, GemsEarned: gems}
	})
	return res
}

// ApplyHeartLoss removes one heart (floor 0) and arms the refill timer if
// it is not already running.
func (l *Ledger) ApplyHeartLoss() State {
	return l.update(func(s *State) {
		if s.Hearts > 0 {
			s.Hearts--
		}
		if s.Hearts < MaxHearts && s.NextHeartRefillAt == nil {
			t := l.now().Add(RefillPeriod)
			s.NextHeartRefillAt = &t
		}
	})
}

// ApplyHeartGain adds one heart (cap MaxHearts), clearing the refill
// timer when the cap is reached.
func (l *Ledger) ApplyHeartGain() State {
	return l.update(func(s *State) {
		if s.Hearts < MaxHearts {
			s.Hearts++
		}
		if s.Hearts >= MaxHearts {
			s.NextHeartRefillAt = nil
		}
	})
}

// ApplyRefillTick advances the heart regeneration clock by one observed
// tick. At most one heart is restored per call; a long suspension catches
// up one heart per subsequent tick rather than in a burst. Returns true
// when a heart was restored.
func (l *Ledger) ApplyRefillTick(now time.Time) bool {
	restored := false
	l.update(func(s *State) {
		switch {
		case s.Hearts >= MaxHearts:
			s.NextHeartRefillAt = nil
		case s.NextHeartRefillAt == nil:
			t := now.Add(RefillPeriod)
			s.NextHeartRefillAt = &t
		case !now.Before(*s.NextHeartRefillAt):
			s.Hearts++
			restored = true
			if s.Hearts < MaxHearts {
				t := now.Add(RefillPeriod)
				s.NextHeartRefillAt = &t
			} else {
				s.NextHeartRefillAt = nil
			}
		}
	})
	return restored
}

// ApplyProfileEdit replaces the learner's name and avatar verbatim.
func (l *Ledger) ApplyProfileEdit(name string, avatar Avatar) State {
	return l.update(func(s *State) {
		s.Name = name
		s.Avatar = avatar
	})
}

// ApplySectionJumpPurchase deducts the exam fee. Callers must pre-check
// sufficiency; spending below zero is a caller bug, not a ledger error.
func (l *Ledger) ApplySectionJumpPurchase(cost int) State {
	return l.update(func(s *State) {
		s.Gems -= cost
	})
}

// RefundSectionJump returns the exam fee after a generation failure.
func (l *Ledger) RefundSectionJump(cost int) State {
	return l.update(func(s *State) {
		s.Gems += cost
	})
}

// SwitchTrack changes the active subject track.
func (l *Ledger) SwitchTrack(track string) State {
	return l.update(func(s *State) {
		s.CurrentTrack = track
	})
}

// dateKey formats a timestamp as the YYYY-MM-DD streak key.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
