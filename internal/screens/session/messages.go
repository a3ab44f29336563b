package session

import (
	"time"

	sess "github.com/abhisek/daylingo/internal/session"
)

// lessonReadyMsg is sent when the exercise batch has been generated.
type lessonReadyMsg struct {
	Exercises []sess.Exercise
	Err       error
}

// spinnerTickMsg animates the loading spinner while generating.
type spinnerTickMsg time.Time

// flashClearMsg reverts a matching mismatch flash. Epoch guards against
// a stale tick arriving after the learner moved on.
type flashClearMsg struct {
	Epoch int64
}
