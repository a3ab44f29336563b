package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionEventData records one finished exercise session.
type SessionEventData struct {
	Kind     string
	Track    string
	LessonID string
	Total    int
	Correct  int
	Accuracy int
	XP       int
}

// SessionEvent is a stored session record.
type SessionEvent struct {
	ID        int64
	Kind      string
	Track     string
	LessonID  string
	Total     int
	Correct   int
	Accuracy  int
	XP        int
	CreatedAt time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMTotals aggregates the LLM event log for the stats screen.
type LLMTotals struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// ModelUsage aggregates LLM requests for one model, for cost reporting.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSession records a finished exercise session.
	AppendSession(ctx context.Context, data SessionEventData) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMTotals aggregates all recorded LLM requests.
	LLMTotals(ctx context.Context) (LLMTotals, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (kind, track, lesson_id, total, correct, accuracy, xp, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Kind, data.Track, data.LessonID, data.Total, data.Correct,
		data.Accuracy, data.XP, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, track, lesson_id, total, correct, accuracy, xp, created_at
		 FROM session_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.Track, &e.LessonID,
			&e.Total, &e.Correct, &e.Accuracy, &e.XP, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMTotals(ctx context.Context) (LLMTotals, error) {
	var t LLMTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0)
		 FROM llm_events`).
		Scan(&t.Requests, &t.Failures, &t.InputTokens, &t.OutputTokens)
	if err != nil {
		return LLMTotals{}, fmt.Errorf("aggregate LLM events: %w", err)
	}
	return t, nil
}

// LLMUsageByModel groups recorded requests per model. It lives on Store
// rather than EventRepo because only the CLI cost report needs it.
func (s *Store) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		 FROM llm_events GROUP BY model ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query model usage: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
