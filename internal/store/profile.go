package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/daylingo/internal/player"
)

const (
	profileKey   = "daylingo_user"
	onboardedKey = "daylingo_onboarded"
)

// ProfileRepo stores the single learner profile. It satisfies
// player.Saver so the ledger can write through on every transaction.
type ProfileRepo struct {
	db *sql.DB
}

// LoadOrDefault reads the stored profile. A missing record returns the
// default profile; a corrupt record is reported on stderr and replaced
// by defaults rather than failing startup. Fields absent from the
// stored record keep their default values.
func (r *ProfileRepo) LoadOrDefault(ctx context.Context) (player.State, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, profileKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return player.DefaultState(), nil
	}
	if err != nil {
		return player.State{}, fmt.Errorf("load profile: %w", err)
	}

	state := player.DefaultState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored profile is corrupt, starting fresh: %v\n", err)
		return player.DefaultState(), nil
	}
	if state.Progress == nil {
		state.Progress = map[string]player.TrackProgress{}
	}
	return state, nil
}

// SaveProfile upserts the profile record.
func (r *ProfileRepo) SaveProfile(ctx context.Context, s player.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		profileKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Reset deletes the stored profile and the onboarding flag.
func (r *ProfileRepo) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM kv WHERE key IN (?, ?)`, profileKey, onboardedKey)
	if err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}

// HasOnboarded reports whether the welcome flow has been completed.
func (r *ProfileRepo) HasOnboarded(ctx context.Context) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, onboardedKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load onboarding flag: %w", err)
	}
	return raw == "true", nil
}

// SetOnboarded marks the welcome flow as completed.
func (r *ProfileRepo) SetOnboarded(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, 'true', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		onboardedKey, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set onboarding flag: %w", err)
	}
	return nil
}
