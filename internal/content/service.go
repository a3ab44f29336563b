// Package content turns a lesson topic into a playable exercise batch
// through an LLM provider.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/abhisek/daylingo/internal/llm"
	"github.com/abhisek/daylingo/internal/session"
	"github.com/google/uuid"
)

// ErrGeneration wraps any provider or decode fault. Callers use it to
// decide whether a jump-exam fee should be refunded.
var ErrGeneration = errors.New("lesson generation failed")

// BatchSize is the number of exercises in every generated lesson.
const BatchSize = 8

// Input describes one lesson request. Target and Source are track
// codes; Level is a CEFR label defaulting to A1.
type Input struct {
	Topic     string
	Target    string
	Source    string
	Level     string
	WeakWords []string
}

func (in Input) level() string {
	if in.Level == "" {
		return "A1"
	}
	return in.Level
}

// Service generates lessons through a Provider.
type Service struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
	rng         *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects a deterministic option shuffler for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider:    provider,
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// lessonOutput is the raw wire shape before exercises are finalized.
type lessonOutput struct {
	Exercises []struct {
		Type          string         `json:"type"`
		Question      string         `json:"question"`
		CorrectAnswer string         `json:"correctAnswer"`
		Options       []string       `json:"options"`
		Pairs         []session.Pair `json:"pairs"`
		Tip           string         `json:"tip"`
	} `json:"exercises"`
}

// GenerateLesson requests one exercise batch. Multiple choice
// exercises that arrive without options get a filler option set, and
// every option list is shuffled so the correct answer's position
// carries no signal.
func (s *Service) GenerateLesson(ctx context.Context, in Input) ([]session.Exercise, error) {
	ctx = llm.WithPurpose(ctx, "lesson-gen")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(in)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var raw lessonOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrGeneration, err)
	}
	if len(raw.Exercises) == 0 {
		return nil, fmt.Errorf("%w: empty exercise batch", ErrGeneration)
	}

	exercises := make([]session.Exercise, 0, len(raw.Exercises))
	for _, ex := range raw.Exercises {
		options := ex.Options
		if session.Type(ex.Type) == session.TypeMultipleChoice && len(options) == 0 {
			options = []string{ex.CorrectAnswer, "Opción A", "Opción B", "Opción C"}
		}
		s.shuffle(options)
		exercises = append(exercises, session.Exercise{
			ID:            uuid.NewString(),
			Type:          session.Type(ex.Type),
			Question:      ex.Question,
			CorrectAnswer: ex.CorrectAnswer,
			Options:       options,
			Pairs:         ex.Pairs,
			Tip:           ex.Tip,
		})
	}
	return exercises, nil
}

func (s *Service) shuffle(words []string) {
	shuffle := rand.Shuffle
	if s.rng != nil {
		shuffle = s.rng.Shuffle
	}
	shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
