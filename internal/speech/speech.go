// Package speech is the spoken-language collaborator: text to speech,
// pronunciation judging and free conversation. It talks to Gemini
// directly because the audio modalities are not part of the shared
// text-generation provider surface.
package speech

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const (
	ttsModel  = "gemini-2.5-flash-preview-tts"
	chatModel = "gemini-2.5-flash"

	// voiceName is the prebuilt narrator voice for all synthesis.
	voiceName = "Fenrir"
)

// generateFunc abstracts the Gemini call so tests can fake transport.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client provides synthesis, pronunciation evaluation and chat.
// Synthesized audio is memoized by exact text for the process lifetime.
type Client struct {
	generate generateFunc

	mu         sync.Mutex
	audioCache map[string][]byte
}

// NewClient connects to Gemini with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Client{
		generate:   gc.Models.GenerateContent,
		audioCache: make(map[string][]byte),
	}, nil
}

// newClientWithGenerate wires a fake transport for tests.
func newClientWithGenerate(fn generateFunc) *Client {
	return &Client{generate: fn, audioCache: make(map[string][]byte)}
}

// Synthesize speaks the given text and returns the raw audio bytes.
// Repeated calls for the same text hit the cache without a request.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	c.mu.Lock()
	if audio, ok := c.audioCache[text]; ok {
		c.mu.Unlock()
		return audio, nil
	}
	c.mu.Unlock()

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceName},
			},
		},
	}
	contents := []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}

	result, err := c.generate(ctx, ttsModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	audio := inlineAudio(result)
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesize speech: no audio in response")
	}

	c.mu.Lock()
	c.audioCache[text] = audio
	c.mu.Unlock()
	return audio, nil
}

// inlineAudio digs the first inline data blob out of a response.
func inlineAudio(result *genai.GenerateContentResponse) []byte {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
