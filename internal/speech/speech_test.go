package speech

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func audioResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{MIMEType: "audio/mp3", Data: data},
			}}},
		}},
	}
}

func TestSynthesizeCachesByText(t *testing.T) {
	calls := 0
	c := newClientWithGenerate(func(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		calls++
		if model != ttsModel {
			t.Errorf("model = %q", model)
		}
		if config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != voiceName {
			t.Errorf("voice = %q", config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
		}
		return audioResponse([]byte("mp3-bytes")), nil
	})

	for i := 0; i < 3; i++ {
		audio, err := c.Synthesize(context.Background(), "Hola")
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if string(audio) != "mp3-bytes" {
			t.Fatalf("audio = %q", audio)
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (repeat text must hit the cache)", calls)
	}

	// Different text misses the cache.
	if _, err := c.Synthesize(context.Background(), "Adiós"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSynthesizeErrors(t *testing.T) {
	c := newClientWithGenerate(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("boom")
	})
	if _, err := c.Synthesize(context.Background(), "Hola"); err == nil {
		t.Error("transport error should surface")
	}
	if _, err := c.Synthesize(context.Background(), ""); err == nil {
		t.Error("empty text should be rejected")
	}

	// A response with no audio payload is an error, not cached silence.
	c = newClientWithGenerate(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("not audio"), nil
	})
	if _, err := c.Synthesize(context.Background(), "Hola"); err == nil {
		t.Error("missing audio payload should surface")
	}
}

func TestEvaluateVerdicts(t *testing.T) {
	c := newClientWithGenerate(func(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		if config.ResponseMIMEType != "application/json" {
			t.Errorf("mime = %q", config.ResponseMIMEType)
		}
		// Audio blob first, instruction text after.
		if contents[0].Parts[0].InlineData == nil {
			t.Error("first part should carry the recording")
		}
		if !strings.Contains(contents[0].Parts[1].Text, `"Bonjour"`) {
			t.Errorf("prompt missing target: %q", contents[0].Parts[1].Text)
		}
		return textResponse(`{"isCorrect": false, "feedback": "La erre no se oyó clara"}`), nil
	})

	v := c.Evaluate(context.Background(), []byte("webm"), "audio/webm", "Bonjour")
	if v.Correct {
		t.Error("verdict should be incorrect")
	}
	if v.Feedback != "La erre no se oyó clara" {
		t.Errorf("Feedback = %q", v.Feedback)
	}
}

func TestEvaluateFallsBackToNeutralPass(t *testing.T) {
	for name, fn := range map[string]generateFunc{
		"transport error": func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("boom")
		},
		"malformed body": func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("not json"), nil
		},
	} {
		t.Run(name, func(t *testing.T) {
			c := newClientWithGenerate(fn)
			v := c.Evaluate(context.Background(), []byte("webm"), "audio/webm", "Bonjour")
			if !v.Correct {
				t.Error("fallback verdict must pass")
			}
			if v.Feedback != fallbackVerdict.Feedback {
				t.Errorf("Feedback = %q", v.Feedback)
			}
		})
	}
}

func TestChat(t *testing.T) {
	var prompt string
	c := newClientWithGenerate(func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		if model == ttsModel {
			return audioResponse([]byte("voice")), nil
		}
		prompt = contents[0].Parts[0].Text
		return textResponse("¡Bonjour! Très bien."), nil
	})

	history := []Message{
		{Role: RoleUser, Text: "Bonjour"},
		{Role: RoleModel, Text: "Salut!"},
	}
	reply, err := c.Chat(context.Background(), history, "French", "Spanish", "Comment ça va?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if reply.Text != "¡Bonjour! Très bien." {
		t.Errorf("Text = %q", reply.Text)
	}
	if string(reply.Audio) != "voice" {
		t.Errorf("Audio = %q", reply.Audio)
	}
	for _, want := range []string{"Capitán Gemi", "French", "Spanish", "user: Bonjour", "model: Salut!", `"Comment ça va?"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestChatPersonas(t *testing.T) {
	cases := map[string]string{
		"Chess": "Chess Grandmaster",
		"Math":  "Math Genius",
	}
	for target, want := range cases {
		var prompt string
		c := newClientWithGenerate(func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			if model == chatModel {
				prompt = contents[0].Parts[0].Text
			}
			return textResponse("ok"), nil
		})
		if _, err := c.Chat(context.Background(), nil, target, "Spanish", "hola"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(prompt, want) {
			t.Errorf("%s prompt missing %q", target, want)
		}
	}
}

func TestChatSurvivesSynthesisFailure(t *testing.T) {
	c := newClientWithGenerate(func(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		if model == ttsModel {
			return nil, errors.New("tts down")
		}
		return textResponse("Hola"), nil
	})

	reply, err := c.Chat(context.Background(), nil, "English", "Spanish", "hi")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Text != "Hola" || reply.Audio != nil {
		t.Errorf("reply = %+v, want text-only", reply)
	}
}
