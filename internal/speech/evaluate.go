package speech

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// Verdict is a pronunciation judgment with learner-facing feedback.
type Verdict struct {
	Correct  bool   `json:"isCorrect"`
	Feedback string `json:"feedback"`
}

// fallbackVerdict is returned when evaluation cannot reach the model.
// Failing a learner over a transport problem would cost a heart for
// nothing, so an unavailable evaluator always passes.
var fallbackVerdict = Verdict{
	Correct:  true,
	Feedback: "Buen intento (Evaluación no disponible temporalmente)",
}

const evaluatePromptFmt = `Analyze the audio of a user trying to say: "%s".
Context: Language learning application.

Return JSON:
- "isCorrect": boolean. Set to true if the pronunciation is intelligible, even with a strong accent. Set to false only if the wrong words are said or it's unintelligible.
- "feedback": string. In Spanish. Provide encouraging feedback. If incorrect, gently point out which specific part was unclear. If correct, offer brief praise.`

// Evaluate judges a recorded attempt at the target phrase. Any model
// or decode failure yields the neutral passing verdict.
func (c *Client) Evaluate(ctx context.Context, audio []byte, mimeType, target string) Verdict {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"isCorrect": {Type: genai.TypeBoolean},
				"feedback":  {Type: genai.TypeString},
			},
			Required: []string{"isCorrect", "feedback"},
		},
	}
	contents := []*genai.Content{{Parts: []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		{Text: fmt.Sprintf(evaluatePromptFmt, target)},
	}}}

	result, err := c.generate(ctx, chatModel, contents, config)
	if err != nil {
		return fallbackVerdict
	}

	var v Verdict
	if err := json.Unmarshal([]byte(result.Text()), &v); err != nil {
		return fallbackVerdict
	}
	return v
}
