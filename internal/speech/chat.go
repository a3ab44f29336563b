package speech

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Role identifies a chat message sender.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role
	Text string
}

// Reply is the mascot's answer, with spoken audio when synthesis
// succeeds.
type Reply struct {
	Text  string
	Audio []byte
}

const chessChatContext = `You are 'Capitán Gemi', a Chess Grandmaster mascot.
Discuss Chess strategy, history, and rules in %s.
Be helpful, enthusiastic, and correct user misconceptions about chess.`

const mathChatContext = `You are 'Capitán Gemi', a Math Genius mascot.
Help the user solve math problems. Explain concepts step-by-step.
Language: %s.
Be encouraging when they are stuck on numbers.`

const languageChatContext = `You are 'Capitán Gemi', a Daylingo mascot.
Conversation in %s. User native: %s.
Be helpful, correct mistakes gently, and be expressive.`

// Chat sends one user turn to the conversation mascot and returns the
// reply with synthesized audio. A synthesis failure degrades to a
// text-only reply rather than failing the turn.
func (c *Client) Chat(ctx context.Context, history []Message, target, source, input string) (Reply, error) {
	var persona string
	switch {
	case target == "Chess" || target == "Ajedrez":
		persona = fmt.Sprintf(chessChatContext, source)
	case target == "Math" || target == "Matemáticas":
		persona = fmt.Sprintf(mathChatContext, source)
	default:
		persona = fmt.Sprintf(languageChatContext, target, source)
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\nHistory:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
	}
	fmt.Fprintf(&b, "\nUser: %q\nRespond to text.", input)

	contents := []*genai.Content{{Parts: []*genai.Part{{Text: b.String()}}}}
	result, err := c.generate(ctx, chatModel, contents, nil)
	if err != nil {
		return Reply{}, fmt.Errorf("chat: %w", err)
	}

	text := result.Text()
	if text == "" {
		text = "Sorry, I didn't catch that."
	}

	reply := Reply{Text: text}
	if audio, err := c.Synthesize(ctx, text); err == nil {
		reply.Audio = audio
	}
	return reply, nil
}
