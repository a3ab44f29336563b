package player

import (
	"encoding/json"
	"fmt"
)

// AvatarKind tags the avatar variant.
type AvatarKind string

const (
	AvatarEmoji AvatarKind = "emoji"
	AvatarHuman AvatarKind = "human"
)

// Avatar is a tagged union: either a single emoji glyph or a structured
// human avatar configuration. Every consumer switches on Kind; there is
// no untyped fallback.
type Avatar struct {
	Kind  AvatarKind
	Emoji string
	Human *HumanConfig
}

// HumanConfig describes a composable human avatar.
type HumanConfig struct {
	BackgroundColor string `json:"background_color"`
	SkinColor       string `json:"skin_color"`
	HairStyle       string `json:"hair_style"`
	HairColor       string `json:"hair_color"`
	ClothingStyle   string `json:"clothing_style"`
	ClothingColor   string `json:"clothing_color"`
	Glasses         string `json:"glasses"`
	Beard           bool   `json:"beard"`
	EyeType         string `json:"eye_type"`
	MouthType       string `json:"mouth_type"`
}

// EmojiAvatar builds the emoji variant.
func EmojiAvatar(glyph string) Avatar {
	return Avatar{Kind: AvatarEmoji, Emoji: glyph}
}

// HumanAvatar builds the structured variant.
func HumanAvatar(cfg HumanConfig) Avatar {
	return Avatar{Kind: AvatarHuman, Human: &cfg}
}

// Display returns the glyph shown in headers and lists.
func (a Avatar) Display() string {
	switch a.Kind {
	case AvatarHuman:
		return "🧑"
	case AvatarEmoji:
		if a.Emoji != "" {
			return a.Emoji
		}
		return "🤠"
	default:
		return "🤠"
	}
}

// avatarJSON is the wire form of the tagged union.
type avatarJSON struct {
	Kind  AvatarKind   `json:"kind"`
	Emoji string       `json:"emoji,omitempty"`
	Human *HumanConfig `json:"human,omitempty"`
}

func (a Avatar) MarshalJSON() ([]byte, error) {
	return json.Marshal(avatarJSON{Kind: a.Kind, Emoji: a.Emoji, Human: a.Human})
}

func (a *Avatar) UnmarshalJSON(data []byte) error {
	var raw avatarJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		// Older profiles stored the avatar as a bare emoji string.
		var glyph string
		if serr := json.Unmarshal(data, &glyph); serr == nil {
			*a = EmojiAvatar(glyph)
			return nil
		}
		return err
	}

	switch raw.Kind {
	case AvatarHuman:
		if raw.Human == nil {
			return fmt.Errorf("human avatar missing config")
		}
		*a = Avatar{Kind: AvatarHuman, Human: raw.Human}
	case AvatarEmoji, "":
		*a = EmojiAvatar(raw.Emoji)
	default:
		return fmt.Errorf("unknown avatar kind: %q", raw.Kind)
	}
	return nil
}
