package player

import (
	"encoding/json"
	"testing"
)

func TestAvatarJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		avatar Avatar
	}{
		{"emoji", EmojiAvatar("🦊")},
		{"human", HumanAvatar(HumanConfig{
			BackgroundColor: "#b3e5fc",
			SkinColor:       "#eac086",
			HairStyle:       "bob",
			HairColor:       "#2c1b18",
			ClothingStyle:   "hoodie",
			ClothingColor:   "#4caf50",
			Glasses:         "round",
			Beard:           false,
			EyeType:         "happy",
			MouthType:       "smile",
		})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := json.Marshal(c.avatar)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got Avatar
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Kind != c.avatar.Kind {
				t.Errorf("Kind = %q, want %q", got.Kind, c.avatar.Kind)
			}
			if got.Display() != c.avatar.Display() {
				t.Errorf("Display = %q, want %q", got.Display(), c.avatar.Display())
			}
			if c.avatar.Human != nil {
				if got.Human == nil {
					t.Fatal("human config lost in round trip")
				}
				if *got.Human != *c.avatar.Human {
					t.Errorf("Human = %+v, want %+v", *got.Human, *c.avatar.Human)
				}
			}
		})
	}
}

func TestAvatarLegacyStringDecoding(t *testing.T) {
	var a Avatar
	if err := json.Unmarshal([]byte(`"🤠"`), &a); err != nil {
		t.Fatalf("unmarshal legacy string: %v", err)
	}
	if a.Kind != AvatarEmoji || a.Emoji != "🤠" {
		t.Errorf("decoded %+v, want emoji variant 🤠", a)
	}
}

func TestAvatarDisplay(t *testing.T) {
	if got := EmojiAvatar("🦊").Display(); got != "🦊" {
		t.Errorf("Display = %q", got)
	}
	if got := HumanAvatar(HumanConfig{}).Display(); got != "🧑" {
		t.Errorf("human Display = %q, want placeholder glyph", got)
	}
}
