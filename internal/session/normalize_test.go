package session

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"¡Hola!", "hola"},
		{"  How are   you?  ", "how are you"},
		{"¿Cómo estás?", "cómo estás"},
		{"Good morning.", "good morning"},
		{"a,b;c!d", "abcd"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"¡Hola, mundo!", "  ¿Qué   tal?  ", "Je m'appelle Ana."}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeKeepsInnerApostrophes(t *testing.T) {
	// Apostrophes are not in the strip set; French contractions survive.
	if got := Normalize("J'ai faim!"); got != "j'ai faim" {
		t.Errorf("got %q", got)
	}
}
