package session

import "math/rand"

// CardState is the visual state of one matching card.
type CardState int

const (
	CardDefault CardState = iota
	CardSelected
	CardMatched
	CardError
)

// CardSide tells which column of the pair a card came from, so the UI
// can pick the right voice when reading it aloud.
type CardSide int

const (
	SideSource CardSide = iota
	SideTarget
)

// Card is one face-up tile on the matching board.
type Card struct {
	Text  string
	Side  CardSide
	State CardState

	pairID int
}

// SelectOutcome describes what a board selection did.
type SelectOutcome int

const (
	// SelectNoop means the tap was ignored (matched card, error pending).
	SelectNoop SelectOutcome = iota
	// SelectPicked means the card became the pending selection.
	SelectPicked
	// SelectCleared means tapping the pending selection deselected it.
	SelectCleared
	// SelectMatched means the pair matched.
	SelectMatched
	// SelectMismatch means the pair did not match; both cards show the
	// error state until ClearErrors.
	SelectMismatch
	// SelectComplete means the pair matched and the board is finished.
	SelectComplete
)

// MatchBoard is the card sub-machine of a matching exercise. There is
// no failing terminal state: mismatches cost nothing and the board
// always ends complete.
type MatchBoard struct {
	cards    []Card
	selected int // index of the pending selection, -1 when none
}

// NewMatchBoard lays out a shuffled board from the exercise pairs.
func NewMatchBoard(pairs []Pair, rng *rand.Rand) *MatchBoard {
	cards := make([]Card, 0, len(pairs)*2)
	for i, p := range pairs {
		cards = append(cards,
			Card{Text: p.Source, Side: SideSource, pairID: i},
			Card{Text: p.Target, Side: SideTarget, pairID: i},
		)
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &MatchBoard{cards: cards, selected: -1}
}

// Cards returns the board in display order.
func (b *MatchBoard) Cards() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// HasErrors reports whether a mismatch is waiting for ClearErrors.
func (b *MatchBoard) HasErrors() bool {
	for _, c := range b.cards {
		if c.State == CardError {
			return true
		}
	}
	return false
}

// Complete reports whether every card is matched.
func (b *MatchBoard) Complete() bool {
	for _, c := range b.cards {
		if c.State != CardMatched {
			return false
		}
	}
	return len(b.cards) > 0
}

// Select taps the card at index i.
func (b *MatchBoard) Select(i int) SelectOutcome {
	if i < 0 || i >= len(b.cards) || b.HasErrors() {
		return SelectNoop
	}
	card := &b.cards[i]
	if card.State == CardMatched {
		return SelectNoop
	}

	if b.selected == i {
		card.State = CardDefault
		b.selected = -1
		return SelectCleared
	}
	if b.selected < 0 {
		card.State = CardSelected
		b.selected = i
		return SelectPicked
	}

	first := &b.cards[b.selected]
	if first.pairID == card.pairID {
		first.State = CardMatched
		card.State = CardMatched
		b.selected = -1
		if b.Complete() {
			return SelectComplete
		}
		return SelectMatched
	}
	first.State = CardError
	card.State = CardError
	return SelectMismatch
}

// ClearErrors reverts mismatched cards to default and drops the pending
// selection. The UI calls it after the error flash.
func (b *MatchBoard) ClearErrors() {
	for i := range b.cards {
		if b.cards[i].State == CardError {
			b.cards[i].State = CardDefault
		}
	}
	b.selected = -1
}
