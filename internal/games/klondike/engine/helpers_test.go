package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Card shorthands taking the printed rank (1 = Ace .. 13 = King).
func hearts(n int) Card   { return NewCard(0, n-1) }
func diamonds(n int) Card { return NewCard(1, n-1) }
func clubs(n int) Card    { return NewCard(2, n-1) }
func spades(n int) Card   { return NewCard(3, n-1) }

// run returns the cards of suit from rank lo to hi inclusive, printed ranks.
func run(suit, lo, hi int) []Card {
	var out []Card
	for n := lo; n <= hi; n++ {
		out = append(out, NewCard(suit, n-1))
	}
	return out
}

// layout describes a position for tests. Cards it does not mention are put
// on the deck so the snapshot still holds all 52.
type layout struct {
	draw  int
	stock []Card
	waste []Card
	down  [NumTableaus][]Card
	up    [NumTableaus][]Card
	found [NumFoundations][]Card
}

func (l layout) build(t *testing.T) *State {
	t.Helper()

	snap := Snapshot{
		Stock:            l.stock,
		Waste:            l.waste,
		TableausFaceDown: make([][]Card, NumTableaus),
		TableausFaceUp:   make([][]Card, NumTableaus),
		Foundations:      make([][]Card, NumFoundations),
		Rules:            Rules{CardsToDraw: l.draw},
	}
	if snap.Rules.CardsToDraw == 0 {
		snap.Rules.CardsToDraw = 1
	}

	var used [NumCards]bool
	mark := func(cards []Card) {
		for _, c := range cards {
			used[c] = true
		}
	}
	mark(l.stock)
	mark(l.waste)
	for i := range NumTableaus {
		snap.TableausFaceDown[i] = l.down[i]
		snap.TableausFaceUp[i] = l.up[i]
		mark(l.down[i])
		mark(l.up[i])
	}
	for i := range NumFoundations {
		snap.Foundations[i] = l.found[i]
		mark(l.found[i])
	}
	for c := range NumCards {
		if !used[c] {
			snap.Deck = append(snap.Deck, Card(c))
		}
	}

	s := NewState()
	require.NoError(t, s.Restore(snap))
	return s
}

// everyCardExcept lists the 52 cards in order, skipping the given ones.
func everyCardExcept(skip ...Card) []Card {
	var out []Card
	for c := range NumCards {
		keep := true
		for _, s := range skip {
			if Card(c) == s {
				keep = false
			}
		}
		if keep {
			out = append(out, Card(c))
		}
	}
	return out
}
