// Package engine implements the Klondike patience rules and game state.
// It has no platform dependencies: the terminal front end, the solver and the
// undo store all drive it through the exported State API.
package engine

import "fmt"

// Deck geometry.
const (
	NumCards       = 52
	NumTableaus    = 7
	NumFoundations = 4
	CardsInSuit    = 13

	RankAce  = 0
	RankKing = 12
)

// Card identifies one of the 52 cards. suit = card/13, rank = card%13.
// Suits 0 and 1 form one colour, 2 and 3 the other.
type Card int

// NoCard is returned where a card lookup has no answer.
const NoCard Card = -1

// NewCard builds a card from its suit (0..3) and rank (0=Ace..12=King).
func NewCard(suit, rank int) Card {
	return Card(suit*CardsInSuit + rank)
}

// Suit returns 0..3.
func (c Card) Suit() int { return int(c) / CardsInSuit }

// Rank returns 0 (Ace) .. 12 (King).
func (c Card) Rank() int { return int(c) % CardsInSuit }

// Valid reports whether c is inside [0, 52).
func (c Card) Valid() bool { return c >= 0 && c < NumCards }

// Red reports whether the card belongs to the first colour pair.
func (c Card) Red() bool { return c.Suit() < 2 }

var (
	rankNames = [CardsInSuit]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suitRunes = [NumFoundations]rune{'♥', '♦', '♣', '♠'}
)

// RankName returns the short rank label ("A", "10", "K").
func (c Card) RankName() string {
	if !c.Valid() {
		return "?"
	}
	return rankNames[c.Rank()]
}

// SuitRune returns the suit symbol.
func (c Card) SuitRune() rune {
	if !c.Valid() {
		return '?'
	}
	return suitRunes[c.Suit()]
}

// String returns a label such as "10♣".
func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Card(%d)", int(c))
	}
	return c.RankName() + string(c.SuitRune())
}
