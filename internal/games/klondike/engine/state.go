package engine

import (
	"errors"
	"fmt"
)

// Errors returned by Execute for actions that were not produced by Actions.
var (
	ErrUnknownMove    = errors.New("engine: unknown move type")
	ErrBadDestination = errors.New("engine: destination index out of range")
	ErrCardNotFound   = errors.New("engine: card not found")
)

// State is the complete position of one game.
type State struct {
	Rules Rules

	deck        *Pile // only used while dealing
	stock       *Pile
	waste       *Pile
	tableauDown [NumTableaus]*Pile
	tableauUp   [NumTableaus]*Pile
	foundations [NumFoundations]*Pile
}

// NewState returns an empty state with no cards dealt.
func NewState() *State {
	s := &State{
		Rules: DefaultRules(),
		deck:  NewPile(),
		stock: NewPile(),
		waste: NewPile(),
	}
	for i := range NumTableaus {
		s.tableauDown[i] = NewPile()
		s.tableauUp[i] = NewPile()
	}
	for i := range NumFoundations {
		s.foundations[i] = NewPile()
	}
	return s
}

// NewGame deals a fresh game shuffled with a PRNG seeded from seed.
func NewGame(rules Rules, seed int64) *State {
	s := NewState()
	s.Deal(rules, SeededRandom(seed))
	return s
}

// Deal replaces the position with a new shuffled deal. Column t receives t
// face-down cards and one face-up card; the rest go to the stock.
func (s *State) Deal(rules Rules, rng Random) {
	if rules.CardsToDraw < 1 {
		rules.CardsToDraw = 1
	}
	fresh := NewState()
	*s = *fresh
	s.Rules = rules

	for c := range NumCards {
		s.deck.Add(Card(c))
	}
	s.deck.Shuffle(rng)

	for t := range NumTableaus {
		for range t {
			c, _ := s.deck.Pop()
			s.tableauDown[t].Add(c)
		}
		c, _ := s.deck.Pop()
		s.tableauUp[t].Add(c)
	}
	for s.deck.Len() > 0 {
		c, _ := s.deck.Pop()
		s.stock.Add(c)
	}
}

// Stock returns the face-down draw pile.
func (s *State) Stock() *Pile { return s.stock }

// Waste returns the face-up drawn cards.
func (s *State) Waste() *Pile { return s.waste }

// TableauFaceDown returns the hidden cards of column t.
func (s *State) TableauFaceDown(t int) *Pile { return s.tableauDown[t] }

// TableauFaceUp returns the visible cards of column t.
func (s *State) TableauFaceUp(t int) *Pile { return s.tableauUp[t] }

// Foundation returns foundation f.
func (s *State) Foundation(f int) *Pile { return s.foundations[f] }

// Draw turns up to Rules.CardsToDraw cards from stock to waste. With an empty
// stock the waste is turned back over onto the stock instead.
func (s *State) Draw() {
	if s.stock.Len() == 0 {
		for s.waste.Len() > 0 {
			c, _ := s.waste.Pop()
			s.stock.Add(c)
		}
		return
	}
	for i := 0; i < s.Rules.CardsToDraw && s.stock.Len() > 0; i++ {
		c, _ := s.stock.Pop()
		s.waste.Add(c)
	}
}

// Remove takes card out of whichever pile holds it. When a tableau's face-up
// pile empties, the top face-down card of that column is revealed.
func (s *State) Remove(card Card) bool {
	for t := range NumTableaus {
		up := s.tableauUp[t]
		if !up.Remove(card) {
			continue
		}
		if up.Len() == 0 {
			if c, ok := s.tableauDown[t].Pop(); ok {
				up.PushFront(c)
			}
		}
		return true
	}
	if s.stock.Remove(card) || s.waste.Remove(card) {
		return true
	}
	for f := range NumFoundations {
		if s.foundations[f].Remove(card) {
			return true
		}
	}
	return false
}

// StackedUnder returns the card lying directly on top of card in a tableau.
func (s *State) StackedUnder(card Card) (Card, bool) {
	for t := range NumTableaus {
		up := s.tableauUp[t]
		if i := up.IndexOf(card); i != -1 && i < up.Len()-1 {
			return up.Get(i + 1), true
		}
	}
	return NoCard, false
}

// Stack returns card followed by every card stacked on it, bottom to top.
func (s *State) Stack(card Card) []Card {
	cards := []Card{card}
	for c, ok := s.StackedUnder(card); ok; c, ok = s.StackedUnder(c) {
		cards = append(cards, c)
	}
	return cards
}

// MoveToTableau moves card and the stack above it onto column col.
func (s *State) MoveToTableau(card Card, col int) error {
	if col < 0 || col >= NumTableaus {
		return fmt.Errorf("%w: tableau %d", ErrBadDestination, col)
	}
	moving, ok := card, true
	first := true
	for ok {
		next, more := s.StackedUnder(moving)
		if s.Remove(moving) {
			s.tableauUp[col].Add(moving)
		} else if first {
			return fmt.Errorf("%w: %s", ErrCardNotFound, card)
		}
		first = false
		moving, ok = next, more
	}
	return nil
}

// MoveToFoundation moves a single card onto foundation idx.
func (s *State) MoveToFoundation(card Card, idx int) error {
	if idx < 0 || idx >= NumFoundations {
		return fmt.Errorf("%w: foundation %d", ErrBadDestination, idx)
	}
	if !s.Remove(card) {
		return fmt.Errorf("%w: %s", ErrCardNotFound, card)
	}
	s.foundations[idx].Add(card)
	return nil
}

// Execute applies an action. Actions obtained from Actions or AllActions
// never fail; anything else may return one of the package errors, in which
// case the state is left as it was.
func (s *State) Execute(a Action) error {
	switch a.Move {
	case MoveDraw:
		s.Draw()
		return nil
	case MoveToTableau:
		return s.MoveToTableau(a.Card, a.Dest)
	case MoveToFoundation:
		return s.MoveToFoundation(a.Card, a.Dest)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMove, int(a.Move))
	}
}

// IsComplete reports whether every foundation holds a full suit.
func (s *State) IsComplete() bool {
	for _, f := range s.foundations {
		if f.Len() != CardsInSuit {
			return false
		}
	}
	return true
}

// FoundationCount returns the number of cards on all foundations.
func (s *State) FoundationCount() int {
	n := 0
	for _, f := range s.foundations {
		n += f.Len()
	}
	return n
}

// FaceDownCount returns the number of hidden tableau cards.
func (s *State) FaceDownCount() int {
	n := 0
	for _, p := range s.tableauDown {
		n += p.Len()
	}
	return n
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := &State{
		Rules: s.Rules,
		deck:  s.deck.Clone(),
		stock: s.stock.Clone(),
		waste: s.waste.Clone(),
	}
	for i := range NumTableaus {
		c.tableauDown[i] = s.tableauDown[i].Clone()
		c.tableauUp[i] = s.tableauUp[i].Clone()
	}
	for i := range NumFoundations {
		c.foundations[i] = s.foundations[i].Clone()
	}
	return c
}

// piles returns every pile in a fixed order.
func (s *State) piles() []*Pile {
	out := make([]*Pile, 0, 3+2*NumTableaus+NumFoundations)
	out = append(out, s.deck, s.stock, s.waste)
	out = append(out, s.tableauDown[:]...)
	out = append(out, s.tableauUp[:]...)
	out = append(out, s.foundations[:]...)
	return out
}

// CardCount returns the total number of cards over all piles.
func (s *State) CardCount() int {
	n := 0
	for _, p := range s.piles() {
		n += p.Len()
	}
	return n
}
