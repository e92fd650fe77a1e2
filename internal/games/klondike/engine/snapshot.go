package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when a snapshot does not describe a valid
// 52-card position.
var ErrCorruptSnapshot = errors.New("engine: corrupt snapshot")

// Snapshot is the plain-data form of a State, used for persistence.
type Snapshot struct {
	Deck             []Card   `json:"deck,omitempty"`
	Stock            []Card   `json:"stock"`
	Waste            []Card   `json:"waste"`
	TableausFaceDown [][]Card `json:"tableausFaceDown"`
	TableausFaceUp   [][]Card `json:"tableausFaceUp"`
	Foundations      [][]Card `json:"foundations"`
	Rules            Rules    `json:"rules"`
}

// Snapshot copies the position into plain data.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Stock:            cloneCards(s.stock.Cards()),
		Waste:            cloneCards(s.waste.Cards()),
		TableausFaceDown: make([][]Card, NumTableaus),
		TableausFaceUp:   make([][]Card, NumTableaus),
		Foundations:      make([][]Card, NumFoundations),
		Rules:            s.Rules,
	}
	if s.deck.Len() > 0 {
		snap.Deck = cloneCards(s.deck.Cards())
	}
	for t := range NumTableaus {
		snap.TableausFaceDown[t] = cloneCards(s.tableauDown[t].Cards())
		snap.TableausFaceUp[t] = cloneCards(s.tableauUp[t].Cards())
	}
	for f := range NumFoundations {
		snap.Foundations[f] = cloneCards(s.foundations[f].Cards())
	}
	return snap
}

// Restore replaces the position with snap. On error the state is unchanged.
func (s *State) Restore(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	r := NewState()
	r.Rules = snap.Rules
	r.deck = NewPile(snap.Deck...)
	r.stock = NewPile(snap.Stock...)
	r.waste = NewPile(snap.Waste...)
	for t := range NumTableaus {
		r.tableauDown[t] = NewPile(snap.TableausFaceDown[t]...)
		r.tableauUp[t] = NewPile(snap.TableausFaceUp[t]...)
	}
	for f := range NumFoundations {
		r.foundations[f] = NewPile(snap.Foundations[f]...)
	}
	*s = *r
	return nil
}

// Validate checks pile counts and that every card appears exactly once.
func (snap Snapshot) Validate() error {
	if len(snap.TableausFaceDown) != NumTableaus || len(snap.TableausFaceUp) != NumTableaus {
		return fmt.Errorf("%w: want %d tableaus", ErrCorruptSnapshot, NumTableaus)
	}
	if len(snap.Foundations) != NumFoundations {
		return fmt.Errorf("%w: want %d foundations", ErrCorruptSnapshot, NumFoundations)
	}
	if snap.Rules.CardsToDraw < 1 {
		return fmt.Errorf("%w: cardsToDraw %d", ErrCorruptSnapshot, snap.Rules.CardsToDraw)
	}

	var seen [NumCards]bool
	count := 0
	check := func(cards []Card) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("%w: card %d out of range", ErrCorruptSnapshot, int(c))
			}
			if seen[c] {
				return fmt.Errorf("%w: card %s appears twice", ErrCorruptSnapshot, c)
			}
			seen[c] = true
			count++
		}
		return nil
	}
	groups := [][]Card{snap.Deck, snap.Stock, snap.Waste}
	groups = append(groups, snap.TableausFaceDown...)
	groups = append(groups, snap.TableausFaceUp...)
	groups = append(groups, snap.Foundations...)
	for _, g := range groups {
		if err := check(g); err != nil {
			return err
		}
	}
	if count != NumCards {
		return fmt.Errorf("%w: %d cards, want %d", ErrCorruptSnapshot, count, NumCards)
	}
	return nil
}

// MarshalJSON encodes the state as its Snapshot.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON decodes and validates a Snapshot.
func (s *State) UnmarshalJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return s.Restore(snap)
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
