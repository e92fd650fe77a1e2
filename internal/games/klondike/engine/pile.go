package engine

// Random returns a float in [0, 1). It is the only source of randomness the
// engine consumes and is used solely while dealing.
type Random func() float64

// Pile is an ordered sequence of cards. Index 0 is the bottom of the pile,
// the last element is the top.
type Pile struct {
	cards []Card
}

// NewPile creates a pile holding a copy of cards.
func NewPile(cards ...Card) *Pile {
	p := &Pile{cards: make([]Card, len(cards))}
	copy(p.cards, cards)
	return p
}

// Add appends a card on top.
func (p *Pile) Add(c Card) {
	p.cards = append(p.cards, c)
}

// PushFront inserts a card at the bottom (index 0).
func (p *Pile) PushFront(c Card) {
	p.cards = append(p.cards, NoCard)
	copy(p.cards[1:], p.cards)
	p.cards[0] = c
}

// Pop removes and returns the top card. ok is false for an empty pile.
func (p *Pile) Pop() (c Card, ok bool) {
	n := len(p.cards)
	if n == 0 {
		return NoCard, false
	}
	c = p.cards[n-1]
	p.cards = p.cards[:n-1]
	return c, true
}

// Top returns the top card without removing it.
func (p *Pile) Top() (Card, bool) {
	if len(p.cards) == 0 {
		return NoCard, false
	}
	return p.cards[len(p.cards)-1], true
}

// Get returns the card at index i, or NoCard when out of range.
func (p *Pile) Get(i int) Card {
	if i < 0 || i >= len(p.cards) {
		return NoCard
	}
	return p.cards[i]
}

// Len returns the number of cards.
func (p *Pile) Len() int {
	return len(p.cards)
}

// IndexOf returns the position of c, or -1.
func (p *Pile) IndexOf(c Card) int {
	for i, have := range p.cards {
		if have == c {
			return i
		}
	}
	return -1
}

// Remove deletes c from the pile. It returns false when c is absent.
func (p *Pile) Remove(c Card) bool {
	i := p.IndexOf(c)
	if i == -1 {
		return false
	}
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return true
}

// Cards returns the underlying slice. Callers must not modify it.
func (p *Pile) Cards() []Card {
	return p.cards
}

// Clone returns an independent copy.
func (p *Pile) Clone() *Pile {
	return NewPile(p.cards...)
}

// Shuffle permutes the pile in place (Fisher-Yates, top index downwards).
func (p *Pile) Shuffle(rng Random) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
}
