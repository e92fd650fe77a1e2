package engine

// PileKind names the kind of pile a card lies in.
type PileKind int

const (
	PileStock PileKind = iota
	PileWaste
	PileFoundation
	PileTableauDown
	PileTableauUp
)

// String returns the pile kind name.
func (k PileKind) String() string {
	switch k {
	case PileStock:
		return "stock"
	case PileWaste:
		return "waste"
	case PileFoundation:
		return "foundation"
	case PileTableauDown:
		return "tableau-down"
	case PileTableauUp:
		return "tableau-up"
	default:
		return "unknown"
	}
}

// Placement tells a presenter where a card is and what the player may do
// with it.
type Placement struct {
	Pile     PileKind
	Index    int // foundation or tableau index; 0 for stock and waste
	Position int // index within the pile, 0 = bottom
	FaceUp   bool

	// Draggable is set for cards that may be the source of a move. Stack
	// holds the cards that travel with it, starting with the card itself.
	Draggable bool
	Stack     []Card
}

// Presenter is the capability interface of a front end. The engine calls it
// once per card whenever the front end asks for the position to be shown.
type Presenter interface {
	Place(card Card, at Placement)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(card Card, at Placement)

// Place calls f.
func (f PresenterFunc) Place(card Card, at Placement) { f(card, at) }

// Present reports every card to p: stock, waste, foundations, then tableaus.
func (s *State) Present(p Presenter) {
	for i, c := range s.stock.Cards() {
		p.Place(c, Placement{Pile: PileStock, Position: i})
	}

	waste := s.waste.Cards()
	for i, c := range waste {
		at := Placement{Pile: PileWaste, Position: i, FaceUp: true}
		if i == len(waste)-1 {
			at.Draggable = true
			at.Stack = []Card{c}
		}
		p.Place(c, at)
	}

	for f, pile := range s.foundations {
		cards := pile.Cards()
		for i, c := range cards {
			at := Placement{Pile: PileFoundation, Index: f, Position: i, FaceUp: true}
			if i == len(cards)-1 {
				at.Draggable = true
				at.Stack = []Card{c}
			}
			p.Place(c, at)
		}
	}

	for t := range NumTableaus {
		for i, c := range s.tableauDown[t].Cards() {
			p.Place(c, Placement{Pile: PileTableauDown, Index: t, Position: i})
		}
		up := s.tableauUp[t].Cards()
		for i, c := range up {
			p.Place(c, Placement{
				Pile:      PileTableauUp,
				Index:     t,
				Position:  i,
				FaceUp:    true,
				Draggable: true,
				Stack:     cloneCards(up[i:]),
			})
		}
	}
}

// Locate returns the placement of a single card.
func (s *State) Locate(card Card) (Placement, bool) {
	var found Placement
	ok := false
	s.Present(PresenterFunc(func(c Card, at Placement) {
		if c == card {
			found, ok = at, true
		}
	}))
	return found, ok
}
