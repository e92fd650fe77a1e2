package engine

// Logical table geometry used to measure how far a move travels.
const (
	columnWidth  = 4
	tableauTop   = 6
	foundationX0 = 3 * columnWidth
)

// point returns the logical coordinates of a placement.
func (s *State) point(at Placement) (x, y int) {
	switch at.Pile {
	case PileStock:
		return 0, 0
	case PileWaste:
		return columnWidth, 0
	case PileFoundation:
		return foundationX0 + columnWidth*at.Index, 0
	case PileTableauDown:
		return columnWidth * at.Index, tableauTop + at.Position
	default:
		return columnWidth * at.Index, tableauTop + s.tableauDown[at.Index].Len() + at.Position
	}
}

// destinationPoint returns where the moved card would land.
func (s *State) destinationPoint(a Action) (x, y int) {
	if a.Move == MoveToFoundation {
		return foundationX0 + columnWidth*a.Dest, 0
	}
	depth := s.tableauDown[a.Dest].Len() + s.tableauUp[a.Dest].Len()
	return columnWidth * a.Dest, tableauTop + depth
}

// ActionsTo returns the legal moves of card that land on the given pile.
// kind must be PileFoundation or PileTableauUp.
func (s *State) ActionsTo(card Card, kind PileKind, index int) []Action {
	want := MoveToTableau
	if kind == PileFoundation {
		want = MoveToFoundation
	}
	var out []Action
	for _, a := range s.Actions()[card] {
		if a.Move == want && a.Dest == index {
			out = append(out, a)
		}
	}
	return out
}

// Chooser picks a single action when the player clicks or drops a card.
// It remembers when each action was last chosen for the current card so
// repeated clicks cycle through the destinations.
type Chooser struct {
	lastCard Card
	history  map[Action]uint64
	clock    uint64
}

// NewChooser returns an empty chooser.
func NewChooser() *Chooser {
	return &Chooser{lastCard: NoCard, history: make(map[Action]uint64)}
}

// Click picks the default action for card: least recently used, then most
// useful (foundation over tableau), then nearest.
func (ch *Chooser) Click(s *State, card Card) (Action, bool) {
	return ch.pick(s, card, s.Actions()[card], true)
}

// Drop picks the action that puts card on the given pile, if any.
func (ch *Chooser) Drop(s *State, card Card, kind PileKind, index int) (Action, bool) {
	return ch.pick(s, card, s.ActionsTo(card, kind, index), false)
}

// Reset forgets the click history.
func (ch *Chooser) Reset() {
	ch.lastCard = NoCard
	clear(ch.history)
}

func (ch *Chooser) pick(s *State, card Card, actions []Action, click bool) (Action, bool) {
	if ch.lastCard != card {
		clear(ch.history)
		ch.lastCard = card
	}
	if len(actions) == 0 {
		return Action{}, false
	}

	if click {
		actions = ch.oldest(actions)
		actions = mostUseful(actions)
	}

	at, ok := s.Locate(card)
	if !ok {
		return Action{}, false
	}
	fromX, fromY := s.point(at)
	stacked := len(s.Stack(card)) > 1

	best := Action{}
	bestDist := -1
	for _, a := range actions {
		if stacked && a.Move != MoveToTableau {
			continue
		}
		x, y := s.destinationPoint(a)
		d := (fromX-x)*(fromX-x) + (fromY-y)*(fromY-y)
		if bestDist == -1 || d < bestDist {
			best, bestDist = a, d
		}
	}
	if bestDist == -1 {
		return Action{}, false
	}

	ch.clock++
	ch.history[best] = ch.clock
	return best, true
}

// oldest keeps the actions with the smallest last-used time.
func (ch *Chooser) oldest(actions []Action) []Action {
	var out []Action
	var oldest uint64
	for i, a := range actions {
		t := ch.history[a]
		switch {
		case i == 0 || t < oldest:
			oldest = t
			out = []Action{a}
		case t == oldest:
			out = append(out, a)
		}
	}
	return out
}

// mostUseful keeps the actions with the highest move type.
func mostUseful(actions []Action) []Action {
	var out []Action
	var best MoveType
	for _, a := range actions {
		switch {
		case a.Move > best:
			best = a.Move
			out = []Action{a}
		case a.Move == best:
			out = append(out, a)
		}
	}
	return out
}
