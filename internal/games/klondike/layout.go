package klondike

import (
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

// Table geometry in screen cells.
const (
	cardWidth  = 5 // "[10♥]"
	columnStep = 7
	marginX    = 2
	topRowY    = 2
	tableauY   = 4
	wasteFan   = 3 // columns between fanned waste cards
	maxFan     = 3

	minWidth  = 2*marginX + (engine.NumTableaus-1)*columnStep + cardWidth
	minHeight = 24
)

func columnX(col int) int {
	return marginX + col*columnStep
}

// slotRect is where an empty slot is drawn. Tableau slots reach down to
// the bottom of the screen so clicks below a column still find it.
func slotRect(slot, screenH int) core.Rect {
	switch {
	case slot == slotStock:
		return core.NewRect(columnX(0), topRowY, cardWidth, 1)
	case slot == slotWaste:
		return core.NewRect(columnX(1), topRowY, cardWidth, 1)
	case isFoundation(slot):
		return core.NewRect(columnX(3+slot-slotFoundation0), topRowY, cardWidth, 1)
	default:
		return core.NewRect(columnX(slot-slotTableau0), tableauY, cardWidth, max(screenH-1-tableauY, 1))
	}
}

// spot is one card as it appears on screen.
type spot struct {
	card engine.Card
	at   engine.Placement
	rect core.Rect
}

// slotOf returns the cursor slot holding a placement.
func slotOf(at engine.Placement) int {
	switch at.Pile {
	case engine.PileStock:
		return slotStock
	case engine.PileWaste:
		return slotWaste
	case engine.PileFoundation:
		return slotFoundation0 + at.Index
	default:
		return slotTableau0 + at.Index
	}
}

// tableLayout places cards on screen. It is filled by State.Present.
type tableLayout struct {
	screenH   int
	wasteLen  int
	fan       int
	faceDown  [engine.NumTableaus]int
	spots     []spot // paint order
	cardIndex map[engine.Card]int
}

func newTableLayout(s *engine.State, screenH int) *tableLayout {
	l := &tableLayout{
		screenH:   screenH,
		wasteLen:  s.Waste().Len(),
		cardIndex: make(map[engine.Card]int, engine.NumCards),
	}
	l.fan = min(maxFan, s.Rules.CardsToDraw, l.wasteLen)
	s.Present(l)
	return l
}

// layout builds the current table layout.
func (g *Game) layout() *tableLayout {
	return newTableLayout(g.state, g.screenH)
}

// Place implements engine.Presenter.
func (l *tableLayout) Place(card engine.Card, at engine.Placement) {
	var x, y int
	switch at.Pile {
	case engine.PileStock:
		x, y = columnX(0), topRowY
	case engine.PileWaste:
		x, y = columnX(1), topRowY
		if first := l.wasteLen - l.fan; at.Position > first {
			x += (at.Position - first) * wasteFan
		}
	case engine.PileFoundation:
		x, y = columnX(3+at.Index), topRowY
	case engine.PileTableauDown:
		x, y = columnX(at.Index), tableauY+at.Position
		l.faceDown[at.Index] = at.Position + 1
	case engine.PileTableauUp:
		x, y = columnX(at.Index), tableauY+l.faceDown[at.Index]+at.Position
	}
	l.cardIndex[card] = len(l.spots)
	l.spots = append(l.spots, spot{card: card, at: at, rect: core.NewRect(x, y, cardWidth, 1)})
}

// find returns the spot of a card.
func (l *tableLayout) find(c engine.Card) (spot, bool) {
	i, ok := l.cardIndex[c]
	if !ok {
		return spot{}, false
	}
	return l.spots[i], true
}

// hitResult is what a mouse press landed on. card is NoCard for an empty
// area of a slot.
type hitResult struct {
	slot int
	card engine.Card
	at   engine.Placement
}

// hit finds the topmost card at (x, y), falling back to the slot area.
func (l *tableLayout) hit(x, y int) (hitResult, bool) {
	for i := len(l.spots) - 1; i >= 0; i-- {
		sp := l.spots[i]
		if sp.rect.Contains(x, y) {
			return hitResult{slot: slotOf(sp.at), card: sp.card, at: sp.at}, true
		}
	}
	for slot := range numSlots {
		if slotRect(slot, l.screenH).Contains(x, y) {
			return hitResult{slot: slot, card: engine.NoCard}, true
		}
	}
	return hitResult{}, false
}
