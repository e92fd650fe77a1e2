package klondike

import (
	"fmt"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

// Slots the cursor visits, left to right: stock, waste, four foundations,
// then seven tableau columns.
const (
	slotStock       = 0
	slotWaste       = 1
	slotFoundation0 = 2
	slotTableau0    = slotFoundation0 + engine.NumFoundations
	numSlots        = slotTableau0 + engine.NumTableaus
)

// cursor is a slot plus, in a tableau, the index of a face-up card.
type cursor struct {
	slot  int
	depth int
}

func isTableau(slot int) bool { return slot >= slotTableau0 }
func isFoundation(slot int) bool { return slot >= slotFoundation0 && slot < slotTableau0 }

// topRowAbove returns the top-row slot drawn above tableau column col.
func topRowAbove(col int) int {
	switch {
	case col == 0:
		return slotStock
	case col <= 2:
		return slotWaste
	default:
		return slotFoundation0 + col - 3
	}
}

// tableauBelow returns the column drawn below a top-row slot.
func tableauBelow(slot int) int {
	switch {
	case slot == slotStock:
		return 0
	case slot == slotWaste:
		return 1
	default:
		return slot - slotFoundation0 + 3
	}
}

func (g *Game) faceUp(col int) *engine.Pile {
	return g.state.TableauFaceUp(col)
}

func (g *Game) moveCursorSideways(dx int) {
	g.cursor.slot = (g.cursor.slot + dx + numSlots) % numSlots
	g.cursor.depth = g.topDepth()
}

func (g *Game) moveCursorUp() {
	if !isTableau(g.cursor.slot) {
		return
	}
	if g.cursor.depth > 0 {
		g.cursor.depth--
		return
	}
	g.cursor = cursor{slot: topRowAbove(g.cursor.slot - slotTableau0)}
}

func (g *Game) moveCursorDown() {
	if !isTableau(g.cursor.slot) {
		g.cursor.slot = slotTableau0 + tableauBelow(g.cursor.slot)
		g.cursor.depth = g.topDepth()
		return
	}
	if g.cursor.depth < g.topDepth() {
		g.cursor.depth++
	}
}

// topDepth is the depth of the top card of the cursor's column.
func (g *Game) topDepth() int {
	if !isTableau(g.cursor.slot) {
		return 0
	}
	return max(g.faceUp(g.cursor.slot-slotTableau0).Len()-1, 0)
}

// clampCursor keeps the depth on a face-up card after the column changed.
func (g *Game) clampCursor() {
	if g.cursor.depth > g.topDepth() {
		g.cursor.depth = g.topDepth()
	}
}

// cursorCard returns the card under the cursor. The stock has none.
func (g *Game) cursorCard() (engine.Card, bool) {
	switch s := g.cursor.slot; {
	case s == slotStock:
		return engine.NoCard, false
	case s == slotWaste:
		return g.state.Waste().Top()
	case isFoundation(s):
		return g.state.Foundation(s - slotFoundation0).Top()
	default:
		up := g.faceUp(s - slotTableau0)
		if g.cursor.depth >= up.Len() {
			return engine.NoCard, false
		}
		return up.Get(g.cursor.depth), true
	}
}

// selectAtCursor plays the card under the cursor to its default spot, drops
// the held card, or draws when the cursor is on the stock.
func (g *Game) selectAtCursor() {
	if g.held != engine.NoCard {
		g.dropAtCursor()
		return
	}
	if g.cursor.slot == slotStock {
		g.play(engine.DrawAction(), true)
		return
	}
	if c, ok := g.cursorCard(); ok {
		g.playCard(c)
	}
}

// playCard lets the chooser pick a move for c.
func (g *Game) playCard(c engine.Card) {
	a, ok := g.chooser.Click(g.state, c)
	if !ok {
		g.setMessage(fmt.Sprintf("%s has nowhere to go", c))
		return
	}
	g.play(a, true)
}

// pickAtCursor picks up the card under the cursor, or drops the held one.
func (g *Game) pickAtCursor() {
	if g.held != engine.NoCard {
		g.dropAtCursor()
		return
	}
	c, ok := g.cursorCard()
	if !ok {
		return
	}
	if at, found := g.state.Locate(c); !found || !at.Draggable {
		return
	}
	g.held = c
}

func (g *Game) dropAtCursor() {
	card := g.held
	g.held = engine.NoCard

	var a engine.Action
	ok := false
	switch s := g.cursor.slot; {
	case isFoundation(s):
		a, ok = g.chooser.Drop(g.state, card, engine.PileFoundation, s-slotFoundation0)
	case isTableau(s):
		a, ok = g.chooser.Drop(g.state, card, engine.PileTableauUp, s-slotTableau0)
	}
	if !ok {
		g.setMessage(fmt.Sprintf("%s can't go there", card))
		return
	}
	g.play(a, true)
}

// click handles a mouse press at screen cell (x, y): the cursor jumps to
// what was hit, which is then selected. Empty areas only take a held card.
func (g *Game) click(x, y int) {
	hit, ok := g.layout().hit(x, y)
	if !ok {
		return
	}
	g.cursor = cursor{slot: hit.slot}
	if isTableau(hit.slot) {
		g.cursor.depth = g.topDepth()
	}
	if hit.card == engine.NoCard && g.held == engine.NoCard && hit.slot != slotStock {
		return
	}
	if hit.card != engine.NoCard {
		switch hit.at.Pile {
		case engine.PileTableauDown:
			return
		case engine.PileTableauUp:
			g.cursor.depth = hit.at.Position
		}
	}
	g.selectAtCursor()
}
