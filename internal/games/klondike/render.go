package klondike

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

const hints = "Enter play  Space pick  Tab draw  U undo  H solve  N new  ? help"

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	lay := g.layout()
	g.renderHUD(dst)
	g.renderSlots(dst)
	g.renderCards(dst, lay)
	g.renderCursor(dst, lay)
	g.renderStatus(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minWidth, minHeight))
}

// renderHUD draws the title, score and deal info.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(marginX, 0, g.Title())

	info := fmt.Sprintf("Score %d  Moves %d  Seed %d", g.Score(), g.moves, g.seed)
	x := max(g.screenW-marginX-utf8.RuneCountInString(info), marginX)
	dst.DrawTextColored(x, 0, info, core.ColorCyan)
}

// renderSlots draws placeholders for every pile; cards cover them.
func (g *Game) renderSlots(dst *core.Screen) {
	for slot := range numSlots {
		r := slotRect(slot, g.screenH)
		label := "[   ]"
		if slot == slotStock && g.state.Stock().Len() == 0 && g.state.Waste().Len() > 0 {
			label = "[ ↺ ]"
		}
		dst.DrawTextColored(r.X, r.Y, label, core.ColorGray)
	}
}

func (g *Game) renderCards(dst *core.Screen, lay *tableLayout) {
	var held [engine.NumCards]bool
	if g.held != engine.NoCard {
		if sp, ok := lay.find(g.held); ok {
			for _, c := range sp.at.Stack {
				held[c] = true
			}
		}
	}
	for _, sp := range lay.spots {
		drawCard(dst, sp, held[sp.card])
	}
}

// cardLabel returns the three cells between a card's brackets.
func cardLabel(c engine.Card) string {
	label := c.RankName() + string(c.SuitRune())
	if utf8.RuneCountInString(label) < 3 {
		label = " " + label
	}
	return label
}

func drawCard(dst *core.Screen, sp spot, held bool) {
	x, y := sp.rect.X, sp.rect.Y
	if !sp.at.FaceUp {
		dst.DrawTextColored(x, y, "[░░░]", core.ColorBlue)
		return
	}

	bracket := core.ColorGray
	if held {
		bracket = core.ColorCyan
	}
	suit := core.ColorBrightWhite
	if sp.card.Red() {
		suit = core.ColorBrightRed
	}
	dst.SetColored(x, y, '[', bracket)
	dst.DrawTextColored(x+1, y, cardLabel(sp.card), suit)
	dst.SetColored(x+cardWidth-1, y, ']', bracket)
}

// cursorRect returns where the cursor points.
func (g *Game) cursorRect(lay *tableLayout) core.Rect {
	if c, ok := g.cursorCard(); ok {
		if sp, found := lay.find(c); found {
			return sp.rect
		}
	}
	r := slotRect(g.cursor.slot, g.screenH)
	if isTableau(g.cursor.slot) {
		col := g.cursor.slot - slotTableau0
		r.Y += g.state.TableauFaceDown(col).Len()
	}
	r.H = 1
	return r
}

func (g *Game) renderCursor(dst *core.Screen, lay *tableLayout) {
	r := g.cursorRect(lay)
	color := core.ColorYellow
	if g.held != engine.NoCard {
		color = core.ColorCyan
	}
	dst.SetColored(r.X-1, r.Y, '▶', color)
}

// renderStatus draws one line of feedback at the bottom of the screen.
func (g *Game) renderStatus(dst *core.Screen) {
	y := g.screenH - 1
	switch {
	case g.solve != nil:
		dst.DrawTextColored(marginX, y, "Searching for a solution... (H to stop)", core.ColorYellow)
	case g.held != engine.NoCard:
		dst.DrawTextColored(marginX, y, fmt.Sprintf("Holding %s: pick a pile, Esc to put it back", g.held), core.ColorCyan)
	case g.message != "":
		dst.DrawTextColored(marginX, y, g.message, core.ColorWhite)
	case len(g.queue) > 0:
		dst.DrawTextColored(marginX, y, fmt.Sprintf("Playing the solution, %d moves left (H to stop)", len(g.queue)), core.ColorGreen)
	case g.stuck:
		dst.DrawTextColored(marginX, y, "No way to win from here. U undo, N new deal", core.ColorRed)
	default:
		dst.DrawTextColored(marginX, y, hints, core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	if g.paused {
		g.drawOverlay(dst, core.ColorYellow, "PAUSED", "Press P to resume")
		return
	}
	if g.won {
		g.drawOverlay(dst, core.ColorGreen,
			"YOU WIN!",
			fmt.Sprintf("Score %d in %d moves", g.Score(), g.moves),
			"Press R for a new deal")
	}
}

// drawOverlay draws a framed box of centered lines in the middle of the table.
func (g *Game) drawOverlay(dst *core.Screen, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	w := maxLen + 4
	h := len(lines) + 2
	r := core.NewRect((g.screenW-w)/2, (g.screenH-h)/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, color)
	for i, line := range lines {
		x := r.X + (w-utf8.RuneCountInString(line))/2
		dst.DrawTextColored(x, r.Y+1+i, line, color)
	}
}
