package klondike

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/undo"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

func testConfig() config.KlondikeConfig {
	cfg := config.DefaultKlondikeConfig()
	cfg.Autoplay.IntervalTicks = 1
	return cfg
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
}

func newTestGame(t *testing.T, draw int, kv undo.KV, cfg config.KlondikeConfig) *Game {
	t.Helper()
	g := New(draw, WithConfig(cfg), WithKV(kv))
	g.Reset(runtimeConfig(42))
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	return g.Step(frame)
}

func clickAt(g *Game, x, y int) core.StepResult {
	frame := core.NewInputFrame()
	frame.Click(x, y)
	return g.Step(frame)
}

// board builds a snapshot from place and puts every card it left out into
// the stock.
func board(place func(s *engine.Snapshot)) engine.Snapshot {
	snap := engine.Snapshot{
		TableausFaceDown: make([][]engine.Card, engine.NumTableaus),
		TableausFaceUp:   make([][]engine.Card, engine.NumTableaus),
		Foundations:      make([][]engine.Card, engine.NumFoundations),
		Rules:            engine.Rules{CardsToDraw: 3},
	}
	place(&snap)

	var used [engine.NumCards]bool
	groups := [][]engine.Card{snap.Stock, snap.Waste}
	groups = append(groups, snap.TableausFaceDown...)
	groups = append(groups, snap.TableausFaceUp...)
	groups = append(groups, snap.Foundations...)
	for _, g := range groups {
		for _, c := range g {
			used[c] = true
		}
	}
	for c := range engine.NumCards {
		if !used[c] {
			snap.Stock = append(snap.Stock, engine.Card(c))
		}
	}
	return snap
}

func setBoard(t *testing.T, g *Game, snap engine.Snapshot) {
	t.Helper()
	if err := g.state.Restore(snap); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	g.persist()
	g.afterChange()
}

// endgame has A..10 of every suit on the foundations and K Q J of one suit
// in each of the first four columns.
func endgame() engine.Snapshot {
	return board(func(s *engine.Snapshot) {
		for suit := range engine.NumFoundations {
			for rank := 0; rank < 10; rank++ {
				s.Foundations[suit] = append(s.Foundations[suit], engine.NewCard(suit, rank))
			}
			s.TableausFaceUp[suit] = []engine.Card{
				engine.NewCard(suit, 12), engine.NewCard(suit, 11), engine.NewCard(suit, 10),
			}
		}
	})
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"klondike", "klondike1", "klondike3"} {
		if !registry.Exists(id) {
			t.Errorf("registry.Exists(%q) = false", id)
		}
	}
	g, err := registry.Create("klondike1")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Klondike (draw 1)" {
		t.Errorf("Title() = %q, expected Klondike (draw 1)", g.Title())
	}
}

func TestResetDealsSeed(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())

	want := engine.NewGame(engine.Rules{CardsToDraw: 3}, 42)
	if g.Engine().NormalKey() != want.NormalKey() {
		t.Error("Reset() did not deal seed 42")
	}
	if g.Record().Seed != 42 || g.Record().Moves != 0 {
		t.Errorf("Record() = %+v", g.Record())
	}
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("State() = %+v after a fresh deal", g.State())
	}
}

func TestDrawVariantUsesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.CardsToDraw = 1
	g := newTestGame(t, 0, undo.NewMemoryKV(), cfg)
	if g.Engine().Rules.CardsToDraw != 1 {
		t.Errorf("CardsToDraw = %d, expected 1 from config", g.Engine().Rules.CardsToDraw)
	}

	g = newTestGame(t, 3, undo.NewMemoryKV(), cfg)
	if g.Engine().Rules.CardsToDraw != 3 {
		t.Errorf("CardsToDraw = %d, expected the variant's 3", g.Engine().Rules.CardsToDraw)
	}
}

func TestDrawKey(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	stock := g.Engine().Stock().Len()

	press(g, core.ActionDraw)

	if g.Engine().Waste().Len() != 3 {
		t.Errorf("waste = %d cards, expected 3", g.Engine().Waste().Len())
	}
	if g.Engine().Stock().Len() != stock-3 {
		t.Errorf("stock = %d cards, expected %d", g.Engine().Stock().Len(), stock-3)
	}
	if g.Record().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.Record().Moves)
	}
}

func TestUndo(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	before := g.Engine().NormalKey()

	press(g, core.ActionDraw)
	press(g, core.ActionUndo)

	if g.Engine().NormalKey() != before {
		t.Error("Undo did not restore the dealt position")
	}
	press(g, core.ActionUndo)
	if g.message != "Nothing to undo" {
		t.Errorf("message = %q, expected Nothing to undo", g.message)
	}
}

func TestUndoDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Undo.MaxUndos = 0
	g := newTestGame(t, 3, undo.NewMemoryKV(), cfg)

	press(g, core.ActionDraw)
	press(g, core.ActionUndo)

	if g.Engine().Waste().Len() != 3 {
		t.Error("Undo should be ignored when undos are off")
	}
}

func TestResumeSavedGame(t *testing.T) {
	kv := undo.NewMemoryKV()
	first := newTestGame(t, 3, kv, testConfig())
	press(first, core.ActionDraw)

	second := New(3, WithConfig(testConfig()), WithKV(kv))
	second.Reset(runtimeConfig(99))

	if second.Engine().NormalKey() != first.Engine().NormalKey() {
		t.Error("Reset() did not resume the saved position")
	}
	rec := second.Record()
	if rec.Seed != 42 || rec.Moves != 1 {
		t.Errorf("resumed Record() = %+v, expected seed 42 and 1 move", rec)
	}

	other := New(1, WithConfig(testConfig()), WithKV(kv))
	other.Reset(runtimeConfig(99))
	if other.Record().Seed != 99 {
		t.Error("a draw-1 game resumed the draw-3 save")
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	press(g, core.ActionDraw)

	g.Restart(7)

	want := engine.NewGame(engine.Rules{CardsToDraw: 3}, 7)
	if g.Engine().NormalKey() != want.NormalKey() {
		t.Error("Restart(7) did not deal seed 7")
	}
	if g.Record().Moves != 0 || g.Record().Seed != 7 {
		t.Errorf("Record() = %+v after Restart", g.Record())
	}
	press(g, core.ActionUndo)
	if g.Engine().NormalKey() != want.NormalKey() {
		t.Error("Undo reached into the previous deal")
	}
}

func TestAutoFinishWins(t *testing.T) {
	kv := undo.NewMemoryKV()
	g := newTestGame(t, 3, kv, testConfig())
	setBoard(t, g, endgame())

	for i := 0; i < 100 && !g.State().GameOver; i++ {
		press(g)
	}

	state := g.State()
	if !state.Won || !state.GameOver {
		t.Fatalf("State() = %+v, expected a won game", state)
	}
	if state.Score != 52*10+500 {
		t.Errorf("Score = %d, expected %d", state.Score, 52*10+500)
	}
	if g.Record().Moves != 12 {
		t.Errorf("Moves = %d, expected 12", g.Record().Moves)
	}
	if _, ok, _ := kv.Get("klondike3/meta"); ok {
		t.Error("a won game should not stay saved")
	}
	if undo.New(kv, undo.Options{Prefix: "klondike3/"}).Restore(engine.NewState()) {
		t.Error("a won position should not be restorable")
	}
}

func TestAutoFinishDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Autoplay.Enabled = false
	g := newTestGame(t, 3, undo.NewMemoryKV(), cfg)
	setBoard(t, g, endgame())

	for range 20 {
		press(g)
	}
	if g.Engine().FoundationCount() != 40 {
		t.Errorf("FoundationCount() = %d, expected no automatic moves", g.Engine().FoundationCount())
	}
}

func TestSolveAndPlayback(t *testing.T) {
	cfg := testConfig()
	cfg.Autoplay.Enabled = false
	g := newTestGame(t, 3, undo.NewMemoryKV(), cfg)
	setBoard(t, g, endgame())

	press(g, core.ActionSolve)
	if !g.Solving() {
		t.Fatal("Solve did not start a search")
	}

	deadline := time.Now().Add(5 * time.Second)
	for !g.State().GameOver && time.Now().Before(deadline) {
		press(g)
		time.Sleep(time.Millisecond)
	}
	if !g.State().Won {
		t.Fatal("the solver's line was not played to a win")
	}
}

func TestSolveToggleStops(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	g.solve = &solveJob{cancel: cancel, done: make(chan solveOutcome, 1)}

	press(g, core.ActionSolve)

	if g.Solving() {
		t.Error("a second Solve should stop the search")
	}
	if ctx.Err() == nil {
		t.Error("the search context was not cancelled")
	}
}

func TestMoveCancelsPlayback(t *testing.T) {
	cfg := testConfig()
	cfg.Autoplay.Enabled = false
	g := newTestGame(t, 3, undo.NewMemoryKV(), cfg)
	g.queue = []engine.Action{engine.DrawAction(), engine.DrawAction()}

	press(g, core.ActionDraw)

	if len(g.queue) != 0 {
		t.Error("a player move should stop solver playback")
	}
}

func TestClickStockDraws(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())

	clickAt(g, columnX(0)+1, topRowY)

	if g.Engine().Waste().Len() != 3 {
		t.Errorf("waste = %d cards after clicking the stock, expected 3", g.Engine().Waste().Len())
	}
}

func TestClickPlaysAceToFoundation(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	ace := engine.NewCard(0, engine.RankAce)
	setBoard(t, g, board(func(s *engine.Snapshot) {
		s.Waste = []engine.Card{ace}
	}))

	clickAt(g, columnX(1)+2, topRowY)

	if top, ok := g.Engine().Foundation(0).Top(); !ok || top != ace {
		t.Errorf("foundation 0 top = %v, expected %s", top, ace)
	}
	if g.State().Score != 10 {
		t.Errorf("Score = %d, expected 10", g.State().Score)
	}
}

func TestClickFaceDownDoesNothing(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	before := g.Engine().NormalKey()

	// Column 6 holds six face-down cards under its face-up card.
	clickAt(g, columnX(6)+1, tableauY)

	if g.Engine().NormalKey() != before {
		t.Error("clicking a face-down card changed the position")
	}
}

func TestPickAndDropWithKeys(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	king := engine.NewCard(3, engine.RankKing)
	setBoard(t, g, board(func(s *engine.Snapshot) {
		s.TableausFaceUp[0] = []engine.Card{king}
	}))
	g.cursor = cursor{slot: slotTableau0}

	press(g, core.ActionPick)
	if g.held != king {
		t.Fatalf("held = %v, expected %s", g.held, king)
	}
	press(g, core.ActionRight)
	press(g, core.ActionPick)

	if g.Engine().TableauFaceUp(1).Len() != 1 || g.Engine().TableauFaceUp(0).Len() != 0 {
		t.Error("the king was not moved to column 1")
	}
	if g.held != engine.NoCard {
		t.Error("the card is still held after the drop")
	}
}

func TestDropOnIllegalPile(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	king := engine.NewCard(3, engine.RankKing)
	setBoard(t, g, board(func(s *engine.Snapshot) {
		s.TableausFaceUp[0] = []engine.Card{king}
	}))
	g.cursor = cursor{slot: slotTableau0}

	press(g, core.ActionPick)
	g.cursor = cursor{slot: slotFoundation0}
	press(g, core.ActionSelect)

	if g.Engine().TableauFaceUp(0).Len() != 1 {
		t.Error("the king left its column")
	}
	if !strings.Contains(g.message, "can't go there") {
		t.Errorf("message = %q", g.message)
	}
}

func TestCursorNavigation(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	g.cursor = cursor{slot: slotTableau0 + 3}

	press(g, core.ActionUp)
	if g.cursor.slot != slotFoundation0 {
		t.Errorf("Up from column 3 went to slot %d, expected foundation 0", g.cursor.slot)
	}
	press(g, core.ActionDown)
	if g.cursor.slot != slotTableau0+3 {
		t.Errorf("Down from foundation 0 went to slot %d, expected column 3", g.cursor.slot)
	}
	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	if g.cursor.slot != slotTableau0-1 {
		t.Errorf("cursor slot = %d, expected the last foundation", g.cursor.slot)
	}
	g.cursor = cursor{slot: slotStock}
	press(g, core.ActionLeft)
	if g.cursor.slot != numSlots-1 {
		t.Errorf("Left from the stock went to slot %d, expected the last column", g.cursor.slot)
	}
}

func TestStuckWarning(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	king := engine.NewCard(3, engine.RankKing)
	blocker := engine.NewCard(0, 4)
	setBoard(t, g, engine.Snapshot{
		Stock:            []engine.Card{},
		Waste:            []engine.Card{},
		TableausFaceDown: buriedColumn(king, blocker),
		TableausFaceUp:   [][]engine.Card{{king}, {}, {}, {}, {}, {}, {}},
		Foundations:      make([][]engine.Card, engine.NumFoundations),
		Rules:            engine.Rules{CardsToDraw: 3},
	})

	if !g.stuck {
		t.Fatal("a buried column should be flagged")
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(23), "No way to win") {
		t.Errorf("status line = %q", screen.Row(23))
	}
}

// buriedColumn puts every card but king face-down in column 0, with
// blocker on top.
func buriedColumn(king, blocker engine.Card) [][]engine.Card {
	down := make([][]engine.Card, engine.NumTableaus)
	for c := range engine.NumCards {
		card := engine.Card(c)
		if card != king && card != blocker {
			down[0] = append(down[0], card)
		}
	}
	down[0] = append(down[0], blocker)
	for t := 1; t < engine.NumTableaus; t++ {
		down[t] = []engine.Card{}
	}
	return down
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("Pause did not pause")
	}
	press(g, core.ActionDraw)
	if g.Engine().Waste().Len() != 0 {
		t.Error("moves should be ignored while paused")
	}
	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("Pause did not resume")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Klondike (draw 3)") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Seed 42") {
		t.Errorf("HUD row = %q, expected the seed", screen.Row(0))
	}
	if !strings.Contains(screen.Row(topRowY), "[░░░]") {
		t.Errorf("top row = %q, expected the stock", screen.Row(topRowY))
	}
	// Column 0 has a single face-up card.
	top, _ := g.Engine().TableauFaceUp(0).Top()
	if !strings.Contains(screen.Row(tableauY), cardLabel(top)) {
		t.Errorf("row %d = %q, expected %s", tableauY, screen.Row(tableauY), top)
	}
	if cell := screen.GetCell(columnX(0)-1, tableauY); cell.Rune != '▶' {
		t.Errorf("cursor cell = %q, expected ▶", cell.Rune)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 3, undo.NewMemoryKV(), testConfig())
	g.Resize(40, 10)
	screen := core.NewScreen(40, 10)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
	if !g.State().Paused {
		t.Error("a too-small window should pause the game")
	}
}

func TestCardLabel(t *testing.T) {
	tests := []struct {
		card engine.Card
		want string
	}{
		{engine.NewCard(0, 0), " A♥"},
		{engine.NewCard(2, 9), "10♣"},
		{engine.NewCard(3, 12), " K♠"},
	}
	for _, tt := range tests {
		if got := cardLabel(tt.card); got != tt.want {
			t.Errorf("cardLabel(%d) = %q, want %q", int(tt.card), got, tt.want)
		}
	}
}
