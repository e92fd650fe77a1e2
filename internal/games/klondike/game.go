// Package klondike adapts the Klondike engine to the terminal platform:
// cursor and mouse input, the undo history, the background solver and
// rendering into a core.Screen.
package klondike

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/undo"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

// Game implements Klondike patience.
type Game struct {
	draw     int // 0 takes the draw count from config
	cfg      config.KlondikeConfig
	cfgFixed bool
	kv       undo.KV
	logger   *log.Logger

	history *undo.Store
	chooser *engine.Chooser
	state   *engine.State

	seed      int64
	moves     int
	tick      uint64
	playTicks uint64
	tickRate  int

	// Screen dimensions
	screenW int
	screenH int

	cursor       cursor
	held         engine.Card
	message      string
	messageTicks int

	solve     *solveJob
	queue     []engine.Action // solver line being played back
	autoTicks int

	// Game state flags
	stuck    bool
	won      bool
	paused   bool
	tooSmall bool
}

// Package-level settings applied to games created through the registry.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sharedKV         undo.KV
	sharedLogger     *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config as loaded.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParseDifficulty(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetKV sets where games save their position and undo history.
func SetKV(kv undo.KV) {
	sharedKV = kv
}

// SetLogger sets the logger of games created after the call.
func SetLogger(l *log.Logger) {
	sharedLogger = l
}

// Option configures a single game.
type Option func(*Game)

// WithKV stores the game in kv instead of the package-level store.
func WithKV(kv undo.KV) Option {
	return func(g *Game) { g.kv = kv }
}

// WithLogger sets the game's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfig uses cfg instead of loading the config file on Reset.
func WithConfig(cfg config.KlondikeConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgFixed = true
	}
}

// New creates a game turning draw cards at a time. draw 0 takes the count
// from the config.
func New(draw int, opts ...Option) *Game {
	g := &Game{
		draw:   draw,
		cfg:    config.DefaultKlondikeConfig(),
		held:   engine.NoCard,
		logger: sharedLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

func init() {
	registry.Register("klondike", func() registry.Game {
		return New(0)
	})
	registry.Register("klondike1", func() registry.Game {
		return New(1)
	})
	registry.Register("klondike3", func() registry.Game {
		return New(3)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.draw {
	case 0:
		return "klondike"
	default:
		return fmt.Sprintf("klondike%d", g.draw)
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.draw == 0 {
		return "Klondike"
	}
	return fmt.Sprintf("Klondike (draw %d)", g.draw)
}

// drawCount is the number of cards a draw turns.
func (g *Game) drawCount() int {
	if g.draw > 0 {
		return g.draw
	}
	return max(g.cfg.Rules.CardsToDraw, 1)
}

// Reset resumes the saved game when there is one and deals cfg.Seed
// otherwise.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.cancelSolve()

	if !g.cfgFixed {
		cfg, err := config.LoadKlondike(configPath)
		if err != nil {
			g.logger.Warn("config load failed, using defaults", "err", err)
			cfg = config.DefaultKlondikeConfig()
		}
		if difficultyPreset != "" {
			config.ApplyKlondikePreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.kv == nil {
		g.kv = sharedKV
	}
	if g.kv == nil {
		g.kv = undo.NewMemoryKV()
	}

	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.tickRate = rt.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.history = undo.New(g.kv, undo.Options{
		MaxUndos: g.cfg.Undo.MaxUndos,
		Prefix:   g.ID() + "/",
		Logger:   g.logger,
	})
	g.chooser = engine.NewChooser()
	g.tick = 0
	g.paused = false

	saved := engine.NewState()
	if g.history.Restore(saved) && saved.Rules.CardsToDraw == g.drawCount() && !saved.IsComplete() {
		g.clearPlay()
		g.state = saved
		g.seed, g.moves, g.playTicks = g.loadMeta()
		g.logger.Info("resumed game", "game", g.ID(), "seed", g.seed, "moves", g.moves)
		g.setMessage("Resumed your saved game")
		g.afterChange()
	} else {
		g.deal(rt.Seed)
	}

	g.checkScreenSize()
}

// Restart abandons the current deal and deals seed.
func (g *Game) Restart(seed int64) {
	g.cancelSolve()
	g.deal(seed)
}

// BindKV moves the game's saves to kv. It takes effect on the next Reset.
func (g *Game) BindKV(kv undo.KV) {
	g.kv = kv
}

// Resize adapts to a new terminal size without touching the deal.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

func (g *Game) clearPlay() {
	g.moves = 0
	g.playTicks = 0
	g.held = engine.NoCard
	g.queue = nil
	g.autoTicks = 0
	g.cursor = cursor{slot: slotTableau0}
	g.message = ""
	g.messageTicks = 0
	g.stuck = false
	g.won = false
	g.chooser.Reset()
}

// deal starts a fresh game and saves it.
func (g *Game) deal(seed int64) {
	if err := g.history.Erase(); err != nil {
		g.logger.Warn("cannot erase saved game", "err", err)
	}
	g.clearPlay()
	g.seed = seed
	g.state = engine.NewGame(engine.Rules{CardsToDraw: g.drawCount()}, seed)
	g.persist()
	g.afterChange()
	g.logger.Info("new deal", "game", g.ID(), "seed", seed)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	g.pollSolve()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.won {
		g.paused = !g.paused
	}
	if g.paused || g.won {
		return core.StepResult{State: g.State()}
	}

	g.playTicks++
	g.handleInput(in)
	g.autoplay()

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	for _, p := range in.Clicks {
		g.click(p.X, p.Y)
	}

	switch {
	case in.Has(core.ActionLeft):
		g.moveCursorSideways(-1)
	case in.Has(core.ActionRight):
		g.moveCursorSideways(1)
	case in.Has(core.ActionUp):
		g.moveCursorUp()
	case in.Has(core.ActionDown):
		g.moveCursorDown()
	}

	switch {
	case in.Has(core.ActionSelect):
		g.selectAtCursor()
	case in.Has(core.ActionPick):
		g.pickAtCursor()
	case in.Has(core.ActionCancel):
		g.held = engine.NoCard
	case in.Has(core.ActionDraw):
		g.held = engine.NoCard
		g.play(engine.DrawAction(), true)
	case in.Has(core.ActionUndo):
		g.undo()
	case in.Has(core.ActionSolve):
		g.toggleSolve()
	}
}

// play executes a, saves the position and updates the flags. user marks a
// move chosen by the player, which stops any solver playback.
func (g *Game) play(a engine.Action, user bool) bool {
	if a.Move == engine.MoveDraw && !g.state.CanDraw() {
		g.setMessage("The stock is empty")
		return false
	}
	if err := g.state.Execute(a); err != nil {
		g.logger.Debug("move rejected", "action", a, "err", err)
		return false
	}
	if user {
		g.queue = nil
		g.cancelSolve()
	}
	g.moves++
	g.held = engine.NoCard
	g.persist()
	g.afterChange()
	return true
}

// afterChange refreshes everything derived from the position.
func (g *Game) afterChange() {
	g.clampCursor()
	g.stuck = g.state.DefinitelyUncompletable()
	if !g.state.IsComplete() {
		return
	}
	g.won = true
	g.held = engine.NoCard
	g.queue = nil
	g.erase()
	g.logger.Info("game won", "game", g.ID(), "seed", g.seed, "moves", g.moves)
}

func (g *Game) undo() {
	if g.cfg.Undo.MaxUndos == 0 {
		g.setMessage("Undo is off at this difficulty")
		return
	}
	if !g.history.CanUndo() || !g.history.Undo(g.state) {
		g.setMessage("Nothing to undo")
		return
	}
	g.cancelSolve()
	g.queue = nil
	g.held = engine.NoCard
	g.chooser.Reset()
	g.moves++
	g.saveMeta()
	g.afterChange()
	g.setMessage("Move undone")
}

// autoplay plays the next solver move or auto-finish move once per
// configured interval.
func (g *Game) autoplay() {
	finishing := g.cfg.Autoplay.Enabled && g.state.CanAutoFinish()
	if len(g.queue) == 0 && !finishing {
		g.autoTicks = 0
		return
	}
	g.autoTicks++
	if g.autoTicks < max(g.cfg.Autoplay.IntervalTicks, 1) {
		return
	}
	g.autoTicks = 0

	if len(g.queue) > 0 {
		a := g.queue[0]
		g.queue = g.queue[1:]
		if !g.play(a, false) {
			g.queue = nil
			g.setMessage("The solution no longer applies")
		}
		return
	}
	if a, ok := g.state.NextAutoMove(); ok {
		g.play(a, false)
	}
}

// setMessage shows text on the status line for a few seconds.
func (g *Game) setMessage(text string) {
	g.message = text
	g.messageTicks = 3 * max(g.tickRate, 1)
}

// Score is the configured points per foundation card plus the win bonus.
func (g *Game) Score() int {
	if g.state == nil {
		return 0
	}
	score := g.cfg.Scoring.FoundationCard * g.state.FoundationCount()
	if g.won {
		score += g.cfg.Scoring.WinBonus
	}
	return score
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Record summarizes the current deal.
func (g *Game) Record() core.Record {
	rate := max(g.tickRate, 1)
	return core.Record{
		Seed:        g.seed,
		CardsToDraw: g.drawCount(),
		Moves:       g.moves,
		Duration:    time.Duration(g.playTicks) * time.Second / time.Duration(rate),
		Won:         g.won,
		Score:       g.Score(),
	}
}

// Engine returns the position being played.
func (g *Game) Engine() *engine.State {
	return g.state
}
