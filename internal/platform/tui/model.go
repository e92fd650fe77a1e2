package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

// logger receives save failures. The alternate screen owns the terminal, so
// the default discards everything.
var logger = log.New(io.Discard)

// SetLogger sets where the UI reports failures.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Model is the Bubble Tea model for playing one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	newDeal    bool // deal config.Seed even when a saved game exists
	standalone bool // the model owns the program, so Back quits it
	showHelp   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// WithNewDeal makes the model deal the configured seed instead of resuming.
func (m Model) WithNewDeal() Model {
	m.newDeal = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if r, ok := m.game.(core.Restarter); ok && m.newDeal {
		m.recordAbandoned()
		r.Restart(m.config.Seed)
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.showHelp {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case m.showHelp && key.Matches(msg, keys.Cancel):
		m.showHelp = false
		return m, nil
	case key.Matches(msg, keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp && !key.Matches(msg, keys.Quit) {
		return m, nil
	}

	// Map key to action
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(core.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		if r, ok := m.game.(core.Restarter); ok {
			m.recordAbandoned()
			m.config.Seed = time.Now().UnixNano()
			r.Restart(m.config.Seed)
			return m.restarted()
		}
		if m.gameState.GameOver {
			m.config.Seed = time.Now().UnixNano()
			m.game.Reset(m.config)
			return m.restarted()
		}
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save result on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m Model) restarted() (tea.Model, tea.Cmd) {
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records a finished game in the scores and results tables.
func (m Model) saveResult() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
		}
	}
	if rec, ok := m.game.(core.Recorder); ok {
		m.saveRecord(rec.Record())
	}
}

// recordAbandoned records the deal being thrown away, if it was played.
func (m Model) recordAbandoned() {
	rec, ok := m.game.(core.Recorder)
	if !ok || m.store == nil || m.scoreSaved {
		return
	}
	if r := rec.Record(); r.Moves > 0 && !r.Won {
		m.saveRecord(r)
	}
}

func (m Model) saveRecord(r core.Record) {
	_, err := m.store.SaveResult(storage.GameResult{
		GameID:      m.game.ID(),
		Seed:        r.Seed,
		CardsToDraw: r.CardsToDraw,
		Won:         r.Won,
		Moves:       r.Moves,
		Score:       r.Score,
		Duration:    int(r.Duration.Seconds()),
	})
	if err != nil {
		logger.Warn("cannot save result", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".patience", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("cannot save screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.helpView()
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// helpView renders the full key help in a box in the middle of the screen.
func (m Model) helpView() string {
	h := m.help
	h.ShowAll = true

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(m.game.Title() + " - keys")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", h.View(m.keyMapper.Keys), "", "? or esc to return"))

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model. newDeal deals
// cfg.Seed even when a saved game exists. It reports whether the player
// asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, newDeal bool) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg)
	model.standalone = true
	if newDeal {
		model = model.WithNewDeal()
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks pick cards
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
