package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

// recentDeals is how many past deals the replay list offers.
const recentDeals = 10

// DealSelection holds the user's choice from the deal menu.
type DealSelection struct {
	NewDeal bool  // false resumes the saved game, if any
	Seed    int64 // deal to play when NewDeal is set; 0 picks a random one
}

// DealMenuModel lets users continue, start a random deal or replay a
// recent one.
type DealMenuModel struct {
	gameID       string
	title        string
	saved        bool
	recent       []storage.GameResult
	cursor       int
	replayCursor int
	inReplay     bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    DealSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewDealMenuModel creates a deal menu for the given variant.
func NewDealMenuModel(store *storage.Store, gameID, title string, width, height int) DealMenuModel {
	m := DealMenuModel{
		gameID:    gameID,
		title:     title,
		saved:     hasSavedGame(store, gameID),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	if store != nil {
		results, err := store.RecentResults(gameID, recentDeals)
		if err != nil {
			logger.Warn("cannot load recent deals", "game", gameID, "err", err)
		}
		m.recent = results
	}
	return m
}

// options returns the entries of the first screen.
func (m DealMenuModel) options() []string {
	var opts []string
	if m.saved {
		opts = append(opts, "Continue saved game")
	}
	opts = append(opts, "New random deal")
	if len(m.recent) > 0 {
		opts = append(opts, "Replay a recent deal...")
	}
	return opts
}

// Init initializes the model.
func (m DealMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DealMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DealMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inReplay {
		return m.handleReplayKey(action)
	}
	return m.handleOptionKey(action)
}

func (m DealMenuModel) handleOptionKey(action MenuAction) (tea.Model, tea.Cmd) {
	opts := m.options()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch opts[m.cursor] {
		case "Continue saved game":
			m.choosing = false
			m.selection = DealSelection{}
			return m, tea.Quit
		case "New random deal":
			m.choosing = false
			m.selection = DealSelection{NewDeal: true}
			return m, tea.Quit
		default:
			m.inReplay = true
			m.replayCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m DealMenuModel) handleReplayKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.replayCursor > 0 {
			m.replayCursor--
		}
	case MenuActionDown:
		if m.replayCursor < len(m.recent)-1 {
			m.replayCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = DealSelection{NewDeal: true, Seed: m.recent[m.replayCursor].Seed}
		return m, tea.Quit
	case MenuActionBack:
		m.inReplay = false
	}

	return m, nil
}

// View renders the deal selection.
func (m DealMenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inReplay {
		return m.viewReplay()
	}
	return m.viewOptions()
}

func (m DealMenuModel) viewOptions() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m DealMenuModel) viewReplay() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("RECENT DEALS", m.width))
	b.WriteString("\n\n")

	for i, r := range m.recent {
		cursor := "  "
		if i == m.replayCursor {
			cursor = "> "
		}
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		line := fmt.Sprintf("%sSeed %-20d %-4s %4d moves", cursor, r.Seed, outcome, r.Moves)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Replay  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DealMenuModel) Selected() *DealSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DealMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DealMenuModel) WantsBack() bool {
	return m.back
}

// RunDealMenu runs the deal menu for gameID. A nil selection means the user
// went back or quit.
func RunDealMenu(store *storage.Store, gameID, title string, cfg core.RuntimeConfig) (*DealSelection, error) {
	model := NewDealMenuModel(store, gameID, title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DealMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
