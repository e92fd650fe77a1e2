package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-patience/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"enter plays", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"space picks", runes(" "), core.ActionPick, false},
		{"tab draws", tea.KeyMsg{Type: tea.KeyTab}, core.ActionDraw, false},
		{"x draws", runes("x"), core.ActionDraw, false},
		{"u undoes", runes("u"), core.ActionUndo, false},
		{"ctrl+z undoes", tea.KeyMsg{Type: tea.KeyCtrlZ}, core.ActionUndo, false},
		{"h solves", runes("h"), core.ActionSolve, false},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel, false},
		{"n restarts", runes("n"), core.ActionRestart, false},
		{"p pauses", runes("p"), core.ActionPause, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"k is up", runes("k"), core.ActionUp, false},
		{"j is down", runes("j"), core.ActionDown, false},
		{"q quits", runes("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if len(frame.Clicks) != 0 {
		t.Fatalf("clicks = %v, expected none", frame.Clicks)
	}

	km.MapMouseToFrame(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 10, Y: 5}) {
		t.Errorf("clicks = %v, expected one at 10,5", frame.Clicks)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}
