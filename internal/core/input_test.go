package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionDraw)
	f.Click(3, 4)
	if !f.Has(ActionDraw) {
		t.Error("Has(ActionDraw) = false, expected true")
	}
	if f.Has(ActionUndo) {
		t.Error("Has(ActionUndo) = true, expected false")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected [{3 4}]", f.Clicks)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPick) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPick)
	if !f.Has(ActionPick) {
		t.Error("Set on zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionSolve.String() != "Solve" {
		t.Errorf("ActionSolve.String() = %q, expected %q", ActionSolve.String(), "Solve")
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected %q", Action(99).String(), "Unknown")
	}
}
