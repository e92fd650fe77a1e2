package registry

import (
	"testing"

	"github.com/vovakirdan/tui-patience/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub-b", func() Game { return stubGame{id: "zz-stub-b"} })
	Register("zz-stub-a", func() Game { return stubGame{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") {
		t.Error("Exists() = false for a registered game")
	}
	if Exists("zz-missing") {
		t.Error("Exists() = true for an unknown game")
	}

	g, err := Create("zz-stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub-a" {
		t.Errorf("Create().ID() = %q, expected zz-stub-a", g.ID())
	}
	if _, err := Create("zz-missing"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz-stub-a" && info.Title != "Stub zz-stub-a" {
			t.Errorf("List() title = %q", info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID should panic")
		}
	}()
	Register("zz-dup", func() Game { return stubGame{id: "zz-dup"} })
}
