package klondike

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
	"github.com/vovakirdan/tui-patience/internal/games/klondike/solver"
)

// solveJob is a search running in the background. The result is picked up
// on a later tick so input stays responsive.
type solveJob struct {
	cancel context.CancelFunc
	done   chan solveOutcome
}

type solveOutcome struct {
	result solver.Result
	err    error
}

// Solving reports whether a search is running.
func (g *Game) Solving() bool {
	return g.solve != nil
}

// toggleSolve starts a search from the current position, or stops the
// search or playback in progress.
func (g *Game) toggleSolve() {
	if g.solve != nil {
		g.cancelSolve()
		g.setMessage("Search stopped")
		return
	}
	if len(g.queue) > 0 {
		g.queue = nil
		g.setMessage("Playback stopped")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &solveJob{cancel: cancel, done: make(chan solveOutcome, 1)}
	start := g.state.Clone()
	opts := solver.Options{
		MaxStates: g.cfg.Solver.MaxStates,
		Timeout:   g.cfg.Solver.Timeout,
		Logger:    g.logger,
	}
	go func() {
		res, err := solver.Solve(ctx, start, opts)
		job.done <- solveOutcome{result: res, err: err}
	}()
	g.solve = job
	g.held = engine.NoCard
	g.message = ""
	g.messageTicks = 0
}

// pollSolve collects a finished search.
func (g *Game) pollSolve() {
	if g.solve == nil {
		return
	}
	select {
	case out := <-g.solve.done:
		g.solve.cancel()
		g.solve = nil
		g.applySolution(out)
	default:
	}
}

func (g *Game) applySolution(out solveOutcome) {
	res := out.result
	if out.err != nil {
		g.logger.Debug("search cancelled", "err", out.err)
		return
	}
	g.logger.Info("search finished", "game", g.ID(), "seed", g.seed,
		"status", res.Status, "explored", res.Explored, "elapsed", res.Elapsed)

	switch res.Status {
	case solver.StatusSolved:
		g.queue = res.Actions
		g.autoTicks = 0
		g.setMessage(fmt.Sprintf("Solution found: %d moves", len(res.Actions)))
	case solver.StatusUnsolvable:
		g.stuck = true
		g.setMessage("No solution from here")
	default:
		g.setMessage(fmt.Sprintf("Gave up after %d positions", res.Explored))
	}
}

// cancelSolve stops a running search. The worker's result is dropped.
func (g *Game) cancelSolve() {
	if g.solve == nil {
		return
	}
	g.solve.cancel()
	g.solve = nil
}
