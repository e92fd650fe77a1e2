// Package solver searches Klondike positions for a winning line.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

// DefaultMaxStates bounds the visited set when Options.MaxStates is zero.
const DefaultMaxStates = 250_000

// Status is the outcome of a search.
type Status int

const (
	// StatusUnknown means the budget or timeout ran out first.
	StatusUnknown Status = iota
	StatusSolved
	StatusUnsolvable
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusUnsolvable:
		return "unsolvable"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options bounds a search.
type Options struct {
	MaxStates int           // visited positions; 0 selects DefaultMaxStates
	Timeout   time.Duration // 0 means no limit
	Logger    *log.Logger
}

// Result describes a finished search.
type Result struct {
	Status  Status
	Actions []engine.Action
	// Path holds, for each step, the index of the action within AllActions
	// of the position it was played from.
	Path     []int
	Explored int
	Rounds   int
	Elapsed  time.Duration
}

type node struct {
	state  *engine.State
	parent *node
	index  int
	action engine.Action
}

func (n *node) line() ([]engine.Action, []int) {
	var actions []engine.Action
	var path []int
	for ; n.parent != nil; n = n.parent {
		actions = append(actions, n.action)
		path = append(path, n.index)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
		path[i], path[j] = path[j], path[i]
	}
	return actions, path
}

// Solve runs a breadth-first search from start, one round per search depth,
// skipping positions already seen (by NormalKey) and children that are
// provably lost. start is not modified.
//
// When ctx is cancelled the result has StatusCancelled and the context error
// is returned. Running out of states or time yields StatusUnknown.
func Solve(ctx context.Context, start *engine.State, opts Options) (Result, error) {
	if opts.MaxStates <= 0 {
		opts.MaxStates = DefaultMaxStates
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	began := time.Now()
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = began.Add(opts.Timeout)
	}

	res := Result{}
	finish := func(status Status) Result {
		res.Status = status
		res.Elapsed = time.Since(began)
		logger.Debug("search finished",
			"status", status, "explored", res.Explored, "rounds", res.Rounds, "elapsed", res.Elapsed)
		return res
	}

	root := &node{state: start.Clone()}
	if root.state.IsComplete() {
		return finish(StatusSolved), nil
	}
	if root.state.DefinitelyUncompletable() {
		return finish(StatusUnsolvable), nil
	}

	visited := map[string]struct{}{root.state.NormalKey(): {}}
	frontier := []*node{root}

	for len(frontier) > 0 {
		res.Rounds++
		logger.Debug("search round", "round", res.Rounds, "frontier", len(frontier), "explored", res.Explored)

		var next []*node
		for _, parent := range frontier {
			if err := ctx.Err(); err != nil {
				return finish(StatusCancelled), err
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return finish(StatusUnknown), nil
			}

			for i, a := range parent.state.AllActions() {
				child := parent.state.Clone()
				if err := child.Execute(a); err != nil {
					return finish(StatusUnknown), fmt.Errorf("solver: execute %s: %w", a, err)
				}
				key := child.NormalKey()
				if _, seen := visited[key]; seen {
					continue
				}
				visited[key] = struct{}{}
				res.Explored++

				n := &node{state: child, parent: parent, index: i, action: a}
				if child.IsComplete() {
					res.Actions, res.Path = n.line()
					return finish(StatusSolved), nil
				}
				if child.DefinitelyUncompletable() {
					continue
				}
				if len(visited) >= opts.MaxStates {
					return finish(StatusUnknown), nil
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return finish(StatusUnsolvable), nil
}

// ErrBadPath is returned by Replay for an index outside AllActions.
var ErrBadPath = errors.New("solver: path index out of range")

// Replay plays an index path from start and returns the resulting position.
// start is not modified.
func Replay(start *engine.State, path []int) (*engine.State, error) {
	s := start.Clone()
	for step, idx := range path {
		actions := s.AllActions()
		if idx < 0 || idx >= len(actions) {
			return nil, fmt.Errorf("%w: step %d index %d of %d", ErrBadPath, step, idx, len(actions))
		}
		if err := s.Execute(actions[idx]); err != nil {
			return nil, fmt.Errorf("solver: step %d: %w", step, err)
		}
	}
	return s, nil
}
