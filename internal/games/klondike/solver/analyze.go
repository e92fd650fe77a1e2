package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

// SeedResult is the search result for one deal.
type SeedResult struct {
	Seed   int64
	Result Result
}

// Summary aggregates an AnalyzeSeeds run.
type Summary struct {
	Results    []SeedResult // in seed order
	Solved     int
	Unsolvable int
	Unknown    int
}

// WinRate returns the solved fraction over deals with a definite answer.
func (s Summary) WinRate() float64 {
	decided := s.Solved + s.Unsolvable
	if decided == 0 {
		return 0
	}
	return float64(s.Solved) / float64(decided)
}

// AnalyzeSeeds deals and solves every seed with at most workers searches
// running at once. workers <= 0 uses GOMAXPROCS.
func AnalyzeSeeds(ctx context.Context, seeds []int64, rules engine.Rules, workers int, opts Options) (Summary, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger

	results := make([]SeedResult, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range seeds {
		g.Go(func() error {
			res, err := Solve(ctx, engine.NewGame(rules, seed), opts)
			if err != nil {
				return err
			}
			results[i] = SeedResult{Seed: seed, Result: res}
			if logger != nil {
				logger.Info("seed analyzed", "seed", seed, "status", res.Status,
					"moves", len(res.Actions), "explored", res.Explored)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Results: results}
	for _, r := range results {
		switch r.Result.Status {
		case StatusSolved:
			sum.Solved++
		case StatusUnsolvable:
			sum.Unsolvable++
		default:
			sum.Unknown++
		}
	}
	return sum, nil
}
