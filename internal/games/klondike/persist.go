package klondike

import "fmt"

func (g *Game) metaKey() string {
	return g.ID() + "/meta"
}

// persist saves the position to the undo history and the deal's counters
// next to it.
func (g *Game) persist() {
	if err := g.history.Store(g.state); err != nil {
		g.logger.Warn("cannot save position", "game", g.ID(), "err", err)
	}
	g.saveMeta()
}

func (g *Game) saveMeta() {
	value := fmt.Sprintf("%d %d %d", g.seed, g.moves, g.playTicks)
	if err := g.kv.Set(g.metaKey(), value); err != nil {
		g.logger.Warn("cannot save game info", "game", g.ID(), "err", err)
	}
}

// loadMeta reads what saveMeta wrote. Missing or unreadable values read
// as zero.
func (g *Game) loadMeta() (seed int64, moves int, ticks uint64) {
	value, ok, err := g.kv.Get(g.metaKey())
	if err != nil {
		g.logger.Warn("cannot read game info", "game", g.ID(), "err", err)
		return 0, 0, 0
	}
	if !ok {
		return 0, 0, 0
	}
	if _, err := fmt.Sscan(value, &seed, &moves, &ticks); err != nil {
		g.logger.Warn("corrupt game info", "game", g.ID(), "value", value, "err", err)
		return 0, 0, 0
	}
	return seed, moves, ticks
}

// erase forgets the saved game once it is won.
func (g *Game) erase() {
	if err := g.history.Erase(); err != nil {
		g.logger.Warn("cannot erase saved game", "game", g.ID(), "err", err)
	}
	if err := g.kv.Delete(g.metaKey()); err != nil {
		g.logger.Warn("cannot erase game info", "game", g.ID(), "err", err)
	}
}
