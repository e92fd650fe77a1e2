package core

import "time"

// Record summarizes one deal for the results history.
type Record struct {
	Seed        int64
	CardsToDraw int
	Moves       int
	Duration    time.Duration
	Won         bool
	Score       int
}

// Recorder is implemented by games whose deals are kept in the results
// history. The platform reads the record when a deal is won or abandoned.
type Recorder interface {
	Record() Record
}

// Restarter is implemented by games that can throw away the current deal
// and start another without a full Reset.
type Restarter interface {
	Restart(seed int64)
}

// Resizer is implemented by games that keep their state across terminal
// resizes. Games without it are Reset on resize.
type Resizer interface {
	Resize(width, height int)
}
