// Package undo keeps a short history of game snapshots so moves can be taken
// back and an interrupted game can be resumed.
package undo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

// DefaultMaxUndos is the number of moves that can be taken back.
const DefaultMaxUndos = 3

// DefaultPrefix namespaces the store's keys.
const DefaultPrefix = "klondike/"

// Options configures a Store.
type Options struct {
	// MaxUndos bounds the history to MaxUndos+1 snapshots. Zero disables undo;
	// negative values select DefaultMaxUndos.
	MaxUndos int
	Prefix   string
	Logger   *log.Logger
}

type entry struct {
	position int
	data     string
}

// Store is a bounded snapshot history addressed by a monotonically
// increasing position. Every change is mirrored to the KV port.
type Store struct {
	kv       KV
	prefix   string
	maxUndos int
	logger   *log.Logger

	position int
	history  []entry // oldest first, positions contiguous up to position
}

// New creates a store over kv and loads whatever history kv already holds.
func New(kv KV, opts Options) *Store {
	if opts.MaxUndos < 0 {
		opts.MaxUndos = DefaultMaxUndos
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Store{
		kv:       kv,
		prefix:   opts.Prefix,
		maxUndos: opts.MaxUndos,
		logger:   opts.Logger,
	}
	s.load()
	return s
}

func (s *Store) positionKey() string { return s.prefix + "position" }

func (s *Store) stateKey(position int) string {
	return s.prefix + "state/" + strconv.Itoa(position)
}

func (s *Store) load() {
	raw, ok, err := s.kv.Get(s.positionKey())
	if err != nil {
		s.logger.Warn("undo: read position", "err", err)
		return
	}
	if !ok {
		return
	}
	position, err := strconv.Atoi(raw)
	if err != nil || position < 0 {
		s.logger.Warn("undo: bad position", "value", raw)
		return
	}
	s.position = position

	for p := max(1, position-s.maxUndos); p <= position; p++ {
		data, ok, err := s.kv.Get(s.stateKey(p))
		if err != nil {
			s.logger.Warn("undo: read snapshot", "position", p, "err", err)
			continue
		}
		if !ok {
			// Only a contiguous run ending at position is usable.
			s.history = s.history[:0]
			continue
		}
		s.history = append(s.history, entry{position: p, data: data})
	}
}

// Position returns the current history position. Zero means nothing stored.
func (s *Store) Position() int { return s.position }

// Len returns the number of snapshots held.
func (s *Store) Len() int { return len(s.history) }

func (s *Store) find(position int) (entry, bool) {
	for _, e := range s.history {
		if e.position == position {
			return e, true
		}
	}
	return entry{}, false
}

// Store records state as the newest snapshot. Snapshots beyond the current
// position (left over from an undo) are discarded.
func (s *Store) Store(state *engine.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("undo: encode snapshot: %w", err)
	}

	s.position++
	var errs []error
	kept := s.history[:0]
	for _, e := range s.history {
		switch {
		case e.position < s.position:
			kept = append(kept, e)
		case e.position > s.position:
			errs = append(errs, s.kv.Delete(s.stateKey(e.position)))
		}
	}
	s.history = append(kept, entry{position: s.position, data: string(data)})

	for len(s.history) > s.maxUndos+1 {
		errs = append(errs, s.kv.Delete(s.stateKey(s.history[0].position)))
		s.history = s.history[1:]
	}
	errs = append(errs,
		s.kv.Set(s.stateKey(s.position), string(data)),
		s.kv.Set(s.positionKey(), strconv.Itoa(s.position)),
	)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("undo: store position %d: %w", s.position, err)
	}
	return nil
}

// Restore loads the snapshot at the current position into state. It returns
// false when there is none or it cannot be decoded; state is then unchanged.
func (s *Store) Restore(state *engine.State) bool {
	e, ok := s.find(s.position)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(e.data), state); err != nil {
		s.logger.Warn("undo: corrupt snapshot", "position", e.position, "err", err)
		return false
	}
	return true
}

// CanUndo reports whether a previous snapshot is available.
func (s *Store) CanUndo() bool {
	if s.position <= 1 {
		return false
	}
	_, ok := s.find(s.position - 1)
	return ok
}

// Undo steps back one position and restores that snapshot into state.
func (s *Store) Undo(state *engine.State) bool {
	if !s.CanUndo() {
		return false
	}
	s.position--
	if !s.Restore(state) {
		s.position++
		return false
	}
	if err := s.kv.Set(s.positionKey(), strconv.Itoa(s.position)); err != nil {
		s.logger.Warn("undo: write position", "err", err)
	}
	return true
}

// Erase forgets the whole history, in memory and in the KV port.
func (s *Store) Erase() error {
	errs := []error{s.kv.Delete(s.positionKey())}
	for _, e := range s.history {
		errs = append(errs, s.kv.Delete(s.stateKey(e.position)))
	}
	s.position = 0
	s.history = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("undo: erase: %w", err)
	}
	return nil
}
