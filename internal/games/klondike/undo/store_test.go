package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/games/klondike/engine"
)

func TestStoreAndRestore(t *testing.T) {
	kv := NewMemoryKV()
	st := New(kv, Options{MaxUndos: DefaultMaxUndos})
	game := engine.NewGame(engine.DefaultRules(), 1)

	require.NoError(t, st.Store(game))
	assert.Equal(t, 1, st.Position())

	restored := engine.NewState()
	require.True(t, st.Restore(restored))
	assert.Equal(t, game.NormalKey(), restored.NormalKey())
}

func TestStoreKeepsBoundedHistory(t *testing.T) {
	kv := NewMemoryKV()
	st := New(kv, Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 2)

	for range 10 {
		require.NoError(t, st.Store(game))
		game.Draw()
	}

	assert.Equal(t, 10, st.Position())
	assert.Equal(t, 4, st.Len())
	// Four snapshots plus the position key.
	assert.Equal(t, 5, kv.Len())
	_, ok, _ := kv.Get(DefaultPrefix + "state/6")
	assert.False(t, ok)
	_, ok, _ = kv.Get(DefaultPrefix + "state/7")
	assert.True(t, ok)
}

func TestUndoRestoresPreviousPosition(t *testing.T) {
	st := New(NewMemoryKV(), Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 3)

	assert.False(t, st.CanUndo())
	require.NoError(t, st.Store(game))
	assert.False(t, st.CanUndo(), "a single snapshot cannot be undone")

	before := game.NormalKey()
	game.Draw()
	require.NoError(t, st.Store(game))
	require.True(t, st.CanUndo())

	require.True(t, st.Undo(game))
	assert.Equal(t, before, game.NormalKey())
	assert.Equal(t, 1, st.Position())
	assert.False(t, st.Undo(game))
}

func TestUndoDepthIsBounded(t *testing.T) {
	st := New(NewMemoryKV(), Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 4)

	for range 6 {
		require.NoError(t, st.Store(game))
		game.Draw()
	}

	undone := 0
	for st.Undo(game) {
		undone++
	}
	assert.Equal(t, 3, undone)
}

func TestStoreAfterUndoDropsNewerSnapshots(t *testing.T) {
	kv := NewMemoryKV()
	st := New(kv, Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 5)

	for range 3 {
		require.NoError(t, st.Store(game))
		game.Draw()
	}
	require.True(t, st.Undo(game))
	require.True(t, st.Undo(game))
	require.NoError(t, st.Store(game))

	assert.Equal(t, 2, st.Position())
	assert.Equal(t, 2, st.Len())
	_, ok, _ := kv.Get(DefaultPrefix + "state/3")
	assert.False(t, ok)
}

func TestZeroUndosDisablesUndo(t *testing.T) {
	st := New(NewMemoryKV(), Options{MaxUndos: 0})
	game := engine.NewGame(engine.DefaultRules(), 6)

	for range 3 {
		require.NoError(t, st.Store(game))
		game.Draw()
	}
	assert.Equal(t, 1, st.Len())
	assert.False(t, st.CanUndo())
	assert.True(t, st.Restore(engine.NewState()))
}

func TestNewResumesFromKV(t *testing.T) {
	kv := NewMemoryKV()
	first := New(kv, Options{MaxUndos: 3})
	game := engine.NewGame(engine.Rules{CardsToDraw: 1}, 7)
	for range 5 {
		require.NoError(t, first.Store(game))
		game.Draw()
	}
	game.Draw()
	require.NoError(t, first.Store(game))
	require.True(t, first.Undo(game))

	second := New(kv, Options{MaxUndos: 3})
	assert.Equal(t, first.Position(), second.Position())
	assert.True(t, second.CanUndo())

	resumed := engine.NewState()
	require.True(t, second.Restore(resumed))
	assert.Equal(t, game.NormalKey(), resumed.NormalKey())
	assert.Equal(t, 1, resumed.Rules.CardsToDraw)
}

func TestRestoreCorruptSnapshot(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(DefaultPrefix+"position", "1"))
	require.NoError(t, kv.Set(DefaultPrefix+"state/1", `{"stock":[1,1]}`))

	st := New(kv, Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 8)
	before := game.Snapshot()

	assert.False(t, st.Restore(game))
	assert.Equal(t, before, game.Snapshot())
}

func TestNewIgnoresBadPosition(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(DefaultPrefix+"position", "nope"))

	st := New(kv, Options{})
	assert.Equal(t, 0, st.Position())
	assert.False(t, st.Restore(engine.NewState()))
}

func TestErase(t *testing.T) {
	kv := NewMemoryKV()
	st := New(kv, Options{MaxUndos: 3})
	game := engine.NewGame(engine.DefaultRules(), 9)
	for range 3 {
		require.NoError(t, st.Store(game))
	}

	require.NoError(t, st.Erase())
	assert.Equal(t, 0, st.Position())
	assert.Equal(t, 0, kv.Len())
	assert.False(t, st.Restore(engine.NewState()))
}

func TestPrefixesDoNotCollide(t *testing.T) {
	kv := NewMemoryKV()
	a := New(kv, Options{MaxUndos: 3, Prefix: "a/"})
	b := New(kv, Options{MaxUndos: 3, Prefix: "b/"})

	require.NoError(t, a.Store(engine.NewGame(engine.DefaultRules(), 1)))
	assert.Equal(t, 0, New(kv, Options{Prefix: "b/"}).Position())
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, 1, New(kv, Options{Prefix: "a/"}).Position())
}
