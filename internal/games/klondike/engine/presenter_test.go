package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentReportsEveryCardOnce(t *testing.T) {
	s := NewGame(DefaultRules(), 21)
	s.Draw()

	seen := map[Card]int{}
	draggable := 0
	s.Present(PresenterFunc(func(c Card, at Placement) {
		seen[c]++
		if at.Draggable {
			draggable++
			assert.True(t, at.FaceUp, "%s", c)
			assert.Equal(t, c, at.Stack[0])
		}
	}))

	assert.Len(t, seen, NumCards)
	for c, n := range seen {
		assert.Equal(t, 1, n, "%s", c)
	}
	// One face-up card per column plus the waste top.
	assert.Equal(t, NumTableaus+1, draggable)
}

func TestLocate(t *testing.T) {
	var l layout
	l.down[3] = []Card{clubs(1)}
	l.up[3] = []Card{spades(9), hearts(8), clubs(7)}
	l.found[2] = []Card{diamonds(1)}
	s := l.build(t)

	at, ok := s.Locate(hearts(8))
	require.True(t, ok)
	assert.Equal(t, PileTableauUp, at.Pile)
	assert.Equal(t, 3, at.Index)
	assert.Equal(t, 1, at.Position)
	assert.Equal(t, []Card{hearts(8), clubs(7)}, at.Stack)

	at, ok = s.Locate(clubs(1))
	require.True(t, ok)
	assert.Equal(t, PileTableauDown, at.Pile)
	assert.False(t, at.FaceUp)
	assert.False(t, at.Draggable)

	at, ok = s.Locate(diamonds(1))
	require.True(t, ok)
	assert.Equal(t, PileFoundation, at.Pile)
	assert.Equal(t, 2, at.Index)

	_, ok = s.Locate(hearts(2))
	assert.False(t, ok, "cards on the deck are not shown")
}
