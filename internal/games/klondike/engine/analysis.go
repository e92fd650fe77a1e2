package engine

import (
	"slices"
	"strconv"
	"strings"
)

// NormalKey returns a fingerprint of the position that ignores which column
// holds which sequence. Stock and waste order is significant. Foundations are
// implied by the rest of the cards and are left out.
func (s *State) NormalKey() string {
	columns := make([]string, NumTableaus)
	var sb strings.Builder
	for t := range NumTableaus {
		sb.Reset()
		writeCards(&sb, s.tableauDown[t].Cards())
		writeCards(&sb, s.tableauUp[t].Cards())
		columns[t] = sb.String()
	}
	slices.Sort(columns)

	sb.Reset()
	sb.WriteByte('[')
	for i, col := range columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(col))
	}
	sb.WriteByte(']')
	writeCards(&sb, s.stock.Cards())
	writeCards(&sb, s.waste.Cards())
	return sb.String()
}

func writeCards(sb *strings.Builder, cards []Card) {
	sb.WriteByte('[')
	for i, c := range cards {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte(']')
}

// DefinitelyUncompletable reports whether the position is provably lost.
//
// Stock, waste, foundation cards and every face-up tableau card above the
// bottom face-up card start out playable. Each column keeps a "maybe" list of
// its face-down cards followed by its bottom face-up card, and only the last
// card of a list can leave. That card is promoted to playable when it has a
// potential destination: any Ace or King (empty foundation, empty column), a
// tableau card one rank higher of the other colour, or the foundation card one
// rank lower of its suit, where the destination is playable or is itself the
// last card of a maybe list. A column stops at its first card that cannot be
// promoted. Passes repeat until every list is empty (false) or a pass promotes
// nothing (true).
//
// Any card that leaves a column in a winning line lands on a card that was
// already out of its column or was the exposed end of a list, so a winnable
// position always drains every list. The check is one-sided: false only means
// no dead end was proven.
func (s *State) DefinitelyUncompletable() bool {
	var playable, exposed [NumCards]bool
	mark := func(p *Pile) {
		for _, c := range p.Cards() {
			playable[c] = true
		}
	}
	mark(s.stock)
	mark(s.waste)
	for _, f := range s.foundations {
		mark(f)
	}

	maybe := make([][]Card, NumTableaus)
	for t := range NumTableaus {
		list := slices.Clone(s.tableauDown[t].Cards())
		for i, c := range s.tableauUp[t].Cards() {
			if i == 0 {
				list = append(list, c)
			} else {
				playable[c] = true
			}
		}
		if n := len(list); n > 0 {
			exposed[list[n-1]] = true
		}
		maybe[t] = list
	}

	reachable := func(c Card) bool { return playable[c] || exposed[c] }

	for {
		promoted := false
		remaining := false
		for t, list := range maybe {
			for len(list) > 0 {
				remaining = true
				c := list[len(list)-1]
				if !hasDestination(c, reachable) {
					break
				}
				playable[c] = true
				promoted = true
				list = list[:len(list)-1]
				if n := len(list); n > 0 {
					exposed[list[n-1]] = true
				}
			}
			maybe[t] = list
		}
		if !remaining {
			return false
		}
		if !promoted {
			return true
		}
	}
}

// hasDestination reports whether c could be placed somewhere given the set of
// cards that may be reachable.
func hasDestination(c Card, reachable func(Card) bool) bool {
	rank := c.Rank()
	if rank == RankAce || rank == RankKing {
		return true
	}
	if c.Red() {
		if reachable(NewCard(2, rank+1)) || reachable(NewCard(3, rank+1)) {
			return true
		}
	} else if reachable(NewCard(0, rank+1)) || reachable(NewCard(1, rank+1)) {
		return true
	}
	return reachable(NewCard(c.Suit(), rank-1))
}
