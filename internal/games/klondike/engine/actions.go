package engine

// candidates lists every legal non-draw action in generation order:
// foundation destinations 0..3 first, then tableau destinations 0..6.
func (s *State) candidates() []Action {
	var toTableau, toFoundation [NumCards]bool

	if c, ok := s.waste.Top(); ok {
		toTableau[c] = true
		toFoundation[c] = true
	}
	for _, f := range s.foundations {
		if c, ok := f.Top(); ok {
			toTableau[c] = true
			toFoundation[c] = true
		}
	}
	for _, up := range s.tableauUp {
		n := up.Len()
		for pos := range n {
			c := up.Get(pos)
			toTableau[c] = true
			if pos == n-1 {
				toFoundation[c] = true
			}
		}
	}

	var out []Action
	for idx, f := range s.foundations {
		var accepts []Card
		if top, ok := f.Top(); ok {
			accepts = PlaceableOnFoundation(top)
		} else {
			accepts = allOfRank(RankAce)
		}
		for _, c := range accepts {
			if toFoundation[c] {
				out = append(out, FoundationAction(c, idx))
			}
		}
	}
	for col, up := range s.tableauUp {
		var accepts []Card
		if top, ok := up.Top(); ok {
			accepts = PlaceableOnTableau(top)
		} else {
			accepts = allOfRank(RankKing)
		}
		for _, c := range accepts {
			if toTableau[c] {
				out = append(out, TableauAction(c, col))
			}
		}
	}
	return out
}

// Actions maps every movable card to the moves currently legal for it. The
// presentation layer uses it to decide what may be dragged and where it may
// land. Each card's slice follows generation order.
func (s *State) Actions() map[Card][]Action {
	byCard := make(map[Card][]Action)
	for _, a := range s.candidates() {
		byCard[a.Card] = append(byCard[a.Card], a)
	}
	return byCard
}

// AllActions returns a draw followed by every legal card move. The order is
// deterministic for a given position.
func (s *State) AllActions() []Action {
	return append([]Action{DrawAction()}, s.candidates()...)
}

// CanDraw reports whether a draw changes the position.
func (s *State) CanDraw() bool {
	return s.stock.Len() > 0 || s.waste.Len() > 0
}
