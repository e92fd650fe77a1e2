package engine

// CanAutoFinish reports whether every card is face-up and the stock and
// waste are exhausted, so the game can be played out without decisions.
func (s *State) CanAutoFinish() bool {
	return s.stock.Len() == 0 && s.waste.Len() == 0 && s.FaceDownCount() == 0
}

// NextAutoMove returns the next move of the auto-finish sequence: the first
// tableau top card that can go to a foundation. ok is false when auto-finish
// does not apply or nothing is left to move.
func (s *State) NextAutoMove() (Action, bool) {
	if !s.CanAutoFinish() {
		return Action{}, false
	}
	actions := s.Actions()
	for _, up := range s.tableauUp {
		top, ok := up.Top()
		if !ok {
			continue
		}
		for _, a := range actions[top] {
			if a.Move == MoveToFoundation {
				return a, true
			}
		}
	}
	return Action{}, false
}
