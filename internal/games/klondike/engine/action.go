package engine

import (
	"encoding/json"
	"fmt"
)

// MoveType tags an Action. Higher values are considered more useful when a
// click has several candidate destinations.
type MoveType int

const (
	MoveDraw MoveType = iota + 1
	MoveToTableau
	MoveToFoundation
)

// String returns the move type name.
func (m MoveType) String() string {
	switch m {
	case MoveDraw:
		return "draw"
	case MoveToTableau:
		return "to-tableau"
	case MoveToFoundation:
		return "to-foundation"
	default:
		return fmt.Sprintf("MoveType(%d)", int(m))
	}
}

// Action describes a move. Actions are comparable values and may be used as
// map keys. Card and Dest are meaningless for MoveDraw; use DrawAction to
// build one so equal draws compare equal.
type Action struct {
	Move MoveType
	Card Card
	Dest int
}

// DrawAction returns the canonical draw action.
func DrawAction() Action {
	return Action{Move: MoveDraw, Card: NoCard}
}

// TableauAction moves card (and everything stacked on it) to tableau col.
func TableauAction(card Card, col int) Action {
	return Action{Move: MoveToTableau, Card: card, Dest: col}
}

// FoundationAction moves card to foundation idx.
func FoundationAction(card Card, idx int) Action {
	return Action{Move: MoveToFoundation, Card: card, Dest: idx}
}

// String returns a compact description ("draw", "7♠ -> T3", "A♥ -> F0").
func (a Action) String() string {
	switch a.Move {
	case MoveDraw:
		return "draw"
	case MoveToTableau:
		return fmt.Sprintf("%s -> T%d", a.Card, a.Dest)
	case MoveToFoundation:
		return fmt.Sprintf("%s -> F%d", a.Card, a.Dest)
	default:
		return a.Move.String()
	}
}

type actionJSON struct {
	MoveType       MoveType `json:"moveType"`
	Card           *Card    `json:"card,omitempty"`
	DestinationIdx *int     `json:"destinationIdx,omitempty"`
}

// MarshalJSON omits card and destinationIdx for draws.
func (a Action) MarshalJSON() ([]byte, error) {
	out := actionJSON{MoveType: a.Move}
	if a.Move != MoveDraw {
		card, dest := a.Card, a.Dest
		out.Card = &card
		out.DestinationIdx = &dest
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the shape produced by MarshalJSON.
func (a *Action) UnmarshalJSON(data []byte) error {
	var in actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.MoveType == MoveDraw {
		*a = DrawAction()
		return nil
	}
	if in.Card == nil || in.DestinationIdx == nil {
		return fmt.Errorf("engine: action %s needs card and destinationIdx", in.MoveType)
	}
	*a = Action{Move: in.MoveType, Card: *in.Card, Dest: *in.DestinationIdx}
	return nil
}
