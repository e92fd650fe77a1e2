package engine

// Rules holds the per-game configuration.
type Rules struct {
	CardsToDraw int `json:"cardsToDraw"`
}

// DefaultRules draws three cards at a time.
func DefaultRules() Rules {
	return Rules{CardsToDraw: 3}
}

// PlaceableOnTableau returns the cards that may be placed on card in a
// tableau: the next lower rank of the opposite colour. Nothing goes on an Ace.
func PlaceableOnTableau(card Card) []Card {
	rank := card.Rank()
	if rank == RankAce {
		return nil
	}
	if card.Suit() < 2 {
		return []Card{NewCard(2, rank-1), NewCard(3, rank-1)}
	}
	return []Card{NewCard(0, rank-1), NewCard(1, rank-1)}
}

// PlaceableOnFoundation returns the card that may be placed on card in a
// foundation: the same suit, one rank higher. Nothing goes on a King.
func PlaceableOnFoundation(card Card) []Card {
	rank := card.Rank()
	if rank == RankKing {
		return nil
	}
	return []Card{NewCard(card.Suit(), rank+1)}
}

// allOfRank returns the four cards of the given rank, suit order.
func allOfRank(rank int) []Card {
	return []Card{NewCard(0, rank), NewCard(1, rank), NewCard(2, rank), NewCard(3, rank)}
}
