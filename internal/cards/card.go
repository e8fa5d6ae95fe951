// Package cards implements the fixed card set, damage piles, and the
// per-player hand/draw/discard deck rules of §4.11.
package cards

// Card is one of the fixed set of program cards. The last four
// variants are "damage" cards, inserted into a player's deck only by
// game effects (§4.10), never part of the starting deck.
type Card uint8

const (
	Move1 Card = iota
	Move2
	Move3
	Reverse1
	TurnRight
	TurnLeft
	UTurn
	Again
	SPAM
	Worm
	Virus
	Trojan
)

func (c Card) String() string {
	switch c {
	case Move1:
		return "Move1"
	case Move2:
		return "Move2"
	case Move3:
		return "Move3"
	case Reverse1:
		return "Reverse1"
	case TurnRight:
		return "TurnRight"
	case TurnLeft:
		return "TurnLeft"
	case UTurn:
		return "UTurn"
	case Again:
		return "Again"
	case SPAM:
		return "SPAM"
	case Worm:
		return "Worm"
	case Virus:
		return "Virus"
	case Trojan:
		return "Trojan"
	default:
		return "Unknown"
	}
}

// IsDamage reports whether a card is one of the four damage variants.
func (c Card) IsDamage() bool {
	switch c {
	case SPAM, Worm, Virus, Trojan:
		return true
	default:
		return false
	}
}

// StartingDeck is the 20-card multiset every player's discard pile is
// seeded with at construction (§4.11): 5xMove1, 4xMove2, 1xMove3,
// 2xReverse1, 3xTurnRight, 3xTurnLeft, 1xUTurn, 1xAgain.
func StartingDeck() []Card {
	deck := make([]Card, 0, 20)
	add := func(c Card, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, c)
		}
	}
	add(Move1, 5)
	add(Move2, 4)
	add(Move3, 1)
	add(Reverse1, 2)
	add(TurnRight, 3)
	add(TurnLeft, 3)
	add(UTurn, 1)
	add(Again, 1)
	return deck
}
