package engine

import (
	"fmt"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/grid"
)

// PlayerPublicState is the subset of a player's state every client
// sees, per §3.
type PlayerPublicState struct {
	Position   grid.Position
	Direction  grid.ContinuousDirection
	Checkpoint int
	IsRebooting bool
	IsHidden   bool
}

// Player is owned exclusively by the Game: its deck, prepared cards,
// and public state, plus a connection handle the transport layer
// populates. §3's "currently-executing register" slot is modeled as
// the register resolver borrowing a card out of cardsByPlayer for the
// duration of one execute_card call.
type Player struct {
	Public       PlayerPublicState
	Deck         *cards.Deck
	Prepared     *[5]cards.Card // nil when unset
	Connection   *OutboundSink[any]
}

// NewPlayer creates a player seated at the given spawn point with a
// freshly dealt deck.
func NewPlayer(spawn grid.SpawnPoint, shuffler cards.Shuffler) *Player {
	return &Player{
		Public: PlayerPublicState{
			Position:  spawn.Position,
			Direction: grid.ContinuousDirection(spawn.Direction),
		},
		Deck: cards.NewDeck(shuffler),
	}
}

// Program validates and commits a client's submitted register
// sequence (§4.11):
//
//	(a) prepared_cards must be unset
//	(b) cards[0] != Again
//	(c) cards is a sub-multiset of hand
//
// On failure, returns a ValidationError and leaves hand/prepared
// untouched (L4: rejection is idempotent).
func (p *Player) Program(submitted [5]cards.Card) error {
	if p.Prepared != nil {
		return &ValidationError{Reason: "you have already programmed this round"}
	}
	if submitted[0] == cards.Again {
		return &ValidationError{Reason: "the first register cannot be Again"}
	}

	handCopy := append([]cards.Card(nil), p.Deck.Hand...)
	for _, c := range submitted {
		found := false
		for i, h := range handCopy {
			if h == c {
				handCopy = append(handCopy[:i], handCopy[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{Reason: fmt.Sprintf("card %s is not in your hand", c)}
		}
	}

	for _, c := range submitted {
		p.Deck.RemoveFromHand(c)
	}
	prepared := submitted
	p.Prepared = &prepared
	return nil
}
