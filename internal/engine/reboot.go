package engine

import (
	"fmt"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/grid"
)

const spamCard = cards.SPAM

// offMapSentinel is a position no real map's Grid ever contains,
// used to park a rebooting robot for an instant so it can never be
// mistaken for the occupant of its own reboot-token destination.
var offMapSentinel = grid.Position{X: -1 << 30, Y: -1 << 30}

// runReboot drains the reboot queue per §4.3. Called between
// sub-phases whenever the queue is non-empty.
func (g *Game) runReboot() {
	if len(g.rebootQueue) == 0 {
		return
	}

	queue := g.rebootQueue
	g.rebootQueue = nil

	for _, i := range queue {
		g.Players[i].Public.IsHidden = true
		g.Log = append(g.Log, fmt.Sprintf("player %d reboots", i))
	}
	// No snapshot or animation is emitted here: the hidden flags are
	// cleared again below before runReboot returns, so clients never
	// observe them.

	for _, i := range queue {
		player := g.Players[i]

		if g.DamagePiles.TryDeal(spamCard) {
			player.Deck.Discard = append(player.Deck.Discard, spamCard)
		}
		if g.DamagePiles.TryDeal(spamCard) {
			player.Deck.Discard = append(player.Deck.Discard, spamCard)
		}

		player.Public.Direction = player.Public.Direction.ClosestInGivenBasicDirection(g.Map.RebootToken.Direction)

		player.Public.IsRebooting = true
		player.Public.IsHidden = false

		// Move to an unreachable sentinel first so forceMoveTo never
		// treats this player as the occupant of its own reboot target.
		player.Public.Position = offMapSentinel

		g.forceMoveTo(i, g.Map.RebootToken.Position, g.Map.RebootToken.Direction)

		// Reboot itself never re-enqueues: the reboot token tile is
		// guaranteed to be a real Floor tile on any valid map, so
		// forceMoveTo's own reboot-enqueue branch is unreachable here
		// outside of a corrupt map. If it did fire we'd recurse forever,
		// so assert it doesn't instead of looping.
		for _, queued := range g.rebootQueue {
			if queued == i {
				panic(&InvariantError{Invariant: "reboot-token-floor", Detail: "reboot token position is not a valid landing tile"})
			}
		}
	}

	if len(g.rebootQueue) != 0 {
		panic(&InvariantError{Invariant: "reboot-queue-drained", Detail: "reboot queue non-empty after processing"})
	}
}
