package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

// moveResult is the {moved, reboot} pair §4.2 returns.
type moveResult struct {
	Moved  bool
	Reboot bool
}

// playerAt returns the index of the player occupying pos, if any,
// excluding the given index (a player is never "in the way" of
// itself).
func (g *Game) playerAt(pos grid.Position, excluding int) (int, bool) {
	for i, p := range g.Players {
		if i == excluding {
			continue
		}
		if p.Public.Position == pos {
			return i, true
		}
	}
	return -1, false
}

// mov attempts to move one robot one tile in direction, recursively
// pushing any robot standing on the destination (§4.2). The push
// cascade is unconditional: any robot in the way is pushed, and the
// recursion always terminates because an off-map destination always
// succeeds (step 3), so depth is bounded by the number of players.
func (g *Game) mov(playerIndex int, direction grid.Direction) moveResult {
	player := g.Players[playerIndex]
	origin := player.Public.Position

	originTile, inBounds := g.Map.Grid.Get(origin)
	if !inBounds || originTile.Kind == grid.Void {
		// Already fallen off; caller must already have this player
		// queued for reboot.
		return moveResult{Moved: true, Reboot: false}
	}

	if originTile.Walls.Has(direction) {
		return moveResult{Moved: false}
	}

	target := direction.Apply(origin)
	targetTile, targetInBounds := g.Map.Grid.Get(target)
	if !targetInBounds {
		player.Public.Position = target
		g.enqueueReboot(playerIndex)
		return moveResult{Moved: true, Reboot: true}
	}

	if targetTile.Walls.Has(direction.Opposite()) {
		return moveResult{Moved: false}
	}

	if targetTile.Kind == grid.Void {
		player.Public.Position = target
		g.enqueueReboot(playerIndex)
		return moveResult{Moved: true, Reboot: true}
	}

	if other, occupied := g.playerAt(target, playerIndex); occupied {
		if res := g.mov(other, direction); !res.Moved {
			return moveResult{Moved: false}
		}
	}

	player.Public.Position = target
	return moveResult{Moved: true, Reboot: false}
}

// forceMoveTo teleports playerIndex to pos, pushing any occupant in
// pushingDirection recursively via forceMoveTo. Used by the Reboot
// engine (§4.3) to place a rebooting robot onto the reboot token,
// possibly displacing whoever is already standing there.
func (g *Game) forceMoveTo(playerIndex int, pos grid.Position, pushingDirection grid.Direction) {
	if other, occupied := g.playerAt(pos, playerIndex); occupied {
		g.forceMoveTo(other, pushingDirection.Apply(pos), pushingDirection)
	}

	player := g.Players[playerIndex]
	player.Public.Position = pos

	tile, inBounds := g.Map.Grid.Get(pos)
	if !inBounds || tile.Kind == grid.Void {
		g.enqueueReboot(playerIndex)
	}
}
