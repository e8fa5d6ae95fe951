package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

// castLaser walks a bullet starting at pos heading dir, stopping at
// the first hit player, wall, or map edge (§4.7). checkWallFirst
// swaps the order of the wall-check and occupancy-check on the
// starting tile; selfIndex additionally excludes the firing robot
// itself from the occupancy check (-1 for board lasers, which fire
// from an empty laser tile and have no self to exclude): a robot
// laser must not be able to hit the robot standing on its own tile.
func (g *Game) castLaser(startPos grid.Position, dir grid.Direction, isFromTank bool, checkWallFirst bool, selfIndex int) {
	pos := startPos
	first := true

	for {
		tile, inBounds := g.Map.Grid.Get(pos)
		if !inBounds {
			return
		}

		checkOccupancy := func() bool {
			i, hit := g.playerAt(pos, selfIndex)
			if !hit || g.Players[i].Public.IsHidden {
				return false
			}
			if g.DamagePiles.TryDeal(spamCard) {
				g.Players[i].Deck.Discard = append(g.Players[i].Deck.Discard, spamCard)
			}
			g.emit(Animation{Kind: AnimBulletFlight, From: startPos, To: pos, Direction: dir, IsFromTank: isFromTank})
			return true
		}
		checkWall := func() bool {
			return tile.Walls.Has(dir)
		}

		if first && checkWallFirst {
			if checkWall() {
				return
			}
			if checkOccupancy() {
				return
			}
		} else {
			if checkOccupancy() {
				return
			}
			if checkWall() {
				return
			}
		}
		first = false

		next := dir.Apply(pos)
		nextTile, nextInBounds := g.Map.Grid.Get(next)
		if !nextInBounds {
			return
		}
		if nextTile.Walls.Has(dir.Opposite()) {
			return
		}
		pos = next
	}
}

// runLasers fires board-mounted lasers, then robot-mounted lasers
// belonging to every non-rebooting robot (§4.7).
func (g *Game) runLasers() {
	for _, l := range g.Map.Lasers {
		g.castLaser(l.Position, l.Direction, false, false, -1)
	}
	for i, p := range g.Players {
		if p.Public.IsRebooting || p.Public.IsHidden {
			continue
		}
		g.castLaser(p.Public.Position, p.Public.Direction.Cardinal(), true, true, i)
	}
}
