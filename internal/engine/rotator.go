package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

// runRotators turns every robot standing on a Rotation tile (§4.6).
// Unlike push panels and lasers, rotators are not priority-ordered:
// each robot's rotation only affects its own direction, so there is no
// possible interaction between players to order.
func (g *Game) runRotators() {
	for _, player := range g.Players {
		tile, ok := g.Map.Grid.Get(player.Public.Position)
		if !ok || tile.Kind != grid.Rotation {
			continue
		}
		if tile.RotationClockwise {
			player.Public.Direction = player.Public.Direction.RotatedCW()
		} else {
			player.Public.Direction = player.Public.Direction.RotatedCCW()
		}
	}
}
