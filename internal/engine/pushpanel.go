package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

// runPushPanels scans every player in priority order and activates the
// push panel beneath them, if any, for the given register (§4.5). Each
// activation's reboot fallout is drained before the next player is
// considered, so a pushed robot can never be mid-push when the next
// panel fires.
func (g *Game) runPushPanels(registerIndex int) {
	for _, i := range g.priorityOrder() {
		player := g.Players[i]
		tile, ok := g.Map.Grid.Get(player.Public.Position)
		if !ok || tile.Kind != grid.PushPanel || !tile.ActiveOnRegister(registerIndex) {
			continue
		}
		g.mov(i, tile.PanelDirection)
		g.runReboot()
	}
}
