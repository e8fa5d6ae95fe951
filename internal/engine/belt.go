package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

type beltTentative struct {
	origPos grid.Position
	origDir grid.ContinuousDirection
	pos     grid.Position
	dir     grid.ContinuousDirection
	moved   bool
}

// runBeltPass runs one simultaneous belt-motion pass for the given
// belt speed (§4.4). Callers invoke this twice for FastBelts and once
// for SlowBelts (§4.9).
func (g *Game) runBeltPass(fast bool) {
	n := len(g.Players)
	tentative := make([]beltTentative, n)

	for i, p := range g.Players {
		tentative[i] = beltTentative{origPos: p.Public.Position, origDir: p.Public.Direction, pos: p.Public.Position, dir: p.Public.Direction}

		tile, ok := g.Map.Grid.Get(p.Public.Position)
		if !ok || tile.Kind != grid.Belt || tile.BeltFast != fast {
			continue
		}
		beltDir := tile.BeltDirection
		if tile.Walls.Has(beltDir) {
			continue
		}
		enteredPos := beltDir.Apply(p.Public.Position)
		enteredTile, enteredOK := g.Map.Grid.Get(enteredPos)
		if enteredOK && enteredTile.Walls.Has(beltDir.Opposite()) {
			continue
		}

		newDir := p.Public.Direction
		if enteredOK && enteredTile.Kind == grid.Belt && enteredTile.BeltFast == fast {
			switch enteredTile.BeltDirection {
			case beltDir.RotatedCW():
				newDir = p.Public.Direction.RotatedCW()
			case beltDir.RotatedCCW():
				newDir = p.Public.Direction.RotatedCCW()
			}
		}

		tentative[i] = beltTentative{
			origPos: p.Public.Position, origDir: p.Public.Direction,
			pos: enteredPos, dir: newDir, moved: true,
		}
	}

	// Iterative conflict resolution: revert every member of a
	// multi-occupied non-Void group until a pass makes no changes
	// (L5: each iteration strictly shrinks the set of conflicted
	// tiles, so this terminates).
	for {
		groups := make(map[grid.Position][]int)
		for i, t := range tentative {
			groups[t.pos] = append(groups[t.pos], i)
		}

		changed := false
		for pos, members := range groups {
			if len(members) <= 1 {
				continue
			}
			tile, ok := g.Map.Grid.Get(pos)
			if !ok || tile.Kind == grid.Void {
				// Multiple Void/off-map collisions are allowed: all reboot.
				continue
			}
			for _, i := range members {
				if tentative[i].moved {
					tentative[i].pos = tentative[i].origPos
					tentative[i].dir = tentative[i].origDir
					tentative[i].moved = false
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	anyChanged := false
	order := g.priorityOrder()
	for _, i := range order {
		t := tentative[i]
		if t.pos != t.origPos || !t.dir.Equal(t.origDir) {
			anyChanged = true
		}
		g.Players[i].Public.Position = t.pos
		g.Players[i].Public.Direction = t.dir

		if tile, ok := g.Map.Grid.Get(t.pos); !ok || tile.Kind == grid.Void {
			g.enqueueReboot(i)
		}
	}

	if anyChanged {
		g.runReboot()
	}
}
