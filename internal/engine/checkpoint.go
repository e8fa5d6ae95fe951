package engine

import "fmt"

// runCheckpoints scans players in priority order, skipping rebooting
// robots, and advances each player's checkpoint counter if they're
// standing on the next one they need (§4.8). The first player to
// reach the final checkpoint wins; a winner already set is never
// overwritten.
func (g *Game) runCheckpoints() {
	for _, i := range g.priorityOrder() {
		player := g.Players[i]
		if player.Public.IsRebooting {
			continue
		}
		if player.Public.Checkpoint >= len(g.Map.Checkpoints) {
			continue
		}
		if g.Map.Checkpoints[player.Public.Checkpoint] != player.Public.Position {
			continue
		}

		player.Public.Checkpoint++
		g.emit(Animation{Kind: AnimCheckpointVisited, PlayerIndex: i})

		if player.Public.Checkpoint == len(g.Map.Checkpoints) && g.Phase.Kind != PhaseFinished {
			g.Phase.Kind = PhaseFinished
			g.Phase.Winner = i
			g.Log = append(g.Log, fmt.Sprintf("player %d wins, having visited all %d checkpoints", i, len(g.Map.Checkpoints)))
		}
	}
}
