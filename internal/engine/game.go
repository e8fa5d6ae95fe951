// Package engine implements the simulation core described by
// SPEC_FULL.md §3-§4: the grid-independent game rules - priority,
// move/push, reboot, belts, push panels, rotators, lasers,
// checkpoints, and the register resolver that sequences them.
package engine

import (
	"fmt"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/grid"
)

// Game is created once at lobby time and lives until finished or
// abandoned. It is exclusively owned by its actor (SPEC_FULL §5);
// nothing in this package is safe for concurrent use without that
// external serialization.
type Game struct {
	Map         *grid.GameMap
	Players     []*Player
	Phase       GamePhase
	DamagePiles cards.DamagePiles

	// rebootQueue holds player indices enqueued for reboot during the
	// current sub-phase, in enqueue order. It must be empty between
	// sub-phases (I: "enqueued reboot left undrained" is an invariant
	// violation, §7 kind 4).
	rebootQueue []int

	// pendingAnimations accumulates this sub-phase's Animation events;
	// the caller (the Game actor) drains it via DrainAnimations after
	// each sub-phase completes.
	pendingAnimations []Animation

	Log []string

	shuffler cards.Shuffler
}

// NewGame constructs a game on the given map with one player per
// spawn point drawn from the map's spawn points (callers choose which
// subset/order; NewGame takes an already-chosen slice and does not
// shuffle it. The lobby's game actor passes the map's first N spawn
// points in file order).
func NewGame(m *grid.GameMap, spawns []grid.SpawnPoint, shuffler cards.Shuffler) (*Game, error) {
	if len(spawns) == 0 {
		return nil, fmt.Errorf("a game needs at least one player")
	}
	if len(spawns) > len(m.SpawnPoints) {
		return nil, fmt.Errorf("not enough spawn points on map: need %d, have %d", len(spawns), len(m.SpawnPoints))
	}

	players := make([]*Player, len(spawns))
	for i, sp := range spawns {
		players[i] = NewPlayer(sp, shuffler)
	}

	return &Game{
		Map:         m,
		Players:     players,
		Phase:       GamePhase{Kind: PhaseProgramming},
		DamagePiles: cards.NewDamagePiles(),
		shuffler:    shuffler,
	}, nil
}

// enqueueReboot adds playerIndex to the reboot queue if it isn't
// already queued this sub-phase.
func (g *Game) enqueueReboot(playerIndex int) {
	for _, i := range g.rebootQueue {
		if i == playerIndex {
			return
		}
	}
	g.rebootQueue = append(g.rebootQueue, playerIndex)
}

func (g *Game) emit(a Animation) {
	g.pendingAnimations = append(g.pendingAnimations, a)
}

// DrainAnimations returns and clears the animations accumulated since
// the last call.
func (g *Game) DrainAnimations() []Animation {
	out := g.pendingAnimations
	g.pendingAnimations = nil
	return out
}

// checkInvariants is called by RunSubPhase after every sub-phase; a
// non-nil return is turned into a panic there, on the conditions §8
// enumerates as unreachable-under-correct-implementation bugs.
func (g *Game) checkInvariants() error {
	if len(g.rebootQueue) != 0 {
		return &InvariantError{Invariant: "reboot-queue-drained", Detail: "reboot queue non-empty between sub-phases"}
	}
	occupied := make(map[grid.Position]int)
	for i, p := range g.Players {
		if p.Public.IsHidden {
			continue
		}
		if tile, ok := g.Map.Grid.Get(p.Public.Position); !ok || tile.Kind == grid.Void {
			continue
		}
		if other, taken := occupied[p.Public.Position]; taken {
			return &InvariantError{Invariant: "I1", Detail: fmt.Sprintf("players %d and %d share tile %v", other, i, p.Public.Position)}
		}
		occupied[p.Public.Position] = i
	}
	for i, p := range g.Players {
		if p.Public.Checkpoint < 0 || p.Public.Checkpoint > len(g.Map.Checkpoints) {
			return &InvariantError{Invariant: "I4", Detail: fmt.Sprintf("player %d checkpoint out of range: %d", i, p.Public.Checkpoint)}
		}
	}
	if g.Phase.Kind == PhaseFinished {
		if g.Phase.Winner < 0 || g.Phase.Winner >= len(g.Players) {
			return &InvariantError{Invariant: "winner-index", Detail: fmt.Sprintf("winner index out of bounds: %d", g.Phase.Winner)}
		}
	}
	return nil
}
