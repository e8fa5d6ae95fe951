package engine

import "github.com/mvolfik/roborally-sub000/internal/grid"

// AnimationKind discriminates the Animation variants of §6.2.
type AnimationKind uint8

const (
	AnimBulletFlight AnimationKind = iota
	AnimCheckpointVisited
	AnimAttemptedMove
)

// Animation is a client-facing hint about something that happened
// during a sub-phase, batched and flushed between sub-phases (see
// SPEC_FULL §5 and the original's animated_state.rs).
type Animation struct {
	Kind AnimationKind

	// BulletFlight
	From        grid.Position
	To          grid.Position
	Direction   grid.Direction
	IsFromTank  bool

	// CheckpointVisited / AttemptedMove
	PlayerIndex int
}
