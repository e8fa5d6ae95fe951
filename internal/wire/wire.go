// Package wire implements the client<->server message set of
// SPEC_FULL.md §6.2, plus the binary codec those messages travel over.
// Messages are length-framed binary on a persistent duplex socket;
// gorilla/websocket already frames at the transport layer, so framing
// here is just "one websocket message == one wire message" (see
// DESIGN.md for why gob substitutes for the unavailable msgpack).
package wire

import "github.com/mvolfik/roborally-sub000/internal/cards"

// ClientMessage is the single client→server variant: commit a
// five-card program for this connection's seat.
type ClientMessage struct {
	Program [5]cards.Card
}

// ServerMessageKind discriminates the ServerMessage tagged union.
type ServerMessageKind uint8

const (
	KindInitInfo ServerMessageKind = iota
	KindGeneralState
	KindProgrammingState
	KindAnimatedState
	KindGameLog
	KindNotice
)

// PlayerPublicStateView mirrors engine.PlayerPublicState for the wire:
// the engine package is not imported here so the wire codec has no
// dependency on simulation internals, matching the "transport only
// sees already-constructed snapshots" boundary from spec.md §1.
type PlayerPublicStateView struct {
	PositionX, PositionY int
	Direction            int
	Checkpoint           int
	IsRebooting          bool
	IsHidden             bool
}

// AnimationKind mirrors engine.AnimationKind for the wire.
type AnimationKind uint8

const (
	AnimBulletFlight AnimationKind = iota
	AnimCheckpointVisited
	AnimAttemptedMove
)

// AnimationView is one client-facing animation hint (§6.2).
type AnimationView struct {
	Kind AnimationKind

	FromX, FromY int
	ToX, ToY     int
	Direction    int
	IsFromTank   bool

	PlayerIndex int
}

// RunningStateView is the per-player snapshot sent during the Running
// phase, bundled into AnimatedState.
type RunningStateView struct {
	PlayerStates []PlayerPublicStateView
	Register     int
}

// ServerMessage is the server→client tagged union (§6.2). Only the
// fields relevant to Kind are meaningful, mirroring grid.Tile's
// discipline for the same reason: a flat struct survives gob
// encoding without per-variant registration.
type ServerMessage struct {
	Kind ServerMessageKind

	// InitInfo
	MapBlob []byte
	State   *ServerMessage // nested GeneralState/ProgrammingState snapshot, InitInfo only

	// GeneralState
	PlayerNames []string // empty string entry = unnamed seat
	Status      string   // "programming" | "processing"

	// ProgrammingState
	Hand          []cards.Card
	PreparedCards *[5]cards.Card
	ReadyPlayers  []bool
	PlayerStates  []PlayerPublicStateView

	// AnimatedState
	Animations []AnimationView
	Running    *RunningStateView

	// GameLog / Notice
	Text string
}
