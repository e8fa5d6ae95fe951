package engine

import "github.com/mvolfik/roborally-sub000/internal/cards"

// RegisterSubPhase enumerates the seven-step pipeline a single
// register runs through, in order (§3, §4.9).
type RegisterSubPhase int

const (
	SubPhasePlayerCards RegisterSubPhase = iota
	SubPhaseFastBelts1
	SubPhaseFastBelts2
	SubPhaseSlowBelts
	SubPhasePushPanels
	SubPhaseRotations
	SubPhaseLasers
	SubPhaseCheckpoints
)

// PhaseKind discriminates the GamePhase tagged variant of §3.
type PhaseKind int

const (
	PhaseProgramming PhaseKind = iota
	PhaseRunning
	PhaseFinished
)

// GamePhase is the Game's tagged-variant phase field.
type GamePhase struct {
	Kind PhaseKind

	// PhaseRunning
	CardsByPlayer [][5]cards.Card
	Register      int
	SubPhase      RegisterSubPhase

	// PhaseFinished
	Winner int
}
