package engine

import (
	"github.com/mvolfik/roborally-sub000/internal/cards"
)

// StartRunning transitions from Programming to Running once every
// seat has a prepared program, snapshotting each player's five cards
// into the phase and clearing Prepared (§3 GamePhase, §4.9).
func (g *Game) StartRunning() error {
	if g.Phase.Kind != PhaseProgramming {
		return &ValidationError{Reason: "not in the programming phase"}
	}
	cardsByPlayer := make([][5]cards.Card, len(g.Players))
	for i, p := range g.Players {
		if p.Prepared == nil {
			return &ValidationError{Reason: "not every player has programmed a round"}
		}
		cardsByPlayer[i] = *p.Prepared
		p.Prepared = nil
	}
	g.Phase = GamePhase{Kind: PhaseRunning, CardsByPlayer: cardsByPlayer, Register: 0, SubPhase: SubPhasePlayerCards}
	return nil
}

// RunSubPhase advances the running game by exactly one sub-phase of
// §4.9's fixed pipeline, then checks invariants. It returns false once
// the register resolver has finished the fifth register and the game
// has returned to Programming (or finished), so callers can drive the
// whole register loop with a simple `for g.RunSubPhase() { ... }`.
func (g *Game) RunSubPhase() bool {
	if g.Phase.Kind != PhaseRunning {
		return false
	}

	switch g.Phase.SubPhase {
	case SubPhasePlayerCards:
		for _, i := range g.priorityOrder() {
			g.executeCard(i, g.Phase.Register)
			g.runReboot()
		}
	case SubPhaseFastBelts1, SubPhaseFastBelts2:
		g.runBeltPass(true)
	case SubPhaseSlowBelts:
		g.runBeltPass(false)
	case SubPhasePushPanels:
		g.runPushPanels(g.Phase.Register)
	case SubPhaseRotations:
		g.runRotators()
	case SubPhaseLasers:
		g.runLasers()
	case SubPhaseCheckpoints:
		g.runCheckpoints()
	}

	if err := g.checkInvariants(); err != nil {
		panic(err)
	}

	if g.Phase.Kind == PhaseFinished {
		return false
	}

	if g.Phase.SubPhase == SubPhaseCheckpoints {
		if g.Phase.Register == 4 {
			g.endRound()
			return false
		}
		g.Phase.Register++
		g.Phase.SubPhase = SubPhasePlayerCards
		return true
	}

	g.Phase.SubPhase++
	return true
}

// endRound discards each player's played cards and remaining hand,
// deals a fresh 9-card hand, and returns the phase to Programming
// (§4.9 tail, §4.11).
func (g *Game) endRound() {
	for i, p := range g.Players {
		p.Deck.Discard = append(p.Deck.Discard, g.Phase.CardsByPlayer[i][:]...)
		p.Deck.Discard = append(p.Deck.Discard, p.Deck.Hand...)
		p.Deck.Hand = nil
		p.Deck.Hand = p.Deck.DrawN(9)
	}
	g.Phase = GamePhase{Kind: PhaseProgramming}
}

// executeCard runs one player's card at registerIndex (§4.10). Again
// recurses one register back; the Programming validator guarantees
// that slot is never itself Again, so this never recurses twice.
func (g *Game) executeCard(playerIndex, registerIndex int) {
	player := g.Players[playerIndex]
	card := g.Phase.CardsByPlayer[playerIndex][registerIndex]

	switch card {
	case cards.Move1:
		dir := player.Public.Direction.Cardinal()
		g.mov(playerIndex, dir)
		g.emit(Animation{Kind: AnimAttemptedMove, PlayerIndex: playerIndex, Direction: dir})
	case cards.Move2:
		dir := player.Public.Direction.Cardinal()
		if g.mov(playerIndex, dir).Moved {
			g.mov(playerIndex, dir)
		}
		g.emit(Animation{Kind: AnimAttemptedMove, PlayerIndex: playerIndex, Direction: dir})
	case cards.Move3:
		dir := player.Public.Direction.Cardinal()
		for n := 0; n < 3; n++ {
			if !g.mov(playerIndex, dir).Moved {
				break
			}
		}
		g.emit(Animation{Kind: AnimAttemptedMove, PlayerIndex: playerIndex, Direction: dir})
	case cards.Reverse1:
		dir := player.Public.Direction.Cardinal().Opposite()
		g.mov(playerIndex, dir)
		g.emit(Animation{Kind: AnimAttemptedMove, PlayerIndex: playerIndex, Direction: dir})
	case cards.TurnRight:
		player.Public.Direction = player.Public.Direction.RotatedCW()
	case cards.TurnLeft:
		player.Public.Direction = player.Public.Direction.RotatedCCW()
	case cards.UTurn:
		player.Public.Direction = player.Public.Direction.RotatedCW().RotatedCW()
	case cards.Again:
		g.executeCard(playerIndex, registerIndex-1)
	case cards.SPAM:
		g.DamagePiles.Return(cards.SPAM)
		g.Phase.CardsByPlayer[playerIndex][registerIndex] = player.Deck.DrawOne()
		g.executeCard(playerIndex, registerIndex)
	case cards.Worm:
		g.DamagePiles.Return(cards.Worm)
		g.Phase.CardsByPlayer[playerIndex][registerIndex] = player.Deck.DrawOne()
		player.Public.Position = offMapSentinel
		g.enqueueReboot(playerIndex)
	case cards.Trojan:
		g.DamagePiles.Return(cards.Trojan)
		if g.DamagePiles.TryDeal(cards.SPAM) {
			player.Deck.Discard = append(player.Deck.Discard, cards.SPAM)
		}
		if g.DamagePiles.TryDeal(cards.SPAM) {
			player.Deck.Discard = append(player.Deck.Discard, cards.SPAM)
		}
		g.Phase.CardsByPlayer[playerIndex][registerIndex] = player.Deck.DrawOne()
		g.executeCard(playerIndex, registerIndex)
	case cards.Virus:
		panic(&NotImplementedError{Feature: "the Virus card"})
	}
}
