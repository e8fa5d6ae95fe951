// Package gameactor wires one engine.Game to the single-writer actor
// model described by SPEC_FULL.md §5: a goroutine that owns the Game
// exclusively, drains a mailbox of client intents, and drives the
// register resolver with a client-animation-friendly pace once every
// seat has programmed a round.
package gameactor

import (
	"fmt"
	"time"

	"github.com/mvolfik/roborally-sub000/internal/actorsys"
	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/engine"
	"github.com/mvolfik/roborally-sub000/internal/grid"
	"github.com/mvolfik/roborally-sub000/internal/logging"
	"github.com/mvolfik/roborally-sub000/internal/wire"
)

// subPhaseDelay is the pacing knob between sub-phases while Running,
// giving clients time to animate the previous sub-phase's snapshot
// (§5: "sleeping ~1 second between sub-phases... a simulation pacing
// knob, not a correctness device").
const subPhaseDelay = 1 * time.Second

// programIntent is a client's Program(cards) call, routed through the
// mailbox so it's applied by the actor goroutine only.
type programIntent struct {
	seat  int
	cards [5]cards.Card
	reply chan error
}

// connectIntent attaches or detaches a seat's outbound sink. A nil
// sink detaches (the transport layer's writer goroutine exited).
type connectIntent struct {
	seat int
	sink *engine.OutboundSink[any]
}

// setNameIntent records a seat's display name, claimed once by the
// transport layer when an incoming connection takes that seat.
type setNameIntent struct {
	seat int
	name string
}

type intent struct {
	program  *programIntent
	connect  *connectIntent
	setName  *setNameIntent
}

// Actor owns one engine.Game exclusively; every field access from
// outside this package must go through SubmitProgram/Connect/Stop.
type Actor struct {
	mbox      *actorsys.Mailbox[intent]
	game      *engine.Game
	mapName   string
	names     []string
	log       *logging.Logger
	onFinish  func(winner int, log []string)
	stop      chan struct{}
	stoppedCh chan struct{}
}

// New builds and starts an Actor for a freshly created game.
func New(m *grid.GameMap, mapName string, seatCount int, shuffler cards.Shuffler, onFinish func(winner int, log []string)) (*Actor, error) {
	spawns := m.SpawnPoints[:seatCount]
	game, err := engine.NewGame(m, spawns, shuffler)
	if err != nil {
		return nil, err
	}

	a := &Actor{
		mbox:      actorsys.NewMailbox[intent](64),
		game:      game,
		mapName:   mapName,
		names:     make([]string, seatCount),
		log:       logging.New("game-actor"),
		onFinish:  onFinish,
		stop:      make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	go a.run()
	return a, nil
}

// SubmitProgram submits a seat's five-card program and waits for the
// actor to validate it. The reply comes back before any registers run;
// if every seat is now ready, the actor goes on to run the register
// resolver after replying.
func (a *Actor) SubmitProgram(seat int, submitted [5]cards.Card) error {
	reply := make(chan error, 1)
	if !a.mbox.SendWait(intent{program: &programIntent{seat: seat, cards: submitted, reply: reply}}) {
		return fmt.Errorf("game actor has stopped")
	}
	return <-reply
}

// Connect attaches seat's outbound sink, or detaches it if sink is nil.
func (a *Actor) Connect(seat int, sink *engine.OutboundSink[any]) {
	a.mbox.Send(intent{connect: &connectIntent{seat: seat, sink: sink}})
}

// SeatCount reports the number of seats this game was created with.
func (a *Actor) SeatCount() int { return len(a.names) }

// SetName records a seat's display name. Called once, when the
// transport layer claims a seat for an incoming connection.
func (a *Actor) SetName(seat int, name string) {
	a.mbox.Send(intent{setName: &setNameIntent{seat: seat, name: name}})
}

// Stop tears down the actor goroutine. Any seats still connected are
// left with a silently-dead sink; SPEC_FULL.md §5/§7 kind 5 treats
// transport loss as something the game need not react to.
func (a *Actor) Stop() {
	close(a.stop)
	<-a.stoppedCh
}

func (a *Actor) run() {
	defer close(a.stoppedCh)
	for {
		select {
		case <-a.stop:
			a.mbox.Close()
			return
		case in, ok := <-a.mbox.Receive():
			if !ok {
				return
			}
			a.handle(in)
		}
	}
}

func (a *Actor) handle(in intent) {
	switch {
	case in.program != nil:
		a.handleProgram(in.program)
	case in.connect != nil:
		a.handleConnect(in.connect)
	case in.setName != nil:
		if in.setName.seat >= 0 && in.setName.seat < len(a.names) {
			a.names[in.setName.seat] = in.setName.name
		}
	}
}

func (a *Actor) handleConnect(c *connectIntent) {
	if c.seat < 0 || c.seat >= len(a.game.Players) {
		return
	}
	if c.sink == nil {
		a.game.Players[c.seat].Connection.Revoke()
		return
	}
	a.game.Players[c.seat].Connection = c.sink
	a.broadcastInitInfo(c.seat)
}

func (a *Actor) handleProgram(p *programIntent) {
	if p.seat < 0 || p.seat >= len(a.game.Players) {
		p.reply <- fmt.Errorf("unknown seat %d", p.seat)
		return
	}
	err := a.game.Players[p.seat].Program(p.cards)
	p.reply <- err
	if err != nil {
		a.notify(p.seat, err.Error())
		return
	}

	a.broadcastProgrammingState()

	allReady := true
	for _, pl := range a.game.Players {
		if pl.Prepared == nil {
			allReady = false
			break
		}
	}
	if allReady {
		a.runRegisters()
	}
}

func (a *Actor) runRegisters() {
	if err := a.game.StartRunning(); err != nil {
		a.log.Printf("StartRunning failed unexpectedly: %v", err)
		return
	}

	for {
		more := func() (more bool) {
			defer func() {
				if r := recover(); r != nil {
					a.log.Printf("fatal invariant violation, aborting game: %v", r)
					more = false
				}
			}()
			return a.game.RunSubPhase()
		}()

		a.broadcastAnimatedState()

		if !more {
			break
		}

		select {
		case <-time.After(subPhaseDelay):
		case <-a.stop:
			return
		}
	}

	if a.game.Phase.Kind == engine.PhaseFinished && a.onFinish != nil {
		a.onFinish(a.game.Phase.Winner, a.game.Log)
	}
	a.broadcastGeneralState()
}

func (a *Actor) notify(seat int, text string) {
	a.game.Players[seat].Connection.Send(any(&wire.ServerMessage{Kind: wire.KindNotice, Text: text}))
}

func publicStateView(p *engine.Player) wire.PlayerPublicStateView {
	return wire.PlayerPublicStateView{
		PositionX:   p.Public.Position.X,
		PositionY:   p.Public.Position.Y,
		Direction:   int(p.Public.Direction),
		Checkpoint:  p.Public.Checkpoint,
		IsRebooting: p.Public.IsRebooting,
		IsHidden:    p.Public.IsHidden,
	}
}

func (a *Actor) allPlayerStates() []wire.PlayerPublicStateView {
	out := make([]wire.PlayerPublicStateView, len(a.game.Players))
	for i, p := range a.game.Players {
		out[i] = publicStateView(p)
	}
	return out
}

func (a *Actor) broadcastInitInfo(seat int) {
	msg := &wire.ServerMessage{
		Kind:        wire.KindGeneralState,
		PlayerNames: a.names,
		Status:      a.statusString(),
	}
	a.game.Players[seat].Connection.Send(any(&wire.ServerMessage{Kind: wire.KindInitInfo, State: msg}))
}

func (a *Actor) broadcastGeneralState() {
	msg := &wire.ServerMessage{Kind: wire.KindGeneralState, PlayerNames: a.names, Status: a.statusString()}
	a.broadcast(msg)
}

func (a *Actor) broadcastProgrammingState() {
	ready := make([]bool, len(a.game.Players))
	for i, p := range a.game.Players {
		ready[i] = p.Prepared != nil
	}
	for _, p := range a.game.Players {
		msg := &wire.ServerMessage{
			Kind:         wire.KindProgrammingState,
			Hand:         append([]cards.Card(nil), p.Deck.Hand...),
			ReadyPlayers: ready,
			PlayerStates: a.allPlayerStates(),
		}
		if p.Prepared != nil {
			prepared := *p.Prepared
			msg.PreparedCards = &prepared
		}
		p.Connection.Send(any(msg))
	}
}

func (a *Actor) broadcastAnimatedState() {
	anims := a.game.DrainAnimations()
	views := make([]wire.AnimationView, len(anims))
	for i, an := range anims {
		views[i] = wire.AnimationView{
			Kind:        wire.AnimationKind(an.Kind),
			FromX:       an.From.X,
			FromY:       an.From.Y,
			ToX:         an.To.X,
			ToY:         an.To.Y,
			Direction:   int(an.Direction),
			IsFromTank:  an.IsFromTank,
			PlayerIndex: an.PlayerIndex,
		}
	}

	msg := &wire.ServerMessage{Kind: wire.KindAnimatedState, Animations: views}
	if a.game.Phase.Kind == engine.PhaseRunning {
		msg.Running = &wire.RunningStateView{PlayerStates: a.allPlayerStates(), Register: a.game.Phase.Register}
	}
	a.broadcast(msg)
}

func (a *Actor) broadcast(msg *wire.ServerMessage) {
	for _, p := range a.game.Players {
		p.Connection.Send(any(msg))
	}
}

func (a *Actor) statusString() string {
	if a.game.Phase.Kind == engine.PhaseProgramming {
		return "programming"
	}
	return "processing"
}
