package scenario

import (
	"fmt"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/engine"
	"github.com/mvolfik/roborally-sub000/internal/mapfile"
)

// Result is the outcome of running a Scenario to completion.
type Result struct {
	Passed     bool
	Violations []string
	Rounds     int
}

// Run loads the scenario's map, programs each round verbatim (no
// priority shuffling - the scenario author picks the cards, so the
// outcome is deterministic), resolves it, and checks the final board
// state against the scenario's expectations.
func Run(s *Scenario, mapData string, shuffler cards.Shuffler) (*Result, error) {
	m, err := mapfile.Parse(mapData)
	if err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}

	maxSeat := 0
	for _, round := range s.Rounds {
		for seat := range round.Programs {
			if seat+1 > maxSeat {
				maxSeat = seat + 1
			}
		}
	}
	for _, ep := range s.Expectations.Players {
		if ep.Index+1 > maxSeat {
			maxSeat = ep.Index + 1
		}
	}
	if maxSeat > len(m.SpawnPoints) {
		return nil, fmt.Errorf("scenario references seat %d but map only has %d spawn points", maxSeat-1, len(m.SpawnPoints))
	}

	g, err := engine.NewGame(m, m.SpawnPoints[:maxSeat], shuffler)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	rounds := 0
	for _, round := range s.Rounds {
		if rounds >= s.Expectations.MaxRounds {
			break
		}
		if err := programRound(g, round); err != nil {
			return nil, err
		}
		if err := g.StartRunning(); err != nil {
			return nil, fmt.Errorf("starting round %d: %w", rounds, err)
		}
		for g.RunSubPhase() {
		}
		rounds++
		if g.Phase.Kind == engine.PhaseFinished {
			break
		}
	}

	violations := verify(s, g)
	return &Result{Passed: len(violations) == 0, Violations: violations, Rounds: rounds}, nil
}

func programRound(g *engine.Game, round Round) error {
	for seat, names := range round.Programs {
		if seat >= len(g.Players) {
			return fmt.Errorf("round references unknown seat %d", seat)
		}
		var program [5]cards.Card
		for i, name := range names {
			c, err := parseCardName(name)
			if err != nil {
				return err
			}
			program[i] = c
		}
		// The scripted cards are dealt into the hand first, so Program's
		// hand check accepts them whatever the shuffle dealt.
		player := g.Players[seat]
		player.Deck.Hand = append(player.Deck.Hand, program[:]...)
		if err := player.Program(program); err != nil {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
	}
	// Any unprogrammed seat plays all-Move1 so the round can resolve.
	allMove1 := [5]cards.Card{cards.Move1, cards.Move1, cards.Move1, cards.Move1, cards.Move1}
	for _, p := range g.Players {
		if p.Prepared == nil {
			p.Deck.Hand = append(p.Deck.Hand, allMove1[:]...)
			if err := p.Program(allMove1); err != nil {
				return fmt.Errorf("auto-programming idle seat: %w", err)
			}
		}
	}
	return nil
}

func verify(s *Scenario, g *engine.Game) []string {
	var violations []string

	for _, ep := range s.Expectations.Players {
		if ep.Index >= len(g.Players) {
			violations = append(violations, fmt.Sprintf("expectation references unknown player %d", ep.Index))
			continue
		}
		p := g.Players[ep.Index].Public

		if ep.Position != nil {
			want := [2]int{ep.Position[0], ep.Position[1]}
			got := [2]int{p.Position.X, p.Position.Y}
			if got != want {
				violations = append(violations, fmt.Sprintf(
					"player %d position mismatch: expected (%d,%d), got (%d,%d)",
					ep.Index, want[0], want[1], got[0], got[1]))
			}
		}
		if ep.Checkpoint != nil && p.Checkpoint != *ep.Checkpoint {
			violations = append(violations, fmt.Sprintf(
				"player %d checkpoint mismatch: expected %d, got %d", ep.Index, *ep.Checkpoint, p.Checkpoint))
		}
		if ep.IsRebooting != nil && p.IsRebooting != *ep.IsRebooting {
			violations = append(violations, fmt.Sprintf(
				"player %d reboot status mismatch: expected %v, got %v", ep.Index, *ep.IsRebooting, p.IsRebooting))
		}
	}

	if s.Expectations.Winner != nil {
		if g.Phase.Kind != engine.PhaseFinished {
			violations = append(violations, fmt.Sprintf("expected player %d to win, but no player has finished", *s.Expectations.Winner))
		} else if g.Phase.Winner != *s.Expectations.Winner {
			violations = append(violations, fmt.Sprintf("expected player %d to win, got player %d", *s.Expectations.Winner, g.Phase.Winner))
		}
	}

	return violations
}
