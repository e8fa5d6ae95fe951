// Package scenario loads JSON-described game scenarios - a map, an
// initial set of player programs, and an expected final board state -
// and runs them to completion against the engine. It is the testing
// harness generalized from a tick-based unit/building scenario format
// to register-based card programs and checkpoint/reboot outcomes.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mvolfik/roborally-sub000/internal/cards"
)

// Scenario is a complete scenario file: which map to load, what each
// player starts holding, and what the board should look like once the
// programmed rounds finish.
type Scenario struct {
	Name         string       `json:"name"`
	Map          string       `json:"map"`
	Description  string       `json:"description"`
	Rounds       []Round      `json:"rounds"`
	Expectations Expectations `json:"expectations"`
}

// Round is one round's worth of programs, keyed by spawn-order player
// index.
type Round struct {
	Programs map[int][5]string `json:"programs"`
}

// Expectations describes the final state to check after every round
// has resolved.
type Expectations struct {
	MaxRounds int              `json:"maxRounds"`
	Players   []ExpectedPlayer `json:"players"`
	Winner    *int             `json:"winner,omitempty"`
}

// ExpectedPlayer pins down one player's expected final position,
// checkpoint count, or reboot status. Zero-value fields are left
// unchecked - set only what the scenario cares about.
type ExpectedPlayer struct {
	Index       int     `json:"index"`
	Position    *[2]int `json:"position,omitempty"`
	Checkpoint  *int    `json:"checkpoint,omitempty"`
	IsRebooting *bool   `json:"isRebooting,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Map == "" {
		return fmt.Errorf("map is required")
	}
	if s.Expectations.MaxRounds <= 0 {
		return fmt.Errorf("expectations.maxRounds must be positive")
	}
	if len(s.Rounds) == 0 {
		return fmt.Errorf("at least one round is required")
	}
	for ri, round := range s.Rounds {
		for seat, program := range round.Programs {
			for _, name := range program {
				if _, err := parseCardName(name); err != nil {
					return fmt.Errorf("round %d seat %d: %w", ri, seat, err)
				}
			}
		}
	}
	return nil
}

var cardNames = map[string]cards.Card{
	"Move1":     cards.Move1,
	"Move2":     cards.Move2,
	"Move3":     cards.Move3,
	"Reverse1":  cards.Reverse1,
	"TurnRight": cards.TurnRight,
	"TurnLeft":  cards.TurnLeft,
	"UTurn":     cards.UTurn,
	"Again":     cards.Again,
	"SPAM":      cards.SPAM,
	"Worm":      cards.Worm,
	"Trojan":    cards.Trojan,
	"Virus":     cards.Virus,
}

func parseCardName(name string) (cards.Card, error) {
	c, ok := cardNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown card name %q", name)
	}
	return c, nil
}
