package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	. "github.com/smartystreets/goconvey/convey"
)

func loadFixture(t *testing.T, scenarioPath string) (*Scenario, string) {
	t.Helper()
	s, err := Load(scenarioPath)
	if err != nil {
		t.Fatalf("loading scenario: %v", err)
	}
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "maps", s.Map))
	if err != nil {
		t.Fatalf("reading map fixture: %v", err)
	}
	return s, string(data)
}

func TestStraightTrackWinScenario(t *testing.T) {
	Convey("Given the straight-track single-checkpoint scenario", t, func() {
		s, mapData := loadFixture(t, filepath.Join("..", "..", "testdata", "scenarios", "straight_track_win.json"))
		result, err := Run(s, mapData, cards.NewRandShuffler(1))

		Convey("the driving player wins on the only checkpoint", func() {
			So(err, ShouldBeNil)
			So(result.Passed, ShouldBeTrue)
			So(result.Violations, ShouldBeEmpty)
		})
	})
}

func TestBeltLoopTwoPlayersScenario(t *testing.T) {
	Convey("Given the two-player belt-loop scenario", t, func() {
		s, mapData := loadFixture(t, filepath.Join("..", "..", "testdata", "scenarios", "belt_loop_two_players.json"))
		result, err := Run(s, mapData, cards.NewRandShuffler(2))

		Convey("both players end exactly where the scenario expects", func() {
			So(err, ShouldBeNil)
			So(result.Passed, ShouldBeTrue)
			So(result.Violations, ShouldBeEmpty)
		})
	})
}
