package mapfile

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const validMap = "Size=4,1 Antenna=1,0 Reboot=0,0:r Checkpoints=2,0 Spawnpoints=3,0:l Lasers=\n" +
	"F;F:urdl;F;F\n"

func TestParseValidMap(t *testing.T) {
	Convey("Given a minimal valid 4x1 map", t, func() {
		m, err := Parse(validMap)

		Convey("it parses without error", func() {
			So(err, ShouldBeNil)
			So(m.Grid.Size().X, ShouldEqual, 4)
			So(len(m.Checkpoints), ShouldEqual, 1)
			So(len(m.SpawnPoints), ShouldEqual, 1)
		})
	})
}

func TestParseRejectsWrongRowWidth(t *testing.T) {
	Convey("Given a row with the wrong number of tiles", t, func() {
		bad := "Size=4,1 Antenna=1,0 Reboot=0,0:r Checkpoints=2,0 Spawnpoints=3,0:l Lasers=\n" +
			"F;F\n"
		_, err := Parse(bad)

		Convey("it fails with a ParseError referencing the row", func() {
			So(err, ShouldNotBeNil)
			pe, ok := err.(*ParseError)
			So(ok, ShouldBeTrue)
			So(pe.Line, ShouldEqual, 2)
		})
	})
}

func TestParseRejectsOutwardFacingSpawn(t *testing.T) {
	Convey("Given a spawn point facing off the edge of the map", t, func() {
		bad := "Size=4,1 Antenna=1,0 Reboot=0,0:r Checkpoints=2,0 Spawnpoints=3,0:r Lasers=\n" +
			"F;F:urdl;F;F\n"
		_, err := Parse(bad)

		Convey("it is rejected", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
