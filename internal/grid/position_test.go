package grid

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// L1: rotating a continuous direction k times and projecting to cardinal
// equals rotating the cardinal projection k times.
func TestContinuousDirectionRotationLaw(t *testing.T) {
	Convey("Given a continuous direction and a rotation count", t, func() {
		for raw := -6; raw <= 6; raw++ {
			d := ContinuousDirection(raw)
			for k := -4; k <= 4; k++ {
				rotated := d
				cardinalRotated := d.Cardinal()
				if k >= 0 {
					for i := 0; i < k; i++ {
						rotated = rotated.RotatedCW()
						cardinalRotated = cardinalRotated.RotatedCW()
					}
				} else {
					for i := 0; i < -k; i++ {
						rotated = rotated.RotatedCCW()
						cardinalRotated = cardinalRotated.RotatedCCW()
					}
				}
				Convey("rotating then projecting equals projecting then rotating", func() {
					So(rotated.Cardinal(), ShouldEqual, cardinalRotated)
				})
			}
		}
	})
}

// L2: ClosestInGivenBasicDirection projects onto the target and moves
// the raw value by at most 2.
func TestClosestInGivenBasicDirectionLaw(t *testing.T) {
	Convey("Given any continuous direction and any target cardinal", t, func() {
		for raw := -10; raw <= 10; raw++ {
			d := ContinuousDirection(raw)
			for target := Up; target <= Left; target++ {
				result := d.ClosestInGivenBasicDirection(target)
				Convey("the result projects onto the target", func() {
					So(result.Cardinal(), ShouldEqual, target)
				})
				diff := int(result) - int(d)
				if diff < 0 {
					diff = -diff
				}
				Convey("the raw difference is at most 2", func() {
					So(diff, ShouldBeLessThanOrEqualTo, 2)
				})
			}
		}
	})
}

// L3: two TurnRight followed by two TurnLeft returns to the original raw value.
func TestDoubleTurnIsUTurnLaw(t *testing.T) {
	Convey("Given a starting continuous direction", t, func() {
		start := ContinuousDirection(3)
		d := start.RotatedCW().RotatedCW().RotatedCCW().RotatedCCW()
		Convey("the raw value is unchanged", func() {
			So(d, ShouldEqual, start)
		})
	})
}

func TestDirectionArithmetic(t *testing.T) {
	Convey("Direction.Apply moves one tile in the given direction", t, func() {
		origin := Position{X: 2, Y: 2}
		So(Up.Apply(origin), ShouldResemble, Position{X: 2, Y: 1})
		So(Down.Apply(origin), ShouldResemble, Position{X: 2, Y: 3})
		So(Left.Apply(origin), ShouldResemble, Position{X: 1, Y: 2})
		So(Right.Apply(origin), ShouldResemble, Position{X: 3, Y: 2})
	})

	Convey("Opposite and rotations are self-consistent", t, func() {
		So(Up.Opposite(), ShouldEqual, Down)
		So(Up.RotatedCW(), ShouldEqual, Right)
		So(Up.RotatedCW().RotatedCW().RotatedCW().RotatedCW(), ShouldEqual, Up)
	})
}
