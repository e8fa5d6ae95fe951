package cards

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fixedShuffler leaves the slice in whatever order it already has -
// a deterministic stand-in for the spec's "inject a seeded RNG
// through a narrow interface" requirement.
type fixedShuffler struct{}

func (fixedShuffler) Shuffle(n int, swap func(i, j int)) {}

func TestDeckDrawReshufflesWhenEmpty(t *testing.T) {
	Convey("Given a deck with an empty draw pile and a non-empty discard pile", t, func() {
		d := &Deck{
			Draw:     nil,
			Discard:  []Card{Move1, Move2, TurnLeft},
			shuffler: fixedShuffler{},
		}

		Convey("drawing one card reshuffles discard into draw first", func() {
			c := d.DrawOne()
			So(c, ShouldEqual, TurnLeft)
			So(len(d.Draw), ShouldEqual, 2)
			So(len(d.Discard), ShouldEqual, 0)
		})
	})
}

func TestNewDeckStartsWithNineCardHand(t *testing.T) {
	Convey("Given a freshly constructed deck", t, func() {
		d := NewDeck(fixedShuffler{})
		Convey("the hand has exactly 9 cards", func() {
			So(len(d.Hand), ShouldEqual, 9)
		})
		Convey("draw+hand+discard totals 20 cards", func() {
			So(len(d.Draw)+len(d.Hand)+len(d.Discard), ShouldEqual, 20)
		})
	})
}

func TestDamagePileUnderflowIsSilentNoOp(t *testing.T) {
	Convey("Given an empty SPAM pile", t, func() {
		piles := DamagePiles{Spam: 0}
		Convey("TryDeal returns false and does not go negative", func() {
			ok := piles.TryDeal(SPAM)
			So(ok, ShouldBeFalse)
			So(piles.Spam, ShouldEqual, 0)
		})
	})

	Convey("Given a pile with cards available", t, func() {
		piles := DamagePiles{Spam: 2}
		Convey("TryDeal decrements and Return increments", func() {
			So(piles.TryDeal(SPAM), ShouldBeTrue)
			So(piles.Spam, ShouldEqual, 1)
			piles.Return(SPAM)
			So(piles.Spam, ShouldEqual, 2)
		})
	})
}
