package cards

// Shuffler is the narrow interface a Deck's reshuffle step is
// performed through. Production code uses RandShuffler (math/rand);
// tests inject a deterministic fake, per the spec's determinism
// caveat: "tests that verify deck order must inject a seeded RNG
// through a narrow interface on the Player/Deck component."
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck holds one player's draw pile, hand, and discard pile. The
// invariant (§3 Player) is that the multiset union of draw, hand,
// discard, and whatever is currently prepared/executing equals the
// deck dealt at construction plus damage cards drawn minus damage
// cards returned to the piles.
type Deck struct {
	Draw    []Card
	Hand    []Card
	Discard []Card

	shuffler Shuffler
}

// NewDeck builds a fresh deck: the full starting multiset goes to
// discard, then 9 cards are drawn into hand (triggering the initial
// reshuffle since draw starts empty).
func NewDeck(shuffler Shuffler) *Deck {
	d := &Deck{
		Discard:  StartingDeck(),
		shuffler: shuffler,
	}
	d.Hand = d.DrawN(9)
	return d
}

// DrawOne pops one card from the draw pile, reshuffling discard into
// draw first if the draw pile is empty.
func (d *Deck) DrawOne() Card {
	if len(d.Draw) == 0 {
		d.Draw, d.Discard = d.Discard, d.Draw[:0]
		d.shuffler.Shuffle(len(d.Draw), func(i, j int) {
			d.Draw[i], d.Draw[j] = d.Draw[j], d.Draw[i]
		})
	}
	last := len(d.Draw) - 1
	c := d.Draw[last]
	d.Draw = d.Draw[:last]
	return c
}

// DrawN draws n cards one at a time.
func (d *Deck) DrawN(n int) []Card {
	out := make([]Card, n)
	for i := 0; i < n; i++ {
		out[i] = d.DrawOne()
	}
	return out
}

// RemoveFromHand removes the first occurrence of card from the hand,
// reporting whether one was found.
func (d *Deck) RemoveFromHand(card Card) bool {
	for i, c := range d.Hand {
		if c == card {
			d.Hand = append(d.Hand[:i], d.Hand[i+1:]...)
			return true
		}
	}
	return false
}
