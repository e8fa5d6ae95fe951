package cards

import "math/rand"

// RandShuffler is the production Shuffler, backed by a private
// math/rand source so concurrent games never share global RNG state.
type RandShuffler struct {
	r *rand.Rand
}

func NewRandShuffler(seed int64) *RandShuffler {
	return &RandShuffler{r: rand.New(rand.NewSource(seed))}
}

func (s *RandShuffler) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
