package expreplay

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Selector implements functionality for choosing which stored
// transitions are drawn from an experience replay buffer
type Selector interface {
	// choose selects n distinct slots out of the size occupied slots of
	// the buffer. Slots are numbered from 0 to size-1.
	choose(n, size int) []int
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly without replacement
type uniformSelector struct {
	rng *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly, without replacement, from an experience replay buffer
func NewUniformSelector(seed uint64) Selector {
	return &uniformSelector{rng: rand.New(rand.NewSource(seed))}
}

// choose selects n distinct indices at which to draw data from the
// buffer. The indices are returned in random order.
func (u *uniformSelector) choose(n, size int) []int {
	selected := make([]int, n)
	sampleuv.WithoutReplacement(selected, size, u.rng)
	u.rng.Shuffle(n, func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}
