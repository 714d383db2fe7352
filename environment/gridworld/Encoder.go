package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OneHot encodes GridWorld positions as one-hot vectors over the cells
// of an n x n grid, in row-major order. OneHot is stateless.
type OneHot struct {
	n int
}

// NewOneHot returns a new encoder for an n x n grid
func NewOneHot(n int) OneHot {
	return OneHot{n}
}

// Features returns the length of an encoded state
func (o OneHot) Features() int {
	return o.n * o.n
}

// Index returns the index of the non-zero entry of p's encoding
func (o OneHot) Index(p Position) int {
	return p.Row*o.n + p.Col
}

// Encode returns the one-hot encoding of p
func (o OneHot) Encode(p Position) *mat.VecDense {
	vec := mat.NewVecDense(o.Features(), nil)
	vec.SetVec(o.Index(p), 1.0)
	return vec
}

// Decode converts a one-hot vector back into the Position it encodes
func (o OneHot) Decode(v mat.Vector) (Position, error) {
	if v.Len() != o.Features() {
		return Position{}, fmt.Errorf("decode: invalid state length "+
			"\n\twant(%v)\n\thave(%v)", o.Features(), v.Len())
	}
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			return Position{i / o.n, i % o.n}, nil
		}
	}
	return Position{}, fmt.Errorf("decode: state has no non-zero entry")
}
