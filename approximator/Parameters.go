package approximator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Parameters is an ordered list of the weight matrices of a
// ValueApproximator. Two Parameters are compatible if they hold the
// same number of matrices with pairwise equal dimensions.
type Parameters []*mat.Dense

// Clone returns a deep copy of p
func (p Parameters) Clone() Parameters {
	clone := make(Parameters, len(p))
	for i, m := range p {
		clone[i] = mat.DenseCopyOf(m)
	}
	return clone
}

// Equal returns whether p and other are compatible and hold exactly
// the same values
func (p Parameters) Equal(other Parameters) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !mat.Equal(p[i], other[i]) {
			return false
		}
	}
	return true
}

// Compatible returns an error if other cannot be copied into p
func (p Parameters) Compatible(other Parameters) error {
	if len(p) != len(other) {
		return fmt.Errorf("compatible: incompatible number of parameters"+
			"\n\twant(%v)\n\thave(%v)", len(p), len(other))
	}
	for i := range p {
		pr, pc := p[i].Dims()
		or, oc := other[i].Dims()
		if pr != or || pc != oc {
			return fmt.Errorf("compatible: incompatible dimensions for "+
				"parameter %v\n\twant(%v x %v)\n\thave(%v x %v)", i, pr, pc,
				or, oc)
		}
	}
	return nil
}

// CopyFrom copies the values of other into p in place
func (p Parameters) CopyFrom(other Parameters) error {
	if err := p.Compatible(other); err != nil {
		return err
	}
	for i := range p {
		p[i].Copy(other[i])
	}
	return nil
}

// Blend sets p in place to the Polyak average (1 - tau) * p + tau * other
func (p Parameters) Blend(other Parameters, tau float64) error {
	if tau < 0 || tau > 1 {
		return fmt.Errorf("blend: tau must be in [0, 1], have(%v)", tau)
	}
	if err := p.Compatible(other); err != nil {
		return err
	}

	for i := range p {
		r, c := other[i].Dims()
		scaled := mat.NewDense(r, c, nil)
		scaled.Scale(tau, other[i])

		p[i].Scale(1-tau, p[i])
		p[i].Add(p[i], scaled)
	}
	return nil
}
