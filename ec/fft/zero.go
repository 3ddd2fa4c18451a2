package fft

import (
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
)

// ZeroPoly returns Z(x) = prod (x - w^j) over the given indices. Z vanishes
// exactly at the evaluation points of those indices. At most Size-1 indices
// fit in a polynomial of degree 3.
func ZeroPoly[E field.Element[E]](f field.Field[E], indices []int) (Poly[E], error) {
	if len(indices) >= Size {
		return Poly[E]{}, errors.Errorf("zero polynomial of degree %d does not fit in %d coefficients", len(indices), Size)
	}
	roots := Roots(f)

	var z Poly[E]
	for j := range z {
		z[j] = f.Zero()
	}
	z[0] = f.One()

	for n, idx := range indices {
		if idx < 0 || idx >= Size {
			return Poly[E]{}, errors.Errorf("index %d out of range [0, %d)", idx, Size)
		}
		// Multiply z, currently of degree n, by (x - r)
		r := roots[idx]
		for j := n + 1; j > 0; j-- {
			z[j] = z[j-1].Sub(r.Mul(z[j]))
		}
		z[0] = f.Zero().Sub(r.Mul(z[0]))
	}
	return z, nil
}
