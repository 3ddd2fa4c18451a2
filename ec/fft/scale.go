package fft

import (
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
)

// Scale replaces p(x) with p(k x) in place by multiplying coefficient j by
// k^j. Evaluating the result at the roots of unity samples p at k, k w, ...,
// which moves evaluation away from the roots of a zero polynomial.
func Scale[E field.Element[E]](p *Poly[E], k E) {
	fac := k
	p[1] = p[1].Mul(fac)
	fac = fac.Mul(k)
	p[2] = p[2].Mul(fac)
	fac = fac.Mul(k)
	p[3] = p[3].Mul(fac)
}

// Unscale reverses Scale by dividing coefficient j by k^j. p is left
// untouched when a division fails.
func Unscale[E field.Element[E]](p *Poly[E], k E) error {
	out := *p
	fac := k
	for j := 1; j < Size; j++ {
		c, err := p[j].Div(fac)
		if err != nil {
			return errors.Wrapf(err, "unscale coefficient %d", j)
		}
		out[j] = c
		fac = fac.Mul(k)
	}
	*p = out
	return nil
}
