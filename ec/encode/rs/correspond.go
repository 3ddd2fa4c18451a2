package rs

import (
	"github.com/ethp2p/fft-recovery/ec/encode"
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
)

// ErrMismatch is returned when a complex trace does not reduce to the
// matching prime field trace
var ErrMismatch = errors.New("traces do not correspond")

// CompareReduced checks that every stage of a run over the complex integers
// maps onto the same stage of a run over pf under a + bi -> a + b*w mod p.
// Both runs must use corresponding data, erasures and scale factor.
func CompareReduced(pf *field.PrimeField, complexTrace []encode.Stage[field.Gaussian], primeTrace []encode.Stage[field.PrimeElement]) error {
	if len(complexTrace) != len(primeTrace) {
		return errors.Wrapf(ErrMismatch, "%d stages vs %d stages", len(complexTrace), len(primeTrace))
	}
	for i, cs := range complexTrace {
		ps := primeTrace[i]
		if cs.Name != ps.Name {
			return errors.Wrapf(ErrMismatch, "stage %d is %q vs %q", i, cs.Name, ps.Name)
		}
		for j, v := range cs.Values {
			if got := pf.Reduce(v); !got.Equal(ps.Values[j]) {
				return errors.Wrapf(ErrMismatch, "stage %q value %d: %s reduces to %s, want %s",
					cs.Name, j, v, got, ps.Values[j])
			}
		}
	}
	return nil
}
