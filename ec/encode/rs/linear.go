package rs

import (
	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
)

// ReconstructLinear recovers the data by solving the Vandermonde system of
// the surviving samples directly:
//
//	d0 + d1 * w^i = e_i   for each received index i
//
// It does not use the transform, so it serves as an independent check of
// Recover.
func (r *Recoverer[E]) ReconstructLinear(received fft.Evals[E], erased []int) ([DataCount]E, error) {
	var data [DataCount]E
	if err := ValidateErasures(erased); err != nil {
		return data, err
	}

	var lost [fft.Size]bool
	for _, idx := range erased {
		lost[idx] = true
	}

	roots := fft.Roots(r.field)
	A := make([][]E, 0, DataCount)
	b := make([]E, 0, DataCount)
	for i := 0; i < fft.Size; i++ {
		if lost[i] {
			continue
		}
		row := make([]E, DataCount)
		power := r.field.One()
		for j := range row {
			row[j] = power
			power = power.Mul(roots[i])
		}
		A = append(A, row)
		b = append(b, received[i])
	}
	x, err := field.Solve(A, b)
	if err != nil {
		return data, errors.Wrap(err, "failed to solve decoding system")
	}

	// Check A x = b
	col := make([][]E, DataCount)
	for j := range x {
		col[j] = []E{x[j]}
	}
	check := field.MatrixMultiply(A, col, r.field)
	for i := range check {
		if !check[i][0].Equal(b[i]) {
			return data, errors.Wrapf(ErrInconsistent, "row %d", i)
		}
	}

	copy(data[:], x)
	return data, nil
}
