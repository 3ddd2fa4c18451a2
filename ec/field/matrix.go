package field

import (
	"fmt"

	"github.com/pkg/errors"
)

// Matrix operations over the domains

// ErrSingular is returned when a linear system has no unique solution
var ErrSingular = errors.New("matrix is singular")

// Solve returns x such that A x = b, where A is n x n.
//
// Forward elimination is fraction-free (row_k = pivot*row_k - a_ki*row_i) so
// that it never divides; back substitution then uses exact division. For the
// complex integers this succeeds whenever the solution is itself integral.
func Solve[E Element[E]](A [][]E, b []E) ([]E, error) {
	n := len(A)
	if len(b) != n {
		panic(fmt.Sprintf("dimension mismatch: A has %d rows, b has %d entries", n, len(b)))
	}

	// Make a deep copy of A and b to work on
	B := make([][]E, n)
	for i := range A {
		if len(A[i]) != n {
			panic(fmt.Sprintf("matrix is not square: row %d has %d entries", i, len(A[i])))
		}
		B[i] = append([]E(nil), A[i]...)
	}
	y := append([]E(nil), b...)

	for i := 0; i < n; i++ {
		// Find pivot: look for a non-zero element in column i
		pivot := -1
		for k := i; k < n; k++ {
			if !B[k][i].IsZero() {
				pivot = k
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingular
		}

		if pivot != i {
			B[i], B[pivot] = B[pivot], B[i]
			y[i], y[pivot] = y[pivot], y[i]
		}

		// Eliminate below only
		for k := i + 1; k < n; k++ {
			if B[k][i].IsZero() {
				continue
			}
			factor := B[k][i]
			for j := i; j < n; j++ {
				B[k][j] = B[k][j].Mul(B[i][i]).Sub(factor.Mul(B[i][j]))
			}
			y[k] = y[k].Mul(B[i][i]).Sub(factor.Mul(y[i]))
		}
	}

	x := make([]E, n)
	for i := n - 1; i >= 0; i-- {
		acc := y[i]
		for j := i + 1; j < n; j++ {
			acc = acc.Sub(B[i][j].Mul(x[j]))
		}
		q, err := acc.Div(B[i][i])
		if err != nil {
			return nil, errors.Wrapf(err, "back substitution at row %d", i)
		}
		x[i] = q
	}
	return x, nil
}

// MatrixMultiply computes A × B matrix multiplication over the field
// A is m×n, B is n×p, result is m×p
func MatrixMultiply[E Element[E]](A, B [][]E, field Field[E]) [][]E {
	if len(A) == 0 || len(B) == 0 {
		return nil
	}

	m := len(A)    // rows of A
	n := len(A[0]) // cols of A = rows of B
	p := len(B[0]) // cols of B

	if len(B) != n {
		panic(fmt.Sprintf("matrix dimensions mismatch: A is %d×%d, B is %d×%d", m, n, len(B), p))
	}

	C := make([][]E, m)
	for i := range C {
		C[i] = make([]E, p)
		for j := 0; j < p; j++ {
			sum := field.Zero()
			for k := 0; k < n; k++ {
				sum = sum.Add(A[i][k].Mul(B[k][j]))
			}
			C[i][j] = sum
		}
	}
	return C
}
