// Package fft implements the size-4 Fourier transform pair over a field, and
// the polynomial helpers built on it.
//
// A polynomial c0 + c1 x + c2 x^2 + c3 x^3 is stored by coefficients. Its
// evaluation form holds the values at the 4th roots of unity
// [1, w, w^2, w^3] = [1, w, -1, -w] in that order.
package fft

import (
	"strings"

	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
)

// Size is the transform length
const Size = 4

// Poly holds the coefficients of a polynomial of degree at most 3
type Poly[E any] [Size]E

// Evals holds a polynomial evaluated at the 4th roots of unity
type Evals[E any] [Size]E

// Roots returns the evaluation points [1, w, w^2, w^3]
func Roots[E field.Element[E]](f field.Field[E]) [Size]E {
	var roots [Size]E
	roots[0] = f.One()
	for i := 1; i < Size; i++ {
		roots[i] = roots[i-1].Mul(f.RootOfUnity())
	}
	return roots
}

// EvalFromPoly is the forward transform: it converts polynomial coefficients
// into evaluations at the roots of unity.
func EvalFromPoly[E field.Element[E]](f field.Field[E], coeffs Poly[E]) Evals[E] {
	w := f.RootOfUnity()
	c0pc2 := coeffs[0].Add(coeffs[2])
	c0mc2 := coeffs[0].Sub(coeffs[2])
	c1pc3 := coeffs[1].Add(coeffs[3])
	c1mc3 := coeffs[1].Sub(coeffs[3])

	var eval Evals[E]
	eval[0] = c0pc2.Add(c1pc3)
	eval[1] = c0mc2.Add(w.Mul(c1mc3))
	eval[2] = c0pc2.Sub(c1pc3)
	eval[3] = c0mc2.Sub(w.Mul(c1mc3))
	return eval
}

// PolyFromEval is the inverse transform: it converts evaluations at the roots
// of unity back into polynomial coefficients. The final division by 4 must be
// exact.
func PolyFromEval[E field.Element[E]](f field.Field[E], eval Evals[E]) (Poly[E], error) {
	w := f.RootOfUnity()
	e0pe2 := eval[0].Add(eval[2])
	e0me2 := eval[0].Sub(eval[2])
	e1pe3 := eval[1].Add(eval[3])
	e1me3 := eval[1].Sub(eval[3])

	var scaled Poly[E]
	scaled[0] = e0pe2.Add(e1pe3)
	scaled[1] = e0me2.Sub(w.Mul(e1me3))
	scaled[2] = e0pe2.Sub(e1pe3)
	scaled[3] = e0me2.Add(w.Mul(e1me3))

	n := f.FromInt64(Size)
	var coeffs Poly[E]
	for j := range scaled {
		c, err := scaled[j].Div(n)
		if err != nil {
			return Poly[E]{}, errors.Wrapf(err, "coefficient %d", j)
		}
		coeffs[j] = c
	}
	return coeffs, nil
}

// MulEvals multiplies two evaluation vectors pointwise
func MulEvals[E field.Element[E]](a, b Evals[E]) Evals[E] {
	var out Evals[E]
	for j := range a {
		out[j] = a[j].Mul(b[j])
	}
	return out
}

// DivEvals divides two evaluation vectors pointwise
func DivEvals[E field.Element[E]](a, b Evals[E]) (Evals[E], error) {
	var out Evals[E]
	for j := range a {
		q, err := a[j].Div(b[j])
		if err != nil {
			return Evals[E]{}, errors.Wrapf(err, "index %d", j)
		}
		out[j] = q
	}
	return out, nil
}

// Format renders 4 values as "[v0, v1, v2, v3]"
func Format[E field.Element[E]](values [Size]E) string {
	parts := make([]string, Size)
	for j, v := range values {
		parts[j] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
