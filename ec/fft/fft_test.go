package fft

import (
	"testing"

	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gf field.Field[field.Gaussian]     = field.NewGaussianField()
	pf field.Field[field.PrimeElement] = field.NewPrimeField17()
)

func gpoly(values ...string) Poly[field.Gaussian] {
	var p Poly[field.Gaussian]
	for j, s := range values {
		v, err := gf.Parse(s)
		if err != nil {
			panic(err)
		}
		p[j] = v
	}
	return p
}

func ppoly(values ...int64) Poly[field.PrimeElement] {
	var p Poly[field.PrimeElement]
	for j, v := range values {
		p[j] = pf.FromInt64(v)
	}
	return p
}

func TestRoots(t *testing.T) {
	assert.Equal(t, "[1, 0 + i, -1, 0 - i]", Format(Roots(gf)))
	assert.Equal(t, "[1, 4, 16, 13]", Format(Roots(pf)))
}

func TestEvalFromPoly(t *testing.T) {
	t.Run("complex", func(t *testing.T) {
		eval := EvalFromPoly(gf, gpoly("5", "7", "0", "0"))
		assert.Equal(t, "[12, 5 + 7i, -2, 5 - 7i]", Format([Size]field.Gaussian(eval)))
	})

	t.Run("finite", func(t *testing.T) {
		eval := EvalFromPoly(pf, ppoly(5, 7, 0, 0))
		assert.Equal(t, "[12, 16, 15, 11]", Format([Size]field.PrimeElement(eval)))
	})

	t.Run("matches direct evaluation", func(t *testing.T) {
		p := gpoly("1 - i", "3", "-2i", "4 + i")
		eval := EvalFromPoly(gf, p)
		for j, x := range Roots(gf) {
			// Horner's rule
			acc := gf.Zero()
			for c := Size - 1; c >= 0; c-- {
				acc = acc.Mul(x).Add(p[c])
			}
			assert.True(t, acc.Equal(eval[j]), "point %d: %s vs %s", j, acc, eval[j])
		}
	})
}

func TestRoundTrip(t *testing.T) {
	complexPolys := []Poly[field.Gaussian]{
		gpoly("5", "7", "0", "0"),
		gpoly("0 - i", "1 - i", "1", "0"),
		gpoly("1 - i", "3", "-2i", "4 + i"),
		gpoly("0", "0", "0", "0"),
	}
	for _, p := range complexPolys {
		eval := EvalFromPoly(gf, p)
		back, err := PolyFromEval(gf, eval)
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}

	for _, p := range []Poly[field.PrimeElement]{ppoly(5, 7, 0, 0), ppoly(16, 3, 9, 1), ppoly(0, 0, 0, 0)} {
		eval := EvalFromPoly(pf, p)
		back, err := PolyFromEval(pf, eval)
		require.NoError(t, err)
		assert.Equal(t, Format([Size]field.PrimeElement(p)), Format([Size]field.PrimeElement(back)))
	}
}

func TestPolyFromEvalInexact(t *testing.T) {
	// Not the evaluation of any complex-integer polynomial
	eval := Evals[field.Gaussian](gpoly("1", "0", "0", "0"))
	_, err := PolyFromEval(gf, eval)
	require.Error(t, err)
	assert.True(t, errors.Is(err, field.ErrInexactDivision))
}

func TestPointwise(t *testing.T) {
	a := Evals[field.Gaussian](gpoly("12", "0", "0", "5 - 7i"))
	b := Evals[field.Gaussian](gpoly("2 - 2i", "0", "0", "-2 - 2i"))
	prod := MulEvals(a, b)
	assert.Equal(t, "[24 - 24i, 0, 0, -24 + 4i]", Format([Size]field.Gaussian(prod)))

	q, err := DivEvals(prod, b)
	require.Error(t, err, "zero entries of b cannot divide")
	assert.True(t, errors.Is(err, field.ErrDivisionByZero))
	assert.Equal(t, Evals[field.Gaussian]{}, q)

	num := Evals[field.Gaussian](gpoly("114 - 57i", "-24 - 23i", "-18 - 9i", "-72 + 69i"))
	den := Evals[field.Gaussian](gpoly("6 - 3i", "-2 + i", "2 + i", "-6 - 3i"))
	q, err = DivEvals(num, den)
	require.NoError(t, err)
	assert.Equal(t, "[19, 5 + 14i, -9, 5 - 14i]", Format([Size]field.Gaussian(q)))
}
