package field

import (
	"fmt"

	"github.com/pkg/errors"
)

// Element represents a scalar of an algebraic domain. E is the concrete
// element type, so that operations stay on values of a single domain.
type Element[E any] interface {
	// Add returns a + b in the domain
	Add(b E) E

	// Sub returns a - b in the domain
	Sub(b E) E

	// Mul returns a * b in the domain
	Mul(b E) E

	// Div returns a / b. The quotient is verified by multiplying it back;
	// a *DivisionError is returned when b is zero or the quotient is inexact.
	Div(b E) (E, error)

	// IsZero returns true if the element is the zero element
	IsZero() bool

	// Equal returns true if two elements are equal
	Equal(b E) bool

	// Components returns the real and imaginary parts of the element.
	// Elements of a prime field have no imaginary part.
	Components() (re, im int64)

	// String returns the string representation of the element
	String() string
}

// Field represents a domain supporting a size-4 Fourier transform.
type Field[E any] interface {
	// Zero returns the zero element of the field
	Zero() E

	// One returns the one element of the field
	One() E

	// RootOfUnity returns the primitive 4th root of unity used for evaluation
	RootOfUnity() E

	// FromInt64 maps an integer into the field
	FromInt64(v int64) E

	// FromComponents builds an element from its real and imaginary parts
	FromComponents(re, im int64) (E, error)

	// Parse reads an element from its string form
	Parse(s string) (E, error)

	// Name returns the domain name used in wire formats and configuration
	Name() string
}

var (
	// ErrDivisionByZero is returned when dividing by the zero element.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInexactDivision is returned when the quotient cannot be represented.
	ErrInexactDivision = errors.New("inexact division")
	// ErrNotInvertible is returned when an element has no multiplicative inverse.
	ErrNotInvertible = errors.New("element is not invertible")
)

// DivisionError reports a failed division together with its operands.
type DivisionError struct {
	Dividend string
	Divisor  string
	Err      error
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("cannot divide %s by %s: %v", e.Dividend, e.Divisor, e.Err)
}

func (e *DivisionError) Unwrap() error {
	return e.Err
}

func divisionError[E Element[E]](a, b E, err error) *DivisionError {
	return &DivisionError{
		Dividend: a.String(),
		Divisor:  b.String(),
		Err:      err,
	}
}
