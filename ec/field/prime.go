package field

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PrimeDomain is the name of the prime-field domain
const PrimeDomain = "finite"

// maxPrime bounds the modulus so that products of two residues fit in a uint64
// and the inverse table stays small.
const maxPrime = 1 << 16

// PrimeField represents a prime finite field F_p together with a primitive
// 4th root of unity
type PrimeField struct {
	p     uint64   // the prime modulus
	omega uint64   // primitive 4th root of unity
	inv   []uint64 // inv[a] is the inverse of a, inv[0] is unused
}

// NewPrimeField creates a new prime field. The modulus must be a prime below
// 2^16 and omega must be a primitive 4th root of unity modulo p.
func NewPrimeField(p, omega uint64) (*PrimeField, error) {
	if p < 5 || p >= maxPrime || !big.NewInt(int64(p)).ProbablyPrime(0) {
		return nil, errors.Errorf("modulus %d must be a prime in [5, %d)", p, maxPrime)
	}
	omega %= p
	sq := omega * omega % p
	if sq*sq%p != 1 || sq == 1 {
		return nil, errors.Errorf("%d is not a primitive 4th root of unity mod %d", omega, p)
	}

	f := &PrimeField{
		p:     p,
		omega: omega,
		inv:   make([]uint64, p),
	}
	// a^(p-2) is the inverse of a by Fermat's little theorem
	for a := uint64(1); a < p; a++ {
		f.inv[a] = f.pow(a, p-2)
	}
	return f, nil
}

// NewPrimeField17 returns the integers mod 17 with 4 as the 4th root of unity,
// giving [1, 4, 16, 13] as the evaluation points.
func NewPrimeField17() *PrimeField {
	f, err := NewPrimeField(17, 4)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *PrimeField) pow(a, e uint64) uint64 {
	result := uint64(1)
	base := a % f.p
	for e > 0 {
		if e&1 == 1 {
			result = result * base % f.p
		}
		base = base * base % f.p
		e >>= 1
	}
	return result
}

func (f *PrimeField) element(v uint64) PrimeElement {
	return PrimeElement{value: v % f.p, field: f}
}

// reduce maps a signed integer into [0, p)
func (f *PrimeField) reduce(v int64) uint64 {
	m := v % int64(f.p)
	if m < 0 {
		m += int64(f.p)
	}
	return uint64(m)
}

// Modulus returns the prime p
func (f *PrimeField) Modulus() uint64 {
	return f.p
}

// Reduce maps a complex integer a + bi to a + b*omega mod p. This is a ring
// homomorphism since omega^2 = -1.
func (f *PrimeField) Reduce(g Gaussian) PrimeElement {
	re := f.reduce(g.Re)
	im := f.reduce(g.Im)
	return f.element(re + im*f.omega)
}

// PrimeElement represents an element in a prime field
type PrimeElement struct {
	value uint64      // element value in range [0, p-1]
	field *PrimeField // reference to parent field
}

// Field interface implementation for PrimeField

// Zero returns the additive identity element (0)
func (f *PrimeField) Zero() PrimeElement {
	return f.element(0)
}

// One returns the multiplicative identity element (1)
func (f *PrimeField) One() PrimeElement {
	return f.element(1)
}

// RootOfUnity returns the primitive 4th root of unity
func (f *PrimeField) RootOfUnity() PrimeElement {
	return f.element(f.omega)
}

// FromInt64 returns the residue class of v
func (f *PrimeField) FromInt64(v int64) PrimeElement {
	return f.element(f.reduce(v))
}

// FromComponents creates an element from a canonical residue. Prime field
// elements have no imaginary part.
func (f *PrimeField) FromComponents(re, im int64) (PrimeElement, error) {
	if im != 0 {
		return PrimeElement{}, errors.Errorf("prime field element cannot have imaginary part %d", im)
	}
	if re < 0 || uint64(re) >= f.p {
		return PrimeElement{}, errors.Errorf("residue %d out of range [0, %d)", re, f.p)
	}
	return f.element(uint64(re)), nil
}

// Parse reads a decimal integer and reduces it mod p
func (f *PrimeField) Parse(s string) (PrimeElement, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return PrimeElement{}, errors.Wrapf(err, "invalid residue %q", s)
	}
	return f.FromInt64(v), nil
}

// Name returns the domain name
func (f *PrimeField) Name() string {
	return PrimeDomain
}

// PrimeElement methods implementing Element interface

func (e PrimeElement) check(b PrimeElement) {
	if e.field != b.field {
		panic("incompatible field elements")
	}
}

// Add returns e + b in the field
func (e PrimeElement) Add(b PrimeElement) PrimeElement {
	e.check(b)
	return e.field.element(e.value + b.value)
}

// Sub returns e - b in the field
func (e PrimeElement) Sub(b PrimeElement) PrimeElement {
	e.check(b)
	return e.field.element(e.value + e.field.p - b.value)
}

// Mul returns e * b in the field
func (e PrimeElement) Mul(b PrimeElement) PrimeElement {
	e.check(b)
	return e.field.element(e.value * b.value)
}

// Inv returns the multiplicative inverse of e
func (e PrimeElement) Inv() (PrimeElement, error) {
	if e.IsZero() {
		return PrimeElement{}, errors.Wrapf(ErrNotInvertible, "inverse of %d mod %d", e.value, e.field.p)
	}
	return e.field.element(e.field.inv[e.value]), nil
}

// Div returns e * b^-1 in the field
func (e PrimeElement) Div(b PrimeElement) (PrimeElement, error) {
	e.check(b)
	inv, err := b.Inv()
	if err != nil {
		return PrimeElement{}, divisionError(e, b, ErrNotInvertible)
	}
	q := e.Mul(inv)
	if !q.Mul(b).Equal(e) {
		return PrimeElement{}, divisionError(e, b, ErrInexactDivision)
	}
	return q, nil
}

// IsZero returns true if e equals zero
func (e PrimeElement) IsZero() bool {
	return e.value == 0
}

// Equal returns true if e equals b
func (e PrimeElement) Equal(b PrimeElement) bool {
	return e.field == b.field && e.value == b.value
}

// Components returns the canonical residue and a zero imaginary part
func (e PrimeElement) Components() (int64, int64) {
	return int64(e.value), 0
}

// Uint64 returns the canonical residue
func (e PrimeElement) Uint64() uint64 {
	return e.value
}

// String returns the string representation of e
func (e PrimeElement) String() string {
	return strconv.FormatUint(e.value, 10)
}
