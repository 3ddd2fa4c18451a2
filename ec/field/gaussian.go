package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GaussianDomain is the name of the complex-integer domain
const GaussianDomain = "complex"

// GaussianField is the ring of complex integers a + bi with exact arithmetic.
// Division is only defined where the quotient is again a complex integer.
type GaussianField struct{}

// Gaussian is a complex integer re + im*i
type Gaussian struct {
	Re int64
	Im int64
}

// NewGaussianField returns the complex-integer domain
func NewGaussianField() GaussianField {
	return GaussianField{}
}

// Field interface implementation for GaussianField

// Zero returns 0
func (GaussianField) Zero() Gaussian {
	return Gaussian{}
}

// One returns 1
func (GaussianField) One() Gaussian {
	return Gaussian{Re: 1}
}

// RootOfUnity returns i, the primitive 4th root of unity
func (GaussianField) RootOfUnity() Gaussian {
	return Gaussian{Im: 1}
}

// FromInt64 returns v as a complex integer
func (GaussianField) FromInt64(v int64) Gaussian {
	return Gaussian{Re: v}
}

// FromComponents returns re + im*i
func (GaussianField) FromComponents(re, im int64) (Gaussian, error) {
	return Gaussian{Re: re, Im: im}, nil
}

// Name returns the domain name
func (GaussianField) Name() string {
	return GaussianDomain
}

// Parse reads a complex integer such as "5", "-i", "3i", "5+7i" or "5 - 7i"
func (GaussianField) Parse(s string) (Gaussian, error) {
	str := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if str == "" {
		return Gaussian{}, errors.New("empty complex integer")
	}
	if !strings.HasSuffix(str, "i") {
		re, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return Gaussian{}, errors.Wrapf(err, "invalid complex integer %q", s)
		}
		return Gaussian{Re: re}, nil
	}

	body := str[:len(str)-1]
	// The imaginary part starts at the last sign that is not the leading one.
	split := strings.LastIndexAny(body, "+-")
	if split < 0 {
		split = 0
	}

	var re int64
	if split > 0 {
		var err error
		re, err = strconv.ParseInt(body[:split], 10, 64)
		if err != nil {
			return Gaussian{}, errors.Wrapf(err, "invalid real part in %q", s)
		}
	}

	imStr := body[split:]
	var im int64
	switch imStr {
	case "", "+":
		im = 1
	case "-":
		im = -1
	default:
		var err error
		im, err = strconv.ParseInt(imStr, 10, 64)
		if err != nil {
			return Gaussian{}, errors.Wrapf(err, "invalid imaginary part in %q", s)
		}
	}
	return Gaussian{Re: re, Im: im}, nil
}

// Gaussian methods implementing Element interface

// Add returns g + b
func (g Gaussian) Add(b Gaussian) Gaussian {
	return Gaussian{Re: g.Re + b.Re, Im: g.Im + b.Im}
}

// Sub returns g - b
func (g Gaussian) Sub(b Gaussian) Gaussian {
	return Gaussian{Re: g.Re - b.Re, Im: g.Im - b.Im}
}

// Mul returns g * b
func (g Gaussian) Mul(b Gaussian) Gaussian {
	return Gaussian{
		Re: g.Re*b.Re - g.Im*b.Im,
		Im: g.Re*b.Im + g.Im*b.Re,
	}
}

// Conj returns the complex conjugate of g
func (g Gaussian) Conj() Gaussian {
	return Gaussian{Re: g.Re, Im: -g.Im}
}

// Norm returns g * conj(g), the squared modulus
func (g Gaussian) Norm() int64 {
	return g.Re*g.Re + g.Im*g.Im
}

// Div returns g / b computed as g * conj(b) / |b|^2.
// The division must be exact since fractions cannot be represented.
func (g Gaussian) Div(b Gaussian) (Gaussian, error) {
	if b.IsZero() {
		return Gaussian{}, divisionError(g, b, ErrDivisionByZero)
	}
	num := g.Mul(b.Conj())
	den := b.Norm()
	q := Gaussian{Re: num.Re / den, Im: num.Im / den}
	if !q.Mul(b).Equal(g) {
		return Gaussian{}, divisionError(g, b, ErrInexactDivision)
	}
	return q, nil
}

// IsZero returns true if g equals 0
func (g Gaussian) IsZero() bool {
	return g.Re == 0 && g.Im == 0
}

// Equal returns true if g equals b
func (g Gaussian) Equal(b Gaussian) bool {
	return g.Re == b.Re && g.Im == b.Im
}

// Components returns the real and imaginary parts
func (g Gaussian) Components() (int64, int64) {
	return g.Re, g.Im
}

// String renders g as "a", "a + bi" or "a - bi"
func (g Gaussian) String() string {
	switch {
	case g.Im == 0:
		return strconv.FormatInt(g.Re, 10)
	case g.Im == 1:
		return fmt.Sprintf("%d + i", g.Re)
	case g.Im == -1:
		return fmt.Sprintf("%d - i", g.Re)
	case g.Im > 0:
		return fmt.Sprintf("%d + %di", g.Re, g.Im)
	default:
		return fmt.Sprintf("%d - %di", g.Re, -g.Im)
	}
}
