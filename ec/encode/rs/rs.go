package rs

import (
	"fmt"

	"github.com/ethp2p/fft-recovery/ec/encode"
	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

var log = logging.Logger("rs")

const (
	// DataCount is the number of data values encoded into fft.Size samples
	DataCount = 2
	// ErasureCount is the number of erased samples recovery runs with
	ErasureCount = fft.Size - DataCount
)

// Stage names, in pipeline order
const (
	StageInitial         = "Initial values"
	StageEncoded         = "Data encoded"
	StageMissing         = "Data with missing"
	StageZeroPoly        = "ZeroPoly"
	StageZeroEval        = "ZeroPoly eval"
	StageEZEval          = "EZ eval"
	StageDZPoly          = "EZ = DZ poly"
	StageDZScaled        = "DZ poly scaled"
	StageZeroScaled      = "ZeroPoly scaled"
	StageDZEvalScaled    = "DZ eval scaled"
	StageZeroEvalScaled  = "Zero eval scaled"
	StageQuotientEval    = "Quotient eval"
	StageScaledRecovered = "Scaled recovered"
	StageRecovered       = "Recovered values"
)

var (
	ErrErasureCount     = errors.Errorf("exactly %d erasures are supported", ErasureCount)
	ErrErasureIndex     = errors.Errorf("erasure index out of range [0, %d)", fft.Size)
	ErrDuplicateErasure = errors.New("duplicate erasure index")
	ErrZeroScale        = errors.New("scale factor must be nonzero")
	ErrRootOfUnityScale = errors.New("scale factor must not be a root of unity")
	ErrInconsistent     = errors.New("recovered polynomial is inconsistent")
)

// StageError reports the pipeline stage at which recovery failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("recovery failed at %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result holds the recovered data and the trace of every stage
type Result[E any] struct {
	Data  [DataCount]E
	Poly  fft.Poly[E]
	Trace []encode.Stage[E]
}

// Stage returns the values recorded for the named stage
func (r *Result[E]) Stage(name string) ([fft.Size]E, bool) {
	for _, st := range r.Trace {
		if st.Name == name {
			return st.Values, true
		}
	}
	return [fft.Size]E{}, false
}

// Option configures a Recoverer during construction
type Option[E field.Element[E]] func(*Recoverer[E]) error

// WithScaleFactor sets the factor k used to shift evaluation away from the
// roots of the zero polynomial. The default is 2.
func WithScaleFactor[E field.Element[E]](k E) Option[E] {
	return func(r *Recoverer[E]) error {
		if k.IsZero() {
			return ErrZeroScale
		}
		r.scale = k
		return nil
	}
}

// Recoverer reconstructs erased samples of a 2-value erasure code using the
// size-4 Fourier transform over a field
type Recoverer[E field.Element[E]] struct {
	field field.Field[E]
	scale E
}

// NewRecoverer creates a new Recoverer over f
func NewRecoverer[E field.Element[E]](f field.Field[E], opts ...Option[E]) (*Recoverer[E], error) {
	if f == nil {
		return nil, errors.New("field is required")
	}
	r := &Recoverer[E]{
		field: f,
		scale: f.FromInt64(2),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ScaleFactor returns the configured scale factor
func (r *Recoverer[E]) ScaleFactor() E {
	return r.scale
}

// ValidateScale checks that k is nonzero and not a 4th root of unity, so
// that the scaled zero polynomial has no zero among its evaluations.
func ValidateScale[E field.Element[E]](f field.Field[E], k E) error {
	if k.IsZero() {
		return ErrZeroScale
	}
	for _, root := range fft.Roots(f) {
		if k.Equal(root) {
			return errors.Wrapf(ErrRootOfUnityScale, "scale factor %s", k)
		}
	}
	return nil
}

// ValidateErasures checks that exactly ErasureCount distinct indices in
// range are given
func ValidateErasures(erased []int) error {
	if len(erased) != ErasureCount {
		return errors.Wrapf(ErrErasureCount, "got %d", len(erased))
	}
	var seen [fft.Size]bool
	for _, idx := range erased {
		if idx < 0 || idx >= fft.Size {
			return errors.Wrapf(ErrErasureIndex, "index %d", idx)
		}
		if seen[idx] {
			return errors.Wrapf(ErrDuplicateErasure, "index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

// Encode treats data as the coefficients of D(x) = d0 + d1 x and evaluates
// it at the roots of unity
func (r *Recoverer[E]) Encode(data [DataCount]E) fft.Evals[E] {
	return fft.EvalFromPoly(r.field, r.dataPoly(data))
}

func (r *Recoverer[E]) dataPoly(data [DataCount]E) fft.Poly[E] {
	var p fft.Poly[E]
	for j := range p {
		p[j] = r.field.Zero()
	}
	copy(p[:], data[:])
	return p
}

// RecoverData encodes data, erases the given positions and recovers the data
// again. The result is checked against the input.
func (r *Recoverer[E]) RecoverData(data [DataCount]E, erased []int) (*Result[E], error) {
	initial := r.dataPoly(data)
	encoded := r.Encode(data)
	log.Debugw("encoded", "data", fft.Format([fft.Size]E(initial)), "samples", fft.Format([fft.Size]E(encoded)))

	res, err := r.recover(encoded, erased, []encode.Stage[E]{
		{Name: StageInitial, Values: initial},
		{Name: StageEncoded, Values: encoded},
	})
	if err != nil {
		return nil, err
	}
	for j := range data {
		if !res.Data[j].Equal(data[j]) {
			return nil, &StageError{
				Stage: StageRecovered,
				Err:   errors.Wrapf(ErrInconsistent, "value %d: got %s, want %s", j, res.Data[j], data[j]),
			}
		}
	}
	return res, nil
}

// Recover reconstructs the data from received samples. Values at the erased
// positions are ignored.
func (r *Recoverer[E]) Recover(received fft.Evals[E], erased []int) (*Result[E], error) {
	return r.recover(received, erased, nil)
}

func (r *Recoverer[E]) recover(received fft.Evals[E], erased []int, trace []encode.Stage[E]) (*Result[E], error) {
	if err := ValidateErasures(erased); err != nil {
		return nil, err
	}
	if r.scale.IsZero() {
		return nil, ErrZeroScale
	}

	f := r.field
	res := &Result[E]{Trace: trace}
	record := func(name string, values [fft.Size]E) {
		res.Trace = append(res.Trace, encode.Stage[E]{Name: name, Values: values})
		log.Debugw("stage", "name", name, "values", fft.Format(values))
	}

	// Lose the erased samples
	missing := received
	for _, idx := range erased {
		missing[idx] = f.Zero()
	}
	record(StageMissing, missing)

	// Z(x) vanishes at the erased evaluation points
	zeroPoly, err := fft.ZeroPoly(f, erased)
	if err != nil {
		return nil, &StageError{Stage: StageZeroPoly, Err: err}
	}
	record(StageZeroPoly, zeroPoly)

	zeroEval := fft.EvalFromPoly(f, zeroPoly)
	record(StageZeroEval, zeroEval)

	// (E * Z)(w^j) agrees with (D * Z)(w^j) everywhere: both are zero at
	// the erased positions
	ezEval := fft.MulEvals(missing, zeroEval)
	record(StageEZEval, ezEval)

	dzPoly, err := fft.PolyFromEval(f, ezEval)
	if err != nil {
		return nil, &StageError{Stage: StageDZPoly, Err: err}
	}
	record(StageDZPoly, dzPoly)

	// Dividing at the roots of unity would be 0/0 at the erased positions,
	// so shift both polynomials by the scale factor first
	fft.Scale(&dzPoly, r.scale)
	fft.Scale(&zeroPoly, r.scale)
	record(StageDZScaled, dzPoly)
	record(StageZeroScaled, zeroPoly)

	dzScaledEval := fft.EvalFromPoly(f, dzPoly)
	zeroScaledEval := fft.EvalFromPoly(f, zeroPoly)
	record(StageDZEvalScaled, dzScaledEval)
	record(StageZeroEvalScaled, zeroScaledEval)

	quotientEval, err := fft.DivEvals(dzScaledEval, zeroScaledEval)
	if err != nil {
		log.Warnw("pointwise division failed", "scale", r.scale.String(), "err", err)
		return nil, &StageError{Stage: StageQuotientEval, Err: err}
	}
	record(StageQuotientEval, quotientEval)

	recovered, err := fft.PolyFromEval(f, quotientEval)
	if err != nil {
		return nil, &StageError{Stage: StageScaledRecovered, Err: err}
	}
	record(StageScaledRecovered, recovered)

	if err := fft.Unscale(&recovered, r.scale); err != nil {
		return nil, &StageError{Stage: StageRecovered, Err: err}
	}
	record(StageRecovered, recovered)

	// D has degree below DataCount
	for j := DataCount; j < fft.Size; j++ {
		if !recovered[j].IsZero() {
			return nil, &StageError{
				Stage: StageRecovered,
				Err:   errors.Wrapf(ErrInconsistent, "coefficient %d is %s", j, recovered[j]),
			}
		}
	}

	res.Poly = recovered
	copy(res.Data[:], recovered[:DataCount])
	return res, nil
}
