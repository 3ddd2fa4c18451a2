// Package encode holds the sample model of the erasure code and its wire
// format. A sample is one evaluation of the data polynomial together with its
// index into the roots of unity.
package encode

import (
	"sort"

	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/ethp2p/fft-recovery/pb"

	proto "github.com/gogo/protobuf/proto"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

var log = logging.Logger("encode")

// Sample is a single encoded evaluation
type Sample[E any] struct {
	Index int // position in [0, fft.Size), i.e. the evaluation point w^Index
	Value E   // the encoded value
}

// Stage is a named 4-element vector from a recovery run
type Stage[E any] struct {
	Name   string
	Values [fft.Size]E
}

// Split cuts an evaluation vector into its samples
func Split[E any](eval fft.Evals[E]) []Sample[E] {
	samples := make([]Sample[E], fft.Size)
	for j, v := range eval {
		samples[j] = Sample[E]{Index: j, Value: v}
	}
	return samples
}

// Assemble places samples back into an evaluation vector. Positions without a
// sample are set to zero and reported as missing, in increasing order.
func Assemble[E field.Element[E]](f field.Field[E], samples []Sample[E]) (fft.Evals[E], []int, error) {
	var eval fft.Evals[E]
	var seen [fft.Size]bool
	for _, s := range samples {
		if s.Index < 0 || s.Index >= fft.Size {
			return fft.Evals[E]{}, nil, errors.Errorf("sample index %d out of range [0, %d)", s.Index, fft.Size)
		}
		if seen[s.Index] {
			return fft.Evals[E]{}, nil, errors.Errorf("duplicate sample at index %d", s.Index)
		}
		seen[s.Index] = true
		eval[s.Index] = s.Value
	}

	var missing []int
	for j := range eval {
		if !seen[j] {
			eval[j] = f.Zero()
			missing = append(missing, j)
		}
	}
	return eval, missing, nil
}

func toScalar[E field.Element[E]](v E) *pb.Scalar {
	re, im := v.Components()
	return &pb.Scalar{Re: re, Im: im}
}

func fromScalar[E field.Element[E]](f field.Field[E], s *pb.Scalar) (E, error) {
	if s == nil {
		return f.Zero(), nil
	}
	return f.FromComponents(s.Re, s.Im)
}

// MarshalSamples serializes samples to a pb.SampleSet
func MarshalSamples[E field.Element[E]](f field.Field[E], samples []Sample[E]) ([]byte, error) {
	set := &pb.SampleSet{Domain: f.Name()}
	for _, s := range samples {
		set.Samples = append(set.Samples, &pb.Sample{
			Index: uint32(s.Index),
			Value: toScalar(s.Value),
		})
	}
	data, err := proto.Marshal(set)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal samples")
	}
	return data, nil
}

// UnmarshalSamples decodes a pb.SampleSet written for domain f. Samples are
// returned sorted by index.
func UnmarshalSamples[E field.Element[E]](f field.Field[E], data []byte) ([]Sample[E], error) {
	set := &pb.SampleSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal samples")
	}
	if set.Domain != f.Name() {
		return nil, errors.Errorf("samples are for domain %q, expected %q", set.Domain, f.Name())
	}

	samples := make([]Sample[E], 0, len(set.Samples))
	var seen [fft.Size]bool
	for _, s := range set.Samples {
		if s.Index >= fft.Size {
			return nil, errors.Errorf("sample index %d out of range [0, %d)", s.Index, fft.Size)
		}
		if seen[s.Index] {
			return nil, errors.Errorf("duplicate sample at index %d", s.Index)
		}
		seen[s.Index] = true
		v, err := fromScalar(f, s.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", s.Index)
		}
		samples = append(samples, Sample[E]{Index: int(s.Index), Value: v})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Index < samples[j].Index })
	log.Debugw("decoded samples", "domain", set.Domain, "count", len(samples))
	return samples, nil
}

// SampleSetDomain returns the domain named in an encoded pb.SampleSet
func SampleSetDomain(data []byte) (string, error) {
	set := &pb.SampleSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal samples")
	}
	return set.Domain, nil
}

// MarshalTrace serializes the stages of a recovery run to a pb.Trace
func MarshalTrace[E field.Element[E]](f field.Field[E], stages []Stage[E]) ([]byte, error) {
	trace := &pb.Trace{Domain: f.Name()}
	for _, st := range stages {
		values := make([]*pb.Scalar, fft.Size)
		for j, v := range st.Values {
			values[j] = toScalar(v)
		}
		trace.Stages = append(trace.Stages, &pb.Stage{Name: st.Name, Values: values})
	}
	data, err := proto.Marshal(trace)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal trace")
	}
	return data, nil
}

// UnmarshalTrace decodes a pb.Trace written for domain f
func UnmarshalTrace[E field.Element[E]](f field.Field[E], data []byte) ([]Stage[E], error) {
	trace := &pb.Trace{}
	if err := proto.Unmarshal(data, trace); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal trace")
	}
	if trace.Domain != f.Name() {
		return nil, errors.Errorf("trace is for domain %q, expected %q", trace.Domain, f.Name())
	}

	stages := make([]Stage[E], 0, len(trace.Stages))
	for _, st := range trace.Stages {
		if len(st.Values) != fft.Size {
			return nil, errors.Errorf("stage %q has %d values, expected %d", st.Name, len(st.Values), fft.Size)
		}
		stage := Stage[E]{Name: st.Name}
		for j, s := range st.Values {
			v, err := fromScalar(f, s)
			if err != nil {
				return nil, errors.Wrapf(err, "stage %q value %d", st.Name, j)
			}
			stage.Values[j] = v
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

// TraceDomain returns the domain named in an encoded pb.Trace
func TraceDomain(data []byte) (string, error) {
	trace := &pb.Trace{}
	if err := proto.Unmarshal(data, trace); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal trace")
	}
	return trace.Domain, nil
}
