package encode

import (
	"bytes"
	"testing"

	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/ethp2p/fft-recovery/pb"

	proto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gf field.Field[field.Gaussian]     = field.NewGaussianField()
	pf field.Field[field.PrimeElement] = field.NewPrimeField17()
)

func complexSamples(t *testing.T) []Sample[field.Gaussian] {
	t.Helper()
	var eval fft.Evals[field.Gaussian]
	for j, s := range []string{"12", "5 + 7i", "-2", "5 - 7i"} {
		v, err := gf.Parse(s)
		require.NoError(t, err)
		eval[j] = v
	}
	return Split(eval)
}

func TestSplitAssemble(t *testing.T) {
	samples := complexSamples(t)
	require.Len(t, samples, fft.Size)
	for j, s := range samples {
		assert.Equal(t, j, s.Index)
	}

	t.Run("all present", func(t *testing.T) {
		eval, missing, err := Assemble(gf, samples)
		require.NoError(t, err)
		assert.Empty(t, missing)
		assert.Equal(t, "[12, 5 + 7i, -2, 5 - 7i]", fft.Format([fft.Size]field.Gaussian(eval)))
	})

	t.Run("two missing", func(t *testing.T) {
		kept := []Sample[field.Gaussian]{samples[3], samples[0]}
		eval, missing, err := Assemble(gf, kept)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, missing)
		assert.Equal(t, "[12, 0, 0, 5 - 7i]", fft.Format([fft.Size]field.Gaussian(eval)))
	})

	t.Run("duplicate", func(t *testing.T) {
		_, _, err := Assemble(gf, []Sample[field.Gaussian]{samples[1], samples[1]})
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, _, err := Assemble(gf, []Sample[field.Gaussian]{{Index: 4}})
		assert.Error(t, err)
		_, _, err = Assemble(gf, []Sample[field.Gaussian]{{Index: -1}})
		assert.Error(t, err)
	})
}

func TestSamplesCodec(t *testing.T) {
	t.Run("complex", func(t *testing.T) {
		samples := complexSamples(t)
		data, err := MarshalSamples(gf, []Sample[field.Gaussian]{samples[3], samples[0]})
		require.NoError(t, err)

		domain, err := SampleSetDomain(data)
		require.NoError(t, err)
		assert.Equal(t, field.GaussianDomain, domain)

		decoded, err := UnmarshalSamples(gf, data)
		require.NoError(t, err)
		assert.Equal(t, []Sample[field.Gaussian]{samples[0], samples[3]}, decoded)
	})

	t.Run("finite", func(t *testing.T) {
		var eval fft.Evals[field.PrimeElement]
		for j, v := range []int64{12, 16, 15, 11} {
			eval[j] = pf.FromInt64(v)
		}
		data, err := MarshalSamples(pf, Split(eval))
		require.NoError(t, err)

		decoded, err := UnmarshalSamples(pf, data)
		require.NoError(t, err)
		require.Len(t, decoded, fft.Size)
		for j, s := range decoded {
			assert.Equal(t, j, s.Index)
			assert.True(t, s.Value.Equal(eval[j]))
		}
	})

	t.Run("wrong domain", func(t *testing.T) {
		data, err := MarshalSamples(gf, complexSamples(t))
		require.NoError(t, err)
		_, err = UnmarshalSamples(pf, data)
		assert.Error(t, err)
	})

	t.Run("imaginary part in prime field", func(t *testing.T) {
		data, err := proto.Marshal(&pb.SampleSet{
			Domain:  field.PrimeDomain,
			Samples: []*pb.Sample{{Index: 1, Value: &pb.Scalar{Re: 3, Im: 1}}},
		})
		require.NoError(t, err)
		_, err = UnmarshalSamples(pf, data)
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		data, err := proto.Marshal(&pb.SampleSet{
			Domain:  field.GaussianDomain,
			Samples: []*pb.Sample{{Index: 7, Value: &pb.Scalar{Re: 3}}},
		})
		require.NoError(t, err)
		_, err = UnmarshalSamples(gf, data)
		assert.Error(t, err)
	})

	t.Run("duplicate index", func(t *testing.T) {
		data, err := proto.Marshal(&pb.SampleSet{
			Domain:  field.GaussianDomain,
			Samples: []*pb.Sample{
				{Index: 2, Value: &pb.Scalar{Re: 3}},
				{Index: 2, Value: &pb.Scalar{Re: 4}},
			},
		})
		require.NoError(t, err)
		_, err = UnmarshalSamples(gf, data)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := UnmarshalSamples(gf, []byte{0xff, 0xff, 0xff})
		assert.Error(t, err)
		_, err = SampleSetDomain([]byte{0xff, 0xff, 0xff})
		assert.Error(t, err)
	})
}

func TestTraceCodec(t *testing.T) {
	stages := []Stage[field.Gaussian]{
		{Name: "Data encoded", Values: [fft.Size]field.Gaussian{{Re: 12}, {Re: 5, Im: 7}, {Re: -2}, {Re: 5, Im: -7}}},
		{Name: "ZeroPoly", Values: [fft.Size]field.Gaussian{{Im: -1}, {Re: 1, Im: -1}, {Re: 1}, {}}},
	}

	data, err := MarshalTrace(gf, stages)
	require.NoError(t, err)

	domain, err := TraceDomain(data)
	require.NoError(t, err)
	assert.Equal(t, field.GaussianDomain, domain)

	decoded, err := UnmarshalTrace(gf, data)
	require.NoError(t, err)
	assert.Equal(t, stages, decoded)

	_, err = UnmarshalTrace(pf, data)
	assert.Error(t, err)

	short, err := proto.Marshal(&pb.Trace{
		Domain: field.GaussianDomain,
		Stages: []*pb.Stage{{Name: "short", Values: []*pb.Scalar{{Re: 1}}}},
	})
	require.NoError(t, err)
	_, err = UnmarshalTrace(gf, short)
	assert.Error(t, err)
}

func TestWriteStages(t *testing.T) {
	stages := []Stage[field.Gaussian]{
		{Name: "Initial values", Values: [fft.Size]field.Gaussian{{Re: 5}, {Re: 7}, {}, {}}},
		{Name: "EZ eval", Values: [fft.Size]field.Gaussian{{Re: 24, Im: -24}, {}, {}, {Re: -24, Im: 4}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStages(&buf, stages))
	expected := "    Initial values: [5, 7, 0, 0]\n" +
		"           EZ eval: [24 - 24i, 0, 0, -24 + 4i]\n"
	assert.Equal(t, expected, buf.String())
}
