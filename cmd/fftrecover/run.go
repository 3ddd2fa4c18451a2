package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethp2p/fft-recovery/ec/encode"
	"github.com/ethp2p/fft-recovery/ec/encode/rs"
	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/ethp2p/fft-recovery/scenario"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// params are the parsed values of a scenario
type params[E any] struct {
	data   [rs.DataCount]E
	erased []int
	scale  E
}

func parseParams[E field.Element[E]](f field.Field[E], sc *scenario.Scenario) (params[E], error) {
	var p params[E]
	for j, s := range sc.Data {
		v, err := f.Parse(s)
		if err != nil {
			return p, errors.Wrapf(err, "data value %d", j)
		}
		p.data[j] = v
	}
	scale, err := f.Parse(sc.Scale)
	if err != nil {
		return p, errors.Wrap(err, "scale factor")
	}
	if err := rs.ValidateScale(f, scale); err != nil {
		return p, err
	}
	p.scale = scale
	p.erased = sc.Erased
	return p, nil
}

func parseData[E field.Element[E]](f field.Field[E], values []string) ([rs.DataCount]E, error) {
	var data [rs.DataCount]E
	if len(values) != rs.DataCount {
		return data, errors.Errorf("expected %d data values, got %d", rs.DataCount, len(values))
	}
	for j, s := range values {
		v, err := f.Parse(s)
		if err != nil {
			return data, errors.Wrapf(err, "data value %d", j)
		}
		data[j] = v
	}
	return data, nil
}

// runDemo recovers the scenario data and prints every stage followed by the
// linear cross-check
func runDemo[E field.Element[E]](w io.Writer, f field.Field[E], p params[E]) (*rs.Result[E], error) {
	r, err := rs.NewRecoverer(f, rs.WithScaleFactor(p.scale))
	if err != nil {
		return nil, err
	}
	res, err := r.RecoverData(p.data, p.erased)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Domain %s, erased %v, scale %s\n", f.Name(), p.erased, p.scale)
	if err := encode.WriteStages(w, res.Trace); err != nil {
		return nil, err
	}

	linear, err := r.ReconstructLinear(r.Encode(p.data), p.erased)
	if err != nil {
		return nil, errors.Wrap(err, "linear reconstruction")
	}
	fmt.Fprintf(w, "%18s: [%s, %s]\n", "Linear check", linear[0], linear[1])
	return res, nil
}

// runPatterns recovers the scenario data under every erasure pattern
func runPatterns[E field.Element[E]](w io.Writer, f field.Field[E], p params[E]) error {
	r, err := rs.NewRecoverer(f, rs.WithScaleFactor(p.scale))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Domain %s, scale %s\n", f.Name(), p.scale)
	for _, erased := range scenario.ErasurePatterns() {
		res, err := r.RecoverData(p.data, erased)
		if err != nil {
			return errors.Wrapf(err, "erased %v", erased)
		}
		fmt.Fprintf(w, "%18s: %s\n", fmt.Sprintf("erased %v", erased), fft.Format([fft.Size]E(res.Poly)))
	}
	return nil
}

func writeTrace[E field.Element[E]](f field.Field[E], path string, stages []encode.Stage[E]) error {
	if path == "" {
		return nil
	}
	data, err := encode.MarshalTrace(f, stages)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write trace file")
	}
	log.Infow("wrote trace", "file", path, "stages", len(stages))
	return nil
}

func demoDomain[E field.Element[E]](c *cli.Context, f field.Field[E], sc *scenario.Scenario) (*rs.Result[E], error) {
	p, err := parseParams(f, sc)
	if err != nil {
		return nil, err
	}
	w := c.App.Writer
	if c.Bool("all-patterns") {
		return nil, runPatterns(w, f, p)
	}
	res, err := runDemo(w, f, p)
	if err != nil {
		return nil, err
	}
	return res, writeTrace(f, c.String("trace-out"), res.Trace)
}

func demoAction(c *cli.Context) error {
	sc, err := loadScenario(c)
	if err != nil {
		return err
	}

	switch sc.Domain {
	case field.GaussianDomain:
		_, err = demoDomain[field.Gaussian](c, field.NewGaussianField(), sc)
		return err
	case field.PrimeDomain:
		_, err = demoDomain[field.PrimeElement](c, field.NewPrimeField17(), sc)
		return err
	}

	// Run both domains and check that the complex run reduces to the
	// prime field run
	if c.String("trace-out") != "" {
		return errors.New("--trace-out needs a single domain")
	}
	gf := field.NewGaussianField()
	pf := field.NewPrimeField17()
	cp, err := parseParams[field.Gaussian](gf, sc)
	if err != nil {
		return err
	}
	pp := params[field.PrimeElement]{
		erased: cp.erased,
		scale:  pf.Reduce(cp.scale),
	}
	for j, v := range cp.data {
		pp.data[j] = pf.Reduce(v)
	}
	if err := rs.ValidateScale[field.PrimeElement](pf, pp.scale); err != nil {
		return errors.Wrapf(err, "scale factor %s mod %d", cp.scale, pf.Modulus())
	}

	w := c.App.Writer
	if c.Bool("all-patterns") {
		if err := runPatterns[field.Gaussian](w, gf, cp); err != nil {
			return err
		}
		return runPatterns[field.PrimeElement](w, pf, pp)
	}

	cres, err := runDemo[field.Gaussian](w, gf, cp)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	pres, err := runDemo[field.PrimeElement](w, pf, pp)
	if err != nil {
		return err
	}
	if err := rs.CompareReduced(pf, cres.Trace, pres.Trace); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nEvery %s stage reduces mod %d to the %s stage\n", gf.Name(), pf.Modulus(), pf.Name())
	return nil
}

func encodeDomain[E field.Element[E]](c *cli.Context, f field.Field[E]) error {
	data, err := parseData(f, c.StringSlice("data"))
	if err != nil {
		return err
	}
	r, err := rs.NewRecoverer(f)
	if err != nil {
		return err
	}
	samples := encode.Split(r.Encode(data))
	out, err := encode.MarshalSamples(f, samples)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.String("out"), out, 0644); err != nil {
		return errors.Wrap(err, "failed to write sample file")
	}
	for _, s := range samples {
		fmt.Fprintf(c.App.Writer, "sample %d: %s\n", s.Index, s.Value)
	}
	return nil
}

func encodeAction(c *cli.Context) error {
	switch d := c.String("domain"); d {
	case field.GaussianDomain:
		return encodeDomain[field.Gaussian](c, field.NewGaussianField())
	case field.PrimeDomain:
		return encodeDomain[field.PrimeElement](c, field.NewPrimeField17())
	default:
		return errors.Errorf("unknown domain %q", d)
	}
}

func recoverDomain[E field.Element[E]](c *cli.Context, f field.Field[E], data []byte) error {
	samples, err := encode.UnmarshalSamples(f, data)
	if err != nil {
		return err
	}

	// Dropped samples are removed before assembling, so they count as missing
	drop := make(map[int]bool)
	for _, idx := range c.IntSlice("drop") {
		drop[idx] = true
	}
	kept := samples[:0]
	for _, s := range samples {
		if !drop[s.Index] {
			kept = append(kept, s)
		}
	}
	received, erased, err := encode.Assemble(f, kept)
	if err != nil {
		return err
	}

	scale, err := f.Parse(c.String("scale"))
	if err != nil {
		return errors.Wrap(err, "scale factor")
	}
	if err := rs.ValidateScale(f, scale); err != nil {
		return err
	}
	r, err := rs.NewRecoverer(f, rs.WithScaleFactor(scale))
	if err != nil {
		return err
	}
	res, err := r.Recover(received, erased)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if err := encode.WriteStages(w, res.Trace); err != nil {
		return err
	}
	fmt.Fprintf(w, "%18s: [%s, %s]\n", "Data", res.Data[0], res.Data[1])
	return writeTrace(f, c.String("trace-out"), res.Trace)
}

func recoverAction(c *cli.Context) error {
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return errors.Wrap(err, "failed to read sample file")
	}
	domain, err := encode.SampleSetDomain(data)
	if err != nil {
		return err
	}
	switch domain {
	case field.GaussianDomain:
		return recoverDomain[field.Gaussian](c, field.NewGaussianField(), data)
	case field.PrimeDomain:
		return recoverDomain[field.PrimeElement](c, field.NewPrimeField17(), data)
	default:
		return errors.Errorf("unknown domain %q in sample file", domain)
	}
}

func inspectDomain[E field.Element[E]](w io.Writer, f field.Field[E], kind string, data []byte) error {
	switch kind {
	case "samples":
		samples, err := encode.UnmarshalSamples(f, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Domain %s, %d samples\n", f.Name(), len(samples))
		for _, s := range samples {
			fmt.Fprintf(w, "sample %d: %s\n", s.Index, s.Value)
		}
		return nil
	case "trace":
		stages, err := encode.UnmarshalTrace(f, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Domain %s, %d stages\n", f.Name(), len(stages))
		return encode.WriteStages(w, stages)
	default:
		return errors.Errorf("unknown kind %q", kind)
	}
}

func inspectAction(c *cli.Context) error {
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return errors.Wrap(err, "failed to read file")
	}
	kind := c.String("kind")
	var domain string
	switch kind {
	case "samples":
		domain, err = encode.SampleSetDomain(data)
	case "trace":
		domain, err = encode.TraceDomain(data)
	default:
		return errors.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}

	switch domain {
	case field.GaussianDomain:
		return inspectDomain[field.Gaussian](c.App.Writer, field.NewGaussianField(), kind, data)
	case field.PrimeDomain:
		return inspectDomain[field.PrimeElement](c.App.Writer, field.NewPrimeField17(), kind, data)
	default:
		return errors.Errorf("unknown domain %q", domain)
	}
}
