// Package scenario describes a recovery run: the domain, the data pair, the
// erased sample positions and the scale factor. Scenarios are stored as YAML.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethp2p/fft-recovery/ec/field"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

var log = logging.Logger("scenario")

const (
	// DataCount is the number of data values in a scenario
	DataCount = 2
	// SampleCount is the number of encoded samples
	SampleCount = 4
	// ErasureCount is the number of samples lost
	ErasureCount = SampleCount - DataCount
)

// Scenario is the input of a recovery run. Scalars are kept in their string
// form and parsed by the domain.
type Scenario struct {
	Domain string   `yaml:"domain"`
	Data   []string `yaml:"data"`
	Erased []int    `yaml:"erased"`
	Scale  string   `yaml:"scale"`
}

// Default returns the reference run: data [5, 7] over the complex integers,
// samples 1 and 2 lost, scale factor 2
func Default() *Scenario {
	return &Scenario{
		Domain: field.GaussianDomain,
		Data:   []string{"5", "7"},
		Erased: []int{1, 2},
		Scale:  "2",
	}
}

// LoadFromFile loads a scenario from a YAML file. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}

	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errors.Wrapf(err, "error parsing YAML in scenario file at %s", filename)
	}
	log.Debugw("loaded scenario", "file", filename, "scenario", sc.Description())
	return sc, nil
}

// SaveToFile saves the scenario to a YAML file
func (s *Scenario) SaveToFile(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to marshal scenario")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write scenario file")
	}

	return nil
}

// Validate checks the shape of the scenario. Values are checked when parsed
// by the domain.
func (s *Scenario) Validate() error {
	switch s.Domain {
	case field.GaussianDomain, field.PrimeDomain, "both":
	default:
		return errors.Errorf("unknown domain %q", s.Domain)
	}
	if len(s.Data) != DataCount {
		return errors.Errorf("expected %d data values, got %d", DataCount, len(s.Data))
	}
	if len(s.Erased) != ErasureCount {
		return errors.Errorf("expected %d erased indices, got %d", ErasureCount, len(s.Erased))
	}
	seen := make(map[int]bool)
	for _, idx := range s.Erased {
		if idx < 0 || idx >= SampleCount {
			return errors.Errorf("erased index %d out of range [0, %d)", idx, SampleCount)
		}
		if seen[idx] {
			return errors.Errorf("erased index %d listed twice", idx)
		}
		seen[idx] = true
	}
	if strings.TrimSpace(s.Scale) == "" {
		return errors.New("scale factor is required")
	}
	return nil
}

// Description returns a human-readable description of the scenario
func (s *Scenario) Description() string {
	return fmt.Sprintf("domain=%s data=[%s] erased=%v scale=%s",
		s.Domain, strings.Join(s.Data, ", "), s.Erased, s.Scale)
}
