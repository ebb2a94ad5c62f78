package yields

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrUnknownProcess = errors.New("yields: unknown process")

// XSections maps a generated process name to its total cross section in fb.
type XSections map[string]float64

// LoadXSections reads a YAML mapping of process name to cross section.
func LoadXSections(path string) (XSections, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yields: %w", err)
	}

	xs := make(XSections)
	if err := yaml.Unmarshal(raw, &xs); err != nil {
		return nil, fmt.Errorf("yields: parsing %s: %w", path, err)
	}
	for name, v := range xs {
		if v <= 0 {
			return nil, fmt.Errorf("yields: %s: cross section of %q must be positive", path, name)
		}
	}
	return xs, nil
}

func (xs XSections) Lookup(process string) (float64, error) {
	v, ok := xs[process]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownProcess, process)
	}
	return v, nil
}
