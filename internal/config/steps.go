package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aretw0/tripwizard/pkg/domain"
	"gopkg.in/yaml.v3"
)

type stepsFile struct {
	Steps []domain.Step `yaml:"steps"`
}

// LoadSteps reads preloader steps from a YAML file. The file may hold either a
// top-level list of steps or a mapping with a "steps" key.
func LoadSteps(path string) ([]domain.Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read steps file: %w", err)
	}
	steps, err := ParseSteps(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// ParseSteps decodes preloader steps from YAML.
func ParseSteps(data []byte) ([]domain.Step, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid steps yaml: %w", err)
	}

	var steps []domain.Step
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		if err := root.Content[0].Decode(&steps); err != nil {
			return nil, fmt.Errorf("invalid steps yaml: %w", err)
		}
	} else {
		var f stepsFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("invalid steps yaml: %w", err)
		}
		steps = f.Steps
	}

	if len(steps) == 0 {
		return nil, domain.ErrNoSteps
	}
	for i, s := range steps {
		if s.Label == "" {
			return nil, fmt.Errorf("step %d has no label", i)
		}
		if !s.Tag.Valid() {
			return nil, fmt.Errorf("step %d has unknown tag %q", i, s.Tag)
		}
	}
	return domain.NormalizeSteps(steps), nil
}
