package config

import (
	"context"
	"fmt"
)

// Loader is the interface for a format-specific job file loader.
type Loader interface {
	// Load reads every job file of its format found under the given paths
	// and translates them into the format-agnostic model. Files of other
	// formats are ignored.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader runs several loaders over the same paths and merges their
// models in loader order.
type MultiLoader []Loader

// Load implements Loader.
func (m MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, l := range m {
		part, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		model.Jobs = append(model.Jobs, part.Jobs...)
	}
	return model, model.Validate()
}

// Validate checks that job names are unique across the model.
func (m *Model) Validate() error {
	seen := make(map[string]string, len(m.Jobs))
	for _, j := range m.Jobs {
		if prev, ok := seen[j.Name]; ok {
			return fmt.Errorf("duplicate job %q in %s (first defined in %s)", j.Name, j.Source, prev)
		}
		seen[j.Name] = j.Source
	}
	return nil
}
