package layer

import (
	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/env"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/log"
)

// Strategy is what to do with a layer restored from a previous build.
type Strategy int

const (
	// Keep reuses the layer as it is.
	Keep Strategy = iota
	// Update hands the existing layer to Contributor.Update.
	Update
	// Recreate removes the layer and hands a fresh one to Contributor.Create.
	Recreate
)

func (s Strategy) String() string {
	switch s {
	case Keep:
		return "keep"
	case Update:
		return "update"
	default:
		return "recreate"
	}
}

// Result is what a contributor produced. Metadata is a map or a struct with toml tags.
// SBOMs and ExecD replace whatever the layer carried before, so an empty list clears them.
type Result struct {
	Metadata interface{}
	Env      *env.LayerEnv
	SBOMs    []buildpack.SBOM

	// ExecD maps a program name, or <process>/<name>, to an executable that is copied into the exec.d directory.
	ExecD map[string]string
}

//go:generate mockgen -package testmock -destination ../testmock/layer_contributor.go github.com/buildpacks/libcnb/layer Contributor

// Contributor creates a layer and decides whether a restored copy can be reused.
type Contributor interface {
	Name() string
	Types() Types
	// Strategy compares the restored metadata against what this build needs, typically with ContentMetadata.Matches.
	Strategy(existing ContentMetadata) (Strategy, error)
	Create(layer Layer) (Result, error)
	Update(layer Layer) (Result, error)
}

// Contribute runs the reuse algorithm for c. A restored layer is offered to c.Strategy only
// when c marks it cache and it has metadata; otherwise it is recreated. Metadata is written last.
// Errors returned by the contributor are passed through unchanged.
func (s *Store) Contribute(c Contributor) (Layer, error) {
	name, types := c.Name(), c.Types()
	if err := ValidateName(name); err != nil {
		return Layer{}, fail.Framework(err, "validate", "layer name")
	}

	existing, err := s.ReadMetadata(name)
	if err != nil {
		return Layer{}, err
	}

	if existing != nil && types.Cache {
		strategy, err := c.Strategy(*existing)
		if err != nil {
			return Layer{}, err
		}
		s.Logger.Debugf("Restored layer %s, strategy: %s", log.Symbol(name), strategy)

		switch strategy {
		case Keep:
			s.Logger.Infof("Reusing layer %s", log.Symbol(name))
			if err := s.Migrate(name, types); err != nil {
				return Layer{}, err
			}
			return Layer{Name: name, Path: s.Path(name), Types: types, Metadata: existing.Metadata}, nil
		case Update:
			s.Logger.Infof("Updating layer %s", log.Symbol(name))
			layer, err := s.GetOrCreate(name, types)
			if err != nil {
				return Layer{}, err
			}
			result, err := c.Update(layer)
			if err != nil {
				return Layer{}, err
			}
			return s.finish(layer, result)
		}
	}

	s.Logger.Infof("Creating layer %s", log.Symbol(name))
	if err := s.Remove(name); err != nil {
		return Layer{}, err
	}
	layer, err := s.GetOrCreate(name, types)
	if err != nil {
		return Layer{}, err
	}
	result, err := c.Create(layer)
	if err != nil {
		return Layer{}, err
	}
	return s.finish(layer, result)
}

func (s *Store) finish(layer Layer, result Result) (Layer, error) {
	metadata, err := ToMetadata(result.Metadata)
	if err != nil {
		return Layer{}, fail.Framework(err, "encode", "layer metadata", layer.Name)
	}
	if result.Env != nil {
		if err := s.WriteEnv(layer.Name, result.Env); err != nil {
			return Layer{}, err
		}
	}
	if err := s.WriteExecD(layer.Name, result.ExecD); err != nil {
		return Layer{}, err
	}
	if err := s.removeSBOMs(layer.Name); err != nil {
		return Layer{}, err
	}
	for _, sbom := range result.SBOMs {
		if err := s.WriteSBOM(layer.Name, sbom); err != nil {
			return Layer{}, err
		}
	}
	if err := s.WriteMetadata(layer.Name, ContentMetadata{Types: layer.Types, Metadata: metadata}); err != nil {
		return Layer{}, err
	}
	layer.Metadata = metadata
	return layer, nil
}
