// Package launch holds the launch.toml types a buildpack contributes at the end of a build.
package launch

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/encoding"
)

var processTypePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type Launch struct {
	Labels    []Label   `toml:"labels,omitempty"`
	Processes []Process `toml:"processes,omitempty"`
	Slices    []Slice   `toml:"slices,omitempty"`
}

func (l Launch) IsEmpty() bool {
	return len(l.Labels) == 0 && len(l.Processes) == 0 && len(l.Slices) == 0
}

// Validate checks process types and that at most one process is the default.
func (l Launch) Validate() error {
	seen := map[string]bool{}
	var defaultType string
	for _, p := range l.Processes {
		if !processTypePattern.MatchString(p.Type) {
			return errors.Errorf("process type '%s' contains characters other than letters, digits, '.', '_' and '-'", p.Type)
		}
		if seen[p.Type] {
			return errors.Errorf("process type '%s' is declared more than once", p.Type)
		}
		seen[p.Type] = true
		if len(p.Command) == 0 {
			return errors.Errorf("process type '%s' has no command", p.Type)
		}
		if p.Default {
			if defaultType != "" {
				return errors.Errorf("processes '%s' and '%s' are both marked default", defaultType, p.Type)
			}
			defaultType = p.Type
		}
	}
	for _, label := range l.Labels {
		if label.Key == "" {
			return errors.New("label key is empty")
		}
	}
	return nil
}

// Write validates l and atomically writes it to path.
func Write(path string, l Launch) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := encoding.WriteTOML(path, l); err != nil {
		return fail.Framework(err, "write", "launch.toml")
	}
	return nil
}

type Label struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

type Slice struct {
	Paths []string `toml:"paths"`
}
