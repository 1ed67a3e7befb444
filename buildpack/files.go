// Data Format Files for the buildpack api spec (https://github.com/buildpacks/spec/blob/main/buildpack.md#data-format).

package buildpack

import (
	"os"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/encoding"
)

// build plan

type BuildPlan struct {
	PlanSections
	Or []PlanSections `toml:"or,omitempty"`
}

func (p BuildPlan) IsEmpty() bool {
	return p.PlanSections.IsEmpty() && len(p.Or) == 0
}

type PlanSections struct {
	Provides []Provide `toml:"provides,omitempty"`
	Requires []Require `toml:"requires,omitempty"`
}

func (p PlanSections) IsEmpty() bool {
	return len(p.Provides) == 0 && len(p.Requires) == 0
}

type Provide struct {
	Name string `toml:"name"`
}

type Require struct {
	Name     string                 `toml:"name"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// Build reports whether the entry is needed during the build, as flagged in metadata.build.
func (r Require) Build() bool {
	return r.flag("build")
}

// Launch reports whether the entry is needed at launch, as flagged in metadata.launch.
func (r Require) Launch() bool {
	return r.flag("launch")
}

func (r Require) WithBuild(build bool) Require {
	return r.withFlag("build", build)
}

func (r Require) WithLaunch(launch bool) Require {
	return r.withFlag("launch", launch)
}

func (r Require) flag(key string) bool {
	v, ok := r.Metadata[key].(bool)
	return ok && v
}

func (r Require) withFlag(key string, value bool) Require {
	metadata := make(map[string]interface{}, len(r.Metadata)+1)
	for k, v := range r.Metadata {
		metadata[k] = v
	}
	metadata[key] = value
	r.Metadata = metadata
	return r
}

// WriteBuildPlan atomically writes the detect output.
func WriteBuildPlan(path string, plan BuildPlan) error {
	if err := encoding.WriteTOML(path, plan); err != nil {
		return fail.Framework(err, "write", "build plan")
	}
	return nil
}

// buildpack plan

type Plan struct {
	Entries []Require `toml:"entries"`
}

// ReadPlan reads the buildpack plan the lifecycle resolved for this buildpack.
func ReadPlan(path string) (Plan, error) {
	var plan Plan
	if _, err := DecodeFile(path, &plan, "buildpack plan"); err != nil {
		if os.IsNotExist(err) {
			return Plan{}, fail.Framework(err, "read", "buildpack plan")
		}
		return Plan{}, err
	}
	return plan, nil
}

// ValidateUnmet checks that every unmet entry names an entry of the plan.
func (p Plan) ValidateUnmet(unmet []Unmet) error {
	names := map[string]bool{}
	for _, entry := range p.Entries {
		names[entry.Name] = true
	}
	for _, u := range unmet {
		if u.Name == "" {
			return errors.New("unmet entry has no name")
		}
		if !names[u.Name] {
			return errors.Errorf("unmet entry '%s' does not match any plan entry", u.Name)
		}
	}
	return nil
}

// build.toml

type BuildTOML struct {
	Unmet []Unmet `toml:"unmet,omitempty"`
}

type Unmet struct {
	Name string `toml:"name"`
}

// store.toml

type Store struct {
	Metadata map[string]interface{} `toml:"metadata"`
}

// ReadStore returns nil when the store file is absent.
func ReadStore(path string) (*Store, error) {
	var store Store
	if _, err := DecodeFile(path, &store, "store"); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if store.Metadata == nil {
		store.Metadata = map[string]interface{}{}
	}
	return &store, nil
}

func WriteStore(path string, store Store) error {
	if _, err := encoding.WriteTOMLIfChanged(path, store); err != nil {
		return fail.Framework(err, "write", "store")
	}
	return nil
}

func WriteBuildTOML(path string, build BuildTOML) error {
	if err := encoding.WriteTOML(path, build); err != nil {
		return fail.Framework(err, "write", "build.toml")
	}
	return nil
}
