// Buildpack descriptor file (https://github.com/buildpacks/spec/blob/main/buildpack.md#buildpacktoml-toml).

package buildpack

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/api"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/platform"
)

const DescriptorFile = "buildpack.toml"

var (
	idPattern   = regexp.MustCompile(`^[A-Za-z0-9./-]+$`)
	reservedIDs = map[string]bool{"app": true, "config": true, "sbom": true}
)

type Descriptor struct {
	API       string                 `toml:"api"`
	Buildpack Info                   `toml:"buildpack"`
	Stacks    []Stack                `toml:"stacks,omitempty"`
	Targets   []TargetMetadata       `toml:"targets,omitempty"`
	Metadata  map[string]interface{} `toml:"metadata,omitempty"`
	Dir       string                 `toml:"-"`
}

type Info struct {
	ID          string    `toml:"id"`
	Name        string    `toml:"name"`
	Version     string    `toml:"version"`
	Homepage    string    `toml:"homepage,omitempty"`
	ClearEnv    bool      `toml:"clear-env,omitempty"`
	Description string    `toml:"description,omitempty"`
	Keywords    []string  `toml:"keywords,omitempty"`
	Licenses    []License `toml:"licenses,omitempty"`
	SBOMFormats []string  `toml:"sbom-formats,omitempty"`
}

type License struct {
	Type string `toml:"type,omitempty"`
	URI  string `toml:"uri,omitempty"`
}

type Stack struct {
	ID     string   `toml:"id"`
	Mixins []string `toml:"mixins,omitempty"`
}

type TargetMetadata struct {
	OS            string     `toml:"os,omitempty"`
	Arch          string     `toml:"arch,omitempty"`
	ArchVariant   string     `toml:"variant,omitempty"`
	Distributions []OSDistro `toml:"distros,omitempty"`
}

type OSDistro struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// ReadDescriptor reads and validates <dir>/buildpack.toml.
func ReadDescriptor(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, DescriptorFile)
	var descriptor Descriptor
	if _, err := DecodeFile(path, &descriptor, "buildpack descriptor"); err != nil {
		if os.IsNotExist(err) {
			return nil, fail.Framework(err, "read", "buildpack descriptor")
		}
		return nil, err
	}
	descriptor.Dir = dir
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	return &descriptor, nil
}

// Validate checks the Buildpack API first so that no other field is trusted on an unsupported API.
func (d *Descriptor) Validate() error {
	if err := d.validateAPI(); err != nil {
		return fail.Framework(err, "validate", "buildpack API")
	}
	if err := d.validateInfo(); err != nil {
		return fail.Framework(err, "validate", "buildpack descriptor")
	}
	return nil
}

func (d *Descriptor) validateAPI() error {
	if d.API == "" {
		return errors.New("buildpack API is not set")
	}
	version, err := api.NewVersion(d.API)
	if err != nil {
		return err
	}
	if !api.Buildpack.IsSupported(version) {
		return fmt.Errorf("buildpack API version '%s' is incompatible with this framework, supported versions are %s", d.API, api.Buildpack.Supported)
	}
	return nil
}

func (d *Descriptor) validateInfo() error {
	id := d.Buildpack.ID
	switch {
	case id == "":
		return errors.New("buildpack id is empty")
	case reservedIDs[id]:
		return errors.Errorf("buildpack id '%s' is reserved", id)
	case !idPattern.MatchString(id):
		return errors.Errorf("buildpack id '%s' contains characters other than letters, digits, '.', '/' and '-'", id)
	}
	if _, err := semver.StrictNewVersion(d.Buildpack.Version); err != nil {
		return errors.Wrapf(err, "buildpack version '%s' is not a semantic version", d.Buildpack.Version)
	}
	for _, format := range d.Buildpack.SBOMFormats {
		if _, err := SBOMFormatFromMediaType(format); err != nil {
			return err
		}
	}
	return nil
}

// SupportsTarget treats an empty target list as supporting everything. Empty or "*" fields match anything.
func (d *Descriptor) SupportsTarget(target platform.Target) bool {
	if len(d.Targets) == 0 {
		return true
	}
	for _, t := range d.Targets {
		if t.IsSatisfiedBy(target) {
			return true
		}
	}
	return false
}

func (t TargetMetadata) IsSatisfiedBy(target platform.Target) bool {
	if !matches(t.OS, target.OS) || !matches(t.Arch, target.Arch) || !matches(t.ArchVariant, target.ArchVariant) {
		return false
	}
	if len(t.Distributions) == 0 || target.DistroName == "" {
		return true
	}
	for _, distro := range t.Distributions {
		if distro.Name == target.DistroName && matches(distro.Version, target.DistroVersion) {
			return true
		}
	}
	return false
}

func matches(want, got string) bool {
	return want == "" || want == "*" || got == "" || want == got
}

func (d *Descriptor) String() string {
	return d.Buildpack.Name + " " + d.Buildpack.Version
}
