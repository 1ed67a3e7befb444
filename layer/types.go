// Package layer manages the layers of a buildpack and decides their reuse together with the buildpack.
package layer

import (
	"bytes"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

// Types are the facets of a layer.
type Types struct {
	// Build makes the layer available to the build environment of subsequent buildpacks.
	Build bool `toml:"build"`
	// Cache persists the layer across builds.
	Cache bool `toml:"cache"`
	// Launch includes the layer in the application image.
	Launch bool `toml:"launch"`
}

var (
	BuildOnly      = Types{Build: true}
	LaunchOnly     = Types{Launch: true}
	CacheOnly      = Types{Cache: true}
	BuildAndCache  = Types{Build: true, Cache: true}
	LaunchAndCache = Types{Launch: true, Cache: true}
	All            = Types{Build: true, Cache: true, Launch: true}
	None           = Types{}
)

// ContentMetadata is the <layer>.toml record.
type ContentMetadata struct {
	Types    Types                  `toml:"types"`
	Metadata map[string]interface{} `toml:"metadata,omitempty"`
}

// Matches reports whether the payload equals expected once both are normalized through TOML.
// Expected may be a map or a struct with toml tags.
func (c ContentMetadata) Matches(expected interface{}) bool {
	want, err := ToMetadata(expected)
	if err != nil {
		return false
	}
	have, err := ToMetadata(c.Metadata)
	if err != nil {
		return false
	}
	return cmp.Equal(have, want, cmpopts.EquateEmpty())
}

// Diff describes how the payload differs from expected, for debug logging.
func (c ContentMetadata) Diff(expected interface{}) string {
	want, err := ToMetadata(expected)
	if err != nil {
		return err.Error()
	}
	have, err := ToMetadata(c.Metadata)
	if err != nil {
		return err.Error()
	}
	return cmp.Diff(have, want, cmpopts.EquateEmpty())
}

// DecodeMetadata decodes the payload into v, a pointer to a map or a struct with toml tags.
func (c ContentMetadata) DecodeMetadata(v interface{}) error {
	b, err := encode(c.Metadata)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(b), v); err != nil {
		return errors.Wrap(err, "decoding layer metadata")
	}
	return nil
}

// ToMetadata converts a map or struct into the generic form stored in <layer>.toml.
func ToMetadata(v interface{}) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if v == nil {
		return out, nil
	}
	if m, ok := v.(map[string]interface{}); ok && m == nil {
		return out, nil
	}
	b, err := encode(v)
	if err != nil {
		return nil, err
	}
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, errors.Wrap(err, "decoding layer metadata")
	}
	return out, nil
}

func encode(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding layer metadata")
	}
	return buf.Bytes(), nil
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var reservedNames = map[string]bool{
	".":      true,
	"..":     true,
	"build":  true,
	"launch": true,
	"store":  true,
}

// ValidateName rejects names that would escape the layers directory or collide with buildpack files.
func ValidateName(name string) error {
	if reservedNames[name] {
		return errors.Errorf("layer name '%s' is reserved", name)
	}
	if !namePattern.MatchString(name) {
		return errors.Errorf("layer name '%s' contains characters other than letters, digits, '.', '_' and '-'", name)
	}
	return nil
}
