package buildpack

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/buildpacks/libcnb/exit/fail"
)

// MalformedError reports a CNB file that exists but cannot be decoded.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return "malformed '" + e.Path + "': " + e.Err.Error()
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// DecodeFile decodes the TOML file at path into v, returning its metadata.
// Decode failures become framework errors carrying a *MalformedError; a missing
// file is returned unchanged so callers can check os.IsNotExist.
func DecodeFile(path string, v interface{}, what string) (toml.MetaData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return toml.MetaData{}, err
		}
		return toml.MetaData{}, fail.Framework(err, "read", what)
	}
	md, err := toml.Decode(string(b), v)
	if err != nil {
		return md, fail.Framework(&MalformedError{Path: path, Err: err}, "parse", what)
	}
	return md, nil
}
