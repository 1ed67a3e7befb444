package encoding

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/buildpacks/libcnb/internal/fsutil"
)

func MarshalTOML(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTOML encodes data and atomically replaces path with the result.
func WriteTOML(path string, data interface{}) error {
	b, err := MarshalTOML(data)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(path, b)
}

// WriteTOMLIfChanged is WriteTOML that skips the write when path already holds the encoded bytes.
func WriteTOMLIfChanged(path string, data interface{}) (bool, error) {
	b, err := MarshalTOML(data)
	if err != nil {
		return false, err
	}
	return fsutil.WriteFileIfChanged(path, b)
}
