// Package fsutil holds the filesystem primitives used to persist CNB files.
//
// Every file the engine hands to the lifecycle is written through WriteFile so
// that a process killed mid-write leaves either the old or the new content.
package fsutil

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
	"github.com/pkg/errors"
)

const (
	dirPerm  = 0755
	filePerm = 0644
	execPerm = 0755
)

// WriteFile atomically replaces path with data, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "creating parent directory of '%s'", path)
	}
	if err := atomicwriter.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrapf(err, "writing '%s'", path)
	}
	return nil
}

// CopyExecutable atomically copies src to dst and makes dst executable.
func CopyExecutable(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "reading '%s'", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Wrapf(err, "creating parent directory of '%s'", dst)
	}
	if err := atomicwriter.WriteFile(dst, data, execPerm); err != nil {
		return errors.Wrapf(err, "writing '%s'", dst)
	}
	return nil
}

// WriteFileIfChanged is WriteFile but leaves path untouched when it already holds data.
// It reports whether the file was written.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(current, data):
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, errors.Wrapf(err, "reading '%s'", path)
	}
	return true, WriteFile(path, data)
}

// Exists returns true if path exists, following symlinks.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsDir returns true if path exists and is a directory.
func IsDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

// RemoveIfExists removes a single file, ignoring a missing one.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
