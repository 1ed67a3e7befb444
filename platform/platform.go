// Package platform reads the inputs the platform provides to a buildpack.
package platform

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/buildpacks/libcnb/exit/fail"
)

// Platform is the contents of the platform directory.
type Platform struct {
	// Dir is the location of the platform directory.
	Dir string

	// Environment holds the user-provided environment variables found in <platform>/env.
	Environment map[string]string
}

// Read loads the platform directory. A missing env directory yields an empty environment.
func Read(dir string) (Platform, error) {
	p := Platform{Dir: dir, Environment: map[string]string{}}

	envDir := filepath.Join(dir, "env")
	entries, err := os.ReadDir(envDir)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return Platform{}, fail.Framework(err, "read", "platform environment")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		value, err := os.ReadFile(filepath.Join(envDir, entry.Name()))
		if err != nil {
			return Platform{}, fail.Framework(err, "read", "platform environment variable", entry.Name())
		}
		p.Environment[entry.Name()] = string(value)
	}
	return p, nil
}

// Names returns the platform environment variable names in lexical order.
func (p Platform) Names() []string {
	var names []string
	for name := range p.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
