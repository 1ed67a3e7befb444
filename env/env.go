// Package env composes the environment contributed by layers.
package env

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buildpacks/libcnb/exit/fail"
)

// Env accumulates directives over a set of variables.
type Env struct {
	RootDirMap map[string][]string
	Vars       map[string]string
	Policy     Policy

	delims map[string]string
}

func NewEnv(vars map[string]string, rootDirMap map[string][]string, policy Policy) *Env {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Env{RootDirMap: rootDirMap, Vars: copied, Policy: policy}
}

// Apply folds directives into the environment. Delimiters set by earlier calls stay in effect.
func (p *Env) Apply(directives ...Directive) {
	if p.Vars == nil {
		p.Vars = map[string]string{}
	}
	if p.delims == nil {
		p.delims = map[string]string{}
	}
	c := composer{vars: p.Vars, delims: p.delims, policy: p.Policy}
	c.apply(directives...)
}

// AddRootDir prepends the well-known subdirectories of baseDir, such as bin and lib, to their variables.
func (p *Env) AddRootDir(baseDir string) error {
	directives, err := RootDirectives(baseDir, p.RootDirMap)
	if err != nil {
		return err
	}
	p.Apply(directives...)
	return nil
}

// AddEnvDir applies the directives of a single env directory.
func (p *Env) AddEnvDir(envDir string) error {
	directives, err := ReadEnvDir(envDir, ScopeAll)
	if err != nil {
		return err
	}
	p.Apply(directives...)
	return nil
}

func (p *Env) Get(name string) string {
	return p.Vars[name]
}

// List returns the environment as sorted KEY=VALUE pairs.
func (p *Env) List() []string {
	return List(p.Vars)
}

// List formats vars as sorted KEY=VALUE pairs.
func List(vars map[string]string) []string {
	var environ []string
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)
	return environ
}

// RootDirectives returns a prepend-path directive for each variable of each existing root directory of baseDir.
func RootDirectives(baseDir string, rootDirMap map[string][]string) ([]Directive, error) {
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fail.Framework(err, "resolve", "layer directory")
	}
	var dirs []string
	for dir := range rootDirMap {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var directives []Directive
	for _, dir := range dirs {
		newDir := filepath.Join(absBaseDir, dir)
		if _, err := os.Stat(newDir); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, fail.Framework(err, "read", "layer directory", dir)
		}
		for _, key := range rootDirMap[dir] {
			directives = append(directives, Directive{Name: key, Op: OpPrependPath, Value: newDir})
		}
	}
	return directives, nil
}

// VarsFromEnviron converts KEY=VALUE pairs into a map, skipping keys for which removeKey is true.
func VarsFromEnviron(environ []string, removeKey func(string) bool) map[string]string {
	vars := make(map[string]string)
	for _, kv := range environ {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		if removeKey != nil && removeKey(parts[0]) {
			continue
		}
		vars[parts[0]] = parts[1]
	}
	return vars
}
