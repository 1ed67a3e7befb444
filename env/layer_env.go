package env

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/fsutil"
)

// LayerEnv is the set of directives a layer contributes, across all scopes.
type LayerEnv struct {
	directives []Directive
}

func NewLayerEnv() *LayerEnv {
	return &LayerEnv{}
}

// Add records d, replacing an earlier directive with the same scope, name and op
// since the env directory can only hold one file for them.
func (l *LayerEnv) Add(d Directive) *LayerEnv {
	for i, existing := range l.directives {
		if existing.Scope == d.Scope && existing.Name == d.Name && existing.Op == d.Op {
			l.directives[i] = d
			return l
		}
	}
	l.directives = append(l.directives, d)
	return l
}

func (l *LayerEnv) Override(scope Scope, name, value string) *LayerEnv {
	return l.Add(Directive{Name: name, Op: OpOverride, Value: value, Scope: scope})
}

func (l *LayerEnv) Default(scope Scope, name, value string) *LayerEnv {
	return l.Add(Directive{Name: name, Op: OpDefault, Value: value, Scope: scope})
}

func (l *LayerEnv) Prepend(scope Scope, name, value string) *LayerEnv {
	return l.Add(Directive{Name: name, Op: OpPrepend, Value: value, Scope: scope})
}

func (l *LayerEnv) Append(scope Scope, name, value string) *LayerEnv {
	return l.Add(Directive{Name: name, Op: OpAppend, Value: value, Scope: scope})
}

func (l *LayerEnv) Delimiter(scope Scope, name, delim string) *LayerEnv {
	return l.Add(Directive{Name: name, Op: OpDelimiter, Value: delim, Scope: scope})
}

func (l *LayerEnv) IsEmpty() bool {
	return l == nil || len(l.directives) == 0
}

// Directives returns the directives that apply when resolving for scope: shared first,
// then the build or launch scope, then the process scope. Within a scope the order is
// the one the env directory encodes: delim, override, default, prepend, append, each by name.
func (l *LayerEnv) Directives(scope Scope) []Directive {
	if l == nil {
		return nil
	}
	var out []Directive
	for _, s := range l.scopes() {
		if scope.Includes(s) {
			out = append(out, l.inScope(s)...)
		}
	}
	return out
}

// All returns every directive in canonical order.
func (l *LayerEnv) All() []Directive {
	if l == nil {
		return nil
	}
	var out []Directive
	for _, s := range l.scopes() {
		out = append(out, l.inScope(s)...)
	}
	return out
}

func (l *LayerEnv) scopes() []Scope {
	var processes []string
	seen := map[string]bool{}
	for _, d := range l.directives {
		if d.Scope.Kind == KindProcess && !seen[d.Scope.Process] {
			seen[d.Scope.Process] = true
			processes = append(processes, d.Scope.Process)
		}
	}
	sort.Strings(processes)
	scopes := []Scope{ScopeAll, ScopeBuild, ScopeLaunch}
	for _, p := range processes {
		scopes = append(scopes, ScopeProcess(p))
	}
	return scopes
}

func (l *LayerEnv) inScope(scope Scope) []Directive {
	var out []Directive
	for _, d := range l.directives {
		if d.Scope == scope {
			out = append(out, d)
		}
	}
	sortCanonical(out)
	return out
}

func sortCanonical(directives []Directive) {
	sort.SliceStable(directives, func(i, j int) bool {
		ri, rj := opRank(directives[i].Op), opRank(directives[j].Op)
		if ri != rj {
			return ri < rj
		}
		return directives[i].Name < directives[j].Name
	})
}

var envDirNames = []string{"env", "env.build", "env.launch"}

// Write replaces the env directories of layerDir with the directives of l.
func (l *LayerEnv) Write(layerDir string) error {
	for _, name := range envDirNames {
		if err := os.RemoveAll(filepath.Join(layerDir, name)); err != nil {
			return fail.Framework(err, "remove", "env directory", name)
		}
	}
	for _, d := range l.All() {
		if d.Op == OpPrependPath {
			continue
		}
		path := filepath.Join(layerDir, d.Scope.Dir(), d.fileName())
		if err := fsutil.WriteFile(path, []byte(d.Value)); err != nil {
			return fail.Framework(err, "write", "env file", d.fileName())
		}
	}
	return nil
}

// ReadLayerEnv reads every env directory of layerDir. Missing directories contribute nothing.
func ReadLayerEnv(layerDir string) (*LayerEnv, error) {
	l := NewLayerEnv()
	for _, scope := range []Scope{ScopeAll, ScopeBuild, ScopeLaunch} {
		directives, err := ReadEnvDir(filepath.Join(layerDir, scope.Dir()), scope)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			l.Add(d)
		}
	}

	processDirs, err := os.ReadDir(filepath.Join(layerDir, ScopeLaunch.Dir()))
	if err != nil && !os.IsNotExist(err) {
		return nil, fail.Framework(err, "read", "launch env directory")
	}
	for _, entry := range processDirs {
		if !entry.IsDir() {
			continue
		}
		scope := ScopeProcess(entry.Name())
		directives, err := ReadEnvDir(filepath.Join(layerDir, scope.Dir()), scope)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			l.Add(d)
		}
	}
	return l, nil
}

// ReadEnvDir reads the directives of a single env directory in canonical order.
// A file without a suffix overrides. Files with an unknown suffix are ignored.
func ReadEnvDir(dir string, scope Scope) ([]Directive, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fail.Framework(err, "read", "env directory", dir)
	}
	var directives []Directive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parts := strings.SplitN(entry.Name(), ".", 2)
		var suffix string
		if len(parts) > 1 {
			suffix = parts[1]
		}
		op, ok := parseOp(suffix)
		if !ok {
			continue
		}
		value, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fail.Framework(err, "read", "env file", entry.Name())
		}
		directives = append(directives, Directive{Name: parts[0], Op: op, Value: string(value), Scope: scope})
	}
	sortCanonical(directives)
	return directives, nil
}
