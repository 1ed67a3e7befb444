package env

import (
	"sort"
)

// Source is a layer contributing environment directives.
type Source struct {
	Name string
	Dir  string
}

// OrderSources sorts sources lexically by name, except that names listed in priority come first in that order.
func OrderSources(sources []Source, priority []string) []Source {
	rank := map[string]int{}
	for i, name := range priority {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}
	out := append([]Source{}, sources...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Name]
		rj, jok := rank[out[j].Name]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out
}

// Sequence returns the directives of sources for scope in application order: the root
// directories of every source first, then each source's env directories.
// Sources are used in the given order; see OrderSources.
func Sequence(sources []Source, scope Scope, rootDirMap map[string][]string) ([]Directive, error) {
	var directives []Directive
	for _, source := range sources {
		roots, err := RootDirectives(source.Dir, rootDirMap)
		if err != nil {
			return nil, err
		}
		directives = append(directives, roots...)
	}
	for _, source := range sources {
		layerEnv, err := ReadLayerEnv(source.Dir)
		if err != nil {
			return nil, err
		}
		directives = append(directives, layerEnv.Directives(scope)...)
	}
	return directives, nil
}

// ResolveBuild composes the build-time environment contributed by sources over base.
func ResolveBuild(base map[string]string, sources []Source, policy Policy) (map[string]string, error) {
	return resolve(base, sources, ScopeBuild, POSIXBuildEnv, policy)
}

// ResolveLaunch composes the launch-time environment of a process type. An empty process
// resolves the environment shared by every process.
func ResolveLaunch(base map[string]string, sources []Source, process string, policy Policy) (map[string]string, error) {
	scope := ScopeLaunch
	if process != "" {
		scope = ScopeProcess(process)
	}
	return resolve(base, sources, scope, POSIXLaunchEnv, policy)
}

func resolve(base map[string]string, sources []Source, scope Scope, rootDirMap map[string][]string, policy Policy) (map[string]string, error) {
	directives, err := Sequence(sources, scope, rootDirMap)
	if err != nil {
		return nil, err
	}
	return Compose(base, directives, policy), nil
}
