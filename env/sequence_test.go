package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/env"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestSequence(t *testing.T) {
	spec.Run(t, "Sequence", testSequence, spec.Report(report.Terminal{}))
}

func testSequence(t *testing.T, when spec.G, it spec.S) {
	var (
		layersDir string
		sep       = string(os.PathListSeparator)
	)

	it.Before(func() {
		layersDir = h.TempDir(t, "libcnb.sequence")
	})

	source := func(name string) env.Source {
		return env.Source{Name: name, Dir: filepath.Join(layersDir, name)}
	}

	when(".OrderSources", func() {
		it("orders lexically", func() {
			ordered := env.OrderSources([]env.Source{{Name: "c"}, {Name: "a"}, {Name: "b"}}, nil)
			h.AssertEq(t, ordered, []env.Source{{Name: "a"}, {Name: "b"}, {Name: "c"}})
		})

		it("puts prioritised names first", func() {
			ordered := env.OrderSources([]env.Source{{Name: "c"}, {Name: "a"}, {Name: "b"}}, []string{"c", "b"})
			h.AssertEq(t, ordered, []env.Source{{Name: "c"}, {Name: "b"}, {Name: "a"}})
		})
	})

	when(".ResolveBuild", func() {
		it.Before(func() {
			h.Mkdir(t, filepath.Join(layersDir, "jdk", "bin"), filepath.Join(layersDir, "maven", "bin"))
			h.AssertNil(t, env.NewLayerEnv().
				Override(env.ScopeAll, "JAVA_HOME", filepath.Join(layersDir, "jdk")).
				Default(env.ScopeBuild, "MAVEN_OPTS", "-Xmx1g").
				Override(env.ScopeLaunch, "LAUNCH_ONLY", "true").
				Write(filepath.Join(layersDir, "jdk")))
			h.AssertNil(t, env.NewLayerEnv().
				Override(env.ScopeAll, "JAVA_HOME", "overridden-by-maven").
				Write(filepath.Join(layersDir, "maven")))
		})

		it("applies root dirs first and then layers in order", func() {
			vars, err := env.ResolveBuild(
				map[string]string{"PATH": "/usr/bin"},
				[]env.Source{source("jdk"), source("maven")},
				env.DefaultPolicy(),
			)
			h.AssertNil(t, err)

			h.AssertEq(t, vars, map[string]string{
				"PATH":       filepath.Join(layersDir, "maven", "bin") + sep + filepath.Join(layersDir, "jdk", "bin") + sep + "/usr/bin",
				"JAVA_HOME":  "overridden-by-maven",
				"MAVEN_OPTS": "-Xmx1g",
			})
		})

		it("depends on the order of layers", func() {
			vars, err := env.ResolveBuild(
				map[string]string{},
				env.OrderSources([]env.Source{source("jdk"), source("maven")}, []string{"maven", "jdk"}),
				env.DefaultPolicy(),
			)
			h.AssertNil(t, err)

			h.AssertEq(t, vars["JAVA_HOME"], filepath.Join(layersDir, "jdk"))
			h.AssertEq(t, vars["PATH"], filepath.Join(layersDir, "jdk", "bin")+sep+filepath.Join(layersDir, "maven", "bin"))
		})
	})

	when(".ResolveLaunch", func() {
		it("includes process-specific directives only for that process", func() {
			h.AssertNil(t, env.NewLayerEnv().
				Override(env.ScopeLaunch, "RACK_ENV", "production").
				Override(env.ScopeProcess("worker"), "QUEUE", "default").
				Override(env.ScopeBuild, "BUILD_ONLY", "true").
				Write(filepath.Join(layersDir, "gems")))

			web, err := env.ResolveLaunch(map[string]string{}, []env.Source{source("gems")}, "web", env.DefaultPolicy())
			h.AssertNil(t, err)
			h.AssertEq(t, web, map[string]string{"RACK_ENV": "production"})

			worker, err := env.ResolveLaunch(map[string]string{}, []env.Source{source("gems")}, "worker", env.DefaultPolicy())
			h.AssertNil(t, err)
			h.AssertEq(t, worker, map[string]string{"RACK_ENV": "production", "QUEUE": "default"})
		})
	})
}
