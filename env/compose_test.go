package env_test

import (
	"os"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/env"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestCompose(t *testing.T) {
	spec.Run(t, "Compose", testCompose, spec.Report(report.Terminal{}))
}

func testCompose(t *testing.T, when spec.G, it spec.S) {
	sep := string(os.PathListSeparator)

	d := func(name string, op env.Op, value string) env.Directive {
		return env.Directive{Name: name, Op: op, Value: value, Scope: env.ScopeAll}
	}

	when("override", func() {
		it("replaces the value", func() {
			out := env.Compose(map[string]string{"A": "old"}, []env.Directive{d("A", env.OpOverride, "new")}, env.ConcatPolicy())
			h.AssertEq(t, out, map[string]string{"A": "new"})
		})
	})

	when("default", func() {
		it("sets an unset variable", func() {
			out := env.Compose(map[string]string{}, []env.Directive{d("A", env.OpDefault, "x")}, env.ConcatPolicy())
			h.AssertEq(t, out["A"], "x")
		})

		it("leaves a set variable alone", func() {
			out := env.Compose(map[string]string{"A": "y"}, []env.Directive{d("A", env.OpDefault, "x")}, env.ConcatPolicy())
			h.AssertEq(t, out["A"], "y")
		})

		it("treats an empty value as set", func() {
			out := env.Compose(map[string]string{"A": ""}, []env.Directive{d("A", env.OpDefault, "x")}, env.ConcatPolicy())
			h.AssertEq(t, out["A"], "")
		})
	})

	when("prepend and append", func() {
		it("behave as override on an unset variable", func() {
			out := env.Compose(nil, []env.Directive{
				d("A", env.OpPrepend, "p"),
				d("B", env.OpAppend, "a"),
			}, env.DefaultPolicy())
			h.AssertEq(t, out, map[string]string{"A": "p", "B": "a"})
		})

		it("use the delimiter set earlier for the same variable", func() {
			out := env.Compose(map[string]string{"A": "base", "B": "base"}, []env.Directive{
				d("A", env.OpDelimiter, ","),
				d("A", env.OpPrepend, "p"),
				d("A", env.OpAppend, "a"),
				d("B", env.OpAppend, "a"),
			}, env.ConcatPolicy())
			h.AssertEq(t, out, map[string]string{"A": "p,base,a", "B": "basea"})
		})

		it("use the policy delimiter without a delim directive", func() {
			out := env.Compose(map[string]string{"PATH": "/usr/bin", "JAVA_OPTS": "-Xmx1g"}, []env.Directive{
				d("PATH", env.OpPrepend, "/layer/bin"),
				d("JAVA_OPTS", env.OpAppend, " -Xss1m"),
			}, env.DefaultPolicy())
			h.AssertEq(t, out, map[string]string{
				"PATH":      "/layer/bin" + sep + "/usr/bin",
				"JAVA_OPTS": "-Xmx1g -Xss1m",
			})
		})

		it("use the policy default for unlisted variables", func() {
			out := env.Compose(map[string]string{"A": "x"}, []env.Directive{d("A", env.OpAppend, "y")}, env.Policy{Default: " "})
			h.AssertEq(t, out["A"], "x y")
		})
	})

	when("prepend-path", func() {
		it("always joins with the path list separator", func() {
			out := env.Compose(map[string]string{"PATH": "/usr/bin"}, []env.Directive{
				d("PATH", env.OpDelimiter, ","),
				d("PATH", env.OpPrependPath, "/layer/bin"),
			}, env.ConcatPolicy())
			h.AssertEq(t, out["PATH"], "/layer/bin"+sep+"/usr/bin")
		})
	})

	it("does not modify the base", func() {
		base := map[string]string{"A": "a"}
		env.Compose(base, []env.Directive{d("A", env.OpOverride, "b")}, env.DefaultPolicy())
		h.AssertEq(t, base, map[string]string{"A": "a"})
	})

	it("is deterministic", func() {
		directives := []env.Directive{
			d("PATH", env.OpPrepend, "/a"),
			d("X", env.OpDefault, "1"),
			d("PATH", env.OpAppend, "/b"),
			d("Y", env.OpOverride, "2"),
		}
		base := map[string]string{"PATH": "/usr/bin"}

		first := env.Compose(base, directives, env.DefaultPolicy())
		for i := 0; i < 10; i++ {
			h.AssertEq(t, env.Compose(base, directives, env.DefaultPolicy()), first)
		}
	})

	it("is sensitive to the order of directives", func() {
		layerA := d("PATH", env.OpPrepend, "/a")
		layerB := d("PATH", env.OpPrepend, "/b")
		base := map[string]string{"PATH": "/usr/bin"}

		ab := env.Compose(base, []env.Directive{layerA, layerB}, env.DefaultPolicy())
		ba := env.Compose(base, []env.Directive{layerB, layerA}, env.DefaultPolicy())

		h.AssertEq(t, ab["PATH"], "/b"+sep+"/a"+sep+"/usr/bin")
		h.AssertEq(t, ba["PATH"], "/a"+sep+"/b"+sep+"/usr/bin")
	})
}
