package fail_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/exit/fail"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestFail(t *testing.T) {
	spec.Run(t, "Fail", testFail, spec.Report(report.Terminal{}))
}

func testFail(t *testing.T, when spec.G, it spec.S) {
	when("#Error", func() {
		it("formats framework errors with the action", func() {
			err := fail.Framework(errors.New("permission denied"), "write", "layer metadata")
			h.AssertEq(t, err.Error(), "failed to write layer metadata: permission denied")
		})

		it("formats framework errors without a cause", func() {
			h.AssertEq(t, fail.Framework(nil, "parse", "arguments").Error(), "failed to parse arguments")
		})

		it("formats buildpack errors as the cause", func() {
			h.AssertEq(t, fail.Buildpack(errors.New("no Gemfile.lock")).Error(), "no Gemfile.lock")
		})
	})

	when("#TypeOf", func() {
		it("treats unclassified errors as buildpack errors", func() {
			h.AssertEq(t, fail.TypeOf(errors.New("some-error")), fail.TypeBuildpack)
		})

		it("finds framework errors through wrapping", func() {
			err := pkgerrors.Wrap(fail.Framework(errors.New("boom"), "read", "store"), "building")
			h.AssertEq(t, fail.TypeOf(err), fail.TypeFramework)
			h.AssertEq(t, fail.IsFramework(err), true)
		})

		it("does not downgrade a framework error marked as buildpack", func() {
			err := fail.Buildpack(fail.Framework(errors.New("boom"), "read", "store"))
			h.AssertEq(t, fail.TypeOf(err), fail.TypeFramework)
		})

		it("does not downgrade a framework error wrapped by a buildpack error", func() {
			err := &fail.Error{Type: fail.TypeBuildpack, Err: fail.Framework(errors.New("boom"), "read", "store")}
			h.AssertEq(t, fail.TypeOf(err), fail.TypeFramework)
		})

		it("recognises failed detection", func() {
			h.AssertEq(t, fail.TypeOf(fail.FailedDetection()), fail.TypeFailedDetection)
		})
	})
}
