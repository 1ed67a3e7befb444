package api_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/api"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestAPIs(t *testing.T) {
	spec.Run(t, "APIs", testAPIs, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testAPIs(t *testing.T, when spec.G, it spec.S) {
	when("Buildpack", func() {
		it("supports 0.6 through 0.10", func() {
			for _, v := range []string{"0.6", "0.7", "0.8", "0.9", "0.10"} {
				h.AssertEq(t, api.Buildpack.IsSupported(api.MustParse(v)), true)
			}
		})

		it("does not support APIs outside that range", func() {
			for _, v := range []string{"0.5", "0.11", "1.0"} {
				h.AssertEq(t, api.Buildpack.IsSupported(api.MustParse(v)), false)
			}
		})

		it("deprecates only 0.6", func() {
			h.AssertEq(t, api.Buildpack.IsDeprecated(api.MustParse("0.6")), true)
			h.AssertEq(t, api.Buildpack.IsDeprecated(api.MustParse("0.7")), false)
			h.AssertEq(t, api.Buildpack.IsDeprecated(api.MustParse("0.10")), false)
		})

		it("reports 0.10 as the latest API", func() {
			h.AssertEq(t, api.Buildpack.Latest().String(), "0.10")
		})

		it("lists the supported APIs in order", func() {
			h.AssertEq(t, api.Buildpack.Supported.String(), "0.6, 0.7, 0.8, 0.9, 0.10")
		})
	})

	when(".NewAPIs", func() {
		it("deprecates every minor of a deprecated major", func() {
			apis, err := api.NewAPIs([]string{"0.10", "1.2"}, []string{"1"})
			h.AssertNil(t, err)
			h.AssertEq(t, apis.IsDeprecated(api.MustParse("1.1")), true)
			h.AssertEq(t, apis.IsDeprecated(api.MustParse("0.10")), false)
			h.AssertEq(t, apis.Latest().String(), "1.2")
		})

		it("rejects a deprecated minor of a major above 0", func() {
			_, err := api.NewAPIs([]string{"1.3"}, []string{"1.2"})
			h.AssertError(t, err, "invalid deprecated API '1.2'")
		})

		it("rejects a deprecated API that is not supported", func() {
			_, err := api.NewAPIs([]string{"0.10"}, []string{"0.5"})
			h.AssertError(t, err, "invalid deprecated API '0.5'")
		})
	})
}
