package layer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/golang/mock/gomock"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/env"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/layer"
	h "github.com/buildpacks/libcnb/testhelpers"
	"github.com/buildpacks/libcnb/testmock"
)

func TestContribute(t *testing.T) {
	spec.Run(t, "Contribute", testContribute, spec.Report(report.Terminal{}))
}

func testContribute(t *testing.T, when spec.G, it spec.S) {
	var (
		mockCtrl        *gomock.Controller
		contributor     *testmock.MockContributor
		layersDir       string
		store           *layer.Store
		logHandler      *memory.Handler
		metadataPath    string
		expectedVersion = map[string]interface{}{"version": "v1.2.3"}
	)

	it.Before(func() {
		mockCtrl = gomock.NewController(t)
		contributor = testmock.NewMockContributor(mockCtrl)
		layersDir = h.TempDir(t, "libcnb.contribute")
		logHandler = memory.New()
		store = layer.NewStore(layersDir)
		store.Logger = &log.Logger{Handler: logHandler, Level: log.DebugLevel}
		metadataPath = filepath.Join(layersDir, "dep.toml")

		contributor.EXPECT().Name().Return("dep").AnyTimes()
	})

	it.After(func() {
		mockCtrl.Finish()
	})

	create := func(l layer.Layer) (layer.Result, error) {
		if err := os.WriteFile(filepath.Join(l.Path, "installed"), []byte("v1.2.3"), 0600); err != nil {
			return layer.Result{}, err
		}
		return layer.Result{
			Metadata: expectedVersion,
			Env:      env.NewLayerEnv().Override(env.ScopeBuild, "DEP_HOME", l.Path),
			SBOMs:    []buildpack.SBOM{{Format: buildpack.CycloneDXJSON, Data: []byte(`{}`)}},
		}, nil
	}

	when("there is no previous layer", func() {
		it("creates the layer and writes metadata, env and SBOM", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Create(gomock.Any()).DoAndReturn(create)

			l, err := store.Contribute(contributor)
			h.AssertNil(t, err)

			h.AssertEq(t, l.Metadata, expectedVersion)
			h.AssertEq(t, h.Rdfile(t, filepath.Join(layersDir, "dep", "installed")), "v1.2.3")
			h.AssertEq(t, h.Rdfile(t, filepath.Join(layersDir, "dep", "env.build", "DEP_HOME.override")), filepath.Join(layersDir, "dep"))
			h.AssertPathExists(t, filepath.Join(layersDir, "dep.sbom.cdx.json"))

			md, err := store.ReadMetadata("dep")
			h.AssertNil(t, err)
			h.AssertEq(t, md, &layer.ContentMetadata{Types: layer.BuildAndCache, Metadata: expectedVersion})
			h.AssertStringContains(t, h.AllLogs(logHandler), "Creating layer")
		})

		it("copies exec.d programs into the layer", func() {
			programs := h.TempDir(t, "libcnb.execd")
			h.Mkfile(t, "#!/bin/sh\n", filepath.Join(programs, "dep-env"), filepath.Join(programs, "web-env"))

			contributor.EXPECT().Types().Return(layer.LaunchOnly)
			contributor.EXPECT().Create(gomock.Any()).Return(layer.Result{
				Metadata: expectedVersion,
				ExecD: map[string]string{
					"dep-env":     filepath.Join(programs, "dep-env"),
					"web/web-env": filepath.Join(programs, "web-env"),
				},
			}, nil)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)

			for _, path := range []string{
				filepath.Join(layersDir, "dep", "exec.d", "dep-env"),
				filepath.Join(layersDir, "dep", "exec.d", "web", "web-env"),
			} {
				h.AssertEq(t, h.Rdfile(t, path), "#!/bin/sh\n")
				fi, err := os.Stat(path)
				h.AssertNil(t, err)
				h.AssertEq(t, fi.Mode().Perm()&0100 != 0, true)
			}
		})

		it("rejects exec.d programs that escape the exec.d directory", func() {
			contributor.EXPECT().Types().Return(layer.LaunchOnly)
			contributor.EXPECT().Create(gomock.Any()).Return(layer.Result{
				Metadata: expectedVersion,
				ExecD:    map[string]string{"../escape": "/bin/true"},
			}, nil)

			_, err := store.Contribute(contributor)
			h.AssertError(t, err, "must be a name or <process>/<name>")
			h.AssertEq(t, fail.TypeOf(err), fail.TypeBuildpack)
			h.AssertPathDoesNotExist(t, metadataPath)
		})

		it("does not write metadata when creation fails", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Create(gomock.Any()).Return(layer.Result{}, errors.New("download failed"))

			_, err := store.Contribute(contributor)
			h.AssertError(t, err, "download failed")
			h.AssertEq(t, fail.TypeOf(err), fail.TypeBuildpack)
			h.AssertPathDoesNotExist(t, metadataPath)
		})
	})

	when("a previous layer exists", func() {
		it.Before(func() {
			h.AssertNil(t, store.WriteMetadata("dep", layer.ContentMetadata{Types: layer.BuildAndCache, Metadata: expectedVersion}))
			h.Mkfile(t, "v1.2.3", filepath.Join(layersDir, "dep", "installed"))
		})

		it("reuses a layer with a matching fingerprint and leaves its metadata unchanged", func() {
			before := h.MustReadFile(t, metadataPath)
			old := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
			h.AssertNil(t, os.Chtimes(metadataPath, old, old))

			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).DoAndReturn(func(existing layer.ContentMetadata) (layer.Strategy, error) {
				if existing.Matches(map[string]interface{}{"version": "v1.2.3"}) {
					return layer.Keep, nil
				}
				return layer.Recreate, nil
			})

			l, err := store.Contribute(contributor)
			h.AssertNil(t, err)

			h.AssertEq(t, l.Metadata, expectedVersion)
			h.AssertEq(t, h.MustReadFile(t, metadataPath), before)
			fi, err := os.Stat(metadataPath)
			h.AssertNil(t, err)
			h.AssertEq(t, fi.ModTime().Equal(old), true)
			h.AssertEq(t, h.Rdfile(t, filepath.Join(layersDir, "dep", "installed")), "v1.2.3")
			h.AssertStringContains(t, h.AllLogs(logHandler), "Reusing layer")
		})

		it("migrates the types of a kept layer", func() {
			contributor.EXPECT().Types().Return(layer.All)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Keep, nil)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)

			md, err := store.ReadMetadata("dep")
			h.AssertNil(t, err)
			h.AssertEq(t, md.Types, layer.All)
			h.AssertEq(t, md.Metadata, expectedVersion)
		})

		it("updates a layer in place", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Update, nil)
			contributor.EXPECT().Update(gomock.Any()).DoAndReturn(func(l layer.Layer) (layer.Result, error) {
				h.AssertEq(t, l.Metadata, expectedVersion)
				h.AssertEq(t, h.Rdfile(t, filepath.Join(l.Path, "installed")), "v1.2.3")
				return layer.Result{Metadata: map[string]interface{}{"version": "v1.2.4"}}, nil
			})

			l, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertEq(t, l.Metadata, map[string]interface{}{"version": "v1.2.4"})
			h.AssertPathExists(t, filepath.Join(layersDir, "dep", "installed"))
		})

		it("drops SBOMs and exec.d programs an update no longer returns", func() {
			h.Mkfile(t, `{}`, filepath.Join(layersDir, "dep.sbom.cdx.json"))
			h.Mkfile(t, "#!/bin/sh\n", filepath.Join(layersDir, "dep", "exec.d", "stale"))

			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Update, nil)
			contributor.EXPECT().Update(gomock.Any()).Return(layer.Result{Metadata: expectedVersion}, nil)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertPathDoesNotExist(t, filepath.Join(layersDir, "dep.sbom.cdx.json"))
			h.AssertPathDoesNotExist(t, filepath.Join(layersDir, "dep", "exec.d"))
			h.AssertPathExists(t, filepath.Join(layersDir, "dep", "installed"))
		})

		it("replaces the SBOM formats an update returns", func() {
			h.Mkfile(t, `{"old":true}`, filepath.Join(layersDir, "dep.sbom.cdx.json"))

			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Update, nil)
			contributor.EXPECT().Update(gomock.Any()).Return(layer.Result{
				Metadata: expectedVersion,
				SBOMs:    []buildpack.SBOM{{Format: buildpack.SPDXJSON, Data: []byte(`{"new":true}`)}},
			}, nil)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertPathDoesNotExist(t, filepath.Join(layersDir, "dep.sbom.cdx.json"))
			h.AssertEq(t, h.Rdfile(t, filepath.Join(layersDir, "dep.sbom.spdx.json")), `{"new":true}`)
		})

		it("recreates a layer with a different fingerprint", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Recreate, nil)
			contributor.EXPECT().Create(gomock.Any()).DoAndReturn(func(l layer.Layer) (layer.Result, error) {
				h.AssertPathDoesNotExist(t, filepath.Join(l.Path, "installed"))
				return layer.Result{Metadata: map[string]interface{}{"version": "v2.0.0"}}, nil
			})

			l, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertEq(t, l.Metadata, map[string]interface{}{"version": "v2.0.0"})
		})

		it("does not offer a layer that is not cached for reuse", func() {
			contributor.EXPECT().Types().Return(layer.LaunchOnly)
			contributor.EXPECT().Create(gomock.Any()).Return(layer.Result{Metadata: expectedVersion}, nil)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertPathDoesNotExist(t, filepath.Join(layersDir, "dep", "installed"))
		})

		it("passes strategy errors through", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Keep, errors.New("cannot compare"))

			_, err := store.Contribute(contributor)
			h.AssertError(t, err, "cannot compare")
		})

		it("is idempotent across runs", func() {
			contributor.EXPECT().Types().Return(layer.BuildAndCache).Times(2)
			contributor.EXPECT().Strategy(gomock.Any()).Return(layer.Keep, nil).Times(2)

			_, err := store.Contribute(contributor)
			h.AssertNil(t, err)
			first := h.MustReadFile(t, metadataPath)

			_, err = store.Contribute(contributor)
			h.AssertNil(t, err)
			h.AssertEq(t, h.MustReadFile(t, metadataPath), first)
		})
	})

	when("the previous metadata is malformed", func() {
		it("returns a framework error", func() {
			h.Mkfile(t, "build = true\n", metadataPath)
			contributor.EXPECT().Types().Return(layer.BuildAndCache)

			_, err := store.Contribute(contributor)
			h.AssertEq(t, fail.TypeOf(err), fail.TypeFramework)
		})
	})
}
