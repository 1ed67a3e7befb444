package libcnb

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/env"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/launch"
	"github.com/buildpacks/libcnb/layer"
	"github.com/buildpacks/libcnb/log"
	"github.com/buildpacks/libcnb/platform"
)

const (
	LaunchFile = "launch.toml"
	BuildFile  = "build.toml"
	StoreFile  = "store.toml"
)

// BuildContext is the input to Buildpack.Build.
type BuildContext struct {
	// AppDir is the location of the application source code.
	AppDir string

	// Buildpack is the parsed buildpack.toml.
	Buildpack *buildpack.Descriptor

	// Layers is the layers directory of this buildpack.
	Layers *layer.Store

	// Plan is the buildpack plan the lifecycle resolved for this buildpack.
	Plan buildpack.Plan

	// Platform is the contents of the platform directory.
	Platform platform.Platform

	// Store is the store.toml of the previous build, nil if there was none.
	Store *buildpack.Store

	// Target is the image target the lifecycle is building for.
	Target platform.Target

	// StackID is the deprecated stack identifier, empty on newer platforms.
	StackID string

	Logger log.Logger

	environ []string
}

// BuildEnv composes the environment a build-time subprocess sees after the layers contributed so far.
// With clear-env set only the variables the lifecycle keeps are inherited. Layers named in priority
// are applied first, in that order; the rest follow lexically.
func (b BuildContext) BuildEnv(priority ...string) (*env.Env, error) {
	var buildEnv *env.Env
	if b.Buildpack != nil && b.Buildpack.Buildpack.ClearEnv {
		buildEnv = env.NewBuildEnv(b.environ)
	} else {
		buildEnv = env.NewEnv(env.VarsFromEnviron(b.environ, nil), env.POSIXBuildEnv, env.DefaultPolicy())
	}
	sources, err := b.Layers.EnvSources(env.ScopeBuild)
	if err != nil {
		return nil, err
	}
	directives, err := env.Sequence(env.OrderSources(sources, priority), env.ScopeBuild, buildEnv.RootDirMap)
	if err != nil {
		return nil, err
	}
	buildEnv.Apply(directives...)
	return buildEnv, nil
}

// BuildEnvironment is BuildEnv as a map.
func (b BuildContext) BuildEnvironment(priority ...string) (map[string]string, error) {
	buildEnv, err := b.BuildEnv(priority...)
	if err != nil {
		return nil, err
	}
	return buildEnv.Vars, nil
}

// LaunchEnvironment composes what the layers contribute to the launch environment of process over base.
// An empty process resolves the environment shared by every process. Priority orders layers as in BuildEnv.
func (b BuildContext) LaunchEnvironment(base map[string]string, process string, priority ...string) (map[string]string, error) {
	scope := env.ScopeLaunch
	if process != "" {
		scope = env.ScopeProcess(process)
	}
	sources, err := b.Layers.EnvSources(scope)
	if err != nil {
		return nil, err
	}
	return env.ResolveLaunch(base, env.OrderSources(sources, priority), process, env.DefaultPolicy())
}

// BuildResult is the outcome of Buildpack.Build. Empty parts are not written.
type BuildResult struct {
	// Launch is written to <layers>/launch.toml.
	Launch launch.Launch

	// Store is written to <layers>/store.toml. A nil Store leaves the file untouched.
	Store *buildpack.Store

	// Unmet names plan entries the buildpack did not satisfy, written to <layers>/build.toml.
	Unmet []buildpack.Unmet

	// BuildSBOMs are written to <layers>/build.sbom.<ext>.
	BuildSBOMs []buildpack.SBOM

	// LaunchSBOMs are written to <layers>/launch.sbom.<ext>.
	LaunchSBOMs []buildpack.SBOM
}

// NewBuildResult returns an empty BuildResult.
func NewBuildResult() BuildResult {
	return BuildResult{}
}

// Build runs the build phase: bin/build <layers> <platform> <plan>.
func Build(bp Buildpack, options ...Option) {
	config := newConfig(options...)

	if err := runBuild(bp, config); err != nil {
		config.exitHandler.Error(err)
		return
	}
	config.exitHandler.Pass()
}

func runBuild(bp Buildpack, config Config) error {
	logger := config.logger
	timer := log.NewFuncTimer("Build", logger)
	defer timer.RecordEnd()

	if err := expectArguments(config, "layers", "platform", "plan"); err != nil {
		return err
	}
	layersDir, err := filepath.Abs(config.arguments[1])
	if err != nil {
		return fail.Framework(err, "get", "layers directory")
	}
	platformDir, planPath := config.arguments[2], config.arguments[3]

	in, err := readInputs(config, platformDir)
	if err != nil {
		return err
	}
	logger.Debugf("Building %s", log.Symbol(in.descriptor.String()))

	plan, err := buildpack.ReadPlan(planPath)
	if err != nil {
		return err
	}
	store, err := buildpack.ReadStore(filepath.Join(layersDir, StoreFile))
	if err != nil {
		return err
	}

	layers := layer.NewStore(layersDir)
	layers.Logger = logger
	layers.Descriptor = in.descriptor

	ctx := BuildContext{
		AppDir:    in.appDir,
		Buildpack: in.descriptor,
		Layers:    layers,
		Plan:      plan,
		Platform:  in.platform,
		Store:     store,
		Target:    in.target,
		StackID:   in.stackID,
		Logger:    logger,
		environ:   config.environ,
	}
	result, err := bp.Build(ctx)
	if err != nil {
		if fail.TypeOf(err) == fail.TypeFailedDetection {
			// Only detect may fail detection.
			return &fail.Error{Err: errors.Wrap(err, "build cannot fail detection"), Type: fail.TypeBuildpack}
		}
		return fail.Buildpack(err)
	}
	return writeBuildResult(ctx, result)
}

// writeBuildResult checks the whole result before writing any file so that a rejected
// result leaves the layers directory as the buildpack found it.
func writeBuildResult(ctx BuildContext, result BuildResult) error {
	layersDir := ctx.Layers.Dir

	sbomFiles := []struct {
		name  string
		sboms []buildpack.SBOM
	}{
		{"build", result.BuildSBOMs},
		{"launch", result.LaunchSBOMs},
	}

	if !result.Launch.IsEmpty() {
		if err := result.Launch.Validate(); err != nil {
			return err
		}
	}
	if len(result.Unmet) > 0 {
		if err := ctx.Plan.ValidateUnmet(result.Unmet); err != nil {
			return err
		}
	}
	for _, s := range sbomFiles {
		if err := ctx.Buildpack.ValidateSBOMs(s.sboms...); err != nil {
			return err
		}
	}

	if !result.Launch.IsEmpty() {
		if err := launch.Write(filepath.Join(layersDir, LaunchFile), result.Launch); err != nil {
			return err
		}
	}
	if len(result.Unmet) > 0 {
		if err := buildpack.WriteBuildTOML(filepath.Join(layersDir, BuildFile), buildpack.BuildTOML{Unmet: result.Unmet}); err != nil {
			return err
		}
	}
	if result.Store != nil {
		if err := buildpack.WriteStore(filepath.Join(layersDir, StoreFile), *result.Store); err != nil {
			return err
		}
	}
	for _, s := range sbomFiles {
		if err := buildpack.WriteSBOMs(layersDir, s.name, s.sboms); err != nil {
			return err
		}
	}
	return nil
}
