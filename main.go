package libcnb

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/api"
	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/modes"
	"github.com/buildpacks/libcnb/log"
	"github.com/buildpacks/libcnb/platform"
)

const (
	PhaseDetect = "detect"
	PhaseBuild  = "build"
)

// Main runs the phase named by the executable, bin/detect or bin/build.
func Main(bp Buildpack, options ...Option) {
	config := newConfig(options...)

	if len(config.arguments) == 0 {
		config.exitHandler.Error(fail.Framework(errors.New("expected command name"), "parse", "arguments"))
		return
	}

	switch phase := filepath.Base(config.arguments[0]); phase {
	case PhaseDetect:
		Detect(bp, withConfig(config))
	case PhaseBuild:
		Build(bp, withConfig(config))
	default:
		config.exitHandler.Error(fail.Framework(errors.Errorf("unsupported phase %s", log.Symbol(phase)), "parse", "arguments"))
	}
}

func withConfig(config Config) Option {
	return func(Config) Config {
		return config
	}
}

// inputs are what both phases read before any buildpack code runs.
type inputs struct {
	appDir     string
	descriptor *buildpack.Descriptor
	platform   platform.Platform
	target     platform.Target
	stackID    string
}

func readInputs(config Config, platformDir string) (inputs, error) {
	var (
		in  inputs
		err error
	)

	if in.appDir, err = config.appDir(); err != nil {
		return inputs{}, fail.Framework(err, "get", "application directory")
	}

	bpDir, err := config.buildpackDir()
	if err != nil {
		return inputs{}, fail.Framework(err, "get", "buildpack directory")
	}
	if in.descriptor, err = buildpack.ReadDescriptor(bpDir); err != nil {
		return inputs{}, err
	}
	if err := modes.VerifyBuildpackAPI(
		in.descriptor.Buildpack.ID,
		in.descriptor.API,
		api.Buildpack,
		modes.DeprecationFrom(config.getenv),
		config.logger,
	); err != nil {
		return inputs{}, fail.Framework(err, "verify", "buildpack API")
	}

	if platformDir, err = filepath.Abs(platformDir); err != nil {
		return inputs{}, fail.Framework(err, "get", "platform directory")
	}
	if in.platform, err = platform.Read(platformDir); err != nil {
		return inputs{}, err
	}

	in.target = platform.TargetFromEnv(config.getenv)
	in.stackID = config.getenv(platform.VarStackID)
	return in, nil
}

func expectArguments(config Config, names ...string) error {
	if got := len(config.arguments) - 1; got != len(names) {
		return fail.Framework(
			errors.Errorf("expected %d arguments (%v) and received %d", len(names), names, got),
			"parse", "arguments",
		)
	}
	return nil
}
