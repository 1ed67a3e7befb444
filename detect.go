package libcnb

import (
	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/log"
	"github.com/buildpacks/libcnb/platform"
)

// DetectContext is the input to Buildpack.Detect.
type DetectContext struct {
	// AppDir is the location of the application source code.
	AppDir string

	// Buildpack is the parsed buildpack.toml.
	Buildpack *buildpack.Descriptor

	// Platform is the contents of the platform directory.
	Platform platform.Platform

	// Target is the image target the lifecycle is building for.
	Target platform.Target

	// StackID is the deprecated stack identifier, empty on newer platforms.
	StackID string

	Logger log.Logger
}

// DetectResult is the outcome of Buildpack.Detect.
type DetectResult struct {
	// Pass indicates the buildpack applies.
	Pass bool

	// Plan is what the buildpack provides and requires. It is only written on Pass.
	Plan buildpack.BuildPlan
}

// DetectFail is the result of a buildpack that does not apply.
func DetectFail() DetectResult {
	return DetectResult{}
}

// DetectPass is the result of a buildpack that applies with plan.
func DetectPass(plan buildpack.BuildPlan) DetectResult {
	return DetectResult{Pass: true, Plan: plan}
}

// Detect runs the detect phase: bin/detect <platform> <plan>.
//
// A passing result exits 0, a failing one 100 with nothing written, and errors exit with the code of their kind.
func Detect(bp Buildpack, options ...Option) {
	config := newConfig(options...)

	pass, err := runDetect(bp, config)
	switch {
	case err != nil:
		config.exitHandler.Error(err)
	case !pass:
		config.exitHandler.Fail()
	default:
		config.exitHandler.Pass()
	}
}

func runDetect(bp Buildpack, config Config) (bool, error) {
	logger := config.logger
	timer := log.NewFuncTimer("Detect", logger)
	defer timer.RecordEnd()

	if err := expectArguments(config, "platform", "plan"); err != nil {
		return false, err
	}
	platformDir, planPath := config.arguments[1], config.arguments[2]

	in, err := readInputs(config, platformDir)
	if err != nil {
		return false, err
	}
	logger.Debugf("Detecting %s", log.Symbol(in.descriptor.String()))

	result, err := bp.Detect(DetectContext{
		AppDir:    in.appDir,
		Buildpack: in.descriptor,
		Platform:  in.platform,
		Target:    in.target,
		StackID:   in.stackID,
		Logger:    logger,
	})
	if err != nil {
		return false, fail.Buildpack(err)
	}
	if !result.Pass {
		logger.Debug("Buildpack does not apply")
		return false, nil
	}

	if !result.Plan.IsEmpty() {
		if err := buildpack.WriteBuildPlan(planPath, result.Plan); err != nil {
			return false, err
		}
	}
	return true, nil
}
