// Package libcnb implements the contract between a Cloud Native Buildpack and the lifecycle that runs it.
// Buildpack authors implement Buildpack and hand it to Main from the bin/detect and bin/build executables.
package libcnb

import (
	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/exit/fail"
)

//go:generate mockgen -package testmock -destination testmock/buildpack.go github.com/buildpacks/libcnb Buildpack

// Buildpack is the logic a buildpack author provides.
type Buildpack interface {
	// Detect decides whether the buildpack applies to the application.
	Detect(context DetectContext) (DetectResult, error)
	// Build contributes layers and declares launch configuration.
	Build(context BuildContext) (BuildResult, error)
}

// DetectFunc lets a plain function serve as the detect half of a Buildpack.
type DetectFunc func(context DetectContext) (DetectResult, error)

// BuildFunc lets a plain function serve as the build half of a Buildpack.
type BuildFunc func(context BuildContext) (BuildResult, error)

// BuildpackFuncs adapts a pair of functions to Buildpack. Running a phase whose function is nil is a framework error.
type BuildpackFuncs struct {
	Detector DetectFunc
	Builder  BuildFunc
}

func (b BuildpackFuncs) Detect(context DetectContext) (DetectResult, error) {
	if b.Detector == nil {
		return DetectResult{}, fail.Framework(errors.New("buildpack does not implement detect"), "run", "detect")
	}
	return b.Detector(context)
}

func (b BuildpackFuncs) Build(context BuildContext) (BuildResult, error) {
	if b.Builder == nil {
		return BuildResult{}, fail.Framework(errors.New("buildpack does not implement build"), "run", "build")
	}
	return b.Builder(context)
}
