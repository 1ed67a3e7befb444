package platform

// # Buildpack Inputs
//
// The following variables are provided to buildpack executables by the lifecycle.
const (
	// VarBuildpackDir is the location of the buildpack, containing buildpack.toml and bin/.
	// If unset, the directory above the executable's bin/ directory is used.
	VarBuildpackDir = "CNB_BUILDPACK_DIR"

	// VarStackID is the chosen stack ID. It is deprecated in favour of the target variables.
	VarStackID = "CNB_STACK_ID"

	// VarPlatformDir and VarBuildPlanPath are provided to buildpacks implementing Buildpack API 0.8 and above.
	VarPlatformDir   = "CNB_PLATFORM_DIR"
	VarBuildPlanPath = "CNB_BUILD_PLAN_PATH"
	VarLayersDir     = "CNB_LAYERS_DIR"
	VarBPPlanPath    = "CNB_BP_PLAN_PATH"
)

// ## Target
//
// The following describe the target the image is being built for. They are provided to buildpacks
// implementing Buildpack API 0.10 and above.
const (
	VarTargetOS            = "CNB_TARGET_OS"
	VarTargetArch          = "CNB_TARGET_ARCH"
	VarTargetArchVariant   = "CNB_TARGET_ARCH_VARIANT"
	VarTargetDistroName    = "CNB_TARGET_DISTRO_NAME"
	VarTargetDistroVersion = "CNB_TARGET_DISTRO_VERSION"
)
