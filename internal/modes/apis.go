package modes

import (
	"fmt"

	"github.com/buildpacks/libcnb/api"
	"github.com/buildpacks/libcnb/internal/env"
	"github.com/buildpacks/libcnb/log"
)

const (
	EnvDeprecation     = "CNB_DEPRECATION_MODE"
	DefaultDeprecation = Warn

	Quiet = "quiet"
	Warn  = "warn"
	Error = "error"
)

// DeprecationFrom reads CNB_DEPRECATION_MODE.
func DeprecationFrom(getenv func(string) string) string {
	return env.OrDefault(getenv, EnvDeprecation, DefaultDeprecation)
}

// VerifyBuildpackAPI reports a deprecated Buildpack API according to mode.
func VerifyBuildpackAPI(bp string, requested string, apis api.APIs, mode string, logger log.Logger) error {
	requestedAPI, err := api.NewVersion(requested)
	if err != nil {
		return fmt.Errorf("failed to parse buildpack API '%s' for buildpack '%s'", requested, bp)
	}
	if !apis.IsSupported(requestedAPI) {
		return buildpackAPIError(bp, requested)
	}
	if apis.IsDeprecated(requestedAPI) {
		switch mode {
		case Quiet:
			break
		case Error:
			logger.Errorf("Buildpack '%s' requests deprecated API '%s'", bp, requested)
			logger.Errorf("Deprecated APIs are disabled by %s=%s", EnvDeprecation, Error)
			return buildpackAPIError(bp, requested)
		default:
			logger.Warnf("Buildpack '%s' requests deprecated API '%s'", bp, requested)
		}
	}
	return nil
}

func buildpackAPIError(bp string, requested string) error {
	return fmt.Errorf("buildpack '%s' requests buildpack API version '%s' which is incompatible with this framework", bp, requested)
}
