package env

import (
	"runtime"
	"strings"
)

var BuildEnvIncludelist = []string{
	"CNB_STACK_ID",
	"CNB_TARGET_OS",
	"CNB_TARGET_ARCH",
	"CNB_TARGET_ARCH_VARIANT",
	"CNB_TARGET_DISTRO_NAME",
	"CNB_TARGET_DISTRO_VERSION",
	"HOSTNAME",
	"HOME",
	"HTTPS_PROXY",
	"https_proxy",
	"HTTP_PROXY",
	"http_proxy",
	"NO_PROXY",
	"no_proxy",
}

var ignoreEnvVarCase = runtime.GOOS == "windows"

// NewBuildEnv returns a build-time Env from the given environment, as the lifecycle
// provides it to a buildpack with clear-env set.
//
// Keys in the BuildEnvIncludelist and the root directory variables are kept.
func NewBuildEnv(environ []string) *Env {
	return &Env{
		RootDirMap: POSIXBuildEnv,
		Vars:       VarsFromEnviron(environ, isNotIncluded),
		Policy:     DefaultPolicy(),
	}
}

func matches(k1, k2 string) bool {
	if ignoreEnvVarCase {
		k1 = strings.ToUpper(k1)
		k2 = strings.ToUpper(k2)
	}
	return k1 == k2
}

func isNotIncluded(k string) bool {
	for _, wk := range BuildEnvIncludelist {
		if matches(wk, k) {
			return false
		}
	}
	for _, wks := range POSIXBuildEnv {
		for _, wk := range wks {
			if matches(wk, k) {
				return false
			}
		}
	}
	return true
}

var POSIXBuildEnv = map[string][]string{
	"bin": {
		"PATH",
	},
	"lib": {
		"LD_LIBRARY_PATH",
		"LIBRARY_PATH",
	},
	"include": {
		"CPATH",
	},
	"pkgconfig": {
		"PKG_CONFIG_PATH",
	},
}
