package platform

import (
	"fmt"
	"runtime"
)

// Target describes the operating system and architecture being built for.
type Target struct {
	OS            string `toml:"os"`
	Arch          string `toml:"arch"`
	ArchVariant   string `toml:"arch-variant"`
	DistroName    string `toml:"distro-name"`
	DistroVersion string `toml:"distro-version"`
}

// TargetFromEnv reads the CNB_TARGET_* variables, falling back to the running binary's
// OS and architecture when the platform does not provide them.
func TargetFromEnv(getenv func(string) string) Target {
	t := Target{
		OS:            getenv(VarTargetOS),
		Arch:          getenv(VarTargetArch),
		ArchVariant:   getenv(VarTargetArchVariant),
		DistroName:    getenv(VarTargetDistroName),
		DistroVersion: getenv(VarTargetDistroVersion),
	}
	if t.OS == "" {
		t.OS = runtime.GOOS
	}
	if t.Arch == "" {
		t.Arch = runtime.GOARCH
	}
	return t
}

func (t Target) String() string {
	if t.DistroName != "" {
		return fmt.Sprintf("OS: %s, Arch: %s, ArchVariant: %s, Distribution: (Name: %s, Version: %s)", t.OS, t.Arch, t.ArchVariant, t.DistroName, t.DistroVersion)
	}
	return fmt.Sprintf("OS: %s, Arch: %s, ArchVariant: %s", t.OS, t.Arch, t.ArchVariant)
}
