package cli

import "runtime/debug"

const developmentVersionConstant = "dev"

// Version is stamped at build time with -ldflags "-X github.com/temirov/grb/cmd/cli.Version=...".
var Version = ""

// ResolveVersion returns the stamped version, then the module version recorded by go install,
// then "dev".
func ResolveVersion() string {
	if len(Version) > 0 {
		return Version
	}
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if moduleVersion := buildInfo.Main.Version; len(moduleVersion) > 0 && moduleVersion != "(devel)" {
			return moduleVersion
		}
	}
	return developmentVersionConstant
}
