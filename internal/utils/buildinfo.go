// Package utils provides shared helpers: logging, version lookup, and common names.
package utils

import (
	"runtime/debug"
)

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"
)

// Version may be set at build time with -ldflags "-X github.com/tyemirov/dirtree/internal/utils.Version=v1.0.0".
var Version = ""

// GetApplicationVersion returns the linked version, then the module version from build info, then "unknown".
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
