// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     version
// Description: Central version information for the library and CLI
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for chronos components
const (
	// Library version
	Chronos = "1.0.0"

	// Component versions
	CLI       = "1.0.0"
	ZoneStore = "1.0.0"
)

// Build metadata, overridden via -ldflags at release time.
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "cli":
		return CLI
	case "zonestore":
		return ZoneStore
	default:
		return Chronos
	}
}

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the current binary.
func Get() Info {
	return Info{
		Version:   Chronos,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("chronos v%s (%s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
