// Package version provides application version information.
// The values can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/cr-tools/internal/version.Version=v1.2.3 -X github.com/ramonehamilton/cr-tools/internal/version.Commit=abc1234"
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the application version. It defaults to "dev".
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = ""
)

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit, falling back to the revision
// recorded by the Go toolchain.
func GetCommit() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// String returns a one-line description of the build.
func String() string {
	commit := GetCommit()
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("cr-tools %s (%s)", GetVersion(), commit)
}
