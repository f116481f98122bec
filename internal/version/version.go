// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/jobmatch/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, shortCommit(), Date)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
