// Package version holds build metadata injected with -ldflags, e.g.
// go build -ldflags "-X git.home.luguber.info/inful/mdsplit/internal/version.Version=v1.0.0".
package version

import "fmt"

// Version is the release version.
var Version = "dev"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version for the --version flag.
func String() string {
	return fmt.Sprintf("mdsplit %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
