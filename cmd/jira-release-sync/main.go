// jira-release-sync - CI glue for Jira release versions
package main

import (
	"os"

	"github.com/releasekit/jira-release-sync/internal/cli"
	"github.com/releasekit/jira-release-sync/internal/version"
)

// Version information, overridden by ldflags in release builds.
var (
	Version   = "v1.3.0-dev"
	BuildTime = "unknown"
)

func main() {
	// Set version in the version package (canonical source) and the CLI
	// package (used in command help text).
	version.Version = Version
	version.BuildTime = BuildTime
	cli.Version = Version
	cli.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
