// Package version carries build metadata injected via ldflags.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
	BinaryName = "argocd-mcp-server"
)

// Info returns a single-line version string for the --version flag.
func Info() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", BinaryName, Version, CommitHash, BuildTime)
}
