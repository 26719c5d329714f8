// Package version holds build metadata stamped in via -ldflags.
package version

// Populated at build time:
//
//	go build -ldflags "-X github.com/smartshell-ai/smartshell/internal/version.Version=v1.2.0 ..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
