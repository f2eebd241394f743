// Package version holds build metadata injected via ldflags.
package version

// Build information. Populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)
