package main

// Version information, overridable at build time via -ldflags
var (
	// Version is the current service version
	Version = "development"

	// GitCommit is set during build time
	GitCommit = "unknown"
)
