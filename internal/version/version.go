package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/deplift/deplift/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/deplift/deplift/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/deplift/deplift/internal/version.Date={{.Date}}
)
