// pkg/version/version.go
package version

var (
	// Version is set at build time with -ldflags "-X serial-lister/pkg/version.Version=v1.2.3"
	Version = "dev"

	// Commit is the git commit hash at build time
	Commit = "unknown"

	// BuildDate is the date the binary was built
	BuildDate = "unknown"
)
