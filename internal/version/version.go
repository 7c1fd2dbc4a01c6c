// Package version carries build metadata injected at link time:
//
//	go build -ldflags "-X ...internal/version.Version=v1.2.3"
package version

var (
	// Version is the release version.
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)
