// Package version provides version information.
package version

// Version is set at build time via -ldflags "-X github.com/pressplay21/katello-installer-legacy/internal/version.Version=<value>"
// The default is a development placeholder.
var Version = "v1.4.3"
