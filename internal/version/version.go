// Package version holds the build version, set with
// -ldflags "-X github.com/bnema/slack-now-playing/internal/version.Version=...".
package version

var Version = "dev"
