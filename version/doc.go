// Package version carries build information for the mercure binary. It backs
// the /info endpoint, the `mercure version` command and the User-Agent sent
// to remote hubs.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/mercurekit/version.Version=1.0.0" ./cmd/mercure
package version
