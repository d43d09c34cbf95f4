// Package buildinfo reports which build of genfigs produced an artifact.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/eborriello/genfigs/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/eborriello/genfigs/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Unstamped builds fall back to the module and VCS data the Go toolchain
// embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

var fillOnce sync.Once

// fill completes unset fields from the embedded build info.
func fill() {
	fillOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if Commit == "none" {
					Commit = s.Value
				}
			case "vcs.time":
				if Date == "unknown" {
					Date = s.Value
				}
			}
		}
	})
}

// Short returns the version, and the commit prefix when known. It is part
// of every cache key, so artifacts from different builds never mix.
func Short() string {
	fill()
	if Commit == "none" || len(Commit) < 7 {
		return Version
	}
	return Version + "+" + Commit[:7]
}

// String returns the formatted build information.
func String() string {
	fill()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	fill()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
