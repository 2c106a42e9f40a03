// Package buildinfo carries the version stamped in by the linker.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" && c != "unknown" {
		if len(c) > 12 {
			c = c[:12]
		}
		return c
	}
	return "dev"
}

// String is the full line printed by the version command.
func String() string {
	return fmt.Sprintf("calc %s (commit %s, built %s, %s %s/%s)",
		Version, commit(), Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// commit prefers the linker-stamped value and falls back to the VCS
// revision the go tool records.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return Commit
}
