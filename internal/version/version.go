// Package version holds build metadata, set with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"     // ex: v0.1.0
	Commit    = "none"    // ex: abcd123
	BuildDate = "unknown" // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()
)

// String is the one-line build summary printed by `index version` and at
// startup.
func String() string {
	return fmt.Sprintf("index %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
