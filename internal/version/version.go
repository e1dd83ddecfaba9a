// Package version reports the build-time version of this module, the
// way internal/cueversion reports cuelang.org/go's, for use in the
// compatibility check (§6) and linelist's cli_version column.
package version

import (
	"runtime/debug"
	"sync"
)

const modulePath = "github.com/ktmeaton/rebar-sub000"

// ToolVersion returns the semantic version of this module as best as
// can be determined from build info, falling back to "(devel)" when
// none is available (e.g. `go run` from a working tree).
func ToolVersion() string {
	return toolVersionOnce()
}

var toolVersionOnce = sync.OnceValue(func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if bi.Main.Path == modulePath && bi.Main.Version != "" {
		return bi.Main.Version
	}
	for _, m := range bi.Deps {
		if m.Replace != nil && m.Replace.Path == modulePath {
			return m.Replace.Version
		}
		if m.Path == modulePath {
			return m.Version
		}
	}
	return "(devel)"
})
