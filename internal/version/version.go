// Package version holds build metadata, overridden at link time with
// -ldflags "-X .../internal/version.Version=v1.2.3 ...".
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)
