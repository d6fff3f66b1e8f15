// Package version reports the memora build, set through -ldflags -X.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Info describes the running memora binary
type Info struct {
	Version   string
	BuildTime string
	Commit    string
	GoVersion string
	Platform  string
}

// Get returns the build info of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("memora %s (commit: %s, built: %s, %s %s)",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Short is the bare version, used by memora --version
func Short() string {
	return Version
}

// Full is the line printed by memora version
func Full() string {
	return Get().String()
}
