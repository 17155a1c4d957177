package version

import (
	"fmt"
	"runtime/debug"
)

// Version is overridden at build time with -ldflags "-X ...version.Version=<tag>".
var Version = "dev"

// String returns the version with the VCS revision when the binary carries one.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return Version
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty {
		revision += "-dirty"
	}

	return fmt.Sprintf("%s (%s)", Version, revision)
}
