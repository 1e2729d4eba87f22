package main

import (
	"runtime/debug"
	"strings"

	"github.com/vitrine-cms/vitrine-setup/cmd"
)

// Version is stamped by release builds via
// -ldflags "-X main.Version=...". Dev builds fall back to module build info.
var Version = "dev"

func resolveVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return Version
	}

	// go install module@vX.Y.Z records the tag here.
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// No tag: fall back to the VCS revision when the build recorded one.
	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	parts := []string{"devel", rev}
	if modified == "true" {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "+")
}

func main() {
	cmd.SetVersion(resolveVersion())
	cmd.Execute()
}
