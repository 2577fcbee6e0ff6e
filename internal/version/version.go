// Package version reports the build version of tmtext.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const defaultModule = "github.com/csams/tmtext"

// buildVersion is set via -ldflags "-X github.com/csams/tmtext/internal/version.buildVersion=...".
var buildVersion = ""

// Current returns the best available version string
func Current() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "v0.0.0-unknown"
	}
	return fromBuildInfo(info)
}

// Module returns the module path from build info when available
func Module() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			return path
		}
	}
	return defaultModule
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v
	}
	if v := pseudoVersion(info.Settings); v != "" {
		return v
	}
	return "v0.0.0-unknown"
}

// pseudoVersion derives a Go style pseudo-version from VCS stamps
func pseudoVersion(settings []debug.BuildSetting) string {
	var revision, vcsTime string
	var modified bool
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" || vcsTime == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return ""
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	v := "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + revision
	if modified {
		v += "+dirty"
	}
	return v
}
