// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

const developmentVersion = "0.0.0-development"

// Set through -ldflags "-X ctxcopy/internal/version.Version=..." at release time.
// Unset values fall back to the build info embedded by the go tool.
var (
	Version   = developmentVersion
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	Modified  bool   `json:"modified"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

var (
	resolveOnce sync.Once
	resolved    BuildInfo
)

// Get returns the build information, filling gaps left by -ldflags from the
// module and VCS stamps recorded in the binary.
func Get() BuildInfo {
	resolveOnce.Do(func() {
		resolved = fromBuildInfo(debug.ReadBuildInfo())
	})
	return resolved
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if !ok || bi == nil {
		return info
	}

	if info.Version == developmentVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
				if len(info.Commit) > 12 {
					info.Commit = info.Commit[:12]
				}
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Info returns the one-line version banner printed by --version
func Info() string {
	b := Get()
	commit := b.Commit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("ctxcopy %s (commit: %s, built: %s, go: %s, platform: %s)",
		b.Version, commit, b.BuildDate, b.GoVersion, b.Platform)
}

// Short returns just the version number
func Short() string {
	return Get().Version
}
