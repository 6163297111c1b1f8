// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "ctxcopy "+Short()) {
		t.Errorf("Info() = %q, want prefix %q", info, "ctxcopy "+Short())
	}
	if !strings.Contains(info, Get().Platform) {
		t.Errorf("Info() = %q, missing platform %q", info, Get().Platform)
	}
}

func TestFromBuildInfoFillsGaps(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := fromBuildInfo(bi, true)
	if got.Version != "v1.4.0" {
		t.Errorf("Version = %q, want v1.4.0", got.Version)
	}
	if got.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want 0123456789ab", got.Commit)
	}
	if got.BuildDate != "2026-01-02T03:04:05Z" {
		t.Errorf("BuildDate = %q", got.BuildDate)
	}
	if !got.Modified {
		t.Error("Modified = false, want true")
	}
}

func TestFromBuildInfoKeepsLdflags(t *testing.T) {
	saved := Version
	Version = "2.0.0"
	defer func() { Version = saved }()

	got := fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	if got.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", got.Version)
	}

	got = fromBuildInfo(nil, false)
	if got.Commit != GitCommit {
		t.Errorf("Commit = %q, want %q", got.Commit, GitCommit)
	}
}
