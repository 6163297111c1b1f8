// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"ctxcopy/internal/pii"
)

func TestParseTypesToMask_All(t *testing.T) {
	cases := []struct {
		name  string
		input []string
	}{
		{"empty slice enables all", []string{}},
		{"explicit all enables all", []string{"all"}},
		{"all is case-insensitive", []string{" ALL "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, unknown := ParseTypesToMask(tc.input)
			if len(unknown) != 0 {
				t.Errorf("expected no unknown names, got %v", unknown)
			}
			for k, v := range result {
				if !v {
					t.Errorf("expected type %q to be enabled, got false", k)
				}
			}
		})
	}
}

func TestParseTypesToMask_Specific(t *testing.T) {
	result, _ := ParseTypesToMask([]string{"email", " SSN "})
	if !result[pii.Email] {
		t.Error("email should be enabled")
	}
	if !result[pii.SSN] {
		t.Error("ssn should be enabled after trimming whitespace")
	}
	if result[pii.Phone] {
		t.Error("phone should not be enabled")
	}
	if len(result) != len(pii.AllTypes()) {
		t.Errorf("expected an entry for every type, got %d", len(result))
	}
}

func TestParseTypesToMask_UnknownReported(t *testing.T) {
	result, unknown := ParseTypesToMask([]string{"UNKNOWN_CHECK", "email", ""})
	if !result[pii.Email] {
		t.Error("email should be enabled")
	}
	if len(unknown) != 1 || unknown[0] != "UNKNOWN_CHECK" {
		t.Errorf("expected UNKNOWN_CHECK to be reported, got %v", unknown)
	}
}

func TestParseConfidenceLevels_All(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"all keyword", "all"},
		{"empty string", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseConfidenceLevels(tc.input)
			for _, level := range []string{"high", "medium", "low"} {
				if !result[level] {
					t.Errorf("expected level %q to be enabled", level)
				}
			}
		})
	}
}

func TestParseConfidenceLevels_Specific(t *testing.T) {
	result := ParseConfidenceLevels("high,medium")
	if !result["high"] {
		t.Error("high should be enabled")
	}
	if !result["medium"] {
		t.Error("medium should be enabled")
	}
	if result["low"] {
		t.Error("low should not be enabled")
	}
}

func TestParseConfidenceLevels_CaseInsensitive(t *testing.T) {
	result := ParseConfidenceLevels("HIGH,Medium,LOW")
	for _, level := range []string{"high", "medium", "low"} {
		if !result[level] {
			t.Errorf("expected level %q to be enabled (case-insensitive)", level)
		}
	}
}

func TestParseConfidenceLevels_Whitespace(t *testing.T) {
	result := ParseConfidenceLevels(" high , low ")
	if !result["high"] {
		t.Error("high should be enabled after trimming")
	}
	if !result["low"] {
		t.Error("low should be enabled after trimming")
	}
	if result["medium"] {
		t.Error("medium should not be enabled")
	}
}
