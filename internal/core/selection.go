// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"ctxcopy/internal/pii"
)

// ParseTypesToMask converts type names into an enablement map covering every
// type. An empty slice or ["all"] enables every type. Names that are not PII
// types are returned separately.
func ParseTypesToMask(names []string) (map[pii.Type]bool, []string) {
	result := make(map[pii.Type]bool)
	for _, t := range pii.AllTypes() {
		result[t] = false
	}

	if len(names) == 0 || (len(names) == 1 && strings.EqualFold(strings.TrimSpace(names[0]), "all")) {
		for t := range result {
			result[t] = true
		}
		return result, nil
	}

	var unknown []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := pii.ParseType(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		result[t] = true
	}

	return result, unknown
}

// ParseConfidenceLevels converts a comma-separated confidence level string into a map.
// "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}
