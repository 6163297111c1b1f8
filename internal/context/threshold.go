// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import "ctxcopy/internal/pii"

const (
	minThreshold = 0.5
	maxThreshold = 0.95
)

// GetAdaptiveThreshold shifts the configured base threshold for the
// surrounding structure, the type and the masking mode. Structured documents
// lower the bar; prose, business identifiers and stricter modes raise it.
func GetAdaptiveThreshold(base float64, structure Structure, t pii.Type, mode pii.Mode) float64 {
	threshold := base

	switch structure {
	case StructureXML, StructureJSON:
		threshold -= 0.1
	case StructurePlainText:
		threshold += 0.15
	}

	if t.IsBusinessIdentifier() {
		threshold += 0.1
	}

	switch mode {
	case pii.ModeStrict:
		threshold += 0.1
	case pii.ModeManual:
		threshold += 0.2
	}

	return clamp(threshold, minThreshold, maxThreshold)
}
