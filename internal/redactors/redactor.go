// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import "strings"

// MaskingStrategy defines the shape of a masked value
type MaskingStrategy int

const (
	// MaskingPartial keeps a type-appropriate hint (last digits, domain, year)
	MaskingPartial MaskingStrategy = iota
	// MaskingFull replaces the value with a fixed short mask
	MaskingFull
	// MaskingStructural replaces every character, preserving length
	MaskingStructural
	// MaskingHash replaces the value with a short deterministic digest
	MaskingHash
	// MaskingRedact replaces the value with a bracketed type label
	MaskingRedact
)

// String returns the string representation of the masking strategy
func (ms MaskingStrategy) String() string {
	switch ms {
	case MaskingPartial:
		return "partial"
	case MaskingFull:
		return "full"
	case MaskingStructural:
		return "structural"
	case MaskingHash:
		return "hash"
	case MaskingRedact:
		return "redact"
	default:
		return "unknown"
	}
}

// ParseMaskingStrategy converts a string to MaskingStrategy
func ParseMaskingStrategy(s string) MaskingStrategy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return MaskingFull
	case "structural":
		return MaskingStructural
	case "hash":
		return MaskingHash
	case "redact":
		return MaskingRedact
	default:
		return MaskingPartial // Default fallback
	}
}

// Masker is implemented by the specialized masking paths
type Masker interface {
	// GetComponentName returns the component name for observability
	GetComponentName() string
}
