// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
)

// DefaultConfidenceThreshold is the base threshold before adaptive adjustment
const DefaultConfidenceThreshold = 0.7

// CustomPattern is a user-defined detection rule
type CustomPattern struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Pattern     string `mapstructure:"pattern" yaml:"pattern"`
	Replacement string `mapstructure:"replacement" yaml:"replacement"`
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
}

// MaskingConfig is the resolved configuration for one masking operation.
// Values returned by a Processor are shared and must not be modified.
type MaskingConfig struct {
	Enabled             bool
	Mode                pii.Mode
	Strategy            redactors.MaskingStrategy
	Preset              Preset
	DenyList            []string
	AllowList           []string
	Types               map[pii.Type]bool
	ShowIndicator       bool
	IncludeStats        bool
	CustomPatterns      []CustomPattern
	ConfidenceThreshold float64
}

// disabledByDefault are types whose patterns are too broad to run unless asked for
var disabledByDefault = map[pii.Type]bool{
	pii.IPv4:             true,
	pii.IPv6:             true,
	pii.MACAddress:       true,
	pii.RoutingNumber:    true,
	pii.PassportUK:       true,
	pii.PassportEU:       true,
	pii.DriversLicenseAU: true,
	pii.ReferenceNumber:  true,
	pii.TransactionID:    true,
	pii.PolicyNumber:     true,
	pii.ClientNumber:     true,
	pii.NMI:              true,
}

// DefaultTypes returns the default enablement table, one entry per known type.
func DefaultTypes() map[pii.Type]bool {
	types := make(map[pii.Type]bool)
	for _, t := range pii.AllTypes() {
		types[t] = !disabledByDefault[t]
	}
	return types
}

// DefaultMaskingConfig returns the configuration used when no settings are supplied
func DefaultMaskingConfig() *MaskingConfig {
	return &MaskingConfig{
		Enabled:             true,
		Mode:                pii.ModeAuto,
		Strategy:            redactors.MaskingPartial,
		Preset:              PresetNone,
		Types:               DefaultTypes(),
		ShowIndicator:       true,
		IncludeStats:        false,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// IsEnabled reports whether type t is switched on
func (c *MaskingConfig) IsEnabled(t pii.Type) bool {
	return c.Types[t]
}

// EnabledTypes returns a copy of the enablement table
func (c *MaskingConfig) EnabledTypes() map[pii.Type]bool {
	out := make(map[pii.Type]bool, len(c.Types))
	for t, on := range c.Types {
		out[t] = on
	}
	return out
}

// ActiveCustomPatterns returns the enabled custom rules. They only run while the custom type is enabled.
func (c *MaskingConfig) ActiveCustomPatterns() []CustomPattern {
	if !c.Types[pii.Custom] {
		return nil
	}
	var out []CustomPattern
	for _, p := range c.CustomPatterns {
		if p.Enabled && p.Pattern != "" {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy that is safe to modify
func (c *MaskingConfig) Clone() *MaskingConfig {
	clone := *c
	clone.Types = c.EnabledTypes()
	clone.DenyList = append([]string(nil), c.DenyList...)
	clone.AllowList = append([]string(nil), c.AllowList...)
	clone.CustomPatterns = append([]CustomPattern(nil), c.CustomPatterns...)
	return &clone
}
