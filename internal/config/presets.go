// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"ctxcopy/internal/pii"
)

// Preset names an exclusive allow-list of types
type Preset string

const (
	PresetNone       Preset = "none"
	PresetDefault    Preset = "default"
	PresetCustom     Preset = "custom"
	PresetBasic      Preset = "basic"
	PresetFinancial  Preset = "financial"
	PresetHealthcare Preset = "healthcare"
	PresetEnterprise Preset = "enterprise"
	PresetPrivacy    Preset = "privacy"
	PresetStrict     Preset = "strict"
)

var creditCards = []pii.Type{
	pii.CreditCard, pii.CreditCardVisa, pii.CreditCardMastercard, pii.CreditCardAmex,
	pii.CreditCardDiscover, pii.CreditCardDiners, pii.CreditCardJCB,
}

var passports = []pii.Type{pii.Passport, pii.PassportUS, pii.PassportAU, pii.PassportUK, pii.PassportEU}

var driversLicenses = []pii.Type{pii.DriversLicense, pii.DriversLicenseUS, pii.DriversLicenseAU, pii.DriversLicenseUK}

func join(groups ...[]pii.Type) []pii.Type {
	var out []pii.Type
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var presetTypes = map[Preset][]pii.Type{
	PresetBasic: join(
		[]pii.Type{pii.Email, pii.Phone, pii.SSN},
		creditCards,
	),
	PresetFinancial: join(
		creditCards,
		[]pii.Type{
			pii.BSB, pii.AccountNumber, pii.IBAN, pii.SWIFT, pii.RoutingNumber,
			pii.TFN, pii.ABN, pii.TransactionID, pii.ClientNumber,
		},
	),
	PresetHealthcare: []pii.Type{
		pii.Name, pii.DateOfBirth, pii.Address, pii.Phone, pii.Email,
		pii.Medicare, pii.SSN, pii.NationalID, pii.PolicyNumber, pii.ClientNumber,
	},
	PresetEnterprise: join(
		[]pii.Type{
			pii.Email, pii.Phone, pii.Address, pii.Name, pii.SSN, pii.AccountNumber,
			pii.BSB, pii.IBAN, pii.SWIFT, pii.TFN, pii.ABN, pii.NationalID, pii.IPv4, pii.IPv6,
			pii.ReferenceNumber, pii.PolicyNumber, pii.ClientNumber, pii.TransactionID,
		},
		creditCards,
		passports,
		driversLicenses,
	),
	PresetPrivacy: join(
		[]pii.Type{
			pii.Email, pii.Phone, pii.Name, pii.Address, pii.DateOfBirth, pii.SSN,
			pii.IPv4, pii.IPv6, pii.MACAddress, pii.NationalID, pii.NationalInsuranceUK,
		},
		passports,
		driversLicenses,
	),
}

// ParsePreset maps a configuration string to a Preset. Unknown names are treated as none.
func ParsePreset(s string) Preset {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PresetDefault, PresetCustom, PresetBasic, PresetFinancial, PresetHealthcare,
		PresetEnterprise, PresetPrivacy, PresetStrict:
		return p
	}
	return PresetNone
}

// IsOverlay reports whether applying p changes type enablement
func (p Preset) IsOverlay() bool {
	switch p {
	case PresetNone, PresetDefault, PresetCustom, "":
		return false
	}
	return true
}

// PresetTypes returns the allow-list for p, or nil for non-overlay presets.
func PresetTypes(p Preset) []pii.Type {
	if p == PresetStrict {
		var out []pii.Type
		for _, t := range pii.AllTypes() {
			if t != pii.Custom {
				out = append(out, t)
			}
		}
		return out
	}
	return append([]pii.Type(nil), presetTypes[p]...)
}

// ApplyPreset returns a copy of cfg whose types are exactly the preset's
// list. Presets are exclusive: a type outside the list is disabled even if
// it was enabled before.
func ApplyPreset(cfg *MaskingConfig) *MaskingConfig {
	out := cfg.Clone()
	if !cfg.Preset.IsOverlay() {
		return out
	}

	allowed := make(map[pii.Type]bool)
	for _, t := range PresetTypes(cfg.Preset) {
		allowed[t] = true
	}
	for _, t := range pii.AllTypes() {
		out.Types[t] = allowed[t]
	}
	return out
}

// OverlayPresets lists the presets that restrict type enablement, in display order
func OverlayPresets() []Preset {
	return []Preset{PresetBasic, PresetFinancial, PresetHealthcare, PresetEnterprise, PresetPrivacy, PresetStrict}
}
