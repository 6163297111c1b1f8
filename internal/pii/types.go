// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pii holds the closed set of PII categories and the value types that
// flow out of every masking entry point.
package pii

import "strings"

// Type identifies a PII category. Values are the lower-camel tags used in
// configuration ("email", "creditCardVisa", ...).
type Type string

const (
	Email                Type = "email"
	Phone                Type = "phone"
	SSN                  Type = "ssn"
	CreditCard           Type = "creditCard"
	CreditCardVisa       Type = "creditCardVisa"
	CreditCardMastercard Type = "creditCardMastercard"
	CreditCardAmex       Type = "creditCardAmex"
	CreditCardDiscover   Type = "creditCardDiscover"
	CreditCardDiners     Type = "creditCardDiners"
	CreditCardJCB        Type = "creditCardJcb"
	DateOfBirth          Type = "dateOfBirth"
	Address              Type = "address"
	Name                 Type = "name"
	Passport             Type = "passport"
	PassportUS           Type = "passportUS"
	PassportAU           Type = "passportAU"
	PassportUK           Type = "passportUK"
	PassportEU           Type = "passportEU"
	DriversLicense       Type = "driversLicense"
	DriversLicenseUS     Type = "driversLicenseUS"
	DriversLicenseAU     Type = "driversLicenseAU"
	DriversLicenseUK     Type = "driversLicenseUK"
	NationalID           Type = "nationalID"
	NationalInsuranceUK  Type = "nationalInsuranceUK"
	BSB                  Type = "bsb"
	AccountNumber        Type = "accountNumber"
	TFN                  Type = "tfn"
	ABN                  Type = "abn"
	Medicare             Type = "medicare"
	IBAN                 Type = "iban"
	SWIFT                Type = "swift"
	RoutingNumber        Type = "routingNumber"
	IPv4                 Type = "ipv4"
	IPv6                 Type = "ipv6"
	MACAddress           Type = "macAddress"
	ReferenceNumber      Type = "referenceNumber"
	TransactionID        Type = "transactionID"
	PolicyNumber         Type = "policyNumber"
	ClientNumber         Type = "clientNumber"
	NMI                  Type = "nmi"
	Custom               Type = "custom"
)

// allTypes is the canonical ordering. Detection order between overlapping
// patterns follows it, so more specific shapes come first.
var allTypes = []Type{
	Email,
	IBAN,
	CreditCardVisa,
	CreditCardMastercard,
	CreditCardAmex,
	CreditCardDiscover,
	CreditCardDiners,
	CreditCardJCB,
	CreditCard,
	SSN,
	ABN,
	TFN,
	Medicare,
	BSB,
	SWIFT,
	IPv6,
	IPv4,
	MACAddress,
	DriversLicenseUK,
	NationalInsuranceUK,
	PassportUS,
	PassportAU,
	PassportUK,
	PassportEU,
	Passport,
	DriversLicenseUS,
	DriversLicenseAU,
	DriversLicense,
	NationalID,
	DateOfBirth,
	Phone,
	RoutingNumber,
	AccountNumber,
	ReferenceNumber,
	TransactionID,
	PolicyNumber,
	ClientNumber,
	NMI,
	Address,
	Name,
	Custom,
}

var byName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// AllTypes returns every known type in canonical order. The slice is a copy.
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType maps a configuration string to a Type. Matching is case-insensitive.
// The second return is false for unknown names, in which case Custom is returned.
func ParseType(s string) (Type, bool) {
	if t, ok := byName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, true
	}
	return Custom, false
}

// IsKnown reports whether t is one of the closed set of types.
func (t Type) IsKnown() bool {
	_, ok := byName[strings.ToLower(string(t))]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// IsCreditCard reports whether t is the generic card type or one of the network variants.
func (t Type) IsCreditCard() bool {
	switch t {
	case CreditCard, CreditCardVisa, CreditCardMastercard, CreditCardAmex,
		CreditCardDiscover, CreditCardDiners, CreditCardJCB:
		return true
	}
	return false
}

// IsPassport reports whether t is a passport type.
func (t Type) IsPassport() bool {
	switch t {
	case Passport, PassportUS, PassportAU, PassportUK, PassportEU:
		return true
	}
	return false
}

// IsDriversLicense reports whether t is a driver licence type.
func (t Type) IsDriversLicense() bool {
	switch t {
	case DriversLicense, DriversLicenseUS, DriversLicenseAU, DriversLicenseUK:
		return true
	}
	return false
}

// IsBusinessIdentifier reports whether t is one of the low-reliability
// business identifiers that need a higher threshold.
func (t Type) IsBusinessIdentifier() bool {
	switch t {
	case ReferenceNumber, TransactionID, PolicyNumber, ClientNumber:
		return true
	}
	return false
}

// Mode shifts the adaptive confidence threshold.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
	ModeStrict Mode = "strict"
)

// ParseMode maps a configuration string to a Mode, defaulting to auto.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeManual:
		return ModeManual
	case ModeStrict:
		return ModeStrict
	default:
		return ModeAuto
	}
}
