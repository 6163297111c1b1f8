// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validators confirms that a pattern match is structurally valid for
// the type it claims. Validators never panic and treat malformed input as invalid.
package validators

import (
	"strings"
	"time"

	"ctxcopy/internal/pii"
)

// Result is the rich form of a validation. Confidence caps the detector's
// score for values that are valid but suspicious.
type Result struct {
	IsValid    bool
	Confidence float64
	Reason     string
}

func valid() Result {
	return Result{IsValid: true, Confidence: 1.0}
}

func invalid(reason string) Result {
	return Result{IsValid: false, Confidence: 0, Reason: reason}
}

func fromBool(ok bool, reason string) Result {
	if ok {
		return valid()
	}
	return invalid(reason)
}

// Check validates value as type t. Types with no structural rule are always valid.
func Check(t pii.Type, value string, now time.Time) Result {
	switch {
	case t.IsCreditCard():
		return fromBool(LuhnCheck(value), "Luhn checksum failed")
	}

	switch t {
	case pii.Email:
		return ValidateEmail(value)
	case pii.Phone:
		return fromBool(IsValidPhone(value), "Phone digit count outside 7-15")
	case pii.TFN:
		return fromBool(ValidateTFN(value), "TFN checksum failed")
	case pii.ABN:
		return fromBool(ValidateABN(value), "ABN checksum failed")
	case pii.Medicare:
		return fromBool(ValidateMedicare(value), "Medicare checksum failed")
	case pii.IBAN:
		return fromBool(ValidateIBAN(value), "IBAN mod-97 check failed")
	case pii.BSB:
		return fromBool(IsValidBSB(value), "BSB must have 6 digits")
	case pii.RoutingNumber:
		return fromBool(ValidateRoutingNumber(value), "Routing checksum failed")
	case pii.SWIFT:
		return fromBool(IsValidSWIFT(value), "Not a SWIFT/BIC code")
	case pii.IPv4:
		return fromBool(IsValidIPv4(value), "Not an IPv4 address")
	case pii.IPv6:
		return fromBool(IsValidIPv6(value), "Not an IPv6 address")
	case pii.DateOfBirth:
		return ValidateBirthDate(value, now)
	default:
		return valid()
	}
}

// Validate is the boolean form of Check
func Validate(t pii.Type, value string) bool {
	return Check(t, value, time.Now()).IsValid
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
