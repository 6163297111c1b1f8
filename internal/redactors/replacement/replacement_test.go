// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package replacement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
	"ctxcopy/internal/security"
)

func TestPartialMasking(t *testing.T) {
	tests := []struct {
		name  string
		typ   pii.Type
		input string
		want  string
	}{
		{"generic", pii.Address, "42 Wallaby Way", "4************y"},
		{"generic short", pii.Name, "Bob", "***"},
		{"email", pii.Email, "john.smith@company.com.au", "j********h@c***.au"},
		{"email short local", pii.Email, "jo@company.com", "***@c***.com"},
		{"phone with area code", pii.Phone, "555-123-4567", "555-***-**67"},
		{"phone international", pii.Phone, "+61 2 9374 4000", "+61 * **** **00"},
		{"phone parenthesised", pii.Phone, "(02) 9374 4000", "(**) **** **00"},
		{"card grouped", pii.CreditCardVisa, "4532 0151 1283 0366", "**** **** **** 0366"},
		{"card compact", pii.CreditCard, "4532015112830366", "**** **** **** 0366"},
		{"amex", pii.CreditCardAmex, "3782 822463 10005", "**** **** 0005"},
		{"ssn", pii.SSN, "123-45-6789", "***-**-6789"},
		{"ssn without dashes", pii.SSN, "123456789", "***"},
		{"dob year first", pii.DateOfBirth, "1985-03-15", "1985-**-**"},
		{"dob year last", pii.DateOfBirth, "15/03/1985", "**/**/1985"},
		{"dob dotted", pii.DateOfBirth, "15.03.1985", "**.**.1985"},
		{"dob month name", pii.DateOfBirth, "15 March 1985", "** *** 1985"},
		{"bsb", pii.BSB, "345-678", "***-*8"},
		{"bsb compact", pii.BSB, "345678", "****8"},
		{"account", pii.AccountNumber, "12345678", "***678"},
		{"tfn", pii.TFN, "123 456 782", "*** *** ***"},
		{"abn", pii.ABN, "51 824 753 556", "** *** *** ***"},
		{"medicare", pii.Medicare, "2123 45670 1", "**** ***** *"},
		{"ipv4", pii.IPv4, "192.168.1.20", "192.*.*.*"},
		{"ipv6", pii.IPv6, "fe80::1", "fe80:****:****:****:****:****:****:****"},
		{"iban", pii.IBAN, "GB82 WEST 1234 5698 7654 32", "GB****************5432"},
		{"swift", pii.SWIFT, "DEUTDEFF500", "DEUT*******"},
		{"unknown type", pii.Type("mystery"), "abcdef", "a****f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input, tt.typ, redactors.MaskingPartial))
		})
	}
}

func TestOtherStrategies(t *testing.T) {
	assert.Equal(t, "********", Generate("john@company.com", pii.Email, redactors.MaskingFull))
	assert.Equal(t, "*** *** ***", Generate("123 456 782", pii.TFN, redactors.MaskingFull))
	assert.Equal(t, "****************", Generate("john@company.com", pii.Email, redactors.MaskingStructural))
	assert.Equal(t, "[EMAIL REDACTED]", Generate("john@company.com", pii.Email, redactors.MaskingRedact))
	assert.Equal(t, "[CREDIT CARD REDACTED]", Generate("4532015112830366", pii.CreditCardVisa, redactors.MaskingRedact))
	assert.Equal(t, "[REDACTED]", Generate("x", pii.Custom, redactors.MaskingRedact))

	hashed := Generate("john@company.com", pii.Email, redactors.MaskingHash)
	assert.Equal(t, security.Hash("john@company.com", security.HashBase64Short), hashed)
	assert.Len(t, hashed, 8)
}

func TestEmptyInput(t *testing.T) {
	for _, s := range []redactors.MaskingStrategy{redactors.MaskingPartial, redactors.MaskingFull, redactors.MaskingStructural, redactors.MaskingHash} {
		assert.Equal(t, Placeholder, Generate("", pii.Email, s))
	}
	assert.Equal(t, "[PHONE REDACTED]", Generate("", pii.Phone, redactors.MaskingRedact))
}

func TestMaskingIsDeterministic(t *testing.T) {
	for _, typ := range pii.AllTypes() {
		for _, s := range []redactors.MaskingStrategy{redactors.MaskingPartial, redactors.MaskingHash} {
			assert.Equal(t, Generate("value-12345", typ, s), Generate("value-12345", typ, s))
		}
	}
}
