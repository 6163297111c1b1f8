// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ctxcopy/internal/pii"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func TestLuhnCheck(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"4532015112830366", true},
		{"4532 0151 1283 0366", true},
		{"4532-0151-1283-0366", true},
		{"378282246310005", true},
		{"4532015112830367", false},
		{"123456789012", false},
		{"45320151128303661234", false},
		{"", false},
		{"not a number", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LuhnCheck(tt.input), tt.input)
	}
}

func TestValidateTFN(t *testing.T) {
	assert.True(t, ValidateTFN("123456782"))
	assert.True(t, ValidateTFN("123 456 782"))
	assert.False(t, ValidateTFN("123456789"))
	assert.False(t, ValidateTFN("12345"))
	assert.False(t, ValidateTFN(""))
}

func TestValidateABN(t *testing.T) {
	assert.True(t, ValidateABN("51824753556"))
	assert.True(t, ValidateABN("51 824 753 556"))
	assert.False(t, ValidateABN("51824753557"))
	assert.False(t, ValidateABN("61824753556"))
	assert.False(t, ValidateABN("01824753556"))
	assert.False(t, ValidateABN("abc"))
}

func TestValidateMedicare(t *testing.T) {
	assert.True(t, ValidateMedicare("2123 45670 1"))
	assert.True(t, ValidateMedicare("2123456701"))
	assert.False(t, ValidateMedicare("2123 45671 1"))
	assert.False(t, ValidateMedicare("1123 45670 1"))
	assert.False(t, ValidateMedicare("21234"))
}

func TestValidateRoutingNumber(t *testing.T) {
	assert.True(t, ValidateRoutingNumber("021000021"))
	assert.False(t, ValidateRoutingNumber("021000022"))
	assert.False(t, ValidateRoutingNumber("000000000"))
	assert.False(t, ValidateRoutingNumber("12345"))
}

func TestValidateIBAN(t *testing.T) {
	valid := []string{
		"GB82WEST12345698765432",
		"DE89370400440532013000",
		"FR1420041010050500013M02606",
		"GB82 WEST 1234 5698 7654 32",
		"gb82west12345698765432",
	}
	for _, iban := range valid {
		assert.True(t, ValidateIBAN(iban), iban)
	}

	invalid := []string{
		"GB82WEST12345698765433",
		"GB82WEST",
		"1282WEST12345698765432",
		"GB82WEST1234569876543!",
		"",
	}
	for _, iban := range invalid {
		assert.False(t, ValidateIBAN(iban), iban)
	}
}

func TestValidateEmail(t *testing.T) {
	r := ValidateEmail("john.smith@company.com.au")
	assert.True(t, r.IsValid)
	assert.Equal(t, 1.0, r.Confidence)

	for _, placeholder := range []string{"john@example.com", "a@test.com", "noreply@company.com", "x@mail.example.org"} {
		r := ValidateEmail(placeholder)
		assert.True(t, r.IsValid, placeholder)
		assert.Less(t, r.Confidence, 0.5, placeholder)
	}

	assert.False(t, IsValidEmail("not an email"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail(""))
}

func TestShapeValidators(t *testing.T) {
	assert.True(t, IsValidPhone("+61 2 9374 4000"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("1234567890123456"))

	assert.True(t, IsValidBSB("345-678"))
	assert.False(t, IsValidBSB("345-67"))

	assert.True(t, IsValidIPv4("192.168.1.20"))
	assert.False(t, IsValidIPv4("256.1.1.1"))
	assert.False(t, IsValidIPv4("1.2.3"))
	assert.False(t, IsValidIPv4("a.b.c.d"))

	assert.True(t, IsValidIPv6("2001:0db8:85a3:0000:0000:8a2e:0370:7334"))
	assert.True(t, IsValidIPv6("fe80::1"))
	assert.True(t, IsValidIPv6("::1"))
	assert.False(t, IsValidIPv6("1::2::3"))
	assert.False(t, IsValidIPv6("2001:db8:zzzz::1"))
	assert.False(t, IsValidIPv6("1:2:3:4:5:6:7"))

	assert.True(t, IsValidSWIFT("DEUTDEFF"))
	assert.True(t, IsValidSWIFT("DEUTDEFF500"))
	assert.False(t, IsValidSWIFT("HTTPSQQQ"))
	assert.False(t, IsValidSWIFT("DEUT"))
}

func TestValidateBirthDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		valid  bool
		reason string
	}{
		{"exactly 18", "2008-10-16", true, ""},
		{"exactly 50", "16/10/1976", true, ""},
		{"exactly 120", "1906-10-16", true, ""},
		{"month name", "15 March 1985", true, ""},
		{"age 17", "2008-10-17", false, "< 18"},
		{"age 121", "1905-10-16", false, "> 120"},
		{"future", "2027-01-01", false, "Future date"},
		{"february 30", "1986-02-30", false, "Invalid calendar date"},
		{"month 13", "1986-13-01", false, "Invalid calendar date"},
		{"garbage", "yesterday", false, "Unrecognized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateBirthDate(tt.input, fixedNow)
			assert.Equal(t, tt.valid, r.IsValid)
			if tt.reason != "" {
				assert.Contains(t, r.Reason, tt.reason)
			}
		})
	}

	future := ValidateBirthDate("2030-05-05", fixedNow)
	assert.Equal(t, 0.1, future.Confidence)
	assert.Equal(t, 0.9, ValidateBirthDate("1980-01-01", fixedNow).Confidence)
}

func TestCheckDispatch(t *testing.T) {
	assert.True(t, Check(pii.CreditCardVisa, "4532015112830366", fixedNow).IsValid)
	assert.False(t, Check(pii.CreditCard, "4532015112830367", fixedNow).IsValid)
	assert.False(t, Check(pii.TFN, "123456789", fixedNow).IsValid)
	assert.True(t, Check(pii.Address, "anything", fixedNow).IsValid)
	assert.True(t, Check(pii.Custom, "", fixedNow).IsValid)
	assert.False(t, Check(pii.DateOfBirth, "2008-10-17", fixedNow).IsValid)
	assert.True(t, Validate(pii.IBAN, "DE89370400440532013000"))
}
