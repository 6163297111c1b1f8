// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexGroup   = regexp.MustCompile(`^[0-9a-fA-F]{1,4}$`)
	swiftShape = regexp.MustCompile(`^[A-Z]{4}([A-Z]{2})[A-Z0-9]{2}(?:[A-Z0-9]{3})?$`)
)

// Placeholder domains that are shape-valid but almost never real PII
var testEmailDomains = []string{
	"example.com",
	"test.com",
	"sample.com",
	"localhost",
	"example.net",
	"example.org",
}

// testEmailConfidence caps the score of shape-valid placeholder addresses
const testEmailConfidence = 0.3

// ValidateEmail checks the address shape and flags placeholder addresses as low confidence.
func ValidateEmail(value string) Result {
	email := strings.ToLower(strings.TrimSpace(value))
	if !emailShape.MatchString(email) {
		return invalid("Invalid email format")
	}

	if strings.Contains(email, "noreply@") {
		return Result{IsValid: true, Confidence: testEmailConfidence, Reason: "No-reply address"}
	}
	domain := email[strings.LastIndexByte(email, '@')+1:]
	for _, d := range testEmailDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return Result{IsValid: true, Confidence: testEmailConfidence, Reason: "Test or placeholder domain"}
		}
	}
	return valid()
}

// IsValidEmail is the boolean form of ValidateEmail
func IsValidEmail(value string) bool {
	return ValidateEmail(value).IsValid
}

// IsValidPhone requires 7 to 15 digits
func IsValidPhone(value string) bool {
	n := len(digitsOnly(value))
	return n >= 7 && n <= 15
}

// IsValidBSB requires exactly 6 digits
func IsValidBSB(value string) bool {
	return len(digitsOnly(value)) == 6
}

// IsValidIPv4 checks four dot-separated octets in 0-255
func IsValidIPv4(value string) bool {
	parts := strings.Split(value, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 || digitsOnly(p) != p {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// IsValidIPv6 accepts 8 colon groups of 1-4 hex digits, or the compressed
// "::" form with at most 8 groups.
func IsValidIPv6(value string) bool {
	if strings.Count(value, "::") > 1 {
		return false
	}

	if !strings.Contains(value, "::") {
		groups := strings.Split(value, ":")
		return len(groups) == 8 && allHexGroups(groups)
	}

	halves := strings.SplitN(value, "::", 2)
	var groups []string
	for _, h := range halves {
		if h == "" {
			continue
		}
		groups = append(groups, strings.Split(h, ":")...)
	}
	return len(groups) <= 7 && allHexGroups(groups)
}

func allHexGroups(groups []string) bool {
	for _, g := range groups {
		if !hexGroup.MatchString(g) {
			return false
		}
	}
	return true
}

// IsValidSWIFT checks a BIC: bank code, ISO country, location, optional branch.
func IsValidSWIFT(value string) bool {
	m := swiftShape.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return false
	}
	_, ok := isoCountries[m[1]]
	return ok
}

// ISO 3166-1 alpha-2 codes
var isoCountries = func() map[string]struct{} {
	codes := strings.Fields(`
AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ BA BB BD BE BF BG BH BI BJ BL
BM BN BO BQ BR BS BT BV BW BY BZ CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV
CW CX CY CZ DE DJ DK DM DO DZ EC EE EG EH ER ES ET FI FJ FK FM FO FR GA GB GD
GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY HK HM HN HR HT HU ID IE IL IM
IN IO IQ IR IS IT JE JM JO JP KE KG KH KI KM KN KP KR KW KY KZ LA LB LC LI LK
LR LS LT LU LV LY MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW
MX MY MZ NA NC NE NF NG NI NL NO NP NR NU NZ OM PA PE PF PG PH PK PL PM PN PR
PS PT PW PY QA RE RO RS RU RW SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS
ST SV SX SY SZ TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ UA UG UM US UY
UZ VA VC VE VG VI VN VU WF WS XK YE YT ZA ZM ZW`)
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}()
