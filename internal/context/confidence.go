// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"regexp"
	"strings"

	"ctxcopy/internal/pii"
)

// defaultPrior applies to types missing from the table
const defaultPrior = 0.5

// priors is the base probability that a raw pattern match is real PII.
var priors = map[pii.Type]float64{
	pii.Email:                0.95,
	pii.CreditCard:           0.85,
	pii.CreditCardVisa:       0.9,
	pii.CreditCardMastercard: 0.9,
	pii.CreditCardAmex:       0.9,
	pii.CreditCardDiscover:   0.9,
	pii.CreditCardDiners:     0.9,
	pii.CreditCardJCB:        0.9,
	pii.SSN:                  0.9,
	pii.Medicare:             0.85,
	pii.IBAN:                 0.9,
	pii.TFN:                  0.85,
	pii.ABN:                  0.85,
	pii.NationalInsuranceUK:  0.85,
	pii.DriversLicenseUK:     0.85,
	pii.IPv6:                 0.85,
	pii.IPv4:                 0.8,
	pii.DateOfBirth:          0.8,
	pii.Phone:                0.75,
	pii.DriversLicense:       0.75,
	pii.NationalID:           0.75,
	pii.MACAddress:           0.75,
	pii.Address:              0.7,
	pii.BSB:                  0.7,
	pii.SWIFT:                0.7,
	pii.Passport:             0.7,
	pii.PassportUS:           0.65,
	pii.PassportAU:           0.65,
	pii.Name:                 0.6,
	pii.DriversLicenseUS:     0.6,
	pii.RoutingNumber:        0.6,
	pii.NMI:                  0.6,
	pii.AccountNumber:        0.55,
	pii.PolicyNumber:         0.55,
	pii.PassportUK:           0.5,
	pii.PassportEU:           0.5,
	pii.ReferenceNumber:      0.5,
	pii.TransactionID:        0.5,
	pii.ClientNumber:         0.5,
	pii.DriversLicenseAU:     0.45,
	pii.Custom:               0.9,
}

// Prior returns the base probability for t
func Prior(t pii.Type) float64 {
	if p, ok := priors[t]; ok {
		return p
	}
	return defaultPrior
}

const (
	contextRadius = 100

	positiveBoost = 0.1
	negativeHit   = 0.3
	fieldBoost    = 0.2

	// below this the anomaly alone decides the score
	anomalyCutoff = 0.5
)

var (
	positiveKeywords = []string{"user", "customer", "client", "member", "contact", "personal", "private"}
	negativeKeywords = []string{"example", "sample", "test", "demo", "dummy", "placeholder"}
	fieldKeywords    = []string{
		"email", "phone", "ssn", "account", "card", "passport", "license",
		"licence", "birth", "dob", "bsb", "tfn", "abn", "medicare", "iban", "swift",
	}

	placeholderPrefixes = []string{
		"xxxx", "0000", "n/a", "tbd", "todo", "test", "example", "dummy", "placeholder", "sample",
	}

	nonWord   = regexp.MustCompile(`\W`)
	digitRuns = regexp.MustCompile(`\d+`)
)

// Anomaly multipliers
const (
	repeatedDigitsMultiplier = 0.2
	sequentialMultiplier     = 0.3
	placeholderMultiplier    = 0.1
	singleCharMultiplier     = 0.15
	noAnomaly                = 1.0
)

// sequentialByDesign are identifiers whose legitimate values often contain digit runs
func sequentialByDesign(t pii.Type) bool {
	switch t {
	case pii.BSB, pii.RoutingNumber, pii.SWIFT, pii.IBAN, pii.NMI,
		pii.ReferenceNumber, pii.TransactionID, pii.PolicyNumber, pii.ClientNumber, pii.AccountNumber:
		return true
	}
	return false
}

// CheckStatisticalAnomalies returns a multiplier in (0,1] that is low for
// values that look synthetic: repeated digits, counting runs, placeholders.
func CheckStatisticalAnomalies(value string, t pii.Type) float64 {
	if hasRepeatedDigits(value, 5) {
		return repeatedDigitsMultiplier
	}
	if !sequentialByDesign(t) && hasSequentialRun(value, 4) {
		return sequentialMultiplier
	}

	lower := strings.ToLower(value)
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return placeholderMultiplier
		}
	}

	stripped := nonWord.ReplaceAllString(value, "")
	if len(stripped) > 1 && strings.Count(stripped, stripped[:1]) == len(stripped) {
		return singleCharMultiplier
	}
	return noAnomaly
}

func hasRepeatedDigits(value string, n int) bool {
	run := 0
	var prev byte
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < '0' || c > '9' {
			run = 0
			continue
		}
		if run > 0 && c == prev {
			run++
		} else {
			run = 1
		}
		prev = c
		if run >= n {
			return true
		}
	}
	return false
}

// hasSequentialRun looks for an ascending or descending window of width digits
// inside a contiguous digit run.
func hasSequentialRun(value string, width int) bool {
	for _, run := range digitRuns.FindAllString(value, -1) {
		for i := 0; i+width <= len(run); i++ {
			up, down := true, true
			for j := 1; j < width; j++ {
				diff := int(run[i+j]) - int(run[i+j-1])
				up = up && diff == 1
				down = down && diff == -1
			}
			if up || down {
				return true
			}
		}
	}
	return false
}

// CalculateMaskingConfidence scores how likely the match at matchIndex is real PII.
func CalculateMaskingConfidence(text string, matchIndex int, matchValue string, t pii.Type) float64 {
	anomaly := CheckStatisticalAnomalies(matchValue, t)
	if anomaly < anomalyCutoff {
		return anomaly * 0.5
	}

	confidence := Prior(t) * anomaly

	window := strings.ToLower(Window(text, matchIndex, len(matchValue), contextRadius))
	if containsAny(window, positiveKeywords) {
		confidence += positiveBoost
	}
	if containsAny(window, negativeKeywords) {
		confidence -= negativeHit
	}
	if containsAny(window, fieldKeywords) {
		confidence += fieldBoost
	}

	return clamp(confidence, 0, 1)
}

// Window returns the text from radius bytes before the match to radius bytes
// after it, clamped to the text bounds.
func Window(text string, index, length, radius int) string {
	start := index - radius
	if start < 0 {
		start = 0
	}
	end := index + length + radius
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return text[start:end]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
