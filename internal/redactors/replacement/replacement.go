// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package replacement provides a single source of truth for masked value
// generation. Every masking path calls Generate().
package replacement

import (
	"regexp"
	"strings"
	"unicode"

	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
	"ctxcopy/internal/security"
)

// Placeholder is returned for empty input and for values too short to partially reveal.
const Placeholder = "***"

// fullMask is the fixed short mask of the full strategy.
const fullMask = "********"

// Fixed literals for identifiers that are never partially revealed
const (
	tfnMask      = "*** *** ***"
	abnMask      = "** *** *** ***"
	medicareMask = "**** ***** *"
)

var (
	phonePrefix = regexp.MustCompile(`^(\+?\d{1,3}[-.\s]?)`)
	cardGroups  = regexp.MustCompile(`[\s-]+`)
)

// Generate returns the masked form of value for type t under strategy.
// It never fails; unknown types fall back to generic masking.
func Generate(value string, t pii.Type, strategy redactors.MaskingStrategy) string {
	if value == "" {
		if strategy == redactors.MaskingRedact {
			return Redact(t)
		}
		return Placeholder
	}

	switch strategy {
	case redactors.MaskingFull:
		return Full(value, t)
	case redactors.MaskingStructural:
		return Structural(value)
	case redactors.MaskingHash:
		return security.Hash(value, security.HashBase64Short)
	case redactors.MaskingRedact:
		return Redact(t)
	default:
		return Partial(value, t)
	}
}

// ─── Full / structural ───────────────────────────────────────────────────────

// Full returns the fixed mask for t.
func Full(value string, t pii.Type) string {
	if literal, ok := fixedLiteral(t); ok {
		return literal
	}
	return fullMask
}

// Structural masks every character and preserves the byte length.
func Structural(value string) string {
	return strings.Repeat("*", len(value))
}

func fixedLiteral(t pii.Type) (string, bool) {
	switch t {
	case pii.TFN:
		return tfnMask, true
	case pii.ABN:
		return abnMask, true
	case pii.Medicare:
		return medicareMask, true
	}
	return "", false
}

// ─── Redact ──────────────────────────────────────────────────────────────────

// Redact returns a bracketed label for the given type.
func Redact(t pii.Type) string {
	switch {
	case t.IsCreditCard():
		return "[CREDIT CARD REDACTED]"
	case t.IsPassport():
		return "[PASSPORT REDACTED]"
	case t.IsDriversLicense():
		return "[LICENSE REDACTED]"
	}

	switch t {
	case pii.Email:
		return "[EMAIL REDACTED]"
	case pii.Phone:
		return "[PHONE REDACTED]"
	case pii.SSN:
		return "[SSN REDACTED]"
	case pii.DateOfBirth:
		return "[DOB REDACTED]"
	case pii.Address:
		return "[ADDRESS REDACTED]"
	case pii.Name:
		return "[NAME REDACTED]"
	case pii.NationalID, pii.NationalInsuranceUK:
		return "[NATIONAL ID REDACTED]"
	case pii.BSB:
		return "[BSB REDACTED]"
	case pii.AccountNumber:
		return "[ACCOUNT REDACTED]"
	case pii.TFN:
		return "[TFN REDACTED]"
	case pii.ABN:
		return "[ABN REDACTED]"
	case pii.Medicare:
		return "[MEDICARE REDACTED]"
	case pii.IBAN:
		return "[IBAN REDACTED]"
	case pii.SWIFT:
		return "[SWIFT REDACTED]"
	case pii.RoutingNumber:
		return "[ROUTING REDACTED]"
	case pii.IPv4, pii.IPv6:
		return "[IP REDACTED]"
	case pii.MACAddress:
		return "[MAC REDACTED]"
	case pii.ReferenceNumber:
		return "[REFERENCE REDACTED]"
	case pii.TransactionID:
		return "[TRANSACTION REDACTED]"
	case pii.PolicyNumber:
		return "[POLICY REDACTED]"
	case pii.ClientNumber:
		return "[CLIENT REDACTED]"
	case pii.NMI:
		return "[NMI REDACTED]"
	default:
		return "[REDACTED]"
	}
}

// ─── Partial ─────────────────────────────────────────────────────────────────

// Partial keeps a type-appropriate hint of the original value.
func Partial(value string, t pii.Type) string {
	if t.IsCreditCard() {
		return maskCard(value)
	}
	if literal, ok := fixedLiteral(t); ok {
		return literal
	}

	switch t {
	case pii.Email:
		return maskEmail(value)
	case pii.Phone:
		return maskPhone(value)
	case pii.SSN:
		return maskSSN(value)
	case pii.DateOfBirth:
		return maskDate(value)
	case pii.BSB:
		return maskBSB(value)
	case pii.AccountNumber:
		return maskAccount(value)
	case pii.IPv4:
		return maskIPv4(value)
	case pii.IPv6:
		return maskIPv6(value)
	case pii.IBAN:
		return maskIBAN(value)
	case pii.SWIFT:
		return maskSWIFT(value)
	default:
		return Generic(value)
	}
}

// Generic keeps the first and last character. Values of three characters or fewer become Placeholder.
func Generic(value string) string {
	runes := []rune(value)
	if len(runes) <= 3 {
		return Placeholder
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

func maskEmail(value string) string {
	at := strings.LastIndexByte(value, '@')
	if at < 0 {
		return Generic(value)
	}
	local, domain := value[:at], value[at+1:]

	maskedLocal := Placeholder
	if runes := []rune(local); len(runes) > 2 {
		maskedLocal = string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
	}

	maskedDomain := Placeholder
	if domain != "" {
		maskedDomain = string([]rune(domain)[0]) + "***"
		if dot := strings.LastIndexByte(domain, '.'); dot >= 0 && dot < len(domain)-1 {
			maskedDomain += domain[dot:]
		}
	}
	return maskedLocal + "@" + maskedDomain
}

// maskDigitsExceptLast replaces every digit but the last keep with '*'; other characters stay.
func maskDigitsExceptLast(value string, keep int) string {
	total := len(digitsOnly(value))
	seen := 0
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= '0' && c <= '9' {
			seen++
			if seen <= total-keep {
				b.WriteByte('*')
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func maskPhone(value string) string {
	prefix := phonePrefix.FindString(value)
	rest := value[len(prefix):]
	if len(digitsOnly(rest)) <= 2 {
		return Generic(value)
	}
	return prefix + maskDigitsExceptLast(rest, 2)
}

func maskCard(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 8 {
		return Generic(value)
	}

	groups := len(cardGroups.Split(strings.TrimSpace(value), -1)) - 1
	if groups < 1 {
		groups = (len(digits) - 1) / 4
	}
	return strings.Repeat("**** ", groups) + digits[len(digits)-4:]
}

func maskSSN(value string) string {
	digits := digitsOnly(value)
	if len(strings.Split(value, "-")) != 3 || len(digits) < 4 {
		return Placeholder
	}
	return "***-**-" + digits[len(digits)-4:]
}

func maskDate(value string) string {
	sep := ""
	for _, s := range []string{"-", "/", ".", " "} {
		if strings.Contains(value, s) {
			sep = s
			break
		}
	}
	if sep == "" {
		return Generic(value)
	}

	parts := strings.Split(value, sep)
	if len(parts) != 3 {
		return Generic(value)
	}

	switch {
	case len(parts[0]) == 4:
		return parts[0] + sep + "**" + sep + "**"
	case len(parts[2]) == 4 && hasLetter(parts[1]):
		return "**" + sep + "***" + sep + parts[2]
	case len(parts[2]) == 4:
		return "**" + sep + "**" + sep + parts[2]
	default:
		return Generic(value)
	}
}

func maskBSB(value string) string {
	digits := digitsOnly(value)
	if len(digits) != 6 {
		return Generic(value)
	}
	sep := ""
	if i := strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		sep = value[i : i+1]
	}
	return "***" + sep + "*" + digits[5:]
}

func maskAccount(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 3 {
		return Placeholder
	}
	return "***" + digits[len(digits)-3:]
}

func maskIPv4(value string) string {
	parts := strings.Split(value, ".")
	if len(parts) != 4 {
		return Generic(value)
	}
	return parts[0] + ".*.*.*"
}

func maskIPv6(value string) string {
	first := value
	if i := strings.IndexByte(value, ':'); i >= 0 {
		first = value[:i]
	}
	if first == "" {
		first = "****"
	}
	return first + ":****:****:****:****:****:****:****"
}

func maskIBAN(value string) string {
	compact := strings.Join(strings.Fields(value), "")
	if len(compact) < 8 {
		return Generic(value)
	}
	return compact[:2] + strings.Repeat("*", len(compact)-6) + compact[len(compact)-4:]
}

func maskSWIFT(value string) string {
	if len(value) <= 4 {
		return Placeholder
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
