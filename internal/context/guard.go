// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"regexp"
	"strings"
	"time"

	"ctxcopy/internal/validators"
)

const (
	// DefaultLookback is how far back the guard searches for an unclosed tag or key quote.
	// Matches further than this into a large CDATA block can be misclassified.
	DefaultLookback = 300
	DefaultForward  = 50
)

var jsonKeyAfter = regexp.MustCompile(`^\s*"?\s*:`)

// Guard suppresses matches that sit in a tag name, attribute region or JSON key.
type Guard struct {
	Lookback int
	Forward  int
}

// DefaultGuard returns a guard with the standard windows
func DefaultGuard() Guard {
	return Guard{Lookback: DefaultLookback, Forward: DefaultForward}
}

// IsInsideFieldName reports whether the match is part of a field name rather than a value.
func (g Guard) IsInsideFieldName(text string, matchIndex, matchLength int) bool {
	lookback, forward := g.Lookback, g.Forward
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	if forward <= 0 {
		forward = DefaultForward
	}

	if matchIndex < 0 || matchIndex > len(text) {
		return false
	}
	start := matchIndex - lookback
	if start < 0 {
		start = 0
	}
	before := text[start:matchIndex]

	afterStart := matchIndex + matchLength
	if afterStart > len(text) {
		afterStart = len(text)
	}
	afterEnd := afterStart + forward
	if afterEnd > len(text) {
		afterEnd = len(text)
	}
	after := text[afterStart:afterEnd]

	lastOpen := strings.LastIndexByte(before, '<')
	lastClose := strings.LastIndexByte(before, '>')
	if lastOpen > lastClose && strings.Contains(after, ">") {
		return true
	}

	lastQuote := strings.LastIndexByte(before, '"')
	if lastQuote >= 0 && lastQuote > lastClose && jsonKeyAfter.MatchString(after) {
		return true
	}
	return false
}

// IsInsideFieldName applies the default guard.
func IsInsideFieldName(text string, matchIndex, matchLength int) bool {
	return DefaultGuard().IsInsideFieldName(text, matchIndex, matchLength)
}

const dateKeywordLookback = 100

var (
	birthKeywords    = []string{"birth", "dob", "born", "bday", "b-day"}
	nonBirthKeywords = []string{
		"service", "effective", "expiry", "expiration", "expires", "transaction", "issue",
		"created", "updated", "modified", "start date", "end date", "due", "payment", "invoice",
		"order", "delivery", "appointment", "admission", "discharge", "renewal",
	}
)

// nearestKeyword returns the end offset of the last keyword occurrence in s, or -1.
func nearestKeyword(s string, keywords []string) int {
	best := -1
	for _, k := range keywords {
		if i := strings.LastIndex(s, k); i >= 0 && i+len(k) > best {
			best = i + len(k)
		}
	}
	return best
}

func dateLookback(text string, matchIndex int) string {
	if matchIndex > len(text) {
		matchIndex = len(text)
	}
	if matchIndex < 0 {
		return ""
	}
	start := matchIndex - dateKeywordLookback
	if start < 0 {
		start = 0
	}
	return strings.ToLower(text[start:matchIndex])
}

// IsBirthDateField reports whether a birth keyword precedes the date and is
// nearer than any exclusion keyword.
func IsBirthDateField(text string, matchIndex int) bool {
	window := dateLookback(text, matchIndex)
	birth := nearestKeyword(window, birthKeywords)
	return birth >= 0 && birth > nearestKeyword(window, nonBirthKeywords)
}

// IsNonBirthDateField reports whether an exclusion keyword (service date,
// expiry, ...) is the nearest label before the date.
func IsNonBirthDateField(text string, matchIndex int) bool {
	window := dateLookback(text, matchIndex)
	other := nearestKeyword(window, nonBirthKeywords)
	return other >= 0 && other > nearestKeyword(window, birthKeywords)
}

// ShouldMaskAsDateOfBirth requires both a birth label and a plausible age.
func ShouldMaskAsDateOfBirth(text string, matchIndex int, value string, now time.Time) bool {
	return IsBirthDateField(text, matchIndex) && validators.IsPlausibleBirthDate(value, now)
}
