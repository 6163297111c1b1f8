// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minPlausibleAge = 18
	maxPlausibleAge = 120

	birthDateConfidence  = 0.9
	futureDateConfidence = 0.1
)

var (
	yearFirstDate = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)
	yearLastDate  = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})$`)
	monthNameDate = regexp.MustCompile(`^(\d{1,2})[\s-]([A-Za-z]{3,9})[\s-](\d{4})$`)
)

var monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// ValidateBirthDate checks that value (YYYY-MM-DD, DD-MM-YYYY or "15 March 1985")
// is a real calendar date giving an age between 18 and 120 on now.
func ValidateBirthDate(value string, now time.Time) Result {
	year, month, day, ok := parseNumericDate(value)
	if !ok {
		return invalid("Unrecognized date format")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return invalid("Invalid calendar date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return Result{IsValid: false, Confidence: futureDateConfidence, Reason: "Future date"}
	}

	age := today.Year() - year
	if today.Month() < date.Month() || (today.Month() == date.Month() && today.Day() < day) {
		age--
	}

	switch {
	case age < minPlausibleAge:
		return invalid(fmt.Sprintf("Implausible age: %d < %d", age, minPlausibleAge))
	case age > maxPlausibleAge:
		return invalid(fmt.Sprintf("Implausible age: %d > %d", age, maxPlausibleAge))
	}
	return Result{IsValid: true, Confidence: birthDateConfidence}
}

// IsPlausibleBirthDate is the boolean form of ValidateBirthDate
func IsPlausibleBirthDate(value string, now time.Time) bool {
	return ValidateBirthDate(value, now).IsValid
}

func parseNumericDate(value string) (year, month, day int, ok bool) {
	if m := yearFirstDate.FindStringSubmatch(value); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		return year, month, day, true
	}
	if m := yearLastDate.FindStringSubmatch(value); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		return year, month, day, true
	}
	if m := monthNameDate.FindStringSubmatch(value); m != nil {
		name := strings.ToLower(m[2])
		for i, prefix := range monthPrefixes {
			if strings.HasPrefix(name, prefix) {
				day, _ = strconv.Atoi(m[1])
				year, _ = strconv.Atoi(m[3])
				return year, i + 1, day, true
			}
		}
	}
	return 0, 0, 0, false
}
