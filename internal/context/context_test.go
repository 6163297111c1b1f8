// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ctxcopy/internal/pii"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func TestCheckStatisticalAnomalies(t *testing.T) {
	tests := []struct {
		name  string
		value string
		typ   pii.Type
		want  float64
	}{
		{"repeated digits", "411111", pii.Phone, 0.2},
		{"ascending run", "55-1234", pii.Phone, 0.3},
		{"descending run", "9876 5", pii.Phone, 0.3},
		{"sequential allowed for bsb", "123-456", pii.BSB, 1.0},
		{"sequential allowed for account", "81234567", pii.AccountNumber, 1.0},
		{"placeholder prefix", "XXXX-9921", pii.Custom, 0.1},
		{"placeholder word", "test@company.com", pii.Email, 0.1},
		{"zeros prefix", "0000 81", pii.Phone, 0.1},
		{"single character", "aaaa", pii.Name, 0.15},
		{"clean card", "4532015112830366", pii.CreditCardVisa, 1.0},
		{"clean email", "jane.doe@company.com", pii.Email, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckStatisticalAnomalies(tt.value, tt.typ))
		})
	}
}

func TestCalculateMaskingConfidence(t *testing.T) {
	score := func(text, value string, typ pii.Type) float64 {
		return CalculateMaskingConfidence(text, strings.Index(text, value), value, typ)
	}

	assert.Equal(t, 1.0, score("Email: jane.doe@company.com", "jane.doe@company.com", pii.Email))
	assert.InDelta(t, 0.65, score("test data jane.doe@company.com", "jane.doe@company.com", pii.Email), 1e-9)
	assert.InDelta(t, 0.75, score("call 4155550198 tomorrow", "4155550198", pii.Phone), 1e-9)
	assert.InDelta(t, 0.85, score("customer 4155550198", "4155550198", pii.Phone), 1e-9)
	assert.InDelta(t, 0.95, score("phone 4155550198", "4155550198", pii.Phone), 1e-9)
	assert.InDelta(t, 0.5, score("value 1qaz2wsx", "1qaz2wsx", pii.Type("unknown")), 1e-9)

	// anomaly exits early without context adjustments
	assert.InDelta(t, 0.1, score("phone 411111", "411111", pii.Phone), 1e-9)
}

func TestConfidenceWindowIsBounded(t *testing.T) {
	far := strings.Repeat(" ", 150)
	text := "sample" + far + "jane.doe@company.com"
	assert.Equal(t, 0.95, CalculateMaskingConfidence(text, strings.Index(text, "jane"), "jane.doe@company.com", pii.Email))
}

func TestGetAdaptiveThreshold(t *testing.T) {
	tests := []struct {
		base      float64
		structure Structure
		typ       pii.Type
		mode      pii.Mode
		want      float64
	}{
		{0.7, StructureXML, pii.Email, pii.ModeAuto, 0.6},
		{0.7, StructureJSON, pii.Email, pii.ModeAuto, 0.6},
		{0.7, StructurePlainText, pii.Email, pii.ModeAuto, 0.85},
		{0.7, StructureCSV, pii.Email, pii.ModeAuto, 0.7},
		{0.7, StructureCSV, pii.ReferenceNumber, pii.ModeAuto, 0.8},
		{0.7, StructureJSON, pii.Email, pii.ModeManual, 0.8},
		{0.7, StructureCSV, pii.Email, pii.ModeStrict, 0.8},
		{0.3, StructureJSON, pii.Email, pii.ModeAuto, 0.5},
		{0.9, StructurePlainText, pii.PolicyNumber, pii.ModeStrict, 0.95},
	}

	for _, tt := range tests {
		got := GetAdaptiveThreshold(tt.base, tt.structure, tt.typ, tt.mode)
		assert.InDelta(t, tt.want, got, 1e-9, "%v %v %v %v", tt.base, tt.structure, tt.typ, tt.mode)
	}
}

func TestDetectStructureType(t *testing.T) {
	assert.Equal(t, StructureXML, DetectStructureType("<bsb>", "</bsb>"))
	assert.Equal(t, StructureJSON, DetectStructureType(`{"email": "`, `"}`))
	assert.Equal(t, StructureJSON, DetectStructureType(`{"count": `, `}`))
	assert.Equal(t, StructureCSV, DetectStructureType("bob,", ""))
	assert.Equal(t, StructureCSV, DetectStructureType("", ",next"))
	assert.Equal(t, StructurePlainText, DetectStructureType("Name: ", " ok"))
}

func TestDetectDocument(t *testing.T) {
	sd := NewStructureDetector()

	assert.Equal(t, StructureXML, sd.DetectDocument(`<?xml version="1.0"?><a>1</a>`, ""))
	assert.Equal(t, StructureXML, sd.DetectDocument("  <customer><id>1</id></customer>", ""))
	assert.Equal(t, StructureJSON, sd.DetectDocument(`{"a": 1}`, ""))
	assert.Equal(t, StructureJSON, sd.DetectDocument("[1, 2]", ""))
	assert.Equal(t, StructureCSV, sd.DetectDocument("name,email\nbob,b@x.com\n", ""))
	assert.Equal(t, StructurePlainText, sd.DetectDocument("a,b\nc", ""))
	assert.Equal(t, StructurePlainText, sd.DetectDocument("hello world", ""))
	assert.Equal(t, StructurePlainText, sd.DetectDocument("", ""))
	assert.Equal(t, StructureCSV, sd.DetectDocument("anything", "people.CSV"))
}

func TestIsInsideFieldName(t *testing.T) {
	doc := "<bsb>345-678</bsb>"
	assert.True(t, IsInsideFieldName(doc, 1, len("bsb")))
	assert.False(t, IsInsideFieldName(doc, strings.Index(doc, "345-678"), len("345-678")))

	key := `{"345-678": "x"}`
	assert.True(t, IsInsideFieldName(key, 2, 7))

	value := `{"bsb": "345-678"}`
	assert.False(t, IsInsideFieldName(value, strings.Index(value, "345-678"), 7))

	attr := `<account id="345-678">`
	assert.True(t, IsInsideFieldName(attr, strings.Index(attr, "345-678"), 7))

	assert.False(t, IsInsideFieldName("plain 345-678 text", 6, 7))
	assert.False(t, IsInsideFieldName("", 0, 0))
}

func TestFieldNameLookbackBound(t *testing.T) {
	build := func(filler int) (string, int) {
		text := "<![CDATA[" + strings.Repeat("a", filler) + "345-678 more ]]></x>"
		return text, strings.Index(text, "345-678")
	}

	text, idx := build(288)
	assert.True(t, IsInsideFieldName(text, idx, 7), "unclosed '<' within the lookback")

	text, idx = build(291)
	assert.True(t, IsInsideFieldName(text, idx, 7))

	text, idx = build(400)
	assert.False(t, IsInsideFieldName(text, idx, 7), "'<' beyond the lookback is not seen")
	assert.True(t, Guard{Lookback: 500, Forward: 50}.IsInsideFieldName(text, idx, 7))
}

func TestBirthDateFieldChecks(t *testing.T) {
	at := func(text, value string) int { return strings.Index(text, value) }

	dob := "Date of birth: 15/03/1985"
	assert.True(t, IsBirthDateField(dob, at(dob, "15/03")))
	assert.False(t, IsNonBirthDateField(dob, at(dob, "15/03")))
	assert.True(t, ShouldMaskAsDateOfBirth(dob, at(dob, "15/03"), "15/03/1985", fixedNow))

	service := "Service date: 15/03/1985"
	assert.False(t, IsBirthDateField(service, at(service, "15/03")))
	assert.True(t, IsNonBirthDateField(service, at(service, "15/03")))
	assert.False(t, ShouldMaskAsDateOfBirth(service, at(service, "15/03"), "15/03/1985", fixedNow))

	nearest := "Expiry 2030, DOB: 1985-03-15"
	assert.True(t, ShouldMaskAsDateOfBirth(nearest, at(nearest, "1985"), "1985-03-15", fixedNow))

	shadowed := "DOB on file. Renewal: 1985-03-15"
	assert.False(t, IsBirthDateField(shadowed, at(shadowed, "1985")))

	young := "DOB: 2015-03-15"
	assert.False(t, ShouldMaskAsDateOfBirth(young, at(young, "2015"), "2015-03-15", fixedNow))

	unlabelled := "Meeting on 1985-03-15"
	assert.False(t, ShouldMaskAsDateOfBirth(unlabelled, at(unlabelled, "1985"), "1985-03-15", fixedNow))
}
