// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxcopy/internal/config"
	"ctxcopy/internal/patterns"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, *performance.Metrics) {
	metrics := performance.NewMetrics()
	e := NewEngine(Options{
		Library: patterns.NewLibrary(metrics),
		Metrics: metrics,
		Now:     func() time.Time { return fixedNow },
	})
	return e, metrics
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatAuto},
		{"AUTO", FormatAuto},
		{" json ", FormatJSON},
		{"xml", FormatXML},
		{"csv", FormatCSV},
		{"plain", FormatText},
		{"text", FormatText},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("docx")
	assert.ErrorContains(t, err, "unknown document format")
}

func TestMaskTextPartialEmail(t *testing.T) {
	e, metrics := newTestEngine()
	text := "Contact: jane.doe@company.org for details"

	result := e.MaskText(text, config.DefaultMaskingConfig())
	assert.Equal(t, "Contact: j******e@c***.org for details", result.MaskedText)
	assert.True(t, result.MaskingApplied)

	require.Len(t, result.Detections, 1)
	det := result.Detections[0]
	assert.Equal(t, pii.Email, det.Type)
	assert.Equal(t, "jane.doe@company.org", det.OriginalValue)
	assert.Equal(t, "j******e@c***.org", det.MaskedValue)
	assert.Equal(t, 1, det.Line)
	assert.Equal(t, 9, det.Column)
	assert.Equal(t, 1.0, det.Confidence)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Detections.WithLabelValues("email")))
}

func TestMaskTextReportsLinesAndColumns(t *testing.T) {
	e, _ := newTestEngine()
	text := "Email: a.b@company.org\nphone: 415 555 0198"

	result := e.MaskText(text, config.DefaultMaskingConfig())
	assert.Equal(t, "Email: a*b@c***.org\nphone: 415 *** **98", result.MaskedText)

	require.Len(t, result.Detections, 2)
	assert.Equal(t, pii.Email, result.Detections[0].Type)
	assert.Equal(t, 1, result.Detections[0].Line)
	assert.Equal(t, 7, result.Detections[0].Column)
	assert.Equal(t, pii.Phone, result.Detections[1].Type)
	assert.Equal(t, 2, result.Detections[1].Line)
	assert.Equal(t, 7, result.Detections[1].Column)
}

func TestMaskTextStrategies(t *testing.T) {
	e, _ := newTestEngine()
	text := "Contact: jane.doe@company.org"

	tests := []struct {
		strategy redactors.MaskingStrategy
		want     string
	}{
		{redactors.MaskingFull, "Contact: ********"},
		{redactors.MaskingStructural, "Contact: " + strings.Repeat("*", len("jane.doe@company.org"))},
		{redactors.MaskingRedact, "Contact: [EMAIL REDACTED]"},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			cfg := config.DefaultMaskingConfig()
			cfg.Strategy = tt.strategy
			assert.Equal(t, tt.want, e.MaskText(text, cfg).MaskedText)
		})
	}

	cfg := config.DefaultMaskingConfig()
	cfg.Strategy = redactors.MaskingHash
	hashed := e.MaskText(text, cfg)
	require.Len(t, hashed.Detections, 1)
	assert.NotContains(t, hashed.MaskedText, "jane.doe")
	assert.Equal(t, hashed.MaskedText, e.MaskText(text, cfg).MaskedText)
}

func TestMaskTextCustomPatternReplacement(t *testing.T) {
	e, _ := newTestEngine()
	cfg := config.DefaultMaskingConfig()
	cfg.CustomPatterns = []config.CustomPattern{
		{Name: "employee", Pattern: `EMP-\d{5}`, Replacement: "EMP-#####", Enabled: true},
	}

	result := e.MaskText("Badge EMP-48213 issued", cfg)
	assert.Equal(t, "Badge EMP-##### issued", result.MaskedText)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, pii.Custom, result.Detections[0].Type)

	cfg.CustomPatterns[0].Replacement = ""
	assert.Equal(t, "Badge E*******3 issued", e.MaskText("Badge EMP-48213 issued", cfg).MaskedText)
}

func TestMaskTextAppliesPresetExclusively(t *testing.T) {
	e, _ := newTestEngine()
	text := "Contact: jane.doe@company.org, card number 4532 0151 1283 0366"

	cfg := config.DefaultMaskingConfig()
	cfg.Preset = config.PresetFinancial

	result := e.MaskText(text, cfg)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, pii.CreditCardVisa, result.Detections[0].Type)
	assert.Contains(t, result.MaskedText, "jane.doe@company.org")
	assert.Contains(t, result.MaskedText, "**** **** **** 0366")

	// the caller's config is not modified
	assert.True(t, cfg.Types[pii.Email])
}

func TestMaskTextDisabled(t *testing.T) {
	e, _ := newTestEngine()
	cfg := config.DefaultMaskingConfig()
	cfg.Enabled = false

	result := e.MaskText("jane.doe@company.org", cfg)
	assert.Equal(t, "jane.doe@company.org", result.MaskedText)
	assert.False(t, result.MaskingApplied)
	assert.NotNil(t, result.Detections)

	assert.Equal(t, "x", e.MaskText("x", nil).MaskedText)
	assert.Equal(t, "x", e.MaskJSON("x", nil).MaskedText)
	assert.Equal(t, "x", e.MaskXML("x", nil).MaskedText)
	assert.Equal(t, "x", e.MaskCSV("x", nil, "").MaskedText)
	assert.Equal(t, "x", e.MaskCDATA("x", nil).MaskedText)
}

func TestMaskJSON(t *testing.T) {
	e, metrics := newTestEngine()

	result := e.MaskJSON(`{"ssn": "234-56-7890"}`, config.DefaultMaskingConfig())
	assert.Equal(t, `{"ssn": "***-**-7890"}`, result.MaskedText)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, 9, result.Detections[0].Column)

	keyOnly := e.MaskJSON(`{"234-56-7890": "value"}`, config.DefaultMaskingConfig())
	assert.False(t, keyOnly.MaskingApplied)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("json")))
}

func TestMaskXMLWithoutCDATA(t *testing.T) {
	e, _ := newTestEngine()
	result := e.MaskXML("<customer><ssn>234-56-7890</ssn></customer>", config.DefaultMaskingConfig())
	assert.Equal(t, "<customer><ssn>***-**-7890</ssn></customer>", result.MaskedText)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, 15, result.Detections[0].Column)
}

func TestMaskXMLRoutesCDATAAndTranslatesPositions(t *testing.T) {
	e, metrics := newTestEngine()
	doc := "<note>\n" +
		"  <body><![CDATA[Contact jane.doe@company.org]]></body>\n" +
		"  <email>a.b@company.org</email>\n" +
		"</note>"

	result := e.MaskXML(doc, config.DefaultMaskingConfig())
	want := "<note>\n" +
		"  <body><![CDATA[Contact ********************]]></body>\n" +
		"  <email>a*b@c***.org</email>\n" +
		"</note>"
	assert.Equal(t, want, result.MaskedText)

	require.Len(t, result.Detections, 2)
	cdataDet, markupDet := result.Detections[0], result.Detections[1]
	assert.Equal(t, "jane.doe@company.org", cdataDet.OriginalValue)
	assert.Equal(t, 2, cdataDet.Line)
	assert.Equal(t, 25, cdataDet.Column)
	assert.Equal(t, strings.Repeat("*", 20), cdataDet.MaskedValue)

	assert.Equal(t, "a.b@company.org", markupDet.OriginalValue)
	assert.Equal(t, 3, markupDet.Line)
	assert.Equal(t, 9, markupDet.Column)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("cdata")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("xml")))
}

func TestMaskXMLMultilineCDATAColumns(t *testing.T) {
	e, _ := newTestEngine()
	doc := "<a><![CDATA[first line\nemail jane.doe@company.org]]></a>"

	result := e.MaskXML(doc, config.DefaultMaskingConfig())
	require.Len(t, result.Detections, 1)
	assert.Equal(t, 2, result.Detections[0].Line)
	assert.Equal(t, 6, result.Detections[0].Column, "columns after the first CDATA line are not shifted")
	assert.Equal(t, len(doc), len(result.MaskedText))
}

func TestMaskCDATAPreservesLength(t *testing.T) {
	e, _ := newTestEngine()
	cfg := config.DefaultMaskingConfig()
	cfg.Strategy = redactors.MaskingRedact

	inputs := []string{
		"",
		"Contact jane.doe@company.org",
		"ssn 234-56-7890 and card 4532 0151 1283 0366",
		"<not>a tag</not> 415 555 0198",
	}
	for _, in := range inputs {
		result := e.MaskCDATA(in, cfg)
		assert.Equal(t, len(in), len(result.MaskedText), in)
	}
}

func TestMaskCSV(t *testing.T) {
	e, _ := newTestEngine()
	text := "Name,Email,Phone\nJohn Smith,john@company.com,555-123-4567"

	result := e.MaskCSV(text, config.DefaultMaskingConfig(), "")
	assert.Equal(t, "Name,Email,Phone\nJohn Smith,j**n@c***.com,555-***-**67", result.MaskedText)

	cfg := config.DefaultMaskingConfig()
	cfg.Preset = config.PresetFinancial
	assert.False(t, e.MaskCSV(text, cfg, "").MaskingApplied)

	dataOnly := e.MaskCSV("John Smith,john@company.com,555-123-4567", config.DefaultMaskingConfig(), "Name,Email,Phone")
	assert.Equal(t, "John Smith,j**n@c***.com,555-***-**67", dataOnly.MaskedText)
}

func TestMaskDocumentAutoDetectsFormat(t *testing.T) {
	e, metrics := newTestEngine()
	cfg := config.DefaultMaskingConfig()

	csvDoc := e.MaskDocument("Name,Email,Phone\nJohn Smith,john@company.com,555-123-4567", cfg, FormatAuto)
	assert.Len(t, csvDoc.Detections, 2)
	assert.NotNil(t, csvDoc.Detections[0].ColumnContext)

	jsonDoc := e.MaskDocument(`{"ssn": "234-56-7890"}`, cfg, FormatAuto)
	assert.Equal(t, `{"ssn": "***-**-7890"}`, jsonDoc.MaskedText)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("json")))

	xmlDoc := e.MaskDocument("<ssn>234-56-7890</ssn>", cfg, FormatAuto)
	assert.Equal(t, "<ssn>***-**-7890</ssn>", xmlDoc.MaskedText)

	textDoc := e.MaskDocument("Contact: jane.doe@company.org", cfg, FormatText)
	assert.Equal(t, "Contact: j******e@c***.org", textDoc.MaskedText)
}

func TestMaskingIsDeterministic(t *testing.T) {
	e, _ := newTestEngine()
	doc := `<r><![CDATA[ssn 234-56-7890]]><email>a.b@company.org</email><phone>415 555 0198</phone></r>`
	cfg := config.DefaultMaskingConfig()

	first := e.MaskXML(doc, cfg)
	for i := 0; i < 5; i++ {
		again := e.MaskXML(doc, cfg)
		assert.Equal(t, first.MaskedText, again.MaskedText)
		assert.Len(t, again.Detections, len(first.Detections))
	}
	assert.NotEmpty(t, first.Detections)
}
