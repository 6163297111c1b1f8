// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import "ctxcopy/internal/pii"

// Definition is an uncompiled pattern. Flags follow the familiar literal
// syntax: "i" makes the pattern case-insensitive; "g" is implied because every
// lookup finds all matches.
//
// When a pattern has a capture group, only the first group is the sensitive
// value and the rest of the match is label text that stays visible.
type Definition struct {
	Source string
	Flags  string
}

// Shared value shape for label-led identifiers: alphanumerics and dashes with at least one digit.
const labelledValue = `([A-Z0-9-]{0,24}\d[A-Z0-9-]{0,24})\b`

const numberLabel = `(?:\s*(?:no\.?|number|num|#))?\s*[:#-]?\s*`

var definitions = map[pii.Type]Definition{
	pii.Email: {Source: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`},
	pii.Phone: {Source: `(?:\+\d{1,3}[-.\s]?)?(?:\(\d{1,4}\)[-.\s]?|\b\d{1,4}[-.\s])?\b\d{3,4}[-.\s]\d{3,4}\b|\b0[2-9]\d{8}\b`},
	pii.SSN:   {Source: `\b\d{3}-\d{2}-\d{4}\b`},

	pii.CreditCard:           {Source: `\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{1,7}\b`},
	pii.CreditCardVisa:       {Source: `\b4\d{3}(?:[-\s]?\d{4}){3}\b`},
	pii.CreditCardMastercard: {Source: `\b(?:5[1-5]\d{2}|2[2-7]\d{2})(?:[-\s]?\d{4}){3}\b`},
	pii.CreditCardAmex:       {Source: `\b3[47]\d{2}[-\s]?\d{6}[-\s]?\d{5}\b`},
	pii.CreditCardDiscover:   {Source: `\b6(?:011|5\d{2})(?:[-\s]?\d{4}){3}\b`},
	pii.CreditCardDiners:     {Source: `\b3(?:0[0-5]|[68]\d)\d[-\s]?\d{6}[-\s]?\d{4}\b`},
	pii.CreditCardJCB:        {Source: `\b35\d{2}(?:[-\s]?\d{4}){3}\b`},

	pii.DateOfBirth: {
		Source: `\b(?:\d{4}[-/.]\d{1,2}[-/.]\d{1,2}|\d{1,2}[-/.]\d{1,2}[-/.]\d{4}|\d{1,2}[\s-](?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\s-]\d{4})\b`,
		Flags:  "gi",
	},
	pii.Address: {
		Source: `\b\d{1,5}\s+(?:[a-z0-9.'-]+\s+){1,4}(?:street|st|road|rd|avenue|ave|lane|ln|drive|dr|court|ct|place|pl|boulevard|blvd|way|parade|pde|terrace|tce|crescent|cres|highway|hwy)\b`,
		Flags:  "gi",
	},

	pii.Passport:   {Source: `\b[A-Z]{1,2}\d{6,9}\b`},
	pii.PassportUS: {Source: `\b[A-Z]\d{8}\b`},
	pii.PassportAU: {Source: `\b[A-Z]{1,2}\d{7}\b`},
	pii.PassportUK: {Source: `\b\d{9}\b`},
	pii.PassportEU: {Source: `\b[A-Z]{2}[A-Z0-9]{7}\b`},

	pii.DriversLicense: {
		Source: `\b(?:dl|d\.l\.|driver'?s?\s+licen[cs]e)` + numberLabel + labelledValue,
		Flags:  "gi",
	},
	pii.DriversLicenseUS: {Source: `\b[A-Z]\d{7,12}\b`},
	pii.DriversLicenseAU: {Source: `\b\d{8}\b`},
	pii.DriversLicenseUK: {Source: `\b[A-Z9]{5}\d{6}[A-Z9]{2}\d[A-Z]{2}\b`},

	pii.NationalID: {
		Source: `\b(?:national\s+id(?:entity)?|nid)` + numberLabel + labelledValue,
		Flags:  "gi",
	},
	pii.NationalInsuranceUK: {Source: `\b[A-CEGHJ-PR-TW-Z]{2}\s?\d{2}\s?\d{2}\s?\d{2}\s?[A-D]\b`},

	pii.BSB:           {Source: `\b\d{3}-\d{3}\b`},
	pii.AccountNumber: {Source: `\b\d{6,10}\b`},
	pii.TFN:           {Source: `\b\d{3}[\s-]?\d{3}[\s-]?\d{2,3}\b`},
	pii.ABN:           {Source: `\b\d{2}[\s-]?\d{3}[\s-]?\d{3}[\s-]?\d{3}\b`},
	pii.Medicare:      {Source: `\b[2-6]\d{3}[\s-]?\d{5}[\s-]?\d(?:[\s-]?\d)?\b`},
	pii.IBAN:          {Source: `\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){2,7}(?:\s?[A-Z0-9]{1,4})?\b`},
	pii.SWIFT:         {Source: `\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`},
	pii.RoutingNumber: {Source: `\b\d{9}\b`},

	pii.IPv4: {Source: `\b(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\b`},
	pii.IPv6: {
		Source: `\b(?:[0-9a-f]{1,4}:){7}[0-9a-f]{1,4}\b|\b(?:[0-9a-f]{1,4}:){1,7}:(?:[0-9a-f]{1,4}(?::[0-9a-f]{1,4}){0,6})?`,
		Flags:  "gi",
	},
	pii.MACAddress: {Source: `\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`},

	pii.ReferenceNumber: {Source: `\bref(?:erence)?` + numberLabel + labelledValue, Flags: "gi"},
	pii.TransactionID: {
		Source: `\b(?:transaction|txn)(?:\s*(?:id|no\.?|number|#))?\s*[:#-]?\s*` + labelledValue,
		Flags:  "gi",
	},
	pii.PolicyNumber: {Source: `\bpolicy` + numberLabel + labelledValue, Flags: "gi"},
	pii.ClientNumber: {
		Source: `\b(?:client|customer)(?:\s*(?:id|no\.?|number|#))?\s*[:#-]?\s*` + labelledValue,
		Flags:  "gi",
	},
	pii.NMI: {Source: `\bnmi\s*[:#-]?\s*([A-Z0-9]{10,11})\b`, Flags: "gi"},
}
