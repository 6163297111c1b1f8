// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"

	"ctxcopy/internal/config"
	"ctxcopy/internal/pii"
)

// columnCategory maps normalized header fragments to the type used to mask the column
type columnCategory struct {
	name      string
	typ       pii.Type
	fragments []string
}

// categories are checked in order, so fragments that contain another
// category's fragment ("emailaddress", "ipaddress") come first.
var categories = []columnCategory{
	{"email", pii.Email, []string{"email", "emailaddress", "mailaddress"}},
	{"ipAddress", pii.IPv4, []string{"ipaddress", "ipv4", "ipv6"}},
	{"creditCard", pii.CreditCard, []string{"creditcard", "cardnumber", "cardno", "ccnumber"}},
	{"dateOfBirth", pii.DateOfBirth, []string{"dob", "dateofbirth", "birthdate", "birthday"}},
	{"phone", pii.Phone, []string{"phone", "mobile", "telephone", "fax"}},
	{"address", pii.Address, []string{"address", "street", "suburb", "postcode", "zipcode"}},
	{"name", pii.Name, []string{"firstname", "lastname", "fullname", "surname", "givenname", "middlename", "customername", "clientname", "contactname"}},
	{"passport", pii.Passport, []string{"passport"}},
	{"driversLicense", pii.DriversLicense, []string{"driverslicense", "driverslicence", "licensenumber", "licencenumber", "dlnumber"}},
	{"ssn", pii.SSN, []string{"ssn", "socialsecurity"}},
	{"nationalID", pii.NationalID, []string{"nationalid", "nationalinsurance", "nino", "taxid"}},
	{"medicare", pii.Medicare, []string{"medicare"}},
	{"bsb", pii.BSB, []string{"bsb"}},
	{"accountNumber", pii.AccountNumber, []string{"accountnumber", "accountno", "accountnum", "acctno", "bankaccount"}},
	{"clientNumber", pii.ClientNumber, []string{"clientnumber", "clientid", "customerid", "customernumber", "memberid", "membernumber"}},
	{"tfn", pii.TFN, []string{"tfn", "taxfilenumber"}},
	{"abn", pii.ABN, []string{"abn", "businessnumber"}},
	{"transaction", pii.TransactionID, []string{"transaction", "txnid", "txnno"}},
	{"reference", pii.ReferenceNumber, []string{"reference", "refno", "refnumber"}},
	{"policy", pii.PolicyNumber, []string{"policy"}},
	{"iban", pii.IBAN, []string{"iban"}},
	{"swift", pii.SWIFT, []string{"swift", "biccode"}},
	{"routing", pii.RoutingNumber, []string{"routing", "abanumber"}},
	{"identifier", pii.Custom, []string{"identifier", "idnumber", "uniqueid"}},
}

var headerSeparators = strings.NewReplacer("_", "", " ", "", "-", "")

// NormalizeHeader lowercases a header and strips underscores, spaces and dashes.
func NormalizeHeader(header string) string {
	return headerSeparators.Replace(strings.ToLower(strings.TrimSpace(header)))
}

func classify(header string) (columnCategory, bool) {
	normalized := NormalizeHeader(header)
	if normalized == "" {
		return columnCategory{}, false
	}
	for _, c := range categories {
		for _, f := range c.fragments {
			if strings.Contains(normalized, f) {
				return c, true
			}
		}
	}
	return columnCategory{}, false
}

func matchesList(header string, list []string) bool {
	lower := strings.ToLower(strings.TrimSpace(header))
	normalized := NormalizeHeader(header)
	for _, entry := range list {
		if entry == "" {
			continue
		}
		if strings.Contains(lower, entry) {
			return true
		}
		if n := NormalizeHeader(entry); n != "" && strings.Contains(normalized, n) {
			return true
		}
	}
	return false
}

// ShouldMaskColumn decides whether every cell under header is masked. A
// deny-list hit always masks; an allow-list hit never does; otherwise the
// header must name a sensitive category whose type is enabled.
func ShouldMaskColumn(header string, cfg *config.MaskingConfig) bool {
	if cfg == nil {
		return false
	}
	if matchesList(header, cfg.DenyList) {
		return true
	}
	if len(cfg.AllowList) > 0 && matchesList(header, cfg.AllowList) {
		return false
	}
	category, ok := classify(header)
	return ok && cfg.IsEnabled(category.typ)
}

// DetectColumnType returns the type used to mask a column. Unrecognized headers map to Custom.
func DetectColumnType(header string) pii.Type {
	if category, ok := classify(header); ok {
		return category.typ
	}
	return pii.Custom
}

// ColumnCategory names the sensitive category matched by header, or "".
func ColumnCategory(header string) string {
	category, _ := classify(header)
	return category.name
}
