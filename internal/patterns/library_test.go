// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
)

func TestEveryDefinitionCompiles(t *testing.T) {
	lib := NewLibrary(performance.NewMetrics())
	for _, typ := range GetAllTypes() {
		re, ok := lib.Get(typ)
		require.True(t, ok, typ)
		require.NotNil(t, re, typ)
	}
}

func TestGetUnknownTypeReportsMissing(t *testing.T) {
	lib := NewLibrary(performance.NewMetrics())
	re, ok := lib.Get(pii.Type("doesNotExist"))
	assert.False(t, ok)
	assert.Nil(t, re)

	_, ok = lib.Get(pii.Name)
	assert.False(t, ok, "name has no pattern")
	assert.False(t, HasPattern(pii.Name))
	assert.True(t, HasPattern(pii.Email))
}

func TestCompilationIsMemoized(t *testing.T) {
	metrics := performance.NewMetrics()
	lib := NewLibrary(metrics)

	first, _ := lib.Get(pii.Email)
	second, _ := lib.Get(pii.Email)
	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PatternCompiles.WithLabelValues("email")))

	lib.Clear()
	assert.Equal(t, 0, lib.CompiledCount())
	third, _ := lib.Get(pii.Email)
	assert.NotSame(t, first, third)
}

func TestConcurrentGetCompilesOnce(t *testing.T) {
	metrics := performance.NewMetrics()
	lib := NewLibrary(metrics)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = lib.Get(pii.IBAN)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, lib.CompiledCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PatternCompiles.WithLabelValues("iban")))
}

func TestEnabledSkipsDisabledTypes(t *testing.T) {
	lib := NewLibrary(performance.NewMetrics())

	got := lib.Enabled(map[pii.Type]bool{
		pii.Email: true,
		pii.Phone: false,
		pii.SSN:   false,
		pii.Name:  true,
	})

	assert.Len(t, got, 1)
	assert.Contains(t, got, pii.Email)
	assert.Equal(t, 1, lib.CompiledCount(), "disabled types must not be compiled")
}

func TestEnabledInOrderFollowsCanonicalOrder(t *testing.T) {
	lib := NewLibrary(performance.NewMetrics())
	got := lib.EnabledInOrder(map[pii.Type]bool{
		pii.Phone:          true,
		pii.Email:          true,
		pii.CreditCardVisa: true,
	})

	require.Len(t, got, 3)
	assert.Equal(t, pii.Email, got[0].Type)
	assert.Equal(t, pii.CreditCardVisa, got[1].Type)
	assert.Equal(t, pii.Phone, got[2].Type)
}

func TestPatternsMatchTypicalValues(t *testing.T) {
	tests := []struct {
		typ   pii.Type
		input string
		want  []string
	}{
		{pii.Email, "Contact john.smith@company.com.au now", []string{"john.smith@company.com.au"}},
		{pii.Phone, "call 555-123-4567 or (02) 9374 4000", []string{"555-123-4567", "(02) 9374 4000"}},
		{pii.Phone, "+61 2 9374 4000 or 0412345678", []string{"+61 2 9374 4000", "0412345678"}},
		{pii.Phone, "id 12345678 date 2024-01-15", nil},
		{pii.SSN, "ssn 123-45-6789", []string{"123-45-6789"}},
		{pii.CreditCardVisa, "card 4532 0151 1283 0366", []string{"4532 0151 1283 0366"}},
		{pii.CreditCardAmex, "amex 3782 822463 10005", []string{"3782 822463 10005"}},
		{pii.DateOfBirth, "born 15/03/1985, 1985-03-15 or 15 March 1985", []string{"15/03/1985", "1985-03-15", "15 March 1985"}},
		{pii.Address, "lives at 42 Wallaby Way, Sydney", []string{"42 Wallaby Way"}},
		{pii.BSB, "bsb 345-678", []string{"345-678"}},
		{pii.TFN, "tfn 123 456 782", []string{"123 456 782"}},
		{pii.ABN, "abn 51 824 753 556", []string{"51 824 753 556"}},
		{pii.Medicare, "medicare 2123 45670 1", []string{"2123 45670 1"}},
		{pii.IBAN, "GB82 WEST 1234 5698 7654 32 and FR1420041010050500013M02606", []string{"GB82 WEST 1234 5698 7654 32", "FR1420041010050500013M02606"}},
		{pii.SWIFT, "swift DEUTDEFF500", []string{"DEUTDEFF500"}},
		{pii.IPv4, "host 192.168.1.20 up", []string{"192.168.1.20"}},
		{pii.IPv6, "2001:0db8:85a3:0000:0000:8a2e:0370:7334 and fe80::1", []string{"2001:0db8:85a3:0000:0000:8a2e:0370:7334", "fe80::1"}},
		{pii.MACAddress, "mac 00:1A:2B:3C:4D:5E", []string{"00:1A:2B:3C:4D:5E"}},
		{pii.NationalInsuranceUK, "NI AB 12 34 56 C", []string{"AB 12 34 56 C"}},
		{pii.ReferenceNumber, "your preference 12345", nil},
	}

	lib := NewLibrary(performance.NewMetrics())
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			re, ok := lib.Get(tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.want, re.FindAllString(tt.input, -1))
		})
	}
}

func TestLabelledPatternsCaptureValue(t *testing.T) {
	tests := []struct {
		typ   pii.Type
		input string
		want  string
	}{
		{pii.ReferenceNumber, "Reference number: ABC-12345", "ABC-12345"},
		{pii.DriversLicense, "Driver's licence no: 12345678", "12345678"},
		{pii.DriversLicense, "dl# AB123456", "AB123456"},
		{pii.TransactionID, "Transaction ID: TXN-998877", "TXN-998877"},
		{pii.PolicyNumber, "policy no. POL778899", "POL778899"},
		{pii.NMI, "NMI: 4103035611", "4103035611"},
	}

	lib := NewLibrary(performance.NewMetrics())
	for _, tt := range tests {
		re, ok := lib.Get(tt.typ)
		require.True(t, ok)
		m := re.FindStringSubmatch(tt.input)
		require.Len(t, m, 2, tt.input)
		assert.Equal(t, tt.want, m[1])
	}
}

func TestCompileCustom(t *testing.T) {
	metrics := performance.NewMetrics()
	lib := NewLibrary(metrics)

	re, err := lib.CompileCustom(`EMP-\d{5}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMP-12345"}, re.FindAllString("id EMP-12345", -1))

	re, err = lib.CompileCustom(`/emp-\d{5}/gi`)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMP-12345"}, re.FindAllString("id EMP-12345", -1))

	re, err = lib.CompileCustom(`/usr/local`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("/usr/local/bin"))
}

func TestCompileCustomInvalidMatchesNothing(t *testing.T) {
	metrics := performance.NewMetrics()
	lib := NewLibrary(metrics)

	re, err := lib.CompileCustom(`(unclosed`)
	require.Error(t, err)
	require.NotNil(t, re)
	assert.Empty(t, re.FindAllString("(unclosed anything at all", -1))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InvalidCustomRules))

	_, err = lib.CompileCustom(`(?<=x)y`)
	assert.Error(t, err, "lookbehind is not supported")
}

func TestDefaultLibraryHelpers(t *testing.T) {
	ClearCache()
	defer ClearCache()

	re, ok := GetPattern(pii.SSN)
	require.True(t, ok)
	assert.IsType(t, &regexp.Regexp{}, re)

	got := GetEnabledPatterns(map[pii.Type]bool{pii.SSN: true, pii.Email: false})
	assert.Len(t, got, 1)

	all := GetAllTypes()
	assert.NotContains(t, all, pii.Name)
	assert.NotContains(t, all, pii.Custom)
	assert.Equal(t, pii.Email, all[0])
}
