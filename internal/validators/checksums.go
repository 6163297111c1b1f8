// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"strconv"
	"strings"
)

var (
	tfnWeights9 = []int{1, 4, 3, 7, 5, 8, 6, 9, 10}
	tfnWeights8 = []int{10, 7, 8, 4, 6, 3, 5, 2}
	abnWeights  = []int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

	medicareWeights = []int{1, 3, 7, 9, 1, 3, 7, 9}
	routingWeights  = []int{3, 7, 1, 3, 7, 1, 3, 7, 1}
)

// LuhnCheck validates a card number. Non-digits are ignored; 13 to 19 digits are required.
func LuhnCheck(number string) bool {
	digits := digitsOnly(number)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	isDouble := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')

		if isDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isDouble = !isDouble
	}

	return sum%10 == 0
}

// weightedSum multiplies digits by weights position by position. Callers
// guarantee equal lengths.
func weightedSum(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	return sum
}

// ValidateTFN checks an Australian tax file number (9 digits, or the legacy 8).
func ValidateTFN(value string) bool {
	digits := digitsOnly(value)
	switch len(digits) {
	case 9:
		return weightedSum(digits, tfnWeights9)%11 == 0
	case 8:
		return weightedSum(digits, tfnWeights8)%11 == 0
	default:
		return false
	}
}

// ValidateABN checks an Australian business number
func ValidateABN(value string) bool {
	digits := digitsOnly(value)
	if len(digits) != 11 || digits[0] == '0' {
		return false
	}

	adjusted := []byte(digits)
	adjusted[0]--
	return weightedSum(string(adjusted), abnWeights)%89 == 0
}

// ValidateMedicare checks an Australian Medicare card number: 10 digits with an
// optional issue digit, first digit 2-6, ninth digit a weighted check digit.
func ValidateMedicare(value string) bool {
	digits := digitsOnly(value)
	if len(digits) != 10 && len(digits) != 11 {
		return false
	}
	if digits[0] < '2' || digits[0] > '6' {
		return false
	}
	return weightedSum(digits[:8], medicareWeights)%10 == int(digits[8]-'0')
}

// ValidateRoutingNumber checks a 9-digit ABA routing number.
func ValidateRoutingNumber(value string) bool {
	digits := digitsOnly(value)
	if len(digits) != 9 || digits == "000000000" {
		return false
	}
	return weightedSum(digits, routingWeights)%10 == 0
}

// ibanBlock is the number of digits folded into the remainder per step.
const ibanBlock = 7

// ValidateIBAN applies the ISO 7064 mod 97-10 check. The remainder of a valid IBAN is 1.
func ValidateIBAN(value string) bool {
	iban := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if !isUpperLetter(iban[0]) || !isUpperLetter(iban[1]) {
		return false
	}

	rearranged := iban[4:] + iban[:4]

	var numeric strings.Builder
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			numeric.WriteByte(c)
		case isUpperLetter(c):
			// A=10 ... Z=35
			numeric.WriteString(strconv.Itoa(int(c) - 55))
		default:
			return false
		}
	}

	return mod97(numeric.String()) == 1
}

// mod97 reduces a long decimal string in fixed-size blocks so no intermediate overflows.
func mod97(number string) int {
	remainder := 0
	for start := 0; start < len(number); start += ibanBlock {
		end := start + ibanBlock
		if end > len(number) {
			end = len(number)
		}
		block, _ := strconv.Atoi(strconv.Itoa(remainder) + number[start:end])
		remainder = block % 97
	}
	return remainder
}

func isUpperLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

