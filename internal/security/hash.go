// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package security provides the deterministic hashing used by the hash masking strategy.
package security

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// HashFormat selects the textual encoding of a digest
type HashFormat string

const (
	HashHex         HashFormat = "HEX"
	HashHexShort    HashFormat = "HEX_SHORT"
	HashBase64      HashFormat = "BASE64"
	HashBase64Short HashFormat = "BASE64_SHORT"
)

// shortLength is the number of characters kept by the *_SHORT formats.
const shortLength = 8

// Hash returns the SHA-256 digest of value in the requested format.
// Unknown formats fall back to HEX_SHORT. The same input always yields the same output.
func Hash(value string, format HashFormat) string {
	sum := sha256.Sum256([]byte(value))

	switch format {
	case HashHex:
		return hex.EncodeToString(sum[:])
	case HashBase64:
		return base64.StdEncoding.EncodeToString(sum[:])
	case HashBase64Short:
		// URL alphabet so the token never carries '/' or '+' into masked text
		encoded := strings.TrimRight(base64.URLEncoding.EncodeToString(sum[:]), "=")
		return encoded[:shortLength]
	default:
		return hex.EncodeToString(sum[:])[:shortLength]
	}
}
