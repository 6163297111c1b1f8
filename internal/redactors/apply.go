// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"sort"

	"ctxcopy/internal/pii"
)

// ApplyReplacements substitutes every replacement into text. Replacements are
// applied from the highest start offset down so earlier offsets stay valid.
// Spans that fall outside text or overlap a later span are skipped.
func ApplyReplacements(text string, replacements []pii.Replacement) string {
	if len(replacements) == 0 {
		return text
	}

	sorted := make([]pii.Replacement, len(replacements))
	copy(sorted, replacements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	out := text
	limit := len(text)
	for _, r := range sorted {
		if r.Start < 0 || r.End > limit || r.Start >= r.End {
			continue
		}
		out = out[:r.Start] + r.Masked + out[r.End:]
		limit = r.Start
	}
	return out
}
