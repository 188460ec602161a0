// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blocks

import "strings"

// NormalizeTags converts raw tag tokens into the canonical storage-side
// form: each token is trimmed, empty tokens are dropped, and duplicates
// are removed case-sensitively while preserving first-seen order. A nil
// or empty input yields an empty list, never an error.
func NormalizeTags(raw []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseTagList splits a comma-delimited tag argument and normalizes the
// resulting tokens.
func ParseTagList(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeSelection converts a query-side tag selection into canonical
// form: trimmed, lower-cased, empty tokens dropped, duplicates removed
// case-insensitively in first-seen order. Filtering is case-insensitive
// even though the catalog stores names case-sensitively.
func NormalizeSelection(raw []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
