// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "nil input",
			raw:  nil,
			want: []string{},
		},
		{
			name: "trims and drops empty tokens",
			raw:  []string{" math ", "", "  ", "physics"},
			want: []string{"math", "physics"},
		},
		{
			name: "deduplicates preserving first-seen order",
			raw:  []string{"b", "a", "b", " a "},
			want: []string{"b", "a"},
		},
		{
			name: "case-sensitive dedup keeps both cases",
			raw:  []string{"Math", "math", "Math"},
			want: []string{"Math", "math"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.raw))
		})
	}
}

func TestParseTagList(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want []string
	}{
		{
			name: "comma-delimited",
			arg:  "math, physics ,chemistry",
			want: []string{"math", "physics", "chemistry"},
		},
		{
			name: "empty string",
			arg:  "",
			want: []string{},
		},
		{
			name: "trailing and doubled commas",
			arg:  "a,,b,",
			want: []string{"a", "b"},
		},
		{
			name: "duplicates collapse",
			arg:  "math,math, math",
			want: []string{"math"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTagList(tt.arg))
		})
	}
}

func TestNormalizeSelection(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "nil input",
			raw:  nil,
			want: []string{},
		},
		{
			name: "lower-cases every token",
			raw:  []string{"Math", "PHYSICS"},
			want: []string{"math", "physics"},
		},
		{
			name: "case-insensitive dedup in first-seen order",
			raw:  []string{"Math", "math", "MATH", "art"},
			want: []string{"math", "art"},
		},
		{
			name: "trims and drops blanks",
			raw:  []string{"  ", " Art "},
			want: []string{"art"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSelection(tt.raw))
		})
	}
}
