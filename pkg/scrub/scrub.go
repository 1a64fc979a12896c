// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package scrub normalizes controlled-vocabulary values for use in search
// filter clauses.
//
// # Usage
//
// The search index stores enumerated values (audiences, media) in a collapsed
// lowercase form: "Young Adult" is indexed as "youngadult". Every filter
// clause against such a field must scrub its value the same way, or it will
// silently match nothing.
package scrub

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Value converts a vocabulary value into its indexed form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Removes spaces.
func Value(s string) string {
	if s == "" {
		return s
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	return strings.ReplaceAll(result, " ", "")
}

// List scrubs every value in a slice. A nil input yields an empty slice.
func List(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, Value(v))
	}
	return out
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
