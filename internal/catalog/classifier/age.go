// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

// gradeToAge maps a US school-grade token to the age a child typically is
// when starting that grade.
var gradeToAge = map[string]int{
	"preschool": 3, "pre-school": 3, "p": 3, "pk": 4,
	"kindergarten": 5, "k": 5,
	"1": 6, "2": 7, "3": 8, "4": 9, "5": 10, "6": 11,
	"7": 12, "8": 13, "9": 14, "10": 15, "11": 16, "12": 17,
}

// Common ways of writing a grade level. Each pattern captures one or two
// grade tokens; a missing second token means a single grade.
var gradePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bgrades?:?\s*([kp0-9]+)\s*(?:-|to)\s*([kp0-9]+)\b`),
	regexp.MustCompile(`(?i)\bgrades?:?\s*([kp0-9]+)\b`),
	regexp.MustCompile(`(?i)\bgr\.?\s*([kp0-9]+)\s*-\s*([kp0-9]+)\b`),
	regexp.MustCompile(`(?i)\b([0-9]+)(?:st|nd|rd|th)\s+grade\b`),
	regexp.MustCompile(`(?i)\b(kindergarten|preschool)\b`),
}

// Common ways of writing an explicit age range.
var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bages?:?\s*([0-9]+)\s*(?:-|to)\s*([0-9]+)\b`),
	regexp.MustCompile(`(?i)\bages?:?\s*([0-9]+)(\s+and\s+up)?`),
	regexp.MustCompile(`(?i)\b([0-9]+)\s*-\s*([0-9]+)\s+years?\b`),
	regexp.MustCompile(`(?i)\b([0-9]+)\s+and\s+up\b`),
}

// GradeLevelMatch extracts a target-age range from a grade-level phrase like
// "grade 5", "grades 3-5" or "kindergarten". It returns the range and the
// exact substring that matched; an empty range means no match.
func GradeLevelMatch(query string) (AgeRange, string) {
	for _, re := range gradePatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		youngToken := strings.ToLower(m[1])
		var oldToken string
		if len(m) > 2 {
			oldToken = strings.ToLower(m[2])
		}

		young, youngOK := gradeToAge[strings.TrimLeft(youngToken, "0")]
		if !youngOK {
			young, youngOK = gradeToAge[youngToken]
		}
		old, oldOK := gradeToAge[strings.TrimLeft(oldToken, "0")]
		if !oldOK {
			old, oldOK = gradeToAge[oldToken]
		}
		if !youngOK && !oldOK {
			continue
		}

		lower, upper := boundsFrom(young, youngOK, old, oldOK, phraseSaysAndUp(query))
		return NewAgeRange(lower, upper), m[0]
	}
	return AgeRange{}, ""
}

// TargetAgeMatch extracts a target-age range from an explicit age phrase
// like "age 10 and up" or "ages 9-12". It returns the range and the exact
// substring that matched; an empty range means no match.
func TargetAgeMatch(query string) (AgeRange, string) {
	for _, re := range agePatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		young, youngOK := parseAge(m[1])
		var old int
		oldOK := false
		andUpHint := strings.Contains(strings.ToLower(m[0]), "and up")
		if len(m) > 2 && m[2] != "" && !strings.Contains(strings.ToLower(m[2]), "and") {
			old, oldOK = parseAge(m[2])
		}
		if !youngOK && !oldOK {
			continue
		}

		lower, upper := boundsFrom(young, youngOK, old, oldOK, andUpHint || phraseSaysAndUp(query))
		return NewAgeRange(lower, upper), m[0]
	}
	return AgeRange{}, ""
}

// boundsFrom fills in whichever bound is missing: "and up" phrasing gets an
// estimated upper bound, otherwise a single value is a range of one.
func boundsFrom(young int, youngOK bool, old int, oldOK bool, saysAndUp bool) (lower, upper *int) {
	if youngOK && !oldOK {
		if saysAndUp {
			old = andUp(young)
		} else {
			old = young
		}
	}
	if oldOK && !youngOK {
		young = old
	}
	return &young, &old
}

func phraseSaysAndUp(query string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(strings.ToLower(query)), ".")
	return strings.HasSuffix(trimmed, "and up") || strings.HasSuffix(trimmed, "+")
}

func parseAge(token string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, false
	}
	return n, true
}
