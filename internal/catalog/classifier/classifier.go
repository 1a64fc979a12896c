// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package classifier maps fragments of free text onto the catalog's controlled
vocabularies: genre names, audiences, and target-age ranges.

The search core uses it to recognize that a query like "young adult romance"
is not a title search but two filter criteria, and to pull phrases like
"grade 5" or "age 10 and up" out of a query as age restrictions.

All vocabulary tables are package-level, compiled once, and read-only;
lookups are safe for concurrent use.
*/
package classifier

// Audience values as stored in work records.
const (
	AudienceAdult      = "Adult"
	AudienceAdultsOnly = "Adults Only"
	AudienceYoungAdult = "Young Adult"
	AudienceChildren   = "Children"
	AudienceAllAges    = "All Ages"
	AudienceResearch   = "Research"
)

// Age boundaries of the audience taxonomy.
const (
	// YoungAdultAgeCutoff: a book for a reader younger than this is a
	// children's book; at or above it, young adult.
	YoungAdultAgeCutoff = 14

	AdultAgeCutoff = 18

	// AllAgesAgeCutoff: "all ages" actually means "all ages with reading
	// fluency", which starts around here.
	AllAgesAgeCutoff = 8
)

// AgeRange is an inclusive target-age range. A nil bound means the range is
// open on that side.
type AgeRange struct {
	Lower *int
	Upper *int
}

// NewAgeRange builds an AgeRange, un-mixing the bounds if they arrive in the
// wrong order.
func NewAgeRange(lower, upper *int) AgeRange {
	if lower != nil && upper != nil && *lower > *upper {
		lower, upper = upper, lower
	}
	return AgeRange{Lower: lower, Upper: upper}
}

// Empty reports whether neither bound is set.
func (r AgeRange) Empty() bool {
	return r.Lower == nil && r.Upper == nil
}

// andUp guesses the upper end of an "N and up" age range.
//
// "12 and up" is generally intended to cover the whole young-adult span,
// "8 and up" something like 8-12, and "3 and up" more like 3-5.
func andUp(young int) int {
	switch {
	case young >= AdultAgeCutoff:
		return young
	case young >= 12:
		return 17
	case young >= AllAgesAgeCutoff:
		return young + 4
	default:
		return young + 2
	}
}
