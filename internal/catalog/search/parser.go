// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"regexp"
	"strings"

	"github.com/taibuivan/circa/internal/catalog/classifier"
	"github.com/taibuivan/circa/internal/catalog/search/dsl"
	"github.com/taibuivan/circa/internal/catalog/spell"
	"github.com/taibuivan/circa/pkg/scrub"
)

var (
	nonfictionRe = regexp.MustCompile(`(?i)\bnonfiction\b`)
	fictionRe    = regexp.MustCompile(`(?i)\bfiction\b`)
)

// QueryParser pulls filter information out of a query string. It makes
// sense of queries like these:
//
//	asteroids nonfiction
//	grade 5 dogs
//	young adult romance
//	divorce age 10 and up
//
// Parts of these queries are best thought of as filters against specific
// fields ("nonfiction", "grade 5", "romance"): books either match them or
// they don't. The rest ("asteroids", "dogs") is search-like, matched to a
// greater or lesser extent.
type QueryParser struct {
	OriginalQueryString string

	// FinalQueryString is whatever was left after the filter portions
	// were removed.
	FinalQueryString string

	MatchQueries []dsl.Query
	Filters      []dsl.Query
}

// ParseQuery parses the query string, splitting it into filter clauses and
// match queries for the non-filter remainder.
func ParseQuery(queryString string, dict spell.Dictionary) *QueryParser {
	p := &QueryParser{OriginalQueryString: strings.TrimSpace(queryString)}

	// Genre goes first so that "Science Fiction" doesn't get chomped
	// up by the search for "fiction".

	// The 'romance' part of 'young adult romance'.
	if genre, matched := classifier.GenreMatch(queryString); genre != "" {
		queryString = p.addMatchTermFilter(genre, "genres.name", queryString, matched)
	}

	// The 'young adult' part of 'young adult romance'.
	if audience, matched := classifier.AudienceMatch(queryString); audience != "" {
		queryString = p.addMatchTermFilter(scrub.Value(audience), "audience", queryString, matched)
	}

	// The 'nonfiction' part of 'asteroids nonfiction'.
	if nonfictionRe.MatchString(queryString) {
		queryString = p.addMatchTermFilter("nonfiction", "fiction", queryString, "nonfiction")
	} else if fictionRe.MatchString(queryString) {
		queryString = p.addMatchTermFilter("fiction", "fiction", queryString, "fiction")
	}

	// The 'grade 5' part of 'grade 5 dogs'.
	if age, matched := classifier.GradeLevelMatch(queryString); age.Lower != nil {
		queryString = p.addTargetAgeFilter(age, queryString, matched)
	}

	// The 'age 10 and up' part of 'divorce age 10 and up'.
	if age, matched := classifier.TargetAgeMatch(queryString); age.Lower != nil {
		queryString = p.addTargetAgeFilter(age, queryString, matched)
	}

	p.FinalQueryString = strings.TrimSpace(queryString)

	if p.FinalQueryString == "" {
		// Someone who searched for 'young adult romance' matched an
		// audience and a genre, and now there's nothing left to
		// match.
		return p
	}

	if p.FinalQueryString != p.OriginalQueryString {
		// The query had a filter component and a query component.
		// The query component could be anything a regular query can
		// be, with all the usual hypotheses and fuzzy matches, so
		// run it through a regular Query and use its scored query.
		recursive := NewQuery(p.FinalQueryString, nil, dict)
		recursive.useQueryParser = false
		p.MatchQueries = append(p.MatchQueries, recursive.SearchQuery())
	}
	return p
}

// addMatchTermFilter records a filter clause matching value against field
// and removes the matched portion of the query string so it doesn't get
// reused.
func (p *QueryParser) addMatchTermFilter(value, field, queryString, matched string) string {
	if value == "" {
		return queryString
	}
	p.Filters = append(p.Filters, matchTerm(field, value))
	return withoutMatch(queryString, matched)
}

// addTargetAgeFilter records both a filter version of the target age query
// (documents outside the range drop out) and a boosted version (documents
// clustering tightly around the range beat ones spanning a huge age range),
// then removes the matched portion of the query string.
func (p *QueryParser) addTargetAgeFilter(age classifier.AgeRange, queryString, matched string) string {
	filter, boosted := makeTargetAgeQuery(age, slightlyAboveBaseline)
	p.Filters = append(p.Filters, filter)
	p.MatchQueries = append(p.MatchQueries, boosted)
	return withoutMatch(queryString, matched)
}

// withoutMatch removes the portion of the query string that matched a
// controlled vocabulary. If the match was "children" and the query said
// "children's", the trailing "'s" goes too: everything up to the next word
// boundary that isn't an apostrophe or a dash.
func withoutMatch(queryString, matched string) string {
	pattern := `(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(matched)) + `[\w'\-]*\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return queryString
	}
	return re.ReplaceAllString(queryString, "")
}
