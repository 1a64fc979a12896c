// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/circa/internal/catalog/search"
)

/*
TestParseQuery_FullyConsumed verifies a query string made entirely of
controlled vocabulary: everything becomes a filter and nothing is left to
search for.
*/
func TestParseQuery_FullyConsumed(t *testing.T) {
	p := search.ParseQuery("young adult romance", nil)

	// 1. Nothing left of the query string.
	assert.Equal(t, "", p.FinalQueryString)
	assert.Empty(t, p.MatchQueries)

	// 2. The genre filter runs inside the genres subdocument; the
	// audience filter is a flat scrubbed term.
	require.Len(t, p.Filters, 2)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "genres",
		"query": map[string]any{"term": map[string]any{"genres.name": "Romance"}},
	}}, p.Filters[0].Map())
	assert.Equal(t, map[string]any{
		"term": map[string]any{"audience": "youngadult"},
	}, p.Filters[1].Map())
}

/*
TestParseQuery_FictionRemainder verifies splitting a query into a fiction
filter and a searchable remainder.
*/
func TestParseQuery_FictionRemainder(t *testing.T) {
	p := search.ParseQuery("asteroids nonfiction", nil)

	// 1. The fiction flag became a filter.
	require.Len(t, p.Filters, 1)
	assert.Equal(t, map[string]any{
		"term": map[string]any{"fiction": "nonfiction"},
	}, p.Filters[0].Map())

	// 2. The remainder is searched recursively.
	assert.Equal(t, "asteroids", p.FinalQueryString)
	require.Len(t, p.MatchQueries, 1)
}

/*
TestParseQuery_ScienceFictionSurvives verifies that genre matching runs
before fiction matching: "science fiction" is a genre, not a fiction flag
plus the word "science".
*/
func TestParseQuery_ScienceFictionSurvives(t *testing.T) {
	p := search.ParseQuery("science fiction about dogs", nil)

	require.NotEmpty(t, p.Filters)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "genres",
		"query": map[string]any{"term": map[string]any{"genres.name": "Science Fiction"}},
	}}, p.Filters[0].Map())

	// No separate fiction filter.
	require.Len(t, p.Filters, 1)
	assert.Equal(t, "about dogs", p.FinalQueryString)
}

/*
TestParseQuery_GradeLevel verifies that a grade phrase becomes a target age
filter plus a boosted tight-fit query, with the remainder searched.
*/
func TestParseQuery_GradeLevel(t *testing.T) {
	p := search.ParseQuery("grade 5 dogs", nil)

	assert.Equal(t, "dogs", p.FinalQueryString)

	// 1. The filter version requires overlap with ages 10-10.
	require.Len(t, p.Filters, 1)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"must": []map[string]any{
			{"range": map[string]any{"target_age.upper": map[string]any{"gte": 10}}},
			{"range": map[string]any{"target_age.lower": map[string]any{"lte": 10}}},
		},
	}}, p.Filters[0].Map())

	// 2. The boosted version also rewards ranges contained within the
	// query range, plus the recursive query for "dogs".
	require.Len(t, p.MatchQueries, 2)
	boosted := p.MatchQueries[0].Map()["bool"].(map[string]any)
	assert.Equal(t, 1.1, boosted["boost"])
}

/*
TestParseQuery_AgeAndUp verifies the "and up" age phrasing: the upper bound
is extrapolated from the lower one.
*/
func TestParseQuery_AgeAndUp(t *testing.T) {
	p := search.ParseQuery("divorce age 10 and up", nil)

	assert.Equal(t, "divorce", p.FinalQueryString)
	require.Len(t, p.Filters, 1)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"must": []map[string]any{
			{"range": map[string]any{"target_age.upper": map[string]any{"gte": 10}}},
			{"range": map[string]any{"target_age.lower": map[string]any{"lte": 14}}},
		},
	}}, p.Filters[0].Map())
}

/*
TestParseQuery_NoVocabulary verifies that a query with no controlled
vocabulary passes through untouched.
*/
func TestParseQuery_NoVocabulary(t *testing.T) {
	p := search.ParseQuery("asteroids", nil)
	assert.Equal(t, "asteroids", p.FinalQueryString)
	assert.Empty(t, p.Filters)
	assert.Empty(t, p.MatchQueries)
}

/*
TestParseQuery_PossessiveChomped verifies that removing a matched term also
removes its possessive tail: "children's" disappears entirely.
*/
func TestParseQuery_PossessiveChomped(t *testing.T) {
	p := search.ParseQuery("children's books about dogs", nil)
	require.NotEmpty(t, p.Filters)
	assert.Equal(t, map[string]any{
		"term": map[string]any{"audience": "children"},
	}, p.Filters[0].Map())
	assert.NotContains(t, p.FinalQueryString, "children")
}
