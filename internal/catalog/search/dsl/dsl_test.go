// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/circa/internal/catalog/search/dsl"
)

/*
TestLeafClauses pins the JSON shapes of the leaf query clauses.
*/
func TestLeafClauses(t *testing.T) {
	tests := []struct {
		name     string
		query    dsl.Query
		expected map[string]any
	}{
		{
			"term",
			dsl.Term{Field: "fiction", Value: "nonfiction"},
			map[string]any{"term": map[string]any{"fiction": "nonfiction"}},
		},
		{
			"terms_int",
			dsl.TermsInt("licensepools.collection_id", []int{7, 8}),
			map[string]any{"terms": map[string]any{"licensepools.collection_id": []any{7, 8}}},
		},
		{
			"exists",
			dsl.Exists{Field: "series"},
			map[string]any{"exists": map[string]any{"field": "series"}},
		},
		{
			"range",
			dsl.NewRange("target_age.upper", "gte", 5),
			map[string]any{"range": map[string]any{"target_age.upper": map[string]any{"gte": 5}}},
		},
		{
			"match_phrase",
			dsl.MatchPhrase{Field: "title.minimal", Query: "the hobbit"},
			map[string]any{"match_phrase": map[string]any{"title.minimal": "the hobbit"}},
		},
		{
			"regexp",
			dsl.Regexp{Field: "title.keyword", Value: ".*book.*", Flags: "ALL"},
			map[string]any{"regexp": map[string]any{"title.keyword": map[string]any{"value": ".*book.*", "flags": "ALL"}}},
		},
		{
			"match_all",
			dsl.MatchAll{},
			map[string]any{"match_all": map[string]any{}},
		},
		{
			"match_none",
			dsl.MatchNone{},
			map[string]any{"match_none": map[string]any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.Map())
		})
	}
}

func TestMatchFuzzinessKnobs(t *testing.T) {
	m := dsl.Match{
		Field:              "title.minimal",
		Query:              "hobit",
		MinimumShouldMatch: 2,
		Fuzziness:          "AUTO",
		MaxExpansions:      2,
		PrefixLength:       1,
	}
	expected := map[string]any{"match": map[string]any{"title.minimal": map[string]any{
		"query":                "hobit",
		"minimum_should_match": 2,
		"fuzziness":            "AUTO",
		"max_expansions":       2,
		"prefix_length":        1,
	}}}
	assert.Equal(t, expected, m.Map())

	// Without fuzziness no fuzzy knobs leak into the body.
	plain := dsl.Match{Field: "title", Query: "hobbit"}
	assert.Equal(t,
		map[string]any{"match": map[string]any{"title": map[string]any{"query": "hobbit"}}},
		plain.Map(),
	)
}

func TestBoolOmitsEmptySections(t *testing.T) {
	b := dsl.Bool{
		Must:  []dsl.Query{dsl.Term{Field: "language", Value: "eng"}},
		Boost: 1.1,
	}
	body := b.Map()["bool"].(map[string]any)
	assert.Contains(t, body, "must")
	assert.Equal(t, 1.1, body["boost"])
	assert.NotContains(t, body, "should")
	assert.NotContains(t, body, "must_not")
	assert.NotContains(t, body, "filter")
	assert.NotContains(t, body, "minimum_should_match")
}

func TestNestedWrapsQuery(t *testing.T) {
	n := dsl.Nested{
		Path:  "licensepools",
		Query: dsl.Term{Field: "licensepools.open_access", Value: true},
	}
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "licensepools",
		"query": map[string]any{"term": map[string]any{"licensepools.open_access": true}},
	}}, n.Map())
}

/*
TestAnd checks the filter chaining helper, including flattening of
already-chained bool clauses.
*/
func TestAnd(t *testing.T) {
	first := dsl.Term{Field: "a", Value: 1}
	second := dsl.Term{Field: "b", Value: 2}
	third := dsl.Term{Field: "c", Value: 3}

	assert.Equal(t, first, dsl.And(nil, first))

	chained := dsl.And(dsl.And(first, second), third)
	b, ok := chained.(dsl.Bool)
	require.True(t, ok)
	assert.Equal(t, []dsl.Query{first, second, third}, b.Must)
}

func TestSortClauses(t *testing.T) {
	assert.Equal(t,
		map[string]any{"sort_title": "asc"},
		dsl.FieldSort{Field: "sort_title", Direction: "asc"}.Map(),
	)

	nested := dsl.NestedSort{
		Field:     "licensepools.availability_time",
		Direction: "desc",
		Mode:      "min",
		Path:      "licensepools",
		Filter:    dsl.TermsInt("licensepools.collection_id", []int{1}),
	}
	expected := map[string]any{"licensepools.availability_time": map[string]any{
		"order": "desc",
		"mode":  "min",
		"nested": map[string]any{
			"path":   "licensepools",
			"filter": map[string]any{"terms": map[string]any{"licensepools.collection_id": []any{1}}},
		},
	}}
	assert.Equal(t, expected, nested.Map())

	script := dsl.ScriptSort{
		Type:      "number",
		Script:    dsl.Script{Stored: "work_last_update", Params: map[string]any{"collection_ids": []int{1}}},
		Direction: "desc",
	}
	assert.Equal(t, "desc", script.Map()["_script"].(map[string]any)["order"])
}

func TestSearchRequestWindow(t *testing.T) {
	size := 25
	from := 50
	r := &dsl.SearchRequest{
		Query: dsl.MatchAll{},
		Size:  &size,
		From:  &from,
	}
	body := r.Map()
	assert.Equal(t, 25, body["size"])
	assert.Equal(t, 50, body["from"])

	// A search_after cursor replaces the from offset.
	r.SearchAfter = []any{"doe, jane", 1234}
	body = r.Map()
	assert.Equal(t, []any{"doe, jane", 1234}, body["search_after"])
	assert.NotContains(t, body, "from")
}

func TestSearchRequestFunctionScore(t *testing.T) {
	r := &dsl.SearchRequest{
		Query: dsl.MatchAll{},
		ScoringFunctions: []dsl.ScoringFunction{
			dsl.FilterWeight{Filter: dsl.Term{Field: "licensepools.available", Value: true}, Weight: 5},
		},
	}
	query := r.Map()["query"].(map[string]any)
	require.Contains(t, query, "function_score")
	fs := query["function_score"].(map[string]any)
	assert.Len(t, fs["functions"], 1)
	assert.Equal(t, "sum", fs["score_mode"])
}
