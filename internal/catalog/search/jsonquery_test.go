// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/circa/internal/catalog/search"
)

func jsonQuery(t *testing.T, raw string) *search.JSONQuery {
	t.Helper()
	q, err := search.NewJSONQuery([]byte(raw), nil, func(name string) int {
		if name == "overdrive" {
			return 12
		}
		return 0
	})
	require.NoError(t, err)
	return q
}

/*
TestJSONQuery_Leaf verifies the basic {key, value, op} leaf forms.
*/
func TestJSONQuery_Leaf(t *testing.T) {
	// 1. Equality against a keyword field.
	q := jsonQuery(t, `{"query": {"key": "title", "value": "Little Women"}}`)
	clause, err := q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"term": map[string]any{"title.keyword": "Little Women"},
	}, clause.Map())

	// 2. Inequality becomes a must_not.
	q = jsonQuery(t, `{"query": {"key": "medium", "value": "Audio", "op": "neq"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"must_not": []map[string]any{
			{"term": map[string]any{"medium.keyword": "Audio"}},
		},
	}}, clause.Map())

	// 3. Range operators compile to range clauses on the plain field.
	q = jsonQuery(t, `{"query": {"key": "quality", "value": 0.5, "op": "gte"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"range": map[string]any{"quality": map[string]any{"gte": 0.5}},
	}, clause.Map())

	// 4. Subdocument fields are wrapped in a nested clause.
	q = jsonQuery(t, `{"query": {"key": "genres.name", "value": "Romance"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "genres",
		"query": map[string]any{"term": map[string]any{"genres.name": "Romance"}},
	}}, clause.Map())
}

/*
TestJSONQuery_Aliases verifies client-facing field aliases and value
transforms.
*/
func TestJSONQuery_Aliases(t *testing.T) {
	// 1. "genre" is an alias for genres.name.
	q := jsonQuery(t, `{"query": {"key": "genre", "value": "Horror"}}`)
	clause, err := q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "genres",
		"query": map[string]any{"term": map[string]any{"genres.name": "Horror"}},
	}}, clause.Map())

	// 2. A data source name resolves to its id.
	q = jsonQuery(t, `{"query": {"key": "data_source", "value": "overdrive"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "licensepools",
		"query": map[string]any{"term": map[string]any{"licensepools.data_source_id": 12}},
	}}, clause.Map())

	// 3. An unknown data source resolves to an id that matches
	// nothing.
	q = jsonQuery(t, `{"query": {"key": "data_source", "value": "bogus"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{
		"path":  "licensepools",
		"query": map[string]any{"term": map[string]any{"licensepools.data_source_id": 0}},
	}}, clause.Map())

	// 4. A published date becomes an epoch timestamp.
	q = jsonQuery(t, `{"query": {"key": "published", "value": "2020-01-01"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	want := float64(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	assert.Equal(t, map[string]any{
		"term": map[string]any{"published": want},
	}, clause.Map())

	// 5. A language name becomes its alpha-3 code; audiences lose
	// their spaces.
	q = jsonQuery(t, `{"query": {"key": "language", "value": "English"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"term": map[string]any{"language": "eng"},
	}, clause.Map())

	q = jsonQuery(t, `{"query": {"key": "audience", "value": "Young Adult"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"term": map[string]any{"audience": "YoungAdult"},
	}, clause.Map())
}

/*
TestJSONQuery_RegexEscaping verifies that contains and regex values have
the engine's reserved characters escaped.
*/
func TestJSONQuery_RegexEscaping(t *testing.T) {
	q := jsonQuery(t, `{"query": {"key": "title", "value": "a.b?c", "op": "contains"}}`)
	clause, err := q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"regexp": map[string]any{
		"title.keyword": map[string]any{
			"value": `.*a\.b\?c.*`,
			"flags": "ALL",
		},
	}}, clause.Map())

	q = jsonQuery(t, `{"query": {"key": "title", "value": "book(1)", "op": "regex"}}`)
	clause, err = q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"regexp": map[string]any{
		"title.keyword": map[string]any{
			"value": `book\(1\)`,
			"flags": "ALL",
		},
	}}, clause.Map())
}

/*
TestJSONQuery_Joins verifies the and/or/not conjunctions, including
nesting.
*/
func TestJSONQuery_Joins(t *testing.T) {
	q := jsonQuery(t, `{"query": {"and": [
		{"key": "fiction", "value": "fiction"},
		{"or": [
			{"key": "title", "value": "book"},
			{"not": [{"key": "author", "value": "robert"}]}
		]}
	]}}`)
	clause, err := q.SearchQuery()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"must": []map[string]any{
			{"term": map[string]any{"fiction.keyword": "fiction"}},
			{"bool": map[string]any{
				"should": []map[string]any{
					{"term": map[string]any{"title.keyword": "book"}},
					{"bool": map[string]any{"must_not": []map[string]any{
						{"term": map[string]any{"author.keyword": "robert"}},
					}}},
				},
			}},
		},
	}}, clause.Map())
}

/*
TestJSONQuery_Errors verifies that malformed queries surface parse errors
with details safe to show to clients.
*/
func TestJSONQuery_Errors(t *testing.T) {
	// 1. Not JSON at all.
	_, err := search.NewJSONQuery([]byte("not json"), nil, nil)
	var parseErr *search.ParseError
	require.ErrorAs(t, err, &parseErr)

	// 2. Missing the root query key.
	q := jsonQuery(t, `{"filter": {}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "'query' key")

	// 3. Unknown operator.
	q = jsonQuery(t, `{"query": {"key": "title", "value": "x", "op": "almost"}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "unrecognized operator")

	// 4. Unknown key.
	q = jsonQuery(t, `{"query": {"key": "shoe_size", "value": "12"}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "shoe_size")

	// 5. Operator not allowed for the field.
	q = jsonQuery(t, `{"query": {"key": "data_source", "value": "overdrive", "op": "gte"}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "not allowed")

	// 6. A conjunction with multiple parts in one object.
	q = jsonQuery(t, `{"query": {"and": [], "or": []}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)

	// 7. A bad published date.
	q = jsonQuery(t, `{"query": {"key": "published", "value": "01/01/2020"}}`)
	_, err = q.SearchQuery()
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Detail, "YYYY-MM-DD")
}
