// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dsl defines the structured query document handed to the search
engine.

Every value in this package is a pure, immutable description of a boolean or
ranked query clause. Values compose into a tree and serialize to the engine's
JSON query language via [Query.Map]; nothing here talks to a server.

Architecture:

  - Query: the common interface. Map() returns the engine-ready JSON shape.
  - Leaf clauses: Term, Terms, Exists, Range, Regexp, Match, MatchPhrase,
    MultiMatch.
  - Compound clauses: Bool, Nested, DisMax.
  - MatchAll / MatchNone: the two degenerate queries.

The clause vocabulary deliberately mirrors the engine's own; the search core
builds these values and never strings of JSON.
*/
package dsl

// Query is a node in a structured query document.
type Query interface {
	// Map returns the JSON-ready representation of this clause.
	Map() map[string]any
}

// # Degenerate queries

// MatchAll matches every document with a neutral score.
type MatchAll struct{}

func (MatchAll) Map() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// MatchNone matches no documents at all.
type MatchNone struct{}

func (MatchNone) Map() map[string]any {
	return map[string]any{"match_none": map[string]any{}}
}

// # Leaf clauses

// Term matches documents whose field holds exactly the given value.
type Term struct {
	Field string
	Value any
}

func (t Term) Map() map[string]any {
	return map[string]any{"term": map[string]any{t.Field: t.Value}}
}

// Terms matches documents whose field holds any of the given values.
type Terms struct {
	Field  string
	Values []any
}

func (t Terms) Map() map[string]any {
	return map[string]any{"terms": map[string]any{t.Field: t.Values}}
}

// TermsString builds a Terms clause from string values.
func TermsString(field string, values []string) Terms {
	anys := make([]any, len(values))
	for i, v := range values {
		anys[i] = v
	}
	return Terms{Field: field, Values: anys}
}

// TermsInt builds a Terms clause from integer values.
func TermsInt(field string, values []int) Terms {
	anys := make([]any, len(values))
	for i, v := range values {
		anys[i] = v
	}
	return Terms{Field: field, Values: anys}
}

// Exists matches documents that have any value for the given field.
type Exists struct {
	Field string
}

func (e Exists) Map() map[string]any {
	return map[string]any{"exists": map[string]any{"field": e.Field}}
}

// Range matches documents whose field value satisfies one or more bounds,
// e.g. {"gte": 5}.
type Range struct {
	Field  string
	Bounds map[string]any
}

// NewRange builds a single-bound range clause, e.g. NewRange("target_age.upper", "gte", 5).
func NewRange(field, op string, value any) Range {
	return Range{Field: field, Bounds: map[string]any{op: value}}
}

func (r Range) Map() map[string]any {
	return map[string]any{"range": map[string]any{r.Field: r.Bounds}}
}

// Regexp matches documents whose field value matches the given regular
// expression against the full field value.
type Regexp struct {
	Field string
	Value string
	Flags string
}

func (r Regexp) Map() map[string]any {
	body := map[string]any{"value": r.Value}
	if r.Flags != "" {
		body["flags"] = r.Flags
	}
	return map[string]any{"regexp": map[string]any{r.Field: body}}
}

// Match is an analyzed full-text match against one field. The fuzziness
// knobs turn it into an edit-distance-tolerant match.
type Match struct {
	Field string
	Query string

	// MinimumShouldMatch requires that many query terms to match.
	// Zero means the engine default.
	MinimumShouldMatch int

	// Fuzziness is the engine's edit-distance setting, e.g. "AUTO".
	Fuzziness     string
	PrefixLength  int
	MaxExpansions int
}

func (m Match) Map() map[string]any {
	body := map[string]any{"query": m.Query}
	if m.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = m.MinimumShouldMatch
	}
	if m.Fuzziness != "" {
		body["fuzziness"] = m.Fuzziness
		body["max_expansions"] = m.MaxExpansions
		if m.PrefixLength > 0 {
			body["prefix_length"] = m.PrefixLength
		}
	}
	return map[string]any{"match": map[string]any{m.Field: body}}
}

// MatchPhrase matches the query terms as a consecutive phrase in one field.
type MatchPhrase struct {
	Field string
	Query string
}

func (m MatchPhrase) Map() map[string]any {
	return map[string]any{"match_phrase": map[string]any{m.Field: m.Query}}
}

// MultiMatch runs one query against several fields at once.
type MultiMatch struct {
	Query  string
	Fields []string

	// Type selects the scoring strategy, e.g. "best_fields" or "cross_fields".
	Type string

	// Operator and MinimumShouldMatch constrain how much of the query
	// the match must explain ("and" + "100%" means all of it).
	Operator           string
	MinimumShouldMatch string
}

func (m MultiMatch) Map() map[string]any {
	body := map[string]any{
		"query":  m.Query,
		"fields": m.Fields,
	}
	if m.Type != "" {
		body["type"] = m.Type
	}
	if m.Operator != "" {
		body["operator"] = m.Operator
	}
	if m.MinimumShouldMatch != "" {
		body["minimum_should_match"] = m.MinimumShouldMatch
	}
	return map[string]any{"multi_match": body}
}

// # Compound clauses

// Bool combines clauses with boolean semantics. Must clauses all have to
// match, Should clauses contribute score (at least MinimumShouldMatch of
// them have to match if it is set), MustNot clauses exclude, and Filter
// clauses constrain without scoring.
type Bool struct {
	Must    []Query
	Should  []Query
	MustNot []Query
	Filter  []Query

	// Boost scales the score of this clause relative to its siblings.
	// Zero means no explicit boost.
	Boost float64

	MinimumShouldMatch int
}

func (b Bool) Map() map[string]any {
	body := map[string]any{}
	if len(b.Must) > 0 {
		body["must"] = mapAll(b.Must)
	}
	if len(b.Should) > 0 {
		body["should"] = mapAll(b.Should)
	}
	if len(b.MustNot) > 0 {
		body["must_not"] = mapAll(b.MustNot)
	}
	if len(b.Filter) > 0 {
		body["filter"] = mapAll(b.Filter)
	}
	if b.Boost != 0 {
		body["boost"] = b.Boost
	}
	if b.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = b.MinimumShouldMatch
	}
	return map[string]any{"bool": body}
}

// Nested applies a query inside a single element of a repeated subdocument:
// all clauses must hold for the *same* element of Path.
type Nested struct {
	Path  string
	Query Query
}

func (n Nested) Map() map[string]any {
	return map[string]any{"nested": map[string]any{
		"path":  n.Path,
		"query": n.Query.Map(),
	}}
}

// DisMax scores each document by the single best-scoring subquery, which is
// exactly the "pick the best hypothesis" combinator the search core needs.
type DisMax struct {
	Queries []Query
}

func (d DisMax) Map() map[string]any {
	return map[string]any{"dis_max": map[string]any{"queries": mapAll(d.Queries)}}
}

// And chains two filter clauses, starting a new chain if existing is nil.
// Both clauses end up ANDed in filter context.
func And(existing, next Query) Query {
	if existing == nil {
		return next
	}
	if b, ok := existing.(Bool); ok && len(b.Must) > 0 &&
		len(b.Should) == 0 && len(b.MustNot) == 0 && len(b.Filter) == 0 &&
		b.Boost == 0 && b.MinimumShouldMatch == 0 {
		// Flatten instead of nesting bool-in-bool.
		return Bool{Must: append(append([]Query{}, b.Must...), next)}
	}
	return Bool{Must: []Query{existing, next}}
}

func mapAll(queries []Query) []map[string]any {
	out := make([]map[string]any, len(queries))
	for i, q := range queries {
		out[i] = q.Map()
	}
	return out
}
