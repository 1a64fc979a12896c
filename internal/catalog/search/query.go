// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"sort"
	"strings"

	"github.com/taibuivan/circa/internal/catalog/search/dsl"
	"github.com/taibuivan/circa/internal/catalog/spell"
	"github.com/taibuivan/circa/pkg/names"
	"github.com/taibuivan/circa/pkg/stopwords"
)

// Relative importance of the fields someone might search for. These weights
// are used directly (an exact title match outranks an exact author match)
// and as the basis for derived weights: a fuzzy match for a field is scored
// in proportion to the non-fuzzy match for the same field. The contributor
// name fields carry the same weight as the author field on the main
// document.
var weightForField = map[string]float64{
	"title":     140,
	"subtitle":  130,
	"series":    120,
	"author":    120,
	"summary":   80,
	"publisher": 40,
	"imprint":   40,

	"contributors.sort_name":    120,
	"contributors.display_name": 120,
}

const (
	// If the entire query string turns into a filter, works matching
	// the filter get this weight. Very high, but not high enough to
	// outweigh an exact title match.
	queryWasAFilterWeight = 600

	// A keyword match means the patron typed a near-exact value for a
	// field. This is a coefficient, not a weight: a keyword title match
	// still beats a keyword subtitle match.
	defaultKeywordMatchCoefficient = 1000

	baselineCoefficient = 1.0

	// For boosting a hypothesis just slightly above baseline.
	slightlyAboveBaseline = 1.1
)

// For publishers and imprints a keyword match may really be a partial
// author or topic match ("Plympton", "Penguin"), so those keyword matches
// are weighted much lower.
var keywordMatchCoefficientForField = map[string]float64{
	"publisher": 2,
	"imprint":   2,
}

// Fields the query string might be nothing but an attempt to match.
var simpleMatchFields = []string{"title", "subtitle", "series", "publisher", "imprint"}

// Fields the query string might combine with words from the title. The
// author check here goes against the cheap .author field on the main
// document, not the contributors subdocument.
var multiMatchFields = []string{"subtitle", "series", "author"}

// Fields worth testing against their aggressively stemmed variant.
var stemmableFields = map[string]bool{"title": true, "subtitle": true, "series": true}

// Fields where stopwords in the query string might actually matter.
var stopwordFields = map[string]bool{"title": true, "subtitle": true, "series": true}

// A Query is an attempt to find something in the search index. It turns a
// user-typed string into a set of ranked hypotheses about what the user
// meant; each work is scored by whichever hypothesis explains it best.
type Query struct {
	QueryString string
	Filter      *Filter

	words             []string
	containsStopwords bool

	// How heavily to weight fuzzy hypotheses. A fuzzy hypothesis tests
	// the idea that the patron made a typo; its strength is always
	// lower than the non-fuzzy version of the same hypothesis.
	fuzzyCoefficient float64

	// Whether to try parsing filter information out of the query
	// string. False when this Query was itself built recursively from
	// the remainder of a larger query string.
	useQueryParser bool

	dict spell.Dictionary
}

// NewQuery prepares a search for the given query string under the given
// filter. A nil dictionary falls back to the built-in one.
func NewQuery(queryString string, filter *Filter, dict spell.Dictionary) *Query {
	if dict == nil {
		dict = spell.Default()
	}
	q := &Query{
		QueryString:    queryString,
		Filter:         filter,
		useQueryParser: true,
		dict:           dict,
	}
	q.words = strings.Fields(queryString)
	q.containsStopwords = stopwords.ContainsStopword(q.words)

	switch {
	case len(q.words) == 0:
		// No words, so no risk of a misspelled one. Skip the fuzzy
		// hypotheses entirely.
		q.fuzzyCoefficient = 0
	case len(spell.Unknown(dict, q.words)) > 0:
		// Spell check failed, which is the normal case: names
		// generally fail spell check. Fuzzy hypotheses get their
		// full weight.
		q.fuzzyCoefficient = 1.0
	default:
		// Everything seems spelled correctly, but a word can still
		// be a typo for another word ("came" for "cane"). Keep the
		// fuzzy hypotheses at half strength.
		q.fuzzyCoefficient = 0.5
	}
	return q
}

// weighted pairs a hypothesis with its relative weight.
type weighted struct {
	query  dsl.Query
	weight float64
}

// SearchQuery builds the scored query for this query string.
func (q *Query) SearchQuery() dsl.Query {
	if q.QueryString == "" {
		return dsl.MatchAll{}
	}

	var hypotheses []dsl.Query

	// The query string might be a match against a single field,
	// probably title or series. These are the most common searches.
	for _, field := range simpleMatchFields {
		for _, h := range q.matchOneFieldHypotheses(field, "") {
			hypotheses = q.hypothesize(hypotheses, []dsl.Query{h.query}, h.weight, nil, false)
		}
	}

	// The same idea for authors, complicated by the fact that a book
	// has multiple contributors and only some roles are relevant.
	for _, h := range q.matchAuthorHypotheses() {
		hypotheses = q.hypothesize(hypotheses, []dsl.Query{h.query}, h.weight, nil, false)
	}

	// The query string may be looking for a topic or subject matter.
	for _, h := range q.matchTopicHypotheses() {
		hypotheses = q.hypothesize(hypotheses, []dsl.Query{h.query}, h.weight, nil, false)
	}

	// The query string might combine words from the title with words
	// from some other major field, probably the author's name.
	for _, field := range multiMatchFields {
		for _, h := range q.titleMultiMatchFor(field) {
			hypotheses = q.hypothesize(hypotheses, []dsl.Query{h.query}, h.weight, nil, false)
		}
	}

	// Finally, the query string might contain a filter portion (a
	// genre name, a target age) with the remainder being the "real"
	// query. In "nonfiction asteroids", "nonfiction" is the filter
	// portion and "asteroids" the query portion: searching nonfiction
	// for "asteroids" beats searching the text fields for the whole
	// string.
	if q.useQueryParser {
		parsed := ParseQuery(q.QueryString, q.dict)
		subHypotheses, filters := parsed.MatchQueries, parsed.Filters
		if len(subHypotheses) > 0 || len(filters) > 0 {
			var boost float64
			if len(subHypotheses) == 0 {
				// The entire search string became a filter, as in
				// "young adult romance". Everything matching the
				// filter matches, with a relatively high boost.
				subHypotheses = []dsl.Query{dsl.MatchAll{}}
				boost = queryWasAFilterWeight
			} else {
				// Part filter, part query. Boost filter matches
				// slightly; the real goal is filtering out junk.
				boost = slightlyAboveBaseline
			}
			hypotheses = q.hypothesize(hypotheses, subHypotheses, boost, filters, true)
		}
	}

	// A book's score is the best score it gets from any hypothesis.
	return combineHypotheses(hypotheses)
}

// matchOneFieldHypotheses yields the ways the query string might be an
// attempt to match one field. Every hypothesis is weighted relative to the
// standard weight of the field: field weight times a match-type
// coefficient, times a fuzzy coefficient for the fuzzy variants.
func (q *Query) matchOneFieldHypotheses(baseField, queryString string) []weighted {
	baseWeight := weightForField[baseField]
	if queryString == "" {
		queryString = q.QueryString
	}

	keywordCoefficient, ok := keywordMatchCoefficientForField[baseField]
	if !ok {
		keywordCoefficient = defaultKeywordMatchCoefficient
	}

	type variant struct {
		subfield    string
		coefficient float64
		kind        string // "term", "phrase" or "match"
	}
	variants := []variant{
		// A near-exact match for the field value: one of the best
		// results we can possibly return.
		{"keyword", keywordCoefficient, "term"},
		// The baseline: a phrase match against a single field. Most
		// queries turn out to be consecutive words from one field.
		{"minimal", baselineCoefficient, "phrase"},
	}
	if q.containsStopwords && stopwordFields[baseField] {
		// A phrase match against the variant that keeps stopwords,
		// slightly above baseline so it wins when it matches.
		variants = append(variants, variant{"with_stopwords", slightlyAboveBaseline, "phrase"})
	}
	if stemmableFields[baseField] {
		// A non-phrase match against the stemmed field handles words
		// in the wrong order or words that only match once stemmed.
		// It runs at a disadvantage to baseline.
		variants = append(variants, variant{"", baselineCoefficient * 0.75, "match"})
	}

	var out []weighted
	for _, v := range variants {
		fieldName := baseField
		if v.subfield != "" {
			fieldName = baseField + "." + v.subfield
		}
		fieldWeight := baseWeight * v.coefficient

		var clause dsl.Query
		switch v.kind {
		case "term":
			clause = dsl.Term{Field: fieldName, Value: queryString}
		case "phrase":
			clause = dsl.MatchPhrase{Field: fieldName, Query: queryString}
		case "match":
			// minimum_should_match=2: with two or more words in the
			// query, at least two must match. "Foo" alone should not
			// top the results for "foo bar". No higher, though: two
			// out of three matching words may be the best we can do.
			clause = dsl.Match{
				Field:              fieldName,
				Query:              queryString,
				MinimumShouldMatch: 2,
			}
		}
		out = append(out, weighted{clause, fieldWeight})

		if q.fuzzyCoefficient > 0 && v.subfield == "minimal" {
			// Fuzzy versions run only against the minimally stemmed
			// subfield, something close to what the patron actually
			// typed.
			for _, fz := range q.fuzzyMatches(fieldName, queryString) {
				out = append(out, weighted{fz.query, fieldWeight * fz.weight})
			}
		}
	}
	return out
}

// fuzzyMatches yields fuzzy variants of a phrase hypothesis at a fraction
// of its weight. fuzziness=AUTO allows typos in proportion to word length;
// max_expansions caps the alternates considered per word.
func (q *Query) fuzzyMatches(fieldName, queryString string) []weighted {
	base := dsl.Match{
		Field:              fieldName,
		Query:              queryString,
		MinimumShouldMatch: 2,
		Fuzziness:          "AUTO",
		MaxExpansions:      2,
	}
	withPrefix := base
	// Assuming no typo in the first character of a word (usually safe)
	// earns the variant a higher fraction of the non-fuzzy weight.
	withPrefix.PrefixLength = 1
	return []weighted{
		{base, q.fuzzyCoefficient * 0.50},
		{withPrefix, q.fuzzyCoefficient * 0.75},
	}
}

// matchAuthorHypotheses yields the ways the query string might name one of
// a book's authors.
func (q *Query) matchAuthorHypotheses() []weighted {
	// Match what was typed against contributors.display_name.
	out := q.authorFieldMustMatch("display_name", q.QueryString)

	// Almost nobody types a sort name, but people do paste them, and
	// some contributors are only known by their sort name. Convert the
	// query to a sort name and try that against contributors.sort_name.
	if sortName := names.DisplayToSort(q.QueryString); sortName != "" {
		out = append(out, q.authorFieldMustMatch("sort_name", sortName)...)
	}
	return out
}

// authorFieldMustMatch yields hypotheses matching one field of the
// contributors subdocument, with the additional requirement that the
// contributor held a search-relevant role.
func (q *Query) authorFieldMustMatch(baseField, queryString string) []weighted {
	fieldName := "contributors." + baseField
	var out []weighted
	for _, h := range q.matchOneFieldHypotheses(fieldName, queryString) {
		out = append(out, weighted{roleMustAlsoMatch(h.query), h.weight})
	}
	return out
}

// roleMustAlsoMatch restricts a contributors clause so the same contributor
// entry also holds a search-relevant role. Weighting Primary Author over
// Author over Narrator sounds appealing but in practice slows searches
// dramatically without improving results.
func roleMustAlsoMatch(base dsl.Query) dsl.Query {
	matchRole := dsl.TermsString("contributors.role", SearchRelevantRoles)
	return nest("contributors", dsl.Bool{Must: []dsl.Query{base, matchRole}})
}

// matchTopicHypotheses yields the hypothesis that the query string names a
// topic or subject. The default analyzer gives us the stemmed variants of
// these fields.
func (q *Query) matchTopicHypotheses() []weighted {
	return []weighted{{
		dsl.MultiMatch{
			Query:  q.QueryString,
			Fields: []string{"summary", "classifications.term"},
			Type:   "best_fields",
		},
		weightForField["summary"],
	}}
}

// titleMultiMatchFor yields at most one hypothesis crossing the title with
// another field. Only works when everything is spelled correctly; a
// cross_fields match cannot be combined with a fuzzy search.
func (q *Query) titleMultiMatchFor(otherField string) []weighted {
	if len(q.words) < 2 {
		// Matching two different fields takes at least two words.
		return nil
	}

	titleWeight := weightForField["title"]
	otherWeight := weightForField[otherField]
	// Somewhere between a pure title match and a pure match against
	// the other field.
	combinedWeight := otherWeight * (otherWeight / titleWeight)

	return []weighted{{
		dsl.MultiMatch{
			Query:  q.QueryString,
			Fields: []string{"title.minimal", otherField + ".minimal"},
			Type:   "cross_fields",
			// The hypothesis must explain the entire query string.
			// Otherwise the title's weight boosts partial title
			// matches over better matches found some other way.
			Operator:           "and",
			MinimumShouldMatch: "100%",
		},
		combinedWeight,
	}}
}

// hypothesize appends a boosted hypothesis to the list under test.
func (q *Query) hypothesize(hypotheses []dsl.Query, queries []dsl.Query, boost float64, filters []dsl.Query, allMustMatch bool) []dsl.Query {
	if len(queries) == 0 && len(filters) == 0 {
		return hypotheses
	}
	return append(hypotheses, boostQuery(boost, queries, filters, allMustMatch))
}

// Pagination modifies the compiled request to select a slice of results.
type Pagination interface {
	ModifySearchRequest(*dsl.SearchRequest)
}

// Build compiles the query string and filter into the complete request
// document: scored query, filter context, sort order, script fields,
// scoring functions and result window.
func (q *Query) Build(page Pagination) (*dsl.SearchRequest, error) {
	return buildRequest(q.SearchQuery(), q.Filter, page)
}

func buildRequest(scored dsl.Query, filter *Filter, page Pagination) (*dsl.SearchRequest, error) {
	var base dsl.Query
	nested := map[string][]dsl.Query{}
	if filter != nil {
		base, nested = filter.Build()
	}

	// Works must be presentation-ready and so on, whatever else the
	// filter says.
	queryFilter := dsl.And(base, UniversalBaseFilter())
	query := scored
	if queryFilter != nil {
		query = dsl.Bool{Must: []dsl.Query{query}, Filter: []dsl.Query{queryFilter}}
	}

	for path, clauses := range UniversalNestedFilters() {
		nested[path] = append(nested[path], clauses...)
	}

	// Nested filters run in filter context within their subdocument
	// scope: all clauses for a path must hold for the same element.
	paths := make([]string, 0, len(nested))
	for path := range nested {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	var nestedClauses []dsl.Query
	for _, path := range paths {
		for _, sub := range nested[path] {
			nestedClauses = append(nestedClauses, dsl.Nested{
				Path:  path,
				Query: dsl.Bool{Filter: []dsl.Query{sub}},
			})
		}
	}
	if len(nestedClauses) > 0 {
		query = dsl.Bool{Must: []dsl.Query{query}, Filter: nestedClauses}
	}

	req := &dsl.SearchRequest{Query: query}

	if filter != nil {
		sortOrder, err := filter.SortOrder()
		if err != nil {
			return nil, err
		}
		req.Sort = sortOrder
		if len(filter.ScriptFields) > 0 {
			req.ScriptFields = filter.ScriptFields
		}
		req.ScoringFunctions = filter.ScoringFunctions
	}

	if page != nil {
		page.ModifySearchRequest(req)
	}
	return req, nil
}
