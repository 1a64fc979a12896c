// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/taibuivan/circa/internal/catalog/search/dsl"
)

// ParseError reports a JSON query the parser could not make sense of. The
// detail is safe to surface to API clients.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "could not parse search query: " + e.Detail
}

// Conjunctions of the JSON query language.
const (
	joinAnd = "and"
	joinOr  = "or"
	joinNot = "not"
)

// Leaf keys of the JSON query language.
const (
	leafKey   = "key"
	leafValue = "value"
	leafOp    = "op"
)

// Operators of the JSON query language.
const (
	opEq       = "eq"
	opNeq      = "neq"
	opGte      = "gte"
	opLte      = "lte"
	opLt       = "lt"
	opGt       = "gt"
	opRegex    = "regex"
	opContains = "contains"
)

var allOperators = map[string]bool{
	opEq: true, opNeq: true, opGte: true, opLte: true,
	opLt: true, opGt: true, opRegex: true, opContains: true,
}

// Characters with special meaning in the engine's regexp syntax, escaped
// before a contains/regex value is passed through.
const reservedChars = `.?+*|{}[]()"\#@&<>~`

var reservedReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(reservedChars))
	for _, ch := range reservedChars {
		pairs = append(pairs, string(ch), `\`+string(ch))
	}
	return strings.NewReplacer(pairs...)
}()

// fieldMapping describes how one queryable field is indexed: whether exact
// matches go against a .keyword subfield, which subdocument it lives in,
// and which operators are allowed against it.
type fieldMapping struct {
	keyword bool
	path    string
	ops     []string
}

var keywordOnly = fieldMapping{keyword: true}

// The queryable fields of the search index.
var jsonFieldMapping = map[string]fieldMapping{
	"audience":                       {},
	"author":                         keywordOnly,
	"classifications.scheme":         keywordOnly,
	"classifications.term":           keywordOnly,
	"contributors.display_name":      {keyword: true, path: "contributors"},
	"contributors.family_name":       {keyword: true, path: "contributors"},
	"contributors.lc":                {path: "contributors"},
	"contributors.role":              {path: "contributors"},
	"contributors.sort_name":         {keyword: true, path: "contributors"},
	"contributors.viaf":              {path: "contributors"},
	"fiction":                        keywordOnly,
	"genres.name":                    {path: "genres"},
	"genres.scheme":                  {path: "genres"},
	"genres.term":                    {path: "genres"},
	"genres.weight":                  {path: "genres"},
	"identifiers.identifier":         {path: "identifiers"},
	"identifiers.type":               {path: "identifiers"},
	"imprint":                        keywordOnly,
	"language":                       {},
	"licensepools.available":         {path: "licensepools"},
	"licensepools.availability_time": {path: "licensepools"},
	"licensepools.collection_id":     {path: "licensepools"},
	"licensepools.data_source_id":    {path: "licensepools", ops: []string{opEq, opNeq}},
	"licensepools.licensed":          {path: "licensepools"},
	"licensepools.medium":            {path: "licensepools"},
	"licensepools.open_access":       {path: "licensepools"},
	"licensepools.quality":           {path: "licensepools"},
	"licensepools.suppressed":        {path: "licensepools"},
	"medium":                         keywordOnly,
	"presentation_ready":             {},
	"publisher":                      keywordOnly,
	"quality":                        {},
	"series":                         keywordOnly,
	"sort_author":                    {},
	"sort_title":                     {},
	"subtitle":                       keywordOnly,
	"target_age":                     {},
	"title":                          keywordOnly,
	"published":                      {},
}

// Friendlier client-facing names for some fields.
var jsonFieldAliases = map[string]string{
	"genre":          "genres.name",
	"open_access":    "licensepools.open_access",
	"available":      "licensepools.available",
	"classification": "classifications.term",
	"data_source":    "licensepools.data_source_id",
}

// Common language names accepted in place of alpha-3 codes.
var languageCodes = map[string]string{
	"arabic":     "ara",
	"chinese":    "chi",
	"czech":      "cze",
	"danish":     "dan",
	"dutch":      "dut",
	"english":    "eng",
	"finnish":    "fin",
	"french":     "fre",
	"german":     "ger",
	"greek":      "gre",
	"hebrew":     "heb",
	"hindi":      "hin",
	"italian":    "ita",
	"japanese":   "jpn",
	"korean":     "kor",
	"norwegian":  "nor",
	"polish":     "pol",
	"portuguese": "por",
	"russian":    "rus",
	"spanish":    "spa",
	"swedish":    "swe",
	"turkish":    "tur",
	"ukrainian":  "ukr",
	"vietnamese": "vie",
}

// A JSONQuery is an exact-match search written in a small JSON query
// language, e.g.
//
//	{"query": {"and": [
//	    {"key": "title", "value": "book"},
//	    {"key": "author", "value": "robert"}]}}
//
// meaning "title=book and author=robert". Leaves are {key, value, op}
// objects with op defaulting to "eq"; "and", "or" and "not" combine
// subqueries.
type JSONQuery struct {
	Query  map[string]any
	Filter *Filter

	// ResolveDataSource maps a data source name to its id for
	// data_source leaves. A nil resolver, or a name it doesn't know,
	// yields the id 0, which matches nothing.
	ResolveDataSource func(name string) int
}

// NewJSONQuery parses the raw request body of a JSON search.
func NewJSONQuery(raw []byte, filter *Filter, resolve func(string) int) (*JSONQuery, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ParseError{Detail: fmt.Sprintf("'%s' is not a valid json", raw)}
	}
	return &JSONQuery{Query: body, Filter: filter, ResolveDataSource: resolve}, nil
}

// SearchQuery compiles the JSON query into a structured query clause.
func (q *JSONQuery) SearchQuery() (dsl.Query, error) {
	root, ok := q.Query["query"]
	if !ok {
		return nil, &ParseError{Detail: "'query' key must be present as the root"}
	}
	node, ok := root.(map[string]any)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("could not make sense of the query: %v", root)}
	}
	return q.parse(node)
}

// Build compiles the JSON query and filter into the complete request
// document. JSON searches are exact matches; no relevance scoring applies.
func (q *JSONQuery) Build(page Pagination) (*dsl.SearchRequest, error) {
	scored, err := q.SearchQuery()
	if err != nil {
		return nil, err
	}
	if scored == nil {
		scored = dsl.MatchAll{}
	}
	return buildRequest(scored, q.Filter, page)
}

func (q *JSONQuery) parse(node map[string]any) (dsl.Query, error) {
	if len(node) == 0 {
		return nil, nil
	}
	if _, hasKey := node[leafKey]; hasKey {
		if _, hasValue := node[leafValue]; hasValue {
			return q.parseLeaf(node)
		}
	}
	for key := range node {
		if key != joinAnd && key != joinOr && key != joinNot {
			return nil, &ParseError{Detail: fmt.Sprintf("could not make sense of the query: %v", node)}
		}
	}
	return q.parseJoin(node)
}

func (q *JSONQuery) parseLeaf(node map[string]any) (dsl.Query, error) {
	op := opEq
	if raw, ok := node[leafOp]; ok {
		op, _ = raw.(string)
		if !allOperators[op] {
			return nil, &ParseError{Detail: fmt.Sprintf("unrecognized operator: %v", raw)}
		}
	}

	oldKey, _ := node[leafKey].(string)
	value := node[leafValue]

	var err error
	value, err = q.transformValue(oldKey, value)
	if err != nil {
		return nil, err
	}

	// The contains/regex operators are a regex match, so special
	// characters in the value must be escaped.
	if op == opContains || op == opRegex {
		s, ok := value.(string)
		if !ok {
			return nil, &ParseError{Detail: fmt.Sprintf("operator '%s' requires a string value", op)}
		}
		value = reservedReplacer.Replace(s)
	}

	key := oldKey
	if mapped, ok := jsonFieldAliases[key]; ok {
		key = mapped
	}
	mapping, ok := jsonFieldMapping[key]
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("unrecognized key: %s", oldKey)}
	}

	if mapping.ops != nil {
		allowed := false
		for _, a := range mapping.ops {
			if a == op {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, &ParseError{Detail: fmt.Sprintf(
				"operator '%s' is not allowed for '%s', only use %v", op, oldKey, mapping.ops)}
		}
	}

	field := key
	if mapping.keyword {
		field = key + ".keyword"
	}

	var clause dsl.Query
	switch op {
	case opEq:
		clause = dsl.Term{Field: field, Value: value}
	case opNeq:
		clause = dsl.Bool{MustNot: []dsl.Query{dsl.Term{Field: field, Value: value}}}
	case opGt, opGte, opLt, opLte:
		clause = dsl.NewRange(field, op, value)
	case opRegex:
		clause = dsl.Regexp{Field: field, Value: value.(string), Flags: "ALL"}
	case opContains:
		clause = dsl.Regexp{Field: field, Value: ".*" + value.(string) + ".*", Flags: "ALL"}
	}

	if mapping.path != "" {
		clause = dsl.Nested{Path: mapping.path, Query: clause}
	}
	return clause, nil
}

func (q *JSONQuery) parseJoin(node map[string]any) (dsl.Query, error) {
	if len(node) != 1 {
		return nil, &ParseError{Detail: "a conjunction cannot have multiple parts in the same sub-query"}
	}
	var join string
	var parts any
	for key, value := range node {
		join, parts = key, value
	}
	list, ok := parts.([]any)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("'%s' must hold a list of sub-queries", join)}
	}

	joined := make([]dsl.Query, 0, len(list))
	for _, part := range list {
		sub, ok := part.(map[string]any)
		if !ok {
			return nil, &ParseError{Detail: fmt.Sprintf("could not make sense of the query: %v", part)}
		}
		clause, err := q.parse(sub)
		if err != nil {
			return nil, err
		}
		if clause != nil {
			joined = append(joined, clause)
		}
	}

	switch join {
	case joinAnd:
		return dsl.Bool{Must: joined}, nil
	case joinOr:
		return dsl.Bool{Should: joined}, nil
	default:
		return dsl.Bool{MustNot: joined}, nil
	}
}

// transformValue rewrites client-facing values into their indexed form.
func (q *JSONQuery) transformValue(key string, value any) (any, error) {
	s, isString := value.(string)
	if !isString {
		return value, nil
	}
	switch key {
	case "data_source":
		// A data source name becomes its id; an unknown name becomes
		// an id that matches nothing.
		if q.ResolveDataSource == nil {
			return 0, nil
		}
		return q.ResolveDataSource(s), nil
	case "published":
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, &ParseError{Detail: fmt.Sprintf(
				"could not parse 'published' value '%s', only use 'YYYY-MM-DD'", s)}
		}
		return float64(ts.Unix()), nil
	case "language":
		if code, ok := languageCodes[strings.ToLower(s)]; ok {
			return code, nil
		}
		return s, nil
	case "audience":
		return strings.ReplaceAll(s, " ", ""), nil
	default:
		return value, nil
	}
}
