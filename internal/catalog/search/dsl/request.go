// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dsl

import json "github.com/goccy/go-json"

// SearchRequest is the complete compiled query document: the scored query,
// sort descriptors, script fields, scoring functions, and the result window.
// It is the single artifact the search core produces.
type SearchRequest struct {
	Query            Query
	Sort             []SortClause
	ScriptFields     map[string]ScriptField
	ScoringFunctions []ScoringFunction

	// Result window. From and Size are pointers so "unset" is
	// distinguishable from zero; SearchAfter, if present, replaces From
	// as the cursor.
	From        *int
	Size        *int
	SearchAfter []any
}

// Map returns the JSON-ready engine request body.
func (r *SearchRequest) Map() map[string]any {
	body := map[string]any{}

	query := r.Query
	if query == nil {
		query = MatchAll{}
	}
	if len(r.ScoringFunctions) > 0 {
		// Re-ranking wraps the whole query in a function_score.
		functions := make([]map[string]any, len(r.ScoringFunctions))
		for i, f := range r.ScoringFunctions {
			functions[i] = f.Map()
		}
		body["query"] = map[string]any{"function_score": map[string]any{
			"query":      query.Map(),
			"functions":  functions,
			"score_mode": "sum",
			"boost_mode": "sum",
		}}
	} else {
		body["query"] = query.Map()
	}

	if len(r.Sort) > 0 {
		sorts := make([]map[string]any, len(r.Sort))
		for i, s := range r.Sort {
			sorts[i] = s.Map()
		}
		body["sort"] = sorts
	}
	if len(r.ScriptFields) > 0 {
		fields := make(map[string]any, len(r.ScriptFields))
		for name, f := range r.ScriptFields {
			fields[name] = f.Map()
		}
		body["script_fields"] = fields
	}
	if r.From != nil {
		body["from"] = *r.From
	}
	if r.Size != nil {
		body["size"] = *r.Size
	}
	if len(r.SearchAfter) > 0 {
		body["search_after"] = r.SearchAfter
		// search_after and from are mutually exclusive cursors.
		delete(body, "from")
	}
	return body
}

// MarshalJSON serializes the request body for the engine.
func (r *SearchRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
