// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dsl

// SortClause describes one entry in the ordered sort list of a search
// request.
type SortClause interface {
	// Map returns the JSON-ready representation of this sort entry.
	Map() map[string]any
}

// FieldSort orders results by a plain top-level field.
type FieldSort struct {
	Field     string
	Direction string // "asc" or "desc"
}

func (s FieldSort) Map() map[string]any {
	return map[string]any{s.Field: s.Direction}
}

// NestedSort orders results by a field inside a repeated subdocument,
// reducing the matching elements with Mode ("min" or "max"). Filter, if set,
// restricts which elements are considered.
type NestedSort struct {
	Field     string
	Direction string
	Mode      string
	Path      string
	Filter    Query
}

func (s NestedSort) Map() map[string]any {
	body := map[string]any{
		"order": s.Direction,
		"mode":  s.Mode,
	}
	if s.Path != "" {
		nested := map[string]any{"path": s.Path}
		if s.Filter != nil {
			nested["filter"] = s.Filter.Map()
		}
		body["nested"] = nested
	}
	return map[string]any{s.Field: body}
}

// ScriptSort orders results by a server-side computed value.
type ScriptSort struct {
	Type      string // result type of the script, e.g. "number"
	Script    Script
	Direction string
}

func (s ScriptSort) Map() map[string]any {
	return map[string]any{
		"_script": map[string]any{
			"type":   s.Type,
			"script": s.Script.Map(),
			"order":  s.Direction,
		},
	}
}

// Script references either a stored server-side script by name or an inline
// source, with named parameters.
type Script struct {
	Stored string
	Source string
	Params map[string]any
}

func (s Script) Map() map[string]any {
	body := map[string]any{}
	if s.Stored != "" {
		body["stored"] = s.Stored
	}
	if s.Source != "" {
		body["source"] = s.Source
	}
	if len(s.Params) > 0 {
		body["params"] = s.Params
	}
	return body
}

// ScriptField surfaces a script-computed value on each search hit.
type ScriptField struct {
	Script Script
}

func (f ScriptField) Map() map[string]any {
	return map[string]any{"script": f.Script.Map()}
}
