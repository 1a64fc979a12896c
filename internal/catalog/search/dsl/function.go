// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dsl

// ScoringFunction is one entry in a function_score re-ranking list.
type ScoringFunction interface {
	// Map returns the JSON-ready representation of this function.
	Map() map[string]any
}

// ScriptScore computes a score from a server-side script.
type ScriptScore struct {
	Script Script
}

func (s ScriptScore) Map() map[string]any {
	return map[string]any{"script_score": map[string]any{"script": s.Script.Map()}}
}

// FieldValueFactor scores in proportion to a numeric field value, with a
// default for documents missing the field.
type FieldValueFactor struct {
	Field    string
	Factor   float64
	Modifier string
	Missing  float64
}

func (f FieldValueFactor) Map() map[string]any {
	return map[string]any{"field_value_factor": map[string]any{
		"field":    f.Field,
		"factor":   f.Factor,
		"modifier": f.Modifier,
		"missing":  f.Missing,
	}}
}

// RandomScore assigns a reproducible pseudo-random score seeded per request.
type RandomScore struct {
	Seed   int64
	Field  string
	Weight float64
}

func (r RandomScore) Map() map[string]any {
	return map[string]any{
		"random_score": map[string]any{
			"seed":  r.Seed,
			"field": r.Field,
		},
		"weight": r.Weight,
	}
}

// FilterWeight applies a flat weight to documents matching a filter.
type FilterWeight struct {
	Filter Query
	Weight float64
}

func (f FilterWeight) Map() map[string]any {
	return map[string]any{
		"filter": f.Filter.Map(),
		"weight": f.Weight,
	}
}
