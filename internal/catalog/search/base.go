// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"strings"

	"github.com/taibuivan/circa/internal/catalog/classifier"
	"github.com/taibuivan/circa/internal/catalog/search/dsl"
)

// Helpers shared by Query, QueryParser and Filter for assembling clauses.

// boostQuery boosts one or more clauses by a fixed amount relative to their
// neighbors in a dis_max query. If allMustMatch is false and there is more
// than one clause, matching any one of them is enough to earn the boost.
func boostQuery(boost float64, queries []dsl.Query, filters []dsl.Query, allMustMatch bool) dsl.Query {
	b := dsl.Bool{Boost: boost, Filter: filters}
	if allMustMatch || len(queries) == 1 {
		b.Must = queries
	} else {
		b.Should = queries
		b.MinimumShouldMatch = 1
	}
	return b
}

// nest runs a query in the context of a single subdocument element.
func nest(subdocument string, query dsl.Query) dsl.Query {
	return dsl.Nested{Path: subdocument, Query: query}
}

// nestable wraps a query in a nested clause when the field lives in a
// subdocument. Subdocument fields are recognizable by their plural prefix,
// e.g. "contributors.sort_name".
func nestable(field string, query dsl.Query) dsl.Query {
	if strings.Contains(field, "s.") {
		subdocument := strings.SplitN(field, ".", 2)[0]
		return nest(subdocument, query)
	}
	return query
}

// matchTerm matches the query string exactly against one field, nesting as
// needed.
func matchTerm(field, queryString string) dsl.Query {
	return nestable(field, dsl.Term{Field: field, Value: queryString})
}

// makeTargetAgeQuery builds two clauses for works whose target age overlaps
// the given range: a filter version that merely requires some overlap, and
// a boosted version that also rewards ranges contained entirely within the
// query range. For a query of 4-6, a work aimed at 5-6 beats one aimed at
// 6-7.
func makeTargetAgeQuery(targetAge classifier.AgeRange, boost float64) (filter, boosted dsl.Query) {
	lower, upper := targetAge.Lower, targetAge.Upper
	if lower == nil {
		lower = upper
	}
	if upper == nil {
		upper = lower
	}
	must := []dsl.Query{
		dsl.NewRange("target_age.upper", "gte", *lower),
		dsl.NewRange("target_age.lower", "lte", *upper),
	}
	should := []dsl.Query{
		dsl.NewRange("target_age.upper", "lte", *upper),
		dsl.NewRange("target_age.lower", "gte", *lower),
	}
	filter = dsl.Bool{Must: must}
	boosted = dsl.Bool{Must: must, Should: should, Boost: boost}
	return filter, boosted
}

// combineHypotheses merges a set of hypotheses so that each work is scored
// by whichever hypothesis explains it best. With no hypotheses at all,
// everything matches.
func combineHypotheses(hypotheses []dsl.Query) dsl.Query {
	if len(hypotheses) == 0 {
		return dsl.MatchAll{}
	}
	return dsl.DisMax{Queries: hypotheses}
}
