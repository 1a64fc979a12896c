// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/circa/internal/catalog/classifier"
	"github.com/taibuivan/circa/internal/catalog/search/dsl"
	"github.com/taibuivan/circa/pkg/scrub"
)

// Name of the stored server-side script that computes a work's last update
// time from its metadata, collection and list membership timestamps. The
// version suffix tracks the index mapping it was written against.
const workLastUpdateScript = "work_last_update.v5"

// Default lane priority level assumed for works that don't carry one.
const defaultLanePriorityLevel = 10

// Quality assumed for works with no quality score, when computing
// featurability.
const featurableDefaultQuality = 0.001

// FilterOptions carries every restriction a Filter can be built from. All
// fields are optional; the zero value matches everything that passes the
// universal filters.
type FilterOptions struct {
	// CollectionIDs scopes the search to works licensed to one of these
	// collections. nil means no restriction; an empty non-nil slice
	// matches nothing. The two are opposites, never conflate them.
	CollectionIDs []int

	Media     []string
	Languages []string

	// Fiction is a tri-state: nil means no restriction.
	Fiction *bool

	Audiences []string

	// TargetAge restricts to works whose target age overlaps this range.
	TargetAge *classifier.AgeRange

	// GenreRestrictionSets and CustomListRestrictionSets are AND-ed
	// lists of OR-sets: a work must match at least one id from every
	// set.
	GenreRestrictionSets      [][]int
	CustomListRestrictionSets [][]int

	// AllowHolds, when false, drops works with no currently available
	// copies. nil means holds are allowed.
	AllowHolds *bool

	// UpdatedAfter keeps only works whose bibliographic metadata
	// changed since the given time.
	UpdatedAfter *time.Time

	// Series restricts to one series by exact name. MatchAnySeries
	// instead restricts to works that belong to any series at all.
	Series         string
	MatchAnySeries bool

	// Author restricts to works this person contributed to in an
	// authorship role.
	Author *Author

	// LicenseDataSourceIDs restricts to works with license pools from
	// these data sources.
	LicenseDataSourceIDs []int

	// Identifiers restricts to works carrying at least one of these
	// identifiers.
	Identifiers []Identifier

	// Library applies per-library suppression and content policy.
	Library *Library

	// ScriptFields are extra script-computed values to attach to each
	// hit.
	ScriptFields map[string]dsl.ScriptField

	// LaneBuilding marks filters built from lane definitions, which
	// apply a stricter target-age policy for children's lanes.
	LaneBuilding bool

	// MatchNothing short-circuits the whole search: we already know
	// the result set is empty.
	MatchNothing bool
}

// Filter represents every non-text restriction on a search and compiles
// them into engine filter clauses. Build a Filter with NewFilter or
// FromWorkList, optionally adjust it with ApplyFacets, then call Build.
type Filter struct {
	CollectionIDs             []int
	Media                     []string
	Languages                 []string
	Fiction                   *bool
	TargetAge                 *classifier.AgeRange
	GenreRestrictionSets      [][]int
	CustomListRestrictionSets [][]int
	AllowHolds                bool
	UpdatedAfter              *time.Time
	Series                    string
	MatchAnySeries            bool
	Author                    *Author
	LicenseDataSourceIDs      []int
	Identifiers               []Identifier

	LibraryID         int
	FilteredAudiences []string
	FilteredGenres    []string

	// Facet-controlled knobs, defaulted here and overridden by
	// ApplyFacets.
	MinimumFeaturedQuality float64
	Availability           string
	Order                  []string
	OrderAscending         bool
	ScoringFunctions       []dsl.ScoringFunction
	SearchType             string

	ScriptFields map[string]dsl.ScriptField

	LaneBuilding bool
	MatchNothing bool

	audiences []string
}

// NewFilter builds a Filter from explicit options.
func NewFilter(opts FilterOptions) *Filter {
	f := &Filter{
		CollectionIDs:             opts.CollectionIDs,
		Media:                     opts.Media,
		Languages:                 opts.Languages,
		Fiction:                   opts.Fiction,
		TargetAge:                 opts.TargetAge,
		GenreRestrictionSets:      opts.GenreRestrictionSets,
		CustomListRestrictionSets: opts.CustomListRestrictionSets,
		AllowHolds:                true,
		UpdatedAfter:              opts.UpdatedAfter,
		Series:                    opts.Series,
		MatchAnySeries:            opts.MatchAnySeries,
		Author:                    opts.Author,
		LicenseDataSourceIDs:      opts.LicenseDataSourceIDs,
		Identifiers:               opts.Identifiers,
		ScriptFields:              opts.ScriptFields,
		SearchType:                SearchTypeDefault,
		LaneBuilding:              opts.LaneBuilding,
		MatchNothing:              opts.MatchNothing,
		audiences:                 opts.Audiences,
	}
	if opts.AllowHolds != nil {
		f.AllowHolds = *opts.AllowHolds
	}
	if f.ScriptFields == nil {
		f.ScriptFields = map[string]dsl.ScriptField{}
	}
	if lib := opts.Library; lib != nil {
		f.LibraryID = lib.ID
		f.FilteredAudiences = lib.FilteredAudiences
		f.FilteredGenres = lib.FilteredGenres
		if opts.CollectionIDs == nil {
			f.CollectionIDs = lib.ActiveCollectionIDs
		}
	}
	return f
}

// WorkList exposes the already-inherited restrictions of a lane or work
// list. Each accessor returns the effective value after walking the lane
// hierarchy; id-valued restrictions arrive pre-resolved to integers.
type WorkList interface {
	Media() []string
	Languages() []string
	Fiction() *bool
	Audiences() []string
	TargetAge() *classifier.AgeRange
	CollectionIDs() []int
	LicenseDataSourceIDs() []int
	GenreRestrictions() [][]int
	CustomListRestrictions() [][]int
	Library() *Library
}

// FromWorkList creates a Filter that finds only works belonging in the
// given work list, adjusted by the given facets.
func FromWorkList(wl WorkList, facets *FacetAdjustments) *Filter {
	lib := wl.Library()
	allowHolds := true
	if lib != nil {
		allowHolds = lib.AllowHolds
	}
	f := NewFilter(FilterOptions{
		CollectionIDs:             wl.CollectionIDs(),
		Media:                     wl.Media(),
		Languages:                 wl.Languages(),
		Fiction:                   wl.Fiction(),
		Audiences:                 wl.Audiences(),
		TargetAge:                 wl.TargetAge(),
		GenreRestrictionSets:      wl.GenreRestrictions(),
		CustomListRestrictionSets: wl.CustomListRestrictions(),
		AllowHolds:                &allowHolds,
		LicenseDataSourceIDs:      wl.LicenseDataSourceIDs(),
		Library:                   lib,
		LaneBuilding:              true,
	})
	f.ApplyFacets(facets)
	return f
}

// FacetAdjustments carries the facet-controlled knobs that modify a Filter
// after construction: availability, sort order, featured-quality cutoff and
// extra scoring functions. A nil adjustment leaves the Filter untouched.
type FacetAdjustments struct {
	Availability           string
	Order                  []string
	OrderAscending         bool
	MinimumFeaturedQuality *float64
	ScoringFunctions       []dsl.ScoringFunction
	SearchType             string
}

// ApplyFacets folds facet configuration into the filter.
func (f *Filter) ApplyFacets(adj *FacetAdjustments) {
	if adj == nil {
		return
	}
	if adj.Availability != "" {
		f.Availability = adj.Availability
	}
	if len(adj.Order) > 0 {
		f.Order = adj.Order
	}
	f.OrderAscending = adj.OrderAscending
	if adj.MinimumFeaturedQuality != nil {
		f.MinimumFeaturedQuality = *adj.MinimumFeaturedQuality
	}
	f.ScoringFunctions = adj.ScoringFunctions
	if adj.SearchType != "" {
		f.SearchType = adj.SearchType
	}
}

// Audiences returns the effective audiences for this filter. Whenever the
// requested audiences admit readers fluent enough for "All Ages" content,
// that audience is included as well.
func (f *Filter) Audiences() []string {
	asIs := f.audiences
	if len(asIs) == 0 {
		return asIs
	}
	for _, a := range asIs {
		if a == classifier.AudienceAllAges {
			// Explicitly included already.
			return asIs
		}
	}
	withAllAges := append(append([]string{}, asIs...), classifier.AudienceAllAges)

	for _, a := range asIs {
		if a == classifier.AudienceYoungAdult || a == classifier.AudienceAdult {
			return withAllAges
		}
	}

	// All Ages content does not belong in Adults Only or Research.
	children := false
	for _, a := range asIs {
		if a == classifier.AudienceChildren {
			children = true
		}
	}
	if !children {
		return asIs
	}

	// Children it is. Whether All Ages content fits comes down to the
	// upper bound on the target age.
	if f.TargetAge != nil && f.TargetAge.Upper != nil &&
		*f.TargetAge.Upper < classifier.AllAgesAgeCutoff {
		// Readers this young are not expected to have the fluency
		// that All Ages books assume.
		return asIs
	}
	return withAllAges
}

// Build compiles the filter into a flat clause over the main document plus
// a map from subdocument path to the clauses that must hold within a single
// element of that subdocument. The flat clause may be nil when no top-level
// restriction applies.
func (f *Filter) Build() (dsl.Query, map[string][]dsl.Query) {
	nested := map[string][]dsl.Query{}
	if f.MatchNothing {
		return dsl.MatchNone{}, nested
	}

	var flat dsl.Query

	if f.CollectionIDs != nil {
		// An empty id list deliberately matches no collections.
		nested["licensepools"] = append(nested["licensepools"],
			dsl.TermsInt("licensepools.collection_id", f.CollectionIDs))
	}
	if len(f.LicenseDataSourceIDs) > 0 {
		nested["licensepools"] = append(nested["licensepools"],
			dsl.TermsInt("licensepools.data_source_id", f.LicenseDataSourceIDs))
	}
	if f.Author != nil {
		if af := f.authorFilter(); af != nil {
			nested["contributors"] = append(nested["contributors"], af)
		}
	}

	if f.LibraryID != 0 {
		flat = dsl.And(flat, dsl.Bool{MustNot: []dsl.Query{
			dsl.TermsInt("suppressed_for", []int{f.LibraryID}),
		}})
	}
	if len(f.FilteredAudiences) > 0 {
		flat = dsl.And(flat, dsl.Bool{MustNot: []dsl.Query{
			dsl.TermsString("audience", scrub.List(f.FilteredAudiences)),
		}})
	}
	if len(f.FilteredGenres) > 0 {
		flat = dsl.And(flat, dsl.Bool{MustNot: []dsl.Query{
			nest("genres", dsl.TermsString("genres.name", f.FilteredGenres)),
		}})
	}

	if len(f.Media) > 0 {
		flat = dsl.And(flat, dsl.TermsString("medium", scrub.List(f.Media)))
	}
	if len(f.Languages) > 0 {
		flat = dsl.And(flat, dsl.TermsString("language", scrub.List(f.Languages)))
	}
	if f.Fiction != nil {
		value := "nonfiction"
		if *f.Fiction {
			value = "fiction"
		}
		flat = dsl.And(flat, dsl.Term{Field: "fiction", Value: value})
	}

	if f.MatchAnySeries {
		// The work must belong to some series: the field must exist
		// and hold something other than the empty string.
		flat = dsl.And(flat, dsl.Exists{Field: "series"})
		flat = dsl.And(flat, dsl.Bool{MustNot: []dsl.Query{
			dsl.Term{Field: "series.keyword", Value: ""},
		}})
	} else if f.Series != "" {
		flat = dsl.And(flat, dsl.Term{Field: "series.keyword", Value: f.Series})
	}

	if audiences := f.Audiences(); len(audiences) > 0 {
		flat = dsl.And(flat, dsl.TermsString("audience", scrub.List(audiences)))
	} else {
		// With no audience restriction at all, still keep research
		// material out of patron-facing results.
		research := scrub.Value(classifier.AudienceResearch)
		flat = dsl.And(flat, dsl.Bool{MustNot: []dsl.Query{
			dsl.Term{Field: "audience", Value: research},
		}})
	}

	if ta := f.targetAgeFilter(); ta != nil {
		flat = dsl.And(flat, ta)
	}

	for _, genreIDs := range f.GenreRestrictionSets {
		nested["genres"] = append(nested["genres"],
			dsl.TermsInt("genres.term", genreIDs))
	}
	for _, listIDs := range f.CustomListRestrictionSets {
		nested["customlists"] = append(nested["customlists"],
			dsl.TermsInt("customlists.list_id", listIDs))
	}

	openAccess := dsl.Term{Field: "licensepools.open_access", Value: true}
	switch f.Availability {
	case AvailableNow:
		available := dsl.Term{Field: "licensepools.available", Value: true}
		nested["licensepools"] = append(nested["licensepools"], dsl.Bool{
			Should:             []dsl.Query{openAccess, available},
			MinimumShouldMatch: 1,
		})
	case AvailableOpenAccess:
		nested["licensepools"] = append(nested["licensepools"], openAccess)
	case AvailableNotNow:
		nested["licensepools"] = append(nested["licensepools"], dsl.Bool{Must: []dsl.Query{
			dsl.Term{Field: "licensepools.open_access", Value: false},
			dsl.Term{Field: "licensepools.licensed", Value: true},
			dsl.Term{Field: "licensepools.available", Value: false},
		}})
	}

	if len(f.Identifiers) > 0 {
		// Both the identifier and its type must match for any single
		// identifier to count, and at least one identifier must match.
		clauses := make([]dsl.Query, 0, len(f.Identifiers))
		for _, id := range f.Identifiers {
			clauses = append(clauses, dsl.Bool{Must: []dsl.Query{
				dsl.Term{Field: "identifiers.identifier", Value: id.Identifier},
				dsl.Term{Field: "identifiers.type", Value: id.Type},
			}})
		}
		nested["identifiers"] = append(nested["identifiers"], dsl.Bool{
			Should:             clauses,
			MinimumShouldMatch: 1,
		})
	}

	if !f.AllowHolds {
		// Holds are disabled, so a work only counts if a copy is
		// available right now.
		available := dsl.Term{Field: "licensepools.available", Value: true}
		nested["licensepools"] = append(nested["licensepools"], dsl.Bool{
			Should: []dsl.Query{available, openAccess},
		})
	}

	if f.UpdatedAfter != nil {
		// last_update_time is indexed in epoch seconds.
		flat = dsl.And(flat, dsl.Bool{Must: []dsl.Query{
			dsl.NewRange("last_update_time", "gte", f.UpdatedAfter.Unix()),
		}})
	}

	return flat, nested
}

// targetAgeFilter generates the target age subfilter. Missing bounds mean
// there is no limit in that direction, both in the filter and in the works
// being matched.
func (f *Filter) targetAgeFilter() dsl.Query {
	if f.TargetAge == nil || f.TargetAge.Empty() {
		return nil
	}
	lower, upper := f.TargetAge.Lower, f.TargetAge.Upper

	doesNotExist := func(field string) dsl.Query {
		return dsl.Bool{MustNot: []dsl.Query{dsl.Exists{Field: field}}}
	}
	orDoesNotExist := func(clause dsl.Query, field string) dsl.Query {
		return dsl.Bool{
			Should:             []dsl.Query{clause, doesNotExist(field)},
			MinimumShouldMatch: 1,
		}
	}

	if f.LaneBuilding && lower != nil && upper != nil {
		for _, a := range f.Audiences() {
			if a == classifier.AudienceChildren {
				// Children's lanes take only works with a defined
				// age range inside the lane's range.
				return dsl.Bool{Must: []dsl.Query{
					dsl.NewRange("target_age.lower", "gte", *lower),
					dsl.NewRange("target_age.upper", "lte", *upper),
				}}
			}
		}
	}

	var clauses []dsl.Query
	if upper != nil {
		lowerInRange := dsl.NewRange("target_age.lower", "lte", *upper)
		clauses = append(clauses, orDoesNotExist(lowerInRange, "target_age.lower"))
	}
	if lower != nil {
		upperInRange := dsl.NewRange("target_age.upper", "gte", *lower)
		clauses = append(clauses, orDoesNotExist(upperInRange, "target_age.upper"))
	}
	if len(clauses) == 0 {
		return nil
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return dsl.Bool{Must: clauses}
}

// authorFilter matches a contributors subdocument only if it represents an
// author-level contribution by this filter's Author.
func (f *Filter) authorFilter() dsl.Query {
	if f.Author == nil {
		return nil
	}
	role := dsl.TermsString("contributors.role", AuthorMatchRoles)
	var clauses []dsl.Query
	for _, fv := range []struct{ field, value string }{
		{"contributors.sort_name.keyword", f.Author.SortName},
		{"contributors.display_name.keyword", f.Author.DisplayName},
		{"contributors.viaf", f.Author.VIAF},
		{"contributors.lc", f.Author.LC},
	} {
		if fv.value == "" || fv.value == UnknownAuthor {
			continue
		}
		clauses = append(clauses, dsl.Term{Field: fv.field, Value: fv.value})
	}
	samePerson := dsl.Bool{Should: clauses, MinimumShouldMatch: 1}
	return dsl.Bool{Must: []dsl.Query{role, samePerson}}
}

// UniversalBaseFilter returns the restrictions on the main document that
// apply to every search: only presentation-ready works are shown.
func UniversalBaseFilter() dsl.Query {
	return dsl.Term{Field: "presentation_ready", Value: true}
}

// UniversalNestedFilters returns the subdocument restrictions that apply to
// every search. Suppressed and inactive license pools are indexed along
// with everything else and excluded here; that keeps the index consistent
// without constantly adding and removing works.
func UniversalNestedFilters() map[string][]dsl.Query {
	return map[string][]dsl.Query{
		"licensepools": {
			dsl.Term{Field: "licensepools.suppressed", Value: false},
			dsl.Term{Field: "licensepools.status", Value: LicensePoolStatusActive},
		},
	}
}

// Tie-breaker fields appended to every sort, keeping feed order stable and
// human-sensible for as long as possible before falling back to the opaque
// work id.
var defaultSortOrder = []string{"sort_author", "sort_title", "work_id"}

// SortOrder builds the ordered list of sort descriptors for this filter.
// The result is empty when no explicit order is set, leaving ordering to
// relevance scoring.
func (f *Filter) SortOrder() ([]dsl.SortClause, error) {
	if len(f.Order) == 0 {
		return nil, nil
	}
	clauses := make([]dsl.SortClause, 0, len(f.Order)+len(defaultSortOrder))
	for _, key := range f.Order {
		clause, err := f.makeOrderField(key)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	for _, key := range defaultSortOrder {
		covered := false
		for _, ordered := range f.Order {
			if ordered == key {
				covered = true
				break
			}
		}
		if !covered {
			clauses = append(clauses, dsl.FieldSort{Field: key, Direction: "asc"})
		}
	}
	return clauses, nil
}

func (f *Filter) direction() string {
	if f.OrderAscending {
		return "asc"
	}
	return "desc"
}

func (f *Filter) makeOrderField(key string) (dsl.SortClause, error) {
	if key == "last_update_time" &&
		(len(f.CollectionIDs) > 0 || len(f.CustomListRestrictionSets) > 0) {
		// "Last updated" has to account for when a work entered the
		// relevant collections and lists, which takes a server-side
		// script. Without those restrictions it is a plain field sort.
		return f.lastUpdateTimeOrderBy(), nil
	}

	if !strings.Contains(key, ".") {
		return dsl.FieldSort{Field: key, Direction: f.direction()}, nil
	}

	switch key {
	case "licensepools.availability_time":
		// If a book shows up in multiple collections, the one that
		// had it earliest wins.
		return f.nestedLicensePoolSort(key, "min"), nil
	case "licensepools.last_updated":
		return f.nestedLicensePoolSort(key, "max"), nil
	}
	return nil, fmt.Errorf("search: don't know how to sort by %s", key)
}

func (f *Filter) nestedLicensePoolSort(field, mode string) dsl.SortClause {
	s := dsl.NestedSort{
		Field:     field,
		Direction: f.direction(),
		Mode:      mode,
	}
	if len(f.CollectionIDs) > 0 {
		// Only consider pools in the relevant collections.
		s.Path = "licensepools"
		s.Filter = dsl.TermsInt("licensepools.collection_id", f.CollectionIDs)
	}
	return s
}

// LastUpdateTimeScriptField returns the script field that computes the
// "last update" time of a work: the latest of its metadata change time, the
// time it entered a relevant collection, and the time it was added to a
// relevant list.
func (f *Filter) LastUpdateTimeScriptField() dsl.ScriptField {
	allListIDs := []int{}
	seen := map[int]bool{}
	for _, restriction := range f.CustomListRestrictionSets {
		for _, id := range restriction {
			if !seen[id] {
				seen[id] = true
				allListIDs = append(allListIDs, id)
			}
		}
	}
	collectionIDs := f.CollectionIDs
	if collectionIDs == nil {
		collectionIDs = []int{}
	}
	return dsl.ScriptField{Script: dsl.Script{
		Stored: workLastUpdateScript,
		Params: map[string]any{
			"collection_ids": collectionIDs,
			"list_ids":       allListIDs,
		},
	}}
}

// lastUpdateTimeOrderBy registers the last-update script field on the
// filter (so the computed value comes back with each hit) and returns a
// script sort that orders by the same value.
func (f *Filter) lastUpdateTimeOrderBy() dsl.SortClause {
	field := f.LastUpdateTimeScriptField()
	if _, ok := f.ScriptFields["last_update"]; !ok {
		f.ScriptFields["last_update"] = field
	}
	return dsl.ScriptSort{
		Type:      "number",
		Script:    field.Script,
		Direction: f.direction(),
	}
}

// RandomSeed controls the random component of featurability scoring.
// Deterministic disables the component entirely, for stable ordering.
type RandomSeed struct {
	seed          int64
	deterministic bool
}

// NewRandomSeed seeds the random component explicitly. A zero seed falls
// back to the current time.
func NewRandomSeed(seed int64) RandomSeed { return RandomSeed{seed: seed} }

// Deterministic disables random featurability scoring.
var Deterministic = RandomSeed{deterministic: true}

// FeaturabilityScoringFunctions generates scoring functions that weight
// works randomly, with more featurable works tending toward the top.
//
// A higher-quality work is more featurable, but we don't want to feature
// the very highest-quality works constantly, and if there are no
// high-quality works, medium quality should outrank low. So there is a
// cutoff, the minimum featured quality, beyond which every work gets the
// same high score; below it, a work's score is proportional to the square
// of its quality.
func (f *Filter) FeaturabilityScoringFunctions(seed RandomSeed) []dsl.ScoringFunction {
	const exponent = 2.0
	cutoff := math.Pow(f.MinimumFeaturedQuality, exponent)
	script := fmt.Sprintf(
		"Math.pow(Math.min(%.5f, doc['quality'].size() != 0 ? doc['quality'].value : %v), %.5f) * 5",
		cutoff, featurableDefaultQuality, exponent,
	)

	functions := []dsl.ScoringFunction{
		dsl.ScriptScore{Script: dsl.Script{Source: script}},

		// Currently available works are more featurable.
		dsl.FilterWeight{
			Filter: nest("licensepools",
				dsl.Term{Field: "licensepools.available", Value: true}),
			Weight: 5,
		},

		// So are works in higher-priority lanes.
		dsl.FieldValueFactor{
			Field:    "lane_priority_level",
			Factor:   1,
			Modifier: "none",
			Missing:  defaultLanePriorityLevel,
		},
	}

	// Random chance can boost a lower-quality work, but not by much.
	// This mainly keeps the same books from coming back every time.
	if !seed.deterministic {
		s := seed.seed
		if s == 0 {
			s = time.Now().Unix()
		}
		functions = append(functions, dsl.RandomScore{
			Seed:   s,
			Field:  "work_id",
			Weight: 1.1,
		})
	}

	if len(f.CustomListRestrictionSets) > 0 {
		// A work that is featured on one of the relevant lists beats
		// one that merely appears on it.
		listIDs := []int{}
		seen := map[int]bool{}
		for _, restriction := range f.CustomListRestrictionSets {
			for _, id := range restriction {
				if !seen[id] {
					seen[id] = true
					listIDs = append(listIDs, id)
				}
			}
		}
		featuredOnList := dsl.Bool{Must: []dsl.Query{
			dsl.Term{Field: "customlists.featured", Value: true},
			dsl.TermsInt("customlists.list_id", listIDs),
		}}
		functions = append(functions, dsl.FilterWeight{
			Filter: nest("customlists", featuredOnList),
			Weight: 11,
		})
	}
	return functions
}

// SuppressedWorkFilter matches only the works that a normal Filter would
// hide from a library: manually suppressed works and works excluded by the
// library's content policy. Admin tooling uses it to search within hidden
// works. Restrictions other than collection scope are intentionally
// ignored.
type SuppressedWorkFilter struct {
	Filter
}

// NewSuppressedWorkFilter builds the inverted filter for one library.
func NewSuppressedWorkFilter(lib *Library) *SuppressedWorkFilter {
	f := NewFilter(FilterOptions{Library: lib})
	return &SuppressedWorkFilter{Filter: *f}
}

// Build compiles the inverted filter. Every exclusion of the normal Filter
// becomes an inclusion here; with no suppression conditions configured at
// all, nothing matches.
func (f *SuppressedWorkFilter) Build() (dsl.Query, map[string][]dsl.Query) {
	nested := map[string][]dsl.Query{}
	if f.MatchNothing {
		return dsl.MatchNone{}, nested
	}

	if f.CollectionIDs != nil {
		nested["licensepools"] = append(nested["licensepools"],
			dsl.TermsInt("licensepools.collection_id", f.CollectionIDs))
	}

	var should []dsl.Query
	if f.LibraryID != 0 {
		should = append(should, dsl.TermsInt("suppressed_for", []int{f.LibraryID}))
	}
	if len(f.FilteredAudiences) > 0 {
		should = append(should,
			dsl.TermsString("audience", scrub.List(f.FilteredAudiences)))
	}
	if len(f.FilteredGenres) > 0 {
		should = append(should,
			nest("genres", dsl.TermsString("genres.name", f.FilteredGenres)))
	}
	if len(should) == 0 {
		return dsl.MatchNone{}, nested
	}
	return dsl.Bool{Should: should, MinimumShouldMatch: 1}, nested
}
