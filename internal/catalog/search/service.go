// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"errors"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/taibuivan/circa/internal/catalog/library"
	"github.com/taibuivan/circa/internal/catalog/search/dsl"
	"github.com/taibuivan/circa/internal/catalog/spell"
	"github.com/taibuivan/circa/internal/platform/apperr"
	"github.com/taibuivan/circa/internal/platform/opensearch"
	"github.com/taibuivan/circa/internal/platform/validate"
	"github.com/taibuivan/circa/pkg/pagination"
)

// Engine executes a compiled search request against the cluster.
type Engine interface {
	Search(ctx context.Context, request *dsl.SearchRequest) (*opensearch.SearchResponse, error)
}

// LibraryFinder loads library configuration for library-scoped searches.
type LibraryFinder interface {
	GetByShortName(ctx context.Context, shortName string) (*library.Library, error)
}

// DataSourceResolver maps data source names to their numeric identifiers.
type DataSourceResolver interface {
	ResolveID(ctx context.Context, name string) int
}

// Service compiles patron searches into engine query documents, executes
// them, and shapes the hit envelope into API results.
type Service struct {
	engine    Engine
	libraries LibraryFinder
	sources   DataSourceResolver
	dict      spell.Dictionary
	logger    *slog.Logger
}

func NewService(engine Engine, libraries LibraryFinder, sources DataSourceResolver, dict spell.Dictionary, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		libraries: libraries,
		sources:   sources,
		dict:      dict,
		logger:    logger,
	}
}

// Params carries one search request after HTTP decoding.
type Params struct {
	// LibraryShortName scopes the search to one library's collections
	// and content policy. Empty means a system-wide search.
	LibraryShortName string

	// Query is the patron's search string. Empty matches everything
	// that passes the filter.
	Query string

	Media     []string
	Languages []string
	Audiences []string
	Fiction   *bool

	// CollectionIDs narrows the search to these collections. Nil leaves
	// the scope to the library's active collections.
	CollectionIDs []int

	// Availability is one of "now", "all", "always", "not_now".
	Availability string

	// Order is the requested sort chain, e.g. ["series_position", "title"].
	Order          []string
	OrderAscending bool

	// Debug returns the compiled query document instead of executing it.
	Debug bool

	Pagination pagination.Params
}

// Work is one hit, returned with its raw indexed document.
type Work struct {
	ID       string          `json:"id"`
	Score    *float64        `json:"score,omitempty"`
	Document json.RawMessage `json:"document"`
}

// Result is the shaped response for one executed search.
type Result struct {
	Works []Work
	Meta  pagination.Meta
}

// Page implements [Pagination] over the from/size result window, with an
// optional search_after cursor that replaces the offset.
type Page struct {
	From        int
	Size        int
	SearchAfter []any
}

// ModifySearchRequest applies the result window to the compiled document.
func (p *Page) ModifySearchRequest(request *dsl.SearchRequest) {
	from := p.From
	size := p.Size
	request.From = &from
	request.Size = &size
	request.SearchAfter = p.SearchAfter
}

// Search compiles and executes a query-string search.
//
// When params.Debug is set the compiled document is returned without
// touching the cluster, and the Result is nil.
func (service *Service) Search(ctx context.Context, params Params) (*Result, *dsl.SearchRequest, error) {
	filter, err := service.buildFilter(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	query := NewQuery(params.Query, filter, service.dict)

	document, err := query.Build(service.page(params))
	if err != nil {
		return nil, nil, apperr.ValidationError(err.Error())
	}

	if params.Debug {
		return nil, document, nil
	}

	result, err := service.execute(ctx, params, document)
	return result, nil, err
}

// SearchJSON compiles and executes a structured JSON search.
func (service *Service) SearchJSON(ctx context.Context, raw []byte, params Params) (*Result, *dsl.SearchRequest, error) {
	filter, err := service.buildFilter(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	filter.ApplyFacets(&FacetAdjustments{SearchType: SearchTypeJSON})

	resolve := func(name string) int {
		if service.sources == nil {
			return 0
		}
		return service.sources.ResolveID(ctx, name)
	}

	jsonQuery, err := NewJSONQuery(raw, filter, resolve)
	if err != nil {
		return nil, nil, asValidationError(err)
	}

	document, err := jsonQuery.Build(service.page(params))
	if err != nil {
		return nil, nil, asValidationError(err)
	}

	if params.Debug {
		return nil, document, nil
	}

	result, err := service.execute(ctx, params, document)
	return result, nil, err
}

// buildFilter validates the facet inputs and assembles the Filter, folding
// in the library's collections and content policy when one is named.
func (service *Service) buildFilter(ctx context.Context, params Params) (*Filter, error) {
	v := &validate.Validator{}
	if params.Availability != "" {
		v.OneOf("available", params.Availability,
			AvailableNow, AvailableAll, AvailableOpenAccess, AvailableNotNow)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	opts := FilterOptions{
		Media:         params.Media,
		Languages:     params.Languages,
		Audiences:     params.Audiences,
		Fiction:       params.Fiction,
		CollectionIDs: params.CollectionIDs,
	}

	if params.LibraryShortName != "" {
		lib, err := service.libraries.GetByShortName(ctx, params.LibraryShortName)
		if err != nil {
			return nil, err
		}
		opts.Library = searchLibrary(lib)
	}

	filter := NewFilter(opts)
	filter.ApplyFacets(&FacetAdjustments{
		Availability:   params.Availability,
		Order:          params.Order,
		OrderAscending: params.OrderAscending,
	})

	return filter, nil
}

// execute runs the compiled document and shapes the hit envelope.
func (service *Service) execute(ctx context.Context, params Params, document *dsl.SearchRequest) (*Result, error) {
	response, err := service.engine.Search(ctx, document)
	if err != nil {
		service.logger.ErrorContext(ctx, "search_execution_failed",
			slog.String("library", params.LibraryShortName),
			slog.String("error", err.Error()),
		)
		return nil, apperr.ServiceUnavailable("Search is temporarily unavailable")
	}

	works := make([]Work, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		works = append(works, Work{
			ID:       hit.ID,
			Score:    hit.Score,
			Document: hit.Source,
		})
	}

	meta := pagination.NewMeta(params.Pagination.Page, params.Pagination.Limit, response.Hits.Total.Value)
	if n := len(response.Hits.Hits); n > 0 {
		meta.NextKey = response.Hits.Hits[n-1].Sort
	}

	return &Result{Works: works, Meta: meta}, nil
}

// page converts the HTTP pagination parameters to a result window.
func (service *Service) page(params Params) *Page {
	return &Page{
		From:        params.Pagination.Offset(),
		Size:        params.Pagination.Limit,
		SearchAfter: params.Pagination.SortKey,
	}
}

// searchLibrary projects the stored library row onto the attributes the
// compiler reads.
func searchLibrary(lib *library.Library) *Library {
	return &Library{
		ID:                     lib.ID,
		ActiveCollectionIDs:    lib.ActiveCollectionIDs,
		AllowHolds:             lib.AllowHolds(),
		MinimumFeaturedQuality: lib.MinimumFeaturedQuality(),
		FilteredAudiences:      lib.Settings.FilteredAudiences,
		FilteredGenres:         lib.Settings.FilteredGenres,
	}
}

// asValidationError maps query-language parse failures to 400 responses
// while passing other errors through untouched.
func asValidationError(err error) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return apperr.ValidationError(parseErr.Error())
	}
	return err
}
