// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/circa/internal/platform/request"
	"github.com/taibuivan/circa/internal/platform/respond"
	"github.com/taibuivan/circa/pkg/pagination"
	"github.com/taibuivan/circa/pkg/pointer"
	"github.com/taibuivan/circa/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
	router.Post("/search/json", handler.searchJSON)

	router.Route("/libraries/{library}", func(scoped chi.Router) {
		scoped.Get("/search", handler.search)
		scoped.Post("/search/json", handler.searchJSON)
	})
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := handler.params(request)

	result, document, err := handler.service.Search(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if params.Debug {
		respond.OK(writer, document)
		return
	}

	respond.Paginated(writer, result.Works, result.Meta)
}

func (handler *Handler) searchJSON(writer http.ResponseWriter, request *http.Request) {
	params := handler.params(request)

	raw, err := requestutil.ReadBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, document, err := handler.service.SearchJSON(request.Context(), raw, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if params.Debug {
		respond.OK(writer, document)
		return
	}

	respond.Paginated(writer, result.Works, result.Meta)
}

// params decodes the shared query parameters for both search endpoints.
func (handler *Handler) params(request *http.Request) Params {
	values := request.URL.Query()

	params := Params{
		LibraryShortName: requestutil.Param(request, "library"),
		Query:            values.Get("q"),
		Media:            query.StringSlice(values.Get("media")),
		Languages:        query.StringSlice(values.Get("language")),
		Audiences:        query.StringSlice(values.Get("audience")),
		CollectionIDs:    query.IntSlice(values["collection"]),
		Availability:     values.Get("available"),
		Order:            query.StringSlice(values.Get("order")),
		OrderAscending:   values.Get("direction") != "desc",
		Debug:            values.Get("debug") == "true",
		Pagination:       pagination.FromRequest(request),
	}

	if raw := values.Get("fiction"); raw != "" {
		if fiction, err := strconv.ParseBool(raw); err == nil {
			params.Fiction = pointer.To(fiction)
		}
	}

	return params
}
