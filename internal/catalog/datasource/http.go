package datasource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/circa/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listDataSources)
}

func (handler *Handler) listDataSources(writer http.ResponseWriter, request *http.Request) {
	sources, err := handler.service.ListDataSources(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sources)
}
