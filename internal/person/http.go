package person

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/personapi/internal/platform/request"
	"github.com/taibuivan/personapi/internal/platform/respond"
	"github.com/taibuivan/personapi/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router with all person routes, ready to be mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPersons)
	router.Post("/", handler.createPerson)
	router.Get("/{id}", handler.getPerson)
	router.Put("/{id}", handler.updatePerson)
	router.Delete("/{id}", handler.deletePerson)
}

func (handler *Handler) listPersons(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	persons, total, err := handler.service.ListPersons(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, ProjectAll(ViewList, persons), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.Int64ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPerson(request.Context(), personID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Project(ViewView, p))
}

func (handler *Handler) createPerson(writer http.ResponseWriter, request *http.Request) {
	var input Payload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.CreatePerson(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Location", strings.TrimSuffix(request.URL.Path, "/")+"/"+strconv.FormatInt(p.ID, 10))
	respond.Created(writer, Project(ViewCreate, p))
}

func (handler *Handler) updatePerson(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.Int64ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Payload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.UpdatePerson(request.Context(), personID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Project(ViewUpdate, p))
}

func (handler *Handler) deletePerson(writer http.ResponseWriter, request *http.Request) {
	personID, err := requestutil.Int64ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePerson(request.Context(), personID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
