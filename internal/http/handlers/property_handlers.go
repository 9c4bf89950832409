package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/http/response"
	"github.com/dwellio/dwellio-api/internal/service"
)

type PropertyHandler struct {
	properties  *service.PropertyService
	requireAuth func(http.Handler) http.Handler
	listCache   func(http.Handler) http.Handler
}

func NewPropertyHandler(
	properties *service.PropertyService,
	requireAuth func(http.Handler) http.Handler,
	listCache func(http.Handler) http.Handler,
) *PropertyHandler {
	return &PropertyHandler{properties: properties, requireAuth: requireAuth, listCache: listCache}
}

func (h *PropertyHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(h.listCache).Get("/", h.list)
	r.Get("/{id}", h.getByID)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *PropertyHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePropertyRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	property, err := h.properties.Create(r.Context(), CurrentUser(r), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Property created",
		"property": property,
	})
}

func (h *PropertyHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.properties.List(r.Context(), ParsePropertyFilter(r.URL.Query()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

func (h *PropertyHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	property, err := h.properties.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"property": property})
}

func (h *PropertyHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req domain.UpdatePropertyRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	property, err := h.properties.Update(r.Context(), CurrentUser(r), id, &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Property updated",
		"property": property,
	})
}

func (h *PropertyHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.properties.Delete(r.Context(), CurrentUser(r), id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"message": "Property deleted"})
}

// ParsePropertyFilter maps the list query string onto the typed filter.
// Unknown params and unparsable numbers are ignored.
func ParsePropertyFilter(q url.Values) domain.PropertyFilter {
	f := domain.PropertyFilter{
		Search:       q.Get("search"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		PropertyType: q.Get("propertyType"),
		ListingType:  q.Get("listingType"),
		Status:       q.Get("status"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	}

	f.MinPrice = floatParam(q, "minPrice")
	f.MaxPrice = floatParam(q, "maxPrice")
	f.MinBedrooms = intParam(q, "minBedrooms")
	f.MaxBedrooms = intParam(q, "maxBedrooms")
	f.MinBathrooms = floatParam(q, "minBathrooms")
	f.MaxBathrooms = floatParam(q, "maxBathrooms")
	f.MinArea = floatParam(q, "minArea")
	f.MaxArea = floatParam(q, "maxArea")

	if p := intParam(q, "page"); p != nil {
		f.Page = *p
	}
	if l := intParam(q, "limit"); l != nil {
		f.Limit = *l
	}

	return f
}

func floatParam(q url.Values, key string) *float64 {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intParam(q url.Values, key string) *int {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
