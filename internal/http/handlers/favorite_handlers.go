package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/http/response"
	"github.com/dwellio/dwellio-api/internal/service"
)

type FavoriteHandler struct {
	favorites   *service.FavoriteService
	requireAuth func(http.Handler) http.Handler
}

func NewFavoriteHandler(favorites *service.FavoriteService, requireAuth func(http.Handler) http.Handler) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, requireAuth: requireAuth}
}

func (h *FavoriteHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAuth)
	r.Get("/", h.list)
	r.Post("/{propertyId}", h.add)
	r.Delete("/{propertyId}", h.remove)
	r.Patch("/{propertyId}/notes", h.updateNotes)
	return r
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request) {
	propertyID, err := urlID(r, "propertyId")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	// Body is optional; absent or empty means no notes.
	var req domain.AddFavoriteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}
	}

	favorite, err := h.favorites.Add(r.Context(), CurrentUser(r).ID, propertyID, req.Notes)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Property added to favorites",
		"favorite": favorite,
	})
}

func (h *FavoriteHandler) list(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context(), CurrentUser(r).ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}

func (h *FavoriteHandler) updateNotes(w http.ResponseWriter, r *http.Request) {
	propertyID, err := urlID(r, "propertyId")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req domain.UpdateFavoriteNotesRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	favorite, err := h.favorites.UpdateNotes(r.Context(), CurrentUser(r).ID, propertyID, req.Notes)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Notes updated",
		"favorite": favorite,
	})
}

func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request) {
	propertyID, err := urlID(r, "propertyId")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.favorites.Remove(r.Context(), CurrentUser(r).ID, propertyID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"message": "Property removed from favorites"})
}
