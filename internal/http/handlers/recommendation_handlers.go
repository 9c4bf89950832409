package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/http/response"
	"github.com/dwellio/dwellio-api/internal/service"
)

type RecommendationHandler struct {
	recommendations *service.RecommendationService
	requireAuth     func(http.Handler) http.Handler
}

func NewRecommendationHandler(recommendations *service.RecommendationService, requireAuth func(http.Handler) http.Handler) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, requireAuth: requireAuth}
}

func (h *RecommendationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAuth)
	r.Post("/", h.recommend)
	r.Get("/received", h.listReceived)
	r.Get("/sent", h.listSent)
	r.Patch("/{id}/status", h.updateStatus)
	return r
}

func (h *RecommendationHandler) recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	rec, err := h.recommendations.Recommend(r.Context(), CurrentUser(r), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":        "Property recommended successfully",
		"recommendation": rec,
	})
}

func (h *RecommendationHandler) listReceived(w http.ResponseWriter, r *http.Request) {
	recs, err := h.recommendations.ListReceived(r.Context(), CurrentUser(r).ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"recommendations": recs})
}

func (h *RecommendationHandler) listSent(w http.ResponseWriter, r *http.Request) {
	recs, err := h.recommendations.ListSent(r.Context(), CurrentUser(r).ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"recommendations": recs})
}

func (h *RecommendationHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req domain.UpdateRecommendationStatusRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	rec, err := h.recommendations.UpdateStatus(r.Context(), CurrentUser(r), id, req.Status)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Status updated",
		"recommendation": rec,
	})
}
