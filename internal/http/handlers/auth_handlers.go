package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/http/response"
	"github.com/dwellio/dwellio-api/internal/service"
	"github.com/dwellio/dwellio-api/pkg/auth"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

type AuthHandler struct {
	auth      *service.AuthService
	jwtSecret string
}

func NewAuthHandler(authSvc *service.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{auth: authSvc, jwtSecret: jwtSecret}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.With(h.RequireAuth).Get("/me", h.me)
	return r
}

// RequireAuth rejects the request unless it carries a valid bearer token for a
// user that still exists, and attaches that user to the context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.WriteError(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), h.jwtSecret)
		if err != nil {
			response.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := h.auth.GetUser(r.Context(), claims.Sub)
		if err != nil {
			response.Error(w, r, err)
			return
		}
		if user == nil {
			response.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, logger.UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	response.JSON(w, http.StatusOK, map[string]interface{}{"user": user.Info()})
}
