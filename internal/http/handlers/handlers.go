package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dwellio/dwellio-api/internal/domain"
)

type ctxKey int

const userKey ctxKey = iota

// CurrentUser returns the authenticated user attached by RequireAuth, or nil
// on unauthenticated routes.
func CurrentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userKey).(*domain.User)
	return u
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("Invalid request body")
	}
	return nil
}

func urlID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Invalid("Invalid " + param)
	}
	return id, nil
}
