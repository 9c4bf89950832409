package response

import (
	"encoding/json"
	"net/http"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

// ErrorResponse is the wire shape for every failed request. Details carries
// the underlying error text on internal failures and is suppressed in
// production.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var exposeDetails = true

// SetProduction hides internal error details from responses.
func SetProduction(production bool) {
	exposeDetails = !production
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// Error maps err to the error envelope. Operational errors keep their status
// and message; anything else is logged and surfaced as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := domain.AsError(err); ok {
		JSON(w, e.Status, ErrorResponse{Status: "error", Message: e.Message})
		return
	}

	logger.ErrorContext(r.Context(), "Internal error", "method", r.Method, "path", r.URL.Path, "error", err)

	resp := ErrorResponse{Status: "error", Message: "Internal server error"}
	if exposeDetails {
		resp.Details = err.Error()
	}
	JSON(w, http.StatusInternalServerError, resp)
}

// WriteError writes the envelope directly, for callers that already know the
// status code.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Status: "error", Message: message})
}
