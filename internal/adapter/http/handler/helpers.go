package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrWorkOrderNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrPurchaseOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrSKUAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNotATechnician),
		errors.Is(err, domain.ErrUnknownRole),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidSKU),
		errors.Is(err, domain.ErrPasswordTooWeak),
		errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrRoleNotAllowed),
		errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrLoginInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// actorFromRequest assembles the audit actor for the current request. The
// true session identity is recorded even when a preview is active.
func actorFromRequest(r *http.Request) usecase.Actor {
	return usecase.Actor{
		Session:       mw.SessionFromContext(r.Context()),
		PreviewedRole: mw.PreviewFromContext(r.Context()),
		RequestID:     middleware.GetReqID(r.Context()),
	}
}
