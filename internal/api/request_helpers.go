package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// getClaimsFromContext extracts the authenticated caller's claims from the
// request context. The claims are placed there by the authentication
// middleware.
//
// Returns the claims and false (with an error response already written)
// when no valid claims are present.
func getClaimsFromContext(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := shared.GetClaims(r.Context())
	if !ok || claims.UserID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return auth.Claims{}, false
	}
	return claims, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseDueDate parses an RFC 3339 due date string. An empty string yields
// a nil time with no error.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	due, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError("due_date", "must be RFC 3339", domain.ErrInvalidDueDate)
	}

	utc := due.UTC()
	return &utc, nil
}
