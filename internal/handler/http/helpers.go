package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

// stores resolves the calling identity's store. Everything a handler loads or
// writes goes through that store, so the change log records who did it.
type stores struct {
	registry *store.Registry
}

func (s stores) forRequest(r *http.Request) (*store.Store, error) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil || claims.Email == "" {
		return nil, auth.ErrNotSignedIn
	}
	return s.registry.For(claims.Email), nil
}

// decode reads a JSON body into dst, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// pathID validates the {id} path parameter with create, writing a 422 naming
// field when it is malformed.
func pathID[T any](w http.ResponseWriter, r *http.Request, field string, create func(string) (T, bool)) (T, bool) {
	raw := chi.URLParam(r, "id")
	id, ok := create(raw)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   field,
			Message: field + " is malformed",
		}})
	}
	return id, ok
}

// fail logs err at the level it deserves and writes the mapped response.
func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		slog.DebugContext(r.Context(), op+" validation failed", "error", err)
	} else {
		slog.ErrorContext(r.Context(), op+" error", "error", err)
	}
	response.HandleError(w, err)
}
