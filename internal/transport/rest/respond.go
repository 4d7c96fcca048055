package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Error codes carried in the "error" field of every failure response.
const (
	codeValidation   = "VALIDATION"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeExists       = "ALREADY_EXISTS"
	codeUnauthorized = "UNAUTHORIZED"
	codeBadRequest   = "BAD_REQUEST"
	codeTooLarge     = "TOO_LARGE"
	codeInternal     = "INTERNAL"
)

type errorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Fields  []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// publicMessages are the client-facing texts of known domain errors. The
// first match wins, so specific errors come before their parents.
var publicMessages = []struct {
	err error
	msg string
}{
	{domain.ErrAlreadyLocked, "Story is already locked"},
	{domain.ErrAlreadyUnlocked, "Story is already unlocked"},
	{domain.ErrLockedByOther, "Story is locked by another user"},
	{domain.ErrEmailTaken, "Email already registered"},
	{domain.ErrNameTaken, "Username already exists, please choose another one"},
	{domain.ErrNoResults, "No stories found"},
	{domain.ErrNotFound, "Not found"},
	{domain.ErrConflict, "Conflict"},
	{domain.ErrAlreadyExists, "Already exists"},
	{domain.ErrUnauthorized, "Unauthorized"},
}

func publicMessage(err error) string {
	for _, m := range publicMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Internal server error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// handleError maps a service error to its HTTP response.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: codeValidation, Message: "validation failed"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, publicMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, codeConflict, publicMessage(err))
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, codeExists, publicMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, publicMessage(err))
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}

// pathID parses a uuid route parameter, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return false
	}
	return true
}
