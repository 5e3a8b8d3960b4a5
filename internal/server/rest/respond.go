package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of operations that only acknowledge success.
type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// errorKinds maps sentinel errors to status codes. Order matters: the first
// match wins.
var errorKinds = []struct {
	kind   error
	status int
}{
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrInvalidToken, http.StatusUnauthorized},
	{common.ErrTokenExpired, http.StatusUnauthorized},
	{common.ErrTokenRevoked, http.StatusUnauthorized},
	{common.ErrForbidden, http.StatusForbidden},
	{common.ErrorNotFound, http.StatusNotFound},
	{common.ErrConflict, http.StatusBadRequest},
	{common.ErrValidation, http.StatusBadRequest},
	{common.ErrInvalidCredentials, http.StatusBadRequest},
	{common.ErrServiceUnavailable, http.StatusServiceUnavailable},
}

// HTTPStatusFromError returns the status code for err and the message that
// may be shown to the client. Unknown errors become an opaque 500.
func HTTPStatusFromError(err error) (int, string) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.kind) {
			continue
		}
		var pe *common.PublicError
		if errors.As(err, &pe) {
			return k.status, pe.Message
		}
		return k.status, k.kind.Error()
	}
	return http.StatusInternalServerError, common.ErrorInternal.Error()
}

// respondError writes err as a JSON error. Server-side failures are logged
// with their cause; the client only sees "internal error".
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
	}
	RespondWithError(w, code, msg)
}
