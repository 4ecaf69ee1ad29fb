package web

// errors.go provides unified error responses. Technical errors are
// logged server-side with the request id; clients receive a
// user-friendly message, an action hint and a support code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lamalux/pricing/internal/core"
	"github.com/lamalux/pricing/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError maps a core error to an HTTP status and writes a JSON
// error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	})
}

// statusFor translates the core error taxonomy to HTTP status codes.
func statusFor(err error) int {
	var rowErr *core.RowError

	switch {
	case errors.Is(err, core.ErrNoActiveDataset), errors.Is(err, core.ErrNoQuotes):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &rowErr), errors.Is(err, core.ErrBadImportFile):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes a plain JSON error without going through MapError.
// Used where the message is already client-facing.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("request rejected",
		"path", r.URL.Path,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: "ERR000"})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; log and move on.
		slog.Error("json encode error", "error", err)
	}
}
