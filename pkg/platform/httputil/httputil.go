// Package httputil writes JSON responses and translates coded domain errors
// into the API error envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "phonedir/pkg/domain-errors"
)

// ErrorResponse is the JSON envelope for every non-2xx API response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes payload as JSON with the given status. A nil payload writes
// only the status line and headers.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("failed to write JSON response", "error", err)
	}
}

// WriteError maps err to its HTTP status and writes the error envelope.
// Internal errors never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := ErrorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			resp.ErrorDescription = de.Description()
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}
