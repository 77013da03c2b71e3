package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "merididi/pkg/domain-errors"
	"merididi/pkg/requestcontext"
)

// Sanitizable is implemented by request types that support sanitization.
type Sanitizable interface {
	Sanitize()
}

// DecodeJSON decodes a JSON request body into the target type and runs
// Sanitize() if the type implements it. Validation stays in the service
// layer so the multipart path shares the same gate.
//
// Returns the decoded value and true on success. On failure, writes an
// error response and returns nil, false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return nil, false
	}
	if s, ok := any(&req).(Sanitizable); ok {
		s.Sanitize()
	}
	return &req, true
}
