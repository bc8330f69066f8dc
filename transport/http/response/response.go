package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

// Base is the envelope for every response body.
type Base struct {
	Data    *any      `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// APIError is the structured error body. Validation failures additionally
// carry per-field entries.
type APIError struct {
	Status    int      `json:"status"`
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	Timestamp string   `json:"timestamp"`
	Entries   []string `json:"entries,omitempty"`
}

// WithJSON sends a response with JSON format.
func WithJSON(w http.ResponseWriter, code int, jsonPayload any) {
	respond(w, code, Base{Data: &jsonPayload})
}

// WithMessage sends a response with a simple text message.
func WithMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, Base{Message: &message})
}

// WithNoContent sends an empty success response.
func WithNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WithRequestLimitExceeded tells the client it has exhausted its request
// budget for the current window.
func WithRequestLimitExceeded(w http.ResponseWriter) {
	WithMessage(w, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithError resolves the HTTP status from the error and sends the
// structured error body. Internal errors are masked.
func WithError(w http.ResponseWriter, r *http.Request, err error) {
	code := failure.GetCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Internal error")

		message = http.StatusText(http.StatusInternalServerError)
	}

	respond(w, code, Base{Error: &APIError{
		Status:    code,
		Message:   message,
		Path:      r.URL.Path,
		Timestamp: timezone.Format(timezone.Now(), constant.DateFormat),
	}})
}

func respond(w http.ResponseWriter, code int, payload Base) {
	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}
