package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ad-board/internal/core/port"
)

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// listEnvelope extends the envelope with pagination echoes for listings.
type listEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Count   int         `json:"count"`
	Limit   int         `json:"limit,omitempty"`
	Offset  *int        `json:"offset,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) respondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondFailure maps a usecase error onto an HTTP status and the uniform
// envelope. Internal errors are logged and replaced with a generic message
// so store internals do not leak.
func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", slog.Any("error", err))
		message = "internal error"
	}
	h.respondError(w, status, message)
}

func statusForError(err error) int {
	var genErr *port.GenerationError
	switch {
	case errors.Is(err, port.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrEmptyImage),
		errors.Is(err, port.ErrInvalidTimeRange),
		errors.Is(err, port.ErrInvalidImpressionGoal),
		errors.Is(err, port.ErrNoFieldsToUpdate),
		errors.Is(err, port.ErrInvalidStatus),
		errors.Is(err, port.ErrUnsupportedModel),
		errors.Is(err, port.ErrInvalidPrompt):
		return http.StatusBadRequest
	case errors.Is(err, port.ErrModelLoading):
		return http.StatusServiceUnavailable
	case errors.Is(err, port.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseISOTime accepts RFC3339 timestamps with or without a timezone
// suffix; bare timestamps are interpreted as UTC.
func parseISOTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
