package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"eco-actions/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type responder struct{}

func (responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	r.writeJSON(ctx, w, status, errorResponse{Error: message})
}

// handleServiceError maps the service error taxonomy to HTTP statuses.
// notFoundMessage names the missing resource for 404 responses.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error, notFoundMessage string) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		r.writeError(ctx, w, http.StatusNotFound, notFoundMessage)
	case errors.As(err, &vErr):
		r.writeError(ctx, w, http.StatusBadRequest, vErr.Message)
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
		r.writeError(ctx, w, http.StatusInternalServerError, "Не удалось сохранить изменения")
	}
}
