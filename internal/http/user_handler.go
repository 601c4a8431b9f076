package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"eco-actions/internal/service"
)

// UserHandler serves the /users and /statistics endpoints.
type UserHandler struct {
	service   *service.UserService
	responder responder
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

type createUserRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Grade    string `json:"grade"`
	Username string `json:"username"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "Неверные данные пользователя")
		return
	}

	user, err := h.service.Create(service.UserInput{
		UserID:   req.UserID,
		Name:     req.Name,
		City:     req.City,
		Grade:    req.Grade,
		Username: req.Username,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			// The original API reports one generic message for any missing field.
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, "Неверные данные пользователя")
			return
		}
		h.responder.handleServiceError(r.Context(), w, err, "Пользователь не найден")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("user_id", user.UserID).Msg("user created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.PathValue("id"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, "Пользователь не найден")
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, user)
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *UserHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	available := h.service.CheckUsername(r.PathValue("username"))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{Available: available})
}

func (h *UserHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.responder.writeJSON(r.Context(), w, http.StatusOK, h.service.Stats())
}
