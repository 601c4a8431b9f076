package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"eco-actions/internal/service"
)

const actionNotFound = "Акция не найдена"

// ActionHandler serves the /actions endpoints.
type ActionHandler struct {
	service   *service.ActionService
	responder responder
}

func NewActionHandler(svc *service.ActionService) *ActionHandler {
	return &ActionHandler{service: svc}
}

func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	actions := h.service.List()
	h.responder.writeJSON(r.Context(), w, http.StatusOK, actions)
}

type createActionRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ProposerID  string `json:"proposer_id"`
}

func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "Неверный формат JSON")
		return
	}

	action, err := h.service.Create(service.ActionInput{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		ProposerID:  req.ProposerID,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, actionNotFound)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("action_id", action.ID).Msg("action created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, action)
}

type registerRequest struct {
	UserID string `json:"user_id"`
}

func (h *ActionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "Не указан user_id")
		return
	}

	actionID := r.PathValue("id")
	result, err := h.service.Register(actionID, req.UserID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, actionNotFound)
		return
	}

	if result == service.AlreadyRegistered {
		h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Вы уже зарегистрированы"})
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("action_id", actionID).Str("user_id", req.UserID).Msg("participant registered")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Успешная регистрация"})
}

type rateRequest struct {
	UserID string `json:"user_id"`
	Rating *int   `json:"rating"`
	Review string `json:"review"`
}

func (h *ActionHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Rating == nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, "Неверные данные для оценки")
		return
	}

	actionID := r.PathValue("id")
	if err := h.service.Rate(actionID, req.UserID, *req.Rating, req.Review); err != nil {
		h.responder.handleServiceError(r.Context(), w, err, actionNotFound)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Оценка сохранена"})
}
