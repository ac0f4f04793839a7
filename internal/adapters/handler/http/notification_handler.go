package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

type notifyRequest struct {
	Message string `json:"message"`
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Notify(r.Context(), userID, email, req.Message); err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, "create notification", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	notifications, err := h.service.ForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotInCouple) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, "list notifications", err)
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.MarkRead(r.Context(), userID); err != nil {
		internalError(w, "mark notification read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
