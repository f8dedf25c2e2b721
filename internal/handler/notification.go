package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListNotifications возвращает уведомления текущего пользователя, новые первыми.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.ListNotifications(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, toNotificationResponse(&notifications[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkNotificationRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

type createNotificationRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CreateNotification создаёт уведомление указанному получателю.
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	n, err := h.service.CreateNotification(r.Context(), req.UserID, req.Message, req.Type)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toNotificationResponse(n))
}

type unreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

// UnreadNotificationCount возвращает число непрочитанных уведомлений для счётчика.
func (h *Handler) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	count, err := h.service.UnreadNotificationCount(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, unreadCountResponse{UnreadCount: count})
}
