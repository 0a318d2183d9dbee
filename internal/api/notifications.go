package api

import (
	"net/http"
	"strconv"

	"github.com/erazemk/reviewit/internal/realtime"
	"github.com/erazemk/reviewit/internal/service"
)

// NotificationsHandler serves the caller's notifications.
type NotificationsHandler struct {
	Notifications *service.NotificationService
	Hub           *realtime.Hub
}

type deleteNotificationsRequest struct {
	IDs []int64 `json:"ids"`
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	var unreadOnly bool
	if raw := r.URL.Query().Get("unreadOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "unreadOnly must be a boolean")
			return
		}
		unreadOnly = v
	}

	list, err := h.Notifications.List(r.Context(), viewerID(r.Context()), unreadOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notifications.UnreadCount(r.Context(), viewerID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"count": n})
}

// MarkRead handles PUT /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), viewerID(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Notifications.MarkAllRead(r.Context(), viewerID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/notifications.
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteNotificationsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Notifications.DeleteSelected(r.Context(), viewerID(r.Context()), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Stream handles GET /api/notifications/ws.
func (h *NotificationsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.Hub.ServeWS(w, r, viewerID(r.Context()))
}
