package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"agrocore/models"
)

// notify persists a notification for recipient and pushes it if they are
// online. Self-notifications are suppressed by the store; failures are logged
// and never surface to the triggering request.
func (h *Handler) notify(ctx context.Context, recipientID, actorID int, typ models.NotificationType, referenceID int) {
	n := &models.Notification{
		UserID:      recipientID,
		ActorID:     actorID,
		Type:        typ,
		ReferenceID: referenceID,
	}
	created, err := h.Store.CreateNotification(ctx, n)
	if err != nil {
		slog.Warn("failed to create notification", "type", typ, "recipient", recipientID, "error", err)
		return
	}
	if created {
		h.Live.Push(recipientID, "new_notification", n)
	}
}

// GetNotificationsHandler handles GET /api/notifications?userId=.
func (h *Handler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	notifications, err := h.Store.GetUserNotifications(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err, "notifications not found")
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkNotificationsReadHandler handles PUT /api/notifications/read?userId=.
func (h *Handler) MarkNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.Store.MarkNotificationsRead(r.Context(), userID); err != nil {
		writeStorageError(w, err, "notifications not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "notifications marked read"})
}

// DeleteNotificationsHandler handles DELETE /api/notifications?userId=.
func (h *Handler) DeleteNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.Store.DeleteUserNotifications(r.Context(), userID); err != nil {
		writeStorageError(w, err, "notifications not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "notifications cleared"})
}
