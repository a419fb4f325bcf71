package handlers

import (
	"encoding/json"
	"net/http"

	"talent-track/core/approval"
	"talent-track/core/models"
	"talent-track/core/repository"
)

// NotificationHandler handles the role-filtered notification feed
type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationRepo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo}
}

// List handles GET /v1/notifications. With a role (query param or actor
// header) the feed narrows to notifications addressed to that role, MOE/MOP
// treated as equals. Most recent first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationRepo.List()
	if err != nil {
		http.Error(w, "Failed to load notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		role = actorRole(r)
	}
	pendingOnly := r.URL.Query().Get("pending") == "true"

	items := make([]models.Notification, 0, len(notifications))
	for i := len(notifications) - 1; i >= 0; i-- {
		n := notifications[i]
		if role != "" && !approval.RolesEquivalent(n.ForRole, role) {
			continue
		}
		if pendingOnly && n.Status != models.NotificationStatusSent {
			continue
		}
		items = append(items, n)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": items,
	})
}
