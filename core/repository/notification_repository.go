package repository

import (
	"talent-track/core/models"
)

// NotificationRepository handles persistence for approval notifications
type NotificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// List returns every notification in append order
func (r *NotificationRepository) List() ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.store.Read(NotificationsFile, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Save rewrites the whole notification collection
func (r *NotificationRepository) Save(notifications []models.Notification) error {
	return r.store.Write(NotificationsFile, notifications)
}

// NextNotificationID returns the next monotonic id within a load/save cycle
func NextNotificationID(notifications []models.Notification) int {
	max := 0
	for _, n := range notifications {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// ForCandidate returns the notifications belonging to one candidate,
// preserving append order
func ForCandidate(notifications []models.Notification, candidateID int) []models.Notification {
	var out []models.Notification
	for _, n := range notifications {
		if n.CandidateID == candidateID {
			out = append(out, n)
		}
	}
	return out
}
