package repository

import (
	"time"

	"talent-track/core/models"
)

// ActivityRepository handles the append-only activity log
type ActivityRepository struct {
	store *Store
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// List returns activity entries, most recent first, capped at limit
// (limit <= 0 means no cap)
func (r *ActivityRepository) List(limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := r.store.Read(ActivityFile, &entries); err != nil {
		return nil, err
	}
	// Stored oldest-first; reverse for display
	out := make([]models.ActivityEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Append records one activity entry, stamping the timestamp if unset
func (r *ActivityRepository) Append(entry models.ActivityEntry) error {
	unlock := r.store.Lock(ActivityFile)
	defer unlock()

	var entries []models.ActivityEntry
	if err := r.store.Read(ActivityFile, &entries); err != nil {
		return err
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(models.PostedAtLayout)
	}
	entries = append(entries, entry)
	return r.store.Write(ActivityFile, entries)
}
