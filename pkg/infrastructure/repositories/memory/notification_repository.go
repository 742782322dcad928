package memory

import (
	"sort"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
)

// NotificationRepository provides in-memory notification storage
type NotificationRepository struct {
	notifications []*entities.Notification
}

// NewNotificationRepository creates a new in-memory notification repository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Verify interface compliance
var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

// Append stores a notification
func (r *NotificationRepository) Append(n *entities.Notification) error {
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

// ListByLocation returns copies of a location's notifications, newest first
func (r *NotificationRepository) ListByLocation(id entities.LocationID) []*entities.Notification {
	var out []*entities.Notification
	for _, n := range r.notifications {
		if n.LocationID == id {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MarkRead marks a notification read. Marking an already-read notification is
// a no-op returning true; only unknown ids return false.
func (r *NotificationRepository) MarkRead(id string) bool {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}
