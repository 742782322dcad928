package repositories

import "github.com/smartchain/surplusnet/pkg/domain/entities"

// NotificationRepository stores notifications awaiting the presentation layer
type NotificationRepository interface {
	Append(n *entities.Notification) error
	ListByLocation(id entities.LocationID) []*entities.Notification

	// MarkRead is idempotent; it returns false only for unknown ids
	MarkRead(id string) bool
}
