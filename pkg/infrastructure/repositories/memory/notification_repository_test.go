package memory

import (
	"testing"
	"time"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
)

func newTestNotification(t *testing.T, id string, loc entities.LocationID) *entities.Notification {
	t.Helper()
	n, err := entities.NewNotification(id, loc, entities.NotificationMatchProposal, "title", "message", entities.PriorityMedium)
	if err != nil {
		t.Fatalf("Failed to create notification: %v", err)
	}
	return n
}

func TestNotificationRepository_ListByLocationNewestFirst(t *testing.T) {
	repo := NewNotificationRepository()

	older := newTestNotification(t, "n1", "loc-a")
	older.CreatedAt = time.Now().Add(-time.Hour)
	repo.Append(older)
	repo.Append(newTestNotification(t, "n2", "loc-a"))
	repo.Append(newTestNotification(t, "n3", "loc-b"))

	list := repo.ListByLocation("loc-a")
	if len(list) != 2 {
		t.Fatalf("Expected 2 notifications for loc-a, got %d", len(list))
	}
	if list[0].ID != "n2" || list[1].ID != "n1" {
		t.Errorf("Expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	repo := NewNotificationRepository()
	repo.Append(newTestNotification(t, "n1", "loc-a"))

	if !repo.MarkRead("n1") {
		t.Errorf("Expected marking unread notification to succeed")
	}
	if list := repo.ListByLocation("loc-a"); !list[0].Read {
		t.Errorf("Expected notification marked read")
	}

	// Marking again is a no-op, not an error
	if !repo.MarkRead("n1") {
		t.Errorf("Expected repeated mark-read to succeed")
	}
	if repo.MarkRead("missing") {
		t.Errorf("Expected false for unknown notification id")
	}
}

func TestNotificationRepository_ReturnsCopies(t *testing.T) {
	repo := NewNotificationRepository()
	repo.Append(newTestNotification(t, "n1", "loc-a"))

	list := repo.ListByLocation("loc-a")
	list[0].Read = true

	again := repo.ListByLocation("loc-a")
	if again[0].Read {
		t.Errorf("Expected registry state unchanged by mutating a returned copy")
	}
}
