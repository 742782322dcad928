package entities

import (
	"fmt"
	"time"
)

// Priority represents an action or notification priority tier
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// NotificationType represents the kind of event a notification reports
type NotificationType int

const (
	NotificationMatchProposal NotificationType = iota
	NotificationMatchAccepted
	NotificationMatchRejected
)

// String method for NotificationType enum
func (t NotificationType) String() string {
	switch t {
	case NotificationMatchProposal:
		return "MatchProposal"
	case NotificationMatchAccepted:
		return "MatchAccepted"
	case NotificationMatchRejected:
		return "MatchRejected"
	default:
		return "Unknown"
	}
}

// Notification is emitted by the lifecycle manager toward a location and
// consumed by the presentation layer
type Notification struct {
	ID         string
	LocationID LocationID
	Type       NotificationType
	Title      string
	Message    string
	Priority   Priority
	Read       bool
	CreatedAt  time.Time
}

// NewNotification creates a validated Notification
func NewNotification(
	id string,
	locationID LocationID,
	nType NotificationType,
	title, message string,
	priority Priority,
) (*Notification, error) {
	if id == "" {
		return nil, fmt.Errorf("notification id cannot be empty")
	}
	if string(locationID) == "" {
		return nil, fmt.Errorf("notification requires a target location")
	}

	return &Notification{
		ID:         id,
		LocationID: locationID,
		Type:       nType,
		Title:      title,
		Message:    message,
		Priority:   priority,
		CreatedAt:  time.Now(),
	}, nil
}
