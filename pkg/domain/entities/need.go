package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Urgency represents how urgently a need must be fulfilled
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

// String method for Urgency enum
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "Low"
	case UrgencyMedium:
		return "Medium"
	case UrgencyHigh:
		return "High"
	case UrgencyCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Bonus returns the fixed scoring bonus contributed by this urgency level
func (u Urgency) Bonus() float64 {
	switch u {
	case UrgencyLow:
		return 0.1
	case UrgencyMedium:
		return 0.2
	case UrgencyHigh:
		return 0.3
	case UrgencyCritical:
		return 0.4
	default:
		return 0
	}
}

// Priority maps an urgency level onto an action priority tier
func (u Urgency) Priority() Priority {
	switch u {
	case UrgencyLow:
		return PriorityLow
	case UrgencyMedium:
		return PriorityMedium
	case UrgencyHigh:
		return PriorityHigh
	case UrgencyCritical:
		return PriorityCritical
	default:
		return PriorityLow
	}
}

// ParseUrgency converts an urgency name into an Urgency value
func ParseUrgency(s string) (Urgency, error) {
	switch s {
	case "low", "Low":
		return UrgencyLow, nil
	case "medium", "Medium":
		return UrgencyMedium, nil
	case "high", "High":
		return UrgencyHigh, nil
	case "critical", "Critical":
		return UrgencyCritical, nil
	default:
		return UrgencyLow, fmt.Errorf("unknown urgency %q", s)
	}
}

// NeedStatus represents the status of a posted need
type NeedStatus int

const (
	NeedActive NeedStatus = iota
	NeedFulfilled
	NeedExpired
)

// String method for NeedStatus enum
func (s NeedStatus) String() string {
	switch s {
	case NeedActive:
		return "Active"
	case NeedFulfilled:
		return "Fulfilled"
	case NeedExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Fulfilled and Expired are terminal.
func (s NeedStatus) CanTransitionTo(next NeedStatus) bool {
	if s != NeedActive {
		return false
	}
	return next == NeedFulfilled || next == NeedExpired
}

// Need represents a location's outstanding demand for a category and quantity
type Need struct {
	ID             string
	LocationID     LocationID
	Category       string
	ProductName    string
	QuantityNeeded Quantity
	Urgency        Urgency
	MaxPrice       *decimal.Decimal
	Deadline       *time.Time
	Status         NeedStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewNeed creates a validated Need in the Active state
func NewNeed(
	id string,
	locationID LocationID,
	category, productName string,
	quantity Quantity,
	urgency Urgency,
	maxPrice *decimal.Decimal,
	deadline *time.Time,
) (*Need, error) {
	if id == "" {
		return nil, fmt.Errorf("need id cannot be empty")
	}
	if string(locationID) == "" {
		return nil, fmt.Errorf("location id cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if maxPrice != nil && maxPrice.IsNegative() {
		return nil, fmt.Errorf("max price cannot be negative, got %s", maxPrice)
	}

	now := time.Now()
	return &Need{
		ID:             id,
		LocationID:     locationID,
		Category:       category,
		ProductName:    productName,
		QuantityNeeded: quantity,
		Urgency:        urgency,
		MaxPrice:       maxPrice,
		Deadline:       deadline,
		Status:         NeedActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// TransitionTo applies a status transition if the transition table permits it
func (n *Need) TransitionTo(next NeedStatus) bool {
	if !n.Status.CanTransitionTo(next) {
		return false
	}
	n.Status = next
	n.UpdatedAt = time.Now()
	return true
}
