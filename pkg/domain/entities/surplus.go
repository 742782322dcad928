package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SurplusStatus represents the status of a surplus listing
type SurplusStatus int

const (
	SurplusAvailable SurplusStatus = iota
	SurplusReserved
	SurplusTransferred
	SurplusExpired
)

// String method for SurplusStatus enum
func (s SurplusStatus) String() string {
	switch s {
	case SurplusAvailable:
		return "Available"
	case SurplusReserved:
		return "Reserved"
	case SurplusTransferred:
		return "Transferred"
	case SurplusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Available is the only non-terminal state; Reserved, Transferred and Expired
// are terminal for matching purposes.
func (s SurplusStatus) CanTransitionTo(next SurplusStatus) bool {
	if s != SurplusAvailable {
		return false
	}
	switch next {
	case SurplusReserved, SurplusTransferred, SurplusExpired:
		return true
	default:
		return false
	}
}

// Condition represents the physical condition of surplus goods
type Condition int

const (
	ConditionNew Condition = iota
	ConditionLikeNew
	ConditionGood
	ConditionFair
)

// String method for Condition enum
func (c Condition) String() string {
	switch c {
	case ConditionNew:
		return "New"
	case ConditionLikeNew:
		return "LikeNew"
	case ConditionGood:
		return "Good"
	case ConditionFair:
		return "Fair"
	default:
		return "Unknown"
	}
}

// ParseCondition converts a condition name into a Condition value
func ParseCondition(s string) (Condition, error) {
	switch s {
	case "new", "New":
		return ConditionNew, nil
	case "like_new", "LikeNew":
		return ConditionLikeNew, nil
	case "good", "Good":
		return ConditionGood, nil
	case "fair", "Fair":
		return ConditionFair, nil
	default:
		return ConditionNew, fmt.Errorf("unknown condition %q", s)
	}
}

// SurplusItem represents inventory a location has in excess and will transfer
type SurplusItem struct {
	ID                string
	LocationID        LocationID
	SKU               string
	ProductName       string
	Category          string
	QuantityAvailable Quantity
	UnitPrice         decimal.Decimal
	Condition         Condition
	ExpirationDate    *time.Time
	Status            SurplusStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewSurplusItem creates a validated SurplusItem in the Available state
func NewSurplusItem(
	id string,
	locationID LocationID,
	sku, productName, category string,
	quantity Quantity,
	unitPrice decimal.Decimal,
	condition Condition,
) (*SurplusItem, error) {
	if id == "" {
		return nil, fmt.Errorf("surplus item id cannot be empty")
	}
	if string(locationID) == "" {
		return nil, fmt.Errorf("location id cannot be empty")
	}
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}

	now := time.Now()
	return &SurplusItem{
		ID:                id,
		LocationID:        locationID,
		SKU:               sku,
		ProductName:       productName,
		Category:          category,
		QuantityAvailable: quantity,
		UnitPrice:         unitPrice,
		Condition:         condition,
		Status:            SurplusAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// TransitionTo applies a status transition if the transition table permits it
func (s *SurplusItem) TransitionTo(next SurplusStatus) bool {
	if !s.Status.CanTransitionTo(next) {
		return false
	}
	s.Status = next
	s.UpdatedAt = time.Now()
	return true
}

// Deduct removes up to qty units from the available quantity and returns the
// quantity actually deducted. The item transitions to Transferred when the
// remainder hits zero. Quantity never goes negative.
func (s *SurplusItem) Deduct(qty Quantity) Quantity {
	deducted := qty
	if deducted > s.QuantityAvailable {
		deducted = s.QuantityAvailable
	}
	s.QuantityAvailable -= deducted
	s.UpdatedAt = time.Now()
	if s.QuantityAvailable == 0 {
		s.TransitionTo(SurplusTransferred)
	}
	return deducted
}
