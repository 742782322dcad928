package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trust score bounds for connections between locations
const (
	TrustBaseline  = 4.0
	TrustIncrement = 0.1
	TrustCap       = 5.0
)

// PairKey returns the direction-agnostic key identifying a location pair
func PairKey(a, b LocationID) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

// Connection represents accumulated bilateral transfer history between two
// locations. Trust is bounded [0,5], non-decreasing, and mutated only on
// accepted transfers.
type Connection struct {
	ID              string
	LocationA       LocationID
	LocationB       LocationID
	TotalTransfers  int
	TotalValue      decimal.Decimal
	TrustScore      float64
	LastInteraction time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewConnection creates a validated Connection at the baseline trust score
func NewConnection(id string, a, b LocationID) (*Connection, error) {
	if id == "" {
		return nil, fmt.Errorf("connection id cannot be empty")
	}
	if string(a) == "" || string(b) == "" {
		return nil, fmt.Errorf("connection requires two location ids")
	}
	if a == b {
		return nil, fmt.Errorf("connection cannot pair location %s with itself", a)
	}

	now := time.Now()
	return &Connection{
		ID:              id,
		LocationA:       a,
		LocationB:       b,
		TotalValue:      decimal.Zero,
		TrustScore:      TrustBaseline,
		LastInteraction: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Key returns the direction-agnostic pair key for this connection
func (c *Connection) Key() string {
	return PairKey(c.LocationA, c.LocationB)
}

// Involves reports whether the connection links the given pair, in either order
func (c *Connection) Involves(a, b LocationID) bool {
	return (c.LocationA == a && c.LocationB == b) ||
		(c.LocationA == b && c.LocationB == a)
}

// RecordTransfer accumulates one accepted transfer of the given value. The
// first transfer establishes the connection at the baseline; each subsequent
// one raises trust by the fixed increment, capped at TrustCap.
func (c *Connection) RecordTransfer(value decimal.Decimal) {
	if c.TotalTransfers > 0 {
		c.TrustScore += TrustIncrement
		if c.TrustScore > TrustCap {
			c.TrustScore = TrustCap
		}
	}
	c.TotalTransfers++
	c.TotalValue = c.TotalValue.Add(value)
	now := time.Now()
	c.LastInteraction = now
	c.UpdatedAt = now
}
