package entities

import (
	"fmt"
	"time"
)

// LocationID represents a unique location identifier within the network
type LocationID string

// Quantity represents an integer quantity value for discrete inventory units
type Quantity int64

// CategoryStock holds per-category stock levels and replenishment thresholds
type CategoryStock struct {
	CurrentStock Quantity
	MinThreshold Quantity
	MaxThreshold Quantity
	LastUpdated  time.Time
}

// LocationInventory represents one network location and its per-category stock.
// Surplus items and needs owned by the location live in the inventory
// repository and are keyed by LocationID.
type LocationInventory struct {
	ID         LocationID
	Name       string
	City       string
	Categories map[string]CategoryStock
}

// NewLocationInventory creates a validated LocationInventory
func NewLocationInventory(id LocationID, name, city string) (*LocationInventory, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("location id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("location name cannot be empty")
	}
	if city == "" {
		return nil, fmt.Errorf("location city cannot be empty")
	}

	return &LocationInventory{
		ID:         id,
		Name:       name,
		City:       city,
		Categories: make(map[string]CategoryStock),
	}, nil
}

// SetCategoryStock records stock levels for a category
func (l *LocationInventory) SetCategoryStock(category string, current, min, max Quantity) error {
	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if current < 0 {
		return fmt.Errorf("current stock cannot be negative, got %d", current)
	}
	if max <= 0 {
		return fmt.Errorf("max threshold must be positive, got %d", max)
	}
	if min > max {
		return fmt.Errorf("min threshold %d cannot exceed max threshold %d", min, max)
	}

	l.Categories[category] = CategoryStock{
		CurrentStock: current,
		MinThreshold: min,
		MaxThreshold: max,
		LastUpdated:  time.Now(),
	}
	return nil
}
