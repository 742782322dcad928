package services

import (
	"fmt"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
)

// Distance constants for the relative distance metric
const (
	// DefaultDistance is used for unmapped location pairs so they are never
	// treated as co-located
	DefaultDistance = 500.0

	// ReferenceDistance normalizes proximity scoring
	ReferenceDistance = 1000.0
)

// DistanceEstimator converts a pair of location identifiers into a relative
// distance metric. Distances are symmetric: Distance(a,b) == Distance(b,a).
type DistanceEstimator struct {
	table map[string]float64
}

// NewDistanceEstimator creates an estimator with an empty distance table
func NewDistanceEstimator() *DistanceEstimator {
	return &DistanceEstimator{
		table: make(map[string]float64),
	}
}

// SetDistance records the distance between two locations. Storage is keyed by
// the direction-agnostic pair key so a single entry serves both directions.
func (e *DistanceEstimator) SetDistance(a, b entities.LocationID, distance float64) error {
	if string(a) == "" || string(b) == "" {
		return fmt.Errorf("distance table entries require two location ids")
	}
	if a == b {
		return fmt.Errorf("cannot set distance from %s to itself", a)
	}
	if distance < 0 {
		return fmt.Errorf("distance cannot be negative, got %f", distance)
	}
	e.table[entities.PairKey(a, b)] = distance
	return nil
}

// Distance returns the relative distance between two locations. A location is
// at distance zero from itself; unmapped pairs resolve to DefaultDistance.
func (e *DistanceEstimator) Distance(a, b entities.LocationID) float64 {
	if a == b {
		return 0
	}
	if d, ok := e.table[entities.PairKey(a, b)]; ok {
		return d
	}
	return DefaultDistance
}

// Proximity returns the normalized proximity factor in [0,1]: 1 at zero
// distance, falling linearly to 0 at ReferenceDistance and beyond.
func (e *DistanceEstimator) Proximity(a, b entities.LocationID) float64 {
	p := 1 - e.Distance(a, b)/ReferenceDistance
	if p < 0 {
		return 0
	}
	return p
}
