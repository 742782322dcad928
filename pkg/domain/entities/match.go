package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus represents the lifecycle state of a candidate match
type MatchStatus int

const (
	MatchPending MatchStatus = iota
	MatchProposed
	MatchAccepted
	MatchRejected
)

// String method for MatchStatus enum
func (s MatchStatus) String() string {
	switch s {
	case MatchPending:
		return "Pending"
	case MatchProposed:
		return "Proposed"
	case MatchAccepted:
		return "Accepted"
	case MatchRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// CanTransitionTo reports whether the match status machine permits moving to
// next. Accepted and Rejected are terminal.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	switch s {
	case MatchPending:
		return next == MatchProposed
	case MatchProposed:
		return next == MatchAccepted || next == MatchRejected
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transitions
func (s MatchStatus) Terminal() bool {
	return s == MatchAccepted || s == MatchRejected
}

// Match represents a scored candidate pairing of one surplus item with one need
type Match struct {
	ID               string
	SurplusID        string
	NeedID           string
	FromLocation     LocationID
	ToLocation       LocationID
	Score            float64
	EstimatedSavings decimal.Decimal
	Distance         float64
	Status           MatchStatus
	ProposedBy       LocationID
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ProposedAt       *time.Time
}

// NewMatch creates a validated Match in the Pending state
func NewMatch(
	id, surplusID, needID string,
	from, to LocationID,
	score float64,
	savings decimal.Decimal,
	distance float64,
) (*Match, error) {
	if id == "" {
		return nil, fmt.Errorf("match id cannot be empty")
	}
	if surplusID == "" || needID == "" {
		return nil, fmt.Errorf("match must reference a surplus item and a need")
	}
	if from == to {
		return nil, fmt.Errorf("match cannot pair location %s with itself", from)
	}
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("score must be within [0,1], got %f", score)
	}
	if distance < 0 {
		return nil, fmt.Errorf("distance cannot be negative, got %f", distance)
	}

	now := time.Now()
	return &Match{
		ID:               id,
		SurplusID:        surplusID,
		NeedID:           needID,
		FromLocation:     from,
		ToLocation:       to,
		Score:            score,
		EstimatedSavings: savings,
		Distance:         distance,
		Status:           MatchPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// TransitionTo applies a status transition if the transition table permits it
func (m *Match) TransitionTo(next MatchStatus) bool {
	if !m.Status.CanTransitionTo(next) {
		return false
	}
	m.Status = next
	m.UpdatedAt = time.Now()
	return true
}
