package entities

import (
	"github.com/shopspring/decimal"
)

// ActionKind represents the closed set of recommended action kinds
type ActionKind int

const (
	ActionMatchAlert ActionKind = iota
	ActionCriticalNeed
	ActionLowStock
	ActionSurplusOpportunity
	ActionPartnershipOpportunity
	ActionMarketInsight
)

// String method for ActionKind enum
func (k ActionKind) String() string {
	switch k {
	case ActionMatchAlert:
		return "MatchAlert"
	case ActionCriticalNeed:
		return "CriticalNeed"
	case ActionLowStock:
		return "LowStock"
	case ActionSurplusOpportunity:
		return "SurplusOpportunity"
	case ActionPartnershipOpportunity:
		return "PartnershipOpportunity"
	case ActionMarketInsight:
		return "MarketInsight"
	default:
		return "Unknown"
	}
}

// Impact estimates the operator value of acting on a recommendation. The
// triple is always derived from underlying match/connection numbers.
type Impact struct {
	CostSavings      decimal.Decimal
	TimeSavingsHours float64
	EfficiencyGain   float64
}

// ActionPayload is the closed variant of kind-specific action data. Exactly
// one payload type corresponds to each ActionKind.
type ActionPayload interface {
	isActionPayload()
}

// MatchAlertPayload identifies a high-score match worth proposing
type MatchAlertPayload struct {
	MatchID   string
	SurplusID string
	NeedID    string
	Score     float64
}

// CriticalNeedPayload identifies a critical-urgency need and its viable matches
type CriticalNeedPayload struct {
	NeedID   string
	MatchIDs []string
}

// LowStockPayload identifies a location category running below threshold
type LowStockPayload struct {
	LocationID   LocationID
	Category     string
	CurrentStock Quantity
	MaxThreshold Quantity
	SupplierIDs  []LocationID
}

// SurplusOpportunityPayload identifies a large surplus worth listing widely
type SurplusOpportunityPayload struct {
	SurplusID   string
	LocationID  LocationID
	DemandScore int
}

// PartnershipPayload identifies two locations with complementary inventories
type PartnershipPayload struct {
	LocationA    LocationID
	LocationB    LocationID
	SynergyScore float64
	Distance     float64
}

// MarketInsightPayload reports a trending category worth stocking
type MarketInsightPayload struct {
	Category    string
	GrowthPct   int
	DemandScore int
}

func (MatchAlertPayload) isActionPayload()         {}
func (CriticalNeedPayload) isActionPayload()       {}
func (LowStockPayload) isActionPayload()           {}
func (SurplusOpportunityPayload) isActionPayload() {}
func (PartnershipPayload) isActionPayload()        {}
func (MarketInsightPayload) isActionPayload()      {}

// RecommendedAction is a ranked recommendation summarizing an opportunity or
// risk for an operator
type RecommendedAction struct {
	ID          string
	Kind        ActionKind
	Priority    Priority
	Title       string
	Description string
	Payload     ActionPayload
	Impact      Impact
}
