package dto

import (
	"github.com/shopspring/decimal"
)

// NetworkAnalytics summarizes current network state for dashboards. Every
// figure is derived from registry and connection numbers.
type NetworkAnalytics struct {
	ActiveListings        int
	ActiveNeeds           int
	TotalSurplusValue     decimal.Decimal
	TotalTransfers        int
	TotalTransferredValue decimal.Decimal
	AverageTrustScore     float64
	ConnectedPairs        int
}
