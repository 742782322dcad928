package matching

import (
	"github.com/shopspring/decimal"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	"github.com/smartchain/surplusnet/pkg/domain/services"
)

// Scorer computes composite scores and savings estimates for one
// (surplus item, need) pair
type Scorer struct {
	cfg         Config
	distance    *services.DistanceEstimator
	connections repositories.ConnectionRepository
}

// NewScorer creates a scorer over the given distance estimator and
// connection history
func NewScorer(
	cfg Config,
	distance *services.DistanceEstimator,
	connections repositories.ConnectionRepository,
) *Scorer {
	return &Scorer{
		cfg:         cfg,
		distance:    distance,
		connections: connections,
	}
}

// Eligible applies the eligibility filter: same category, sufficient
// quantity, within budget when one is set, item available, need active.
// Invariants are re-checked defensively so malformed entries that slipped
// past ingestion never reach scoring.
func (s *Scorer) Eligible(item *entities.SurplusItem, need *entities.Need) bool {
	if item == nil || need == nil {
		return false
	}
	if item.Status != entities.SurplusAvailable || need.Status != entities.NeedActive {
		return false
	}
	if item.Category == "" || item.Category != need.Category {
		return false
	}
	if item.QuantityAvailable <= 0 || need.QuantityNeeded <= 0 {
		return false
	}
	if item.QuantityAvailable < need.QuantityNeeded {
		return false
	}
	if item.UnitPrice.IsNegative() {
		return false
	}
	if need.MaxPrice != nil && item.UnitPrice.GreaterThan(*need.MaxPrice) {
		return false
	}
	return true
}

// Score computes the composite match score for an eligible pair, clamped to
// [0,1]:
//   - quantity fit: min(available, needed)/needed, weighted
//   - price fit: 1 - price/maxPrice, weighted; contributes 0 without a budget
//   - urgency bonus: fixed lookup per urgency level
//   - proximity: 1 - distance/reference, weighted
//   - trust bonus: existing connection trust scaled into the trust weight
func (s *Scorer) Score(item *entities.SurplusItem, need *entities.Need) float64 {
	score := 0.0

	fulfillable := need.QuantityNeeded
	if item.QuantityAvailable < fulfillable {
		fulfillable = item.QuantityAvailable
	}
	score += float64(fulfillable) / float64(need.QuantityNeeded) * s.cfg.QuantityWeight

	if need.MaxPrice != nil && need.MaxPrice.IsPositive() {
		priceRatio := 1 - item.UnitPrice.Div(*need.MaxPrice).InexactFloat64()
		if priceRatio < 0 {
			priceRatio = 0
		}
		score += priceRatio * s.cfg.PriceWeight
	}

	score += need.Urgency.Bonus()

	score += s.distance.Proximity(item.LocationID, need.LocationID) * s.cfg.ProximityWeight

	if conn, ok := s.connections.GetByPair(item.LocationID, need.LocationID); ok {
		score += conn.TrustScore / entities.TrustCap * s.cfg.TrustWeight
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// Savings estimates the cost avoided by transferring instead of buying at the
// reference retail markup: (markup x price - price) x min(available, needed).
func (s *Scorer) Savings(item *entities.SurplusItem, need *entities.Need) decimal.Decimal {
	qty := need.QuantityNeeded
	if item.QuantityAvailable < qty {
		qty = item.QuantityAvailable
	}
	perUnit := item.UnitPrice.Mul(decimal.NewFromFloat(s.cfg.ReferenceMarkup - 1))
	return perUnit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}
