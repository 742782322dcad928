package services

import (
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTrend reports estimated market movement for a product category
type CategoryTrend struct {
	Category         string
	GrowthPct        int
	DemandScore      int
	PotentialSavings decimal.Decimal
}

// MarketEstimator supplies market price and demand figures to the action
// prioritizer. The matching and lifecycle core never consults it, so an
// implementation is free to add cosmetic variation; tests use the fixed
// estimator.
type MarketEstimator interface {
	// MarketPrice estimates the open-market price for goods currently listed
	// at the given network unit price
	MarketPrice(productName string, networkPrice decimal.Decimal) decimal.Decimal

	// DemandScore estimates market demand for a product on a 1-10 scale
	DemandScore(productName string) int

	// CategoryTrends estimates growth and demand per category
	CategoryTrends(categories []string) []CategoryTrend
}

// referenceMarkup is the retail markup avoided by a direct network transfer
const referenceMarkup = 1.3

// FixedMarketEstimator is the deterministic estimator used by the engine
// default and by tests. Prices follow the reference markup; demand and trend
// figures come from fixed tables.
type FixedMarketEstimator struct {
	demandByProduct map[string]int
}

var _ MarketEstimator = (*FixedMarketEstimator)(nil)

// NewFixedMarketEstimator creates a deterministic market estimator
func NewFixedMarketEstimator() *FixedMarketEstimator {
	return &FixedMarketEstimator{
		demandByProduct: map[string]int{},
	}
}

// SetDemand pins the demand score for a product
func (e *FixedMarketEstimator) SetDemand(productName string, score int) {
	e.demandByProduct[productName] = score
}

// MarketPrice returns the network price raised by the reference markup
func (e *FixedMarketEstimator) MarketPrice(productName string, networkPrice decimal.Decimal) decimal.Decimal {
	return networkPrice.Mul(decimal.NewFromFloat(referenceMarkup))
}

// DemandScore returns the pinned demand score, or a neutral 5
func (e *FixedMarketEstimator) DemandScore(productName string) int {
	if score, ok := e.demandByProduct[productName]; ok {
		return score
	}
	return 5
}

// CategoryTrends returns neutral trend figures in stable category order
func (e *FixedMarketEstimator) CategoryTrends(categories []string) []CategoryTrend {
	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)

	trends := make([]CategoryTrend, 0, len(sorted))
	for _, c := range sorted {
		trends = append(trends, CategoryTrend{
			Category:         c,
			GrowthPct:        10,
			DemandScore:      5,
			PotentialSavings: decimal.NewFromInt(1000),
		})
	}
	return trends
}

// SeededMarketEstimator adds seedable variation for demo realism. The same
// seed always produces the same figures.
type SeededMarketEstimator struct {
	rng *rand.Rand
}

var _ MarketEstimator = (*SeededMarketEstimator)(nil)

// NewSeededMarketEstimator creates a market estimator with variation drawn
// from the given seed
func NewSeededMarketEstimator(seed int64) *SeededMarketEstimator {
	return &SeededMarketEstimator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// MarketPrice returns the network price raised by the reference markup with
// +/-20% variation
func (e *SeededMarketEstimator) MarketPrice(productName string, networkPrice decimal.Decimal) decimal.Decimal {
	variation := 0.8 + e.rng.Float64()*0.4
	return networkPrice.Mul(decimal.NewFromFloat(referenceMarkup * variation)).Round(2)
}

// DemandScore returns a demand score on a 1-10 scale
func (e *SeededMarketEstimator) DemandScore(productName string) int {
	return 1 + e.rng.Intn(10)
}

// CategoryTrends returns varied trend figures in stable category order
func (e *SeededMarketEstimator) CategoryTrends(categories []string) []CategoryTrend {
	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)

	trends := make([]CategoryTrend, 0, len(sorted))
	for _, c := range sorted {
		trends = append(trends, CategoryTrend{
			Category:         c,
			GrowthPct:        10 + e.rng.Intn(50),
			DemandScore:      5 + e.rng.Intn(5),
			PotentialSavings: decimal.NewFromInt(int64(1000 + e.rng.Intn(5000))),
		})
	}
	return trends
}
