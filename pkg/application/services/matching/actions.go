package matching

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	"github.com/smartchain/surplusnet/pkg/domain/services"
)

// Prioritizer derives a ranked list of recommended operator actions from
// current registry, match and connection state. Impact triples are always
// derived from the underlying match/connection numbers.
type Prioritizer struct {
	cfg         Config
	inventory   repositories.InventoryRepository
	matches     repositories.MatchRepository
	connections repositories.ConnectionRepository
	distance    *services.DistanceEstimator
	market      services.MarketEstimator
	logger      *zap.Logger
}

// NewPrioritizer creates an action prioritizer
func NewPrioritizer(
	cfg Config,
	inventory repositories.InventoryRepository,
	matches repositories.MatchRepository,
	connections repositories.ConnectionRepository,
	distance *services.DistanceEstimator,
	market services.MarketEstimator,
	logger *zap.Logger,
) *Prioritizer {
	return &Prioritizer{
		cfg:         cfg,
		inventory:   inventory,
		matches:     matches,
		connections: connections,
		distance:    distance,
		market:      market,
		logger:      logger,
	}
}

// Recommend aggregates all action kinds and ranks them: priority tier
// descending, ties broken by estimated cost savings descending.
func (p *Prioritizer) Recommend(ctx context.Context) ([]entities.RecommendedAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var actions []entities.RecommendedAction
	actions = append(actions, p.matchAlerts()...)
	actions = append(actions, p.criticalNeedAlerts()...)
	actions = append(actions, p.lowStockAlerts()...)
	actions = append(actions, p.surplusOpportunities()...)
	actions = append(actions, p.partnershipOpportunities()...)
	actions = append(actions, p.marketInsights()...)

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority != actions[j].Priority {
			return actions[i].Priority > actions[j].Priority
		}
		return actions[i].Impact.CostSavings.GreaterThan(actions[j].Impact.CostSavings)
	})

	p.logger.Debug("recommended actions", zap.Int("count", len(actions)))
	return actions, nil
}

// matchAlerts surfaces the best high-score match currently pending
func (p *Prioritizer) matchAlerts() []entities.RecommendedAction {
	var top *entities.Match
	for _, m := range p.matches.List() {
		if m.Status != entities.MatchPending || m.Score <= p.cfg.HighScoreThreshold {
			continue
		}
		if top == nil || m.Score > top.Score {
			top = m
		}
	}
	if top == nil {
		return nil
	}

	need, ok := p.inventory.GetNeed(top.NeedID)
	if !ok {
		return nil
	}
	item, ok := p.inventory.GetSurplusItem(top.SurplusID)
	if !ok {
		return nil
	}

	savings := p.netSavings(top, item, need)
	return []entities.RecommendedAction{{
		ID:       fmt.Sprintf("match-%s", top.ID),
		Kind:     entities.ActionMatchAlert,
		Priority: need.Urgency.Priority(),
		Title:    fmt.Sprintf("Hot match: %s", item.ProductName),
		Description: fmt.Sprintf("%s needs %d units; %.0f%% match score",
			need.LocationID, need.QuantityNeeded, top.Score*100),
		Payload: entities.MatchAlertPayload{
			MatchID:   top.ID,
			SurplusID: top.SurplusID,
			NeedID:    top.NeedID,
			Score:     top.Score,
		},
		Impact: entities.Impact{
			CostSavings:      savings,
			TimeSavingsHours: p.timeToFulfill(top, need),
			EfficiencyGain:   top.Score,
		},
	}}
}

// criticalNeedAlerts surfaces every active critical-urgency need. A need with
// viable matches carries their combined savings; a need with none still
// alerts, with zero derived impact.
func (p *Prioritizer) criticalNeedAlerts() []entities.RecommendedAction {
	matchesByNeed := make(map[string][]*entities.Match)
	for _, m := range p.matches.List() {
		if !m.Status.Terminal() {
			matchesByNeed[m.NeedID] = append(matchesByNeed[m.NeedID], m)
		}
	}

	var actions []entities.RecommendedAction
	for _, need := range p.inventory.ListNeeds() {
		if need.Status != entities.NeedActive || need.Urgency != entities.UrgencyCritical {
			continue
		}

		viable := matchesByNeed[need.ID]
		matchIDs := make([]string, 0, len(viable))
		total := decimal.Zero
		for _, m := range viable {
			matchIDs = append(matchIDs, m.ID)
			total = total.Add(m.EstimatedSavings)
		}

		impact := entities.Impact{CostSavings: total}
		if len(viable) > 0 {
			impact.TimeSavingsHours = 48
			impact.EfficiencyGain = 0.95
		}

		actions = append(actions, entities.RecommendedAction{
			ID:       fmt.Sprintf("critical-%s", need.ID),
			Kind:     entities.ActionCriticalNeed,
			Priority: entities.PriorityCritical,
			Title:    fmt.Sprintf("Critical need: %s", need.Category),
			Description: fmt.Sprintf("%s needs %d units of %s; %d suppliers available",
				need.LocationID, need.QuantityNeeded, need.Category, len(viable)),
			Payload: entities.CriticalNeedPayload{
				NeedID:   need.ID,
				MatchIDs: matchIDs,
			},
			Impact: impact,
		})
	}
	return actions
}

// lowStockAlerts flags categories whose stock ratio against the max threshold
// has fallen below the alert ratios
func (p *Prioritizer) lowStockAlerts() []entities.RecommendedAction {
	var actions []entities.RecommendedAction
	for _, loc := range p.inventory.ListLocations() {
		categories := make([]string, 0, len(loc.Categories))
		for category := range loc.Categories {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			stock := loc.Categories[category]
			if stock.MaxThreshold <= 0 {
				continue
			}
			ratio := float64(stock.CurrentStock) / float64(stock.MaxThreshold)
			if ratio >= p.cfg.LowStockRatio {
				continue
			}

			priority := entities.PriorityHigh
			if ratio < p.cfg.CriticalStockRatio {
				priority = entities.PriorityCritical
			}

			suppliers := p.findSuppliers(category, loc.ID)
			actions = append(actions, entities.RecommendedAction{
				ID:       fmt.Sprintf("lowstock-%s-%s", loc.ID, category),
				Kind:     entities.ActionLowStock,
				Priority: priority,
				Title:    fmt.Sprintf("Low stock: %s", category),
				Description: fmt.Sprintf("%s holds %d/%d %s units; %d potential suppliers",
					loc.Name, stock.CurrentStock, stock.MaxThreshold, category, len(suppliers)),
				Payload: entities.LowStockPayload{
					LocationID:   loc.ID,
					Category:     category,
					CurrentStock: stock.CurrentStock,
					MaxThreshold: stock.MaxThreshold,
					SupplierIDs:  suppliers,
				},
				Impact: entities.Impact{
					CostSavings:      p.stockoutCost(stock),
					TimeSavingsHours: 24,
					EfficiencyGain:   0.8,
				},
			})
		}
	}
	return actions
}

// surplusOpportunities flags listings large enough to market across the
// network
func (p *Prioritizer) surplusOpportunities() []entities.RecommendedAction {
	var actions []entities.RecommendedAction
	for _, item := range p.inventory.ListSurplus() {
		if item.Status != entities.SurplusAvailable {
			continue
		}
		if int64(item.QuantityAvailable) <= p.cfg.SurplusOpportunityQty {
			continue
		}

		demand := p.market.DemandScore(item.ProductName)
		revenue := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityAvailable)))
		// Network savings share of the would-be revenue follows the avoided
		// retail markup.
		share := decimal.NewFromFloat(p.cfg.ReferenceMarkup - 1)

		actions = append(actions, entities.RecommendedAction{
			ID:       fmt.Sprintf("surplus-%s", item.ID),
			Kind:     entities.ActionSurplusOpportunity,
			Priority: entities.PriorityMedium,
			Title:    fmt.Sprintf("Surplus opportunity: %s", item.ProductName),
			Description: fmt.Sprintf("%d units available; market demand %d/10",
				item.QuantityAvailable, demand),
			Payload: entities.SurplusOpportunityPayload{
				SurplusID:   item.ID,
				LocationID:  item.LocationID,
				DemandScore: demand,
			},
			Impact: entities.Impact{
				CostSavings:      revenue.Mul(share).Round(2),
				TimeSavingsHours: 72,
				EfficiencyGain:   0.7,
			},
		})
	}
	return actions
}

// partnershipOpportunities pairs locations whose surplus and need sets are
// mutually complementary, scored with the same proximity and overlap logic as
// individual matches generalized to the whole inventory
func (p *Prioritizer) partnershipOpportunities() []entities.RecommendedAction {
	locations := p.inventory.ListLocations()

	var actions []entities.RecommendedAction
	for i, a := range locations {
		for _, b := range locations[i+1:] {
			aHelpsB := p.coverage(a.ID, b.ID)
			bHelpsA := p.coverage(b.ID, a.ID)
			if !aHelpsB && !bHelpsA {
				continue
			}

			score := 0.0
			if aHelpsB {
				score += 0.4
			}
			if bHelpsA {
				score += 0.4
			}
			score += p.distance.Proximity(a.ID, b.ID) * 0.2
			if score > 1 {
				score = 1
			}

			savings := p.pairwiseSavings(a.ID, b.ID).Add(p.pairwiseSavings(b.ID, a.ID))
			actions = append(actions, entities.RecommendedAction{
				ID:       fmt.Sprintf("partnership-%s-%s", a.ID, b.ID),
				Kind:     entities.ActionPartnershipOpportunity,
				Priority: entities.PriorityHigh,
				Title:    fmt.Sprintf("Strategic partnership: %s and %s", a.Name, b.Name),
				Description: fmt.Sprintf("%.0f%% synergy score across complementary inventories",
					score*100),
				Payload: entities.PartnershipPayload{
					LocationA:    a.ID,
					LocationB:    b.ID,
					SynergyScore: score,
					Distance:     p.distance.Distance(a.ID, b.ID),
				},
				Impact: entities.Impact{
					CostSavings:      p.partnershipValue(a.ID, b.ID, savings),
					TimeSavingsHours: 168,
					EfficiencyGain:   score,
				},
			})
		}
	}
	return actions
}

// marketInsights reports the top trending categories from the market
// estimator
func (p *Prioritizer) marketInsights() []entities.RecommendedAction {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range p.inventory.ListSurplus() {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	for _, need := range p.inventory.ListNeeds() {
		if !seen[need.Category] {
			seen[need.Category] = true
			categories = append(categories, need.Category)
		}
	}

	trends := p.market.CategoryTrends(categories)
	if len(trends) > 2 {
		trends = trends[:2]
	}

	var actions []entities.RecommendedAction
	for _, trend := range trends {
		actions = append(actions, entities.RecommendedAction{
			ID:       fmt.Sprintf("trend-%s", trend.Category),
			Kind:     entities.ActionMarketInsight,
			Priority: entities.PriorityMedium,
			Title:    fmt.Sprintf("Trending: %s", trend.Category),
			Description: fmt.Sprintf("%d%% growth, demand score %d/10",
				trend.GrowthPct, trend.DemandScore),
			Payload: entities.MarketInsightPayload{
				Category:    trend.Category,
				GrowthPct:   trend.GrowthPct,
				DemandScore: trend.DemandScore,
			},
			Impact: entities.Impact{
				CostSavings:      trend.PotentialSavings,
				TimeSavingsHours: 168,
				EfficiencyGain:   0.6,
			},
		})
	}
	return actions
}

// coverage reports whether supplier has available surplus in any category
// consumer actively needs
func (p *Prioritizer) coverage(supplier, consumer entities.LocationID) bool {
	needs := make(map[string]bool)
	for _, need := range p.inventory.ListNeedsByLocation(consumer) {
		if need.Status == entities.NeedActive {
			needs[need.Category] = true
		}
	}
	for _, item := range p.inventory.ListSurplusByLocation(supplier) {
		if item.Status == entities.SurplusAvailable && needs[item.Category] {
			return true
		}
	}
	return false
}

// pairwiseSavings estimates the markup avoided if supplier covered consumer's
// needs category by category
func (p *Prioritizer) pairwiseSavings(supplier, consumer entities.LocationID) decimal.Decimal {
	needsByCategory := make(map[string]*entities.Need)
	for _, need := range p.inventory.ListNeedsByLocation(consumer) {
		if need.Status == entities.NeedActive {
			if _, ok := needsByCategory[need.Category]; !ok {
				needsByCategory[need.Category] = need
			}
		}
	}

	total := decimal.Zero
	markup := decimal.NewFromFloat(p.cfg.ReferenceMarkup - 1)
	for _, item := range p.inventory.ListSurplusByLocation(supplier) {
		if item.Status != entities.SurplusAvailable {
			continue
		}
		need, ok := needsByCategory[item.Category]
		if !ok {
			continue
		}
		qty := need.QuantityNeeded
		if item.QuantityAvailable < qty {
			qty = item.QuantityAvailable
		}
		total = total.Add(item.UnitPrice.Mul(markup).Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2)
}

// partnershipValue projects a pair's savings over a year, scaled by trust and
// penalized by distance
func (p *Prioritizer) partnershipValue(a, b entities.LocationID, savings decimal.Decimal) decimal.Decimal {
	trust := entities.TrustBaseline
	if conn, ok := p.connections.GetByPair(a, b); ok {
		trust = conn.TrustScore
	}

	distancePenalty := 1 - p.distance.Distance(a, b)/services.ReferenceDistance
	if distancePenalty < 0.5 {
		distancePenalty = 0.5
	}

	annual := savings.Mul(decimal.NewFromInt(12))
	return annual.
		Mul(decimal.NewFromFloat(trust / entities.TrustCap)).
		Mul(decimal.NewFromFloat(distancePenalty)).
		Round(2)
}

// netSavings subtracts estimated transport cost from a match's savings,
// floored at zero
func (p *Prioritizer) netSavings(match *entities.Match, item *entities.SurplusItem, need *entities.Need) decimal.Decimal {
	qty := need.QuantityNeeded
	if item.QuantityAvailable < qty {
		qty = item.QuantityAvailable
	}
	blocks := math.Ceil(float64(qty) / float64(p.cfg.TransportUnitBlock))
	transport := decimal.NewFromFloat(match.Distance * p.cfg.TransportRatePerMile * blocks)

	net := match.EstimatedSavings.Sub(transport).Round(2)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// timeToFulfill estimates hours until delivery: base handling plus transit,
// halved for critical needs which get priority handling
func (p *Prioritizer) timeToFulfill(match *entities.Match, need *entities.Need) float64 {
	hours := p.cfg.BaseHandlingHours + match.Distance/p.cfg.AvgTransportSpeed
	if need.Urgency == entities.UrgencyCritical {
		hours *= 0.5
	}
	return math.Round(hours)
}

// findSuppliers lists locations other than the given one holding available
// surplus in a category
func (p *Prioritizer) findSuppliers(category string, exclude entities.LocationID) []entities.LocationID {
	var suppliers []entities.LocationID
	for _, loc := range p.inventory.ListLocations() {
		if loc.ID == exclude {
			continue
		}
		for _, item := range p.inventory.ListSurplusByLocation(loc.ID) {
			if item.Status == entities.SurplusAvailable && item.Category == category {
				suppliers = append(suppliers, loc.ID)
				break
			}
		}
	}
	return suppliers
}

// stockoutCost derives the revenue at risk while a category sits under
// threshold from the threshold numbers themselves
func (p *Prioritizer) stockoutCost(stock entities.CategoryStock) decimal.Decimal {
	const unitsPerDay = 10
	dailyRevenue := float64(stock.MaxThreshold) * unitsPerDay
	stockoutDays := math.Ceil(float64(stock.MaxThreshold-stock.CurrentStock) / unitsPerDay)
	return decimal.NewFromFloat(dailyRevenue * stockoutDays * 0.5).Round(2)
}
