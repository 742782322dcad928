package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	"github.com/smartchain/surplusnet/pkg/domain/services"
)

// Generator enumerates candidate pairings across all locations, scores them,
// filters by threshold and ranks them. A generation pass is a full recompute:
// the previously held pending/proposed set is replaced, never diffed.
//
// Enumeration is O(L^2 x S x N); callers wanting bounded latency should
// pre-filter by category before ingestion.
type Generator struct {
	cfg       Config
	scorer    *Scorer
	distance  *services.DistanceEstimator
	inventory repositories.InventoryRepository
	matches   repositories.MatchRepository
	logger    *zap.Logger
}

// NewGenerator creates a match generator
func NewGenerator(
	cfg Config,
	scorer *Scorer,
	distance *services.DistanceEstimator,
	inventory repositories.InventoryRepository,
	matches repositories.MatchRepository,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		cfg:       cfg,
		scorer:    scorer,
		distance:  distance,
		inventory: inventory,
		matches:   matches,
		logger:    logger,
	}
}

// Generate runs a full matching pass and returns the new candidate set sorted
// by score descending. Ties are broken by surplus id then need id so repeated
// runs over an unchanged registry rank identically.
func (g *Generator) Generate(ctx context.Context) ([]*entities.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locations := g.inventory.ListLocations()
	var candidates []*entities.Match

	for _, loc := range locations {
		for _, need := range g.inventory.ListNeedsByLocation(loc.ID) {
			if need.Status != entities.NeedActive {
				continue
			}
			for _, other := range locations {
				if other.ID == loc.ID {
					continue
				}
				for _, item := range g.inventory.ListSurplusByLocation(other.ID) {
					if !g.scorer.Eligible(item, need) {
						continue
					}

					score := g.scorer.Score(item, need)
					if score < g.cfg.ScoreThreshold {
						continue
					}

					match, err := entities.NewMatch(
						uuid.NewString(),
						item.ID,
						need.ID,
						other.ID,
						loc.ID,
						score,
						g.scorer.Savings(item, need),
						g.distance.Distance(other.ID, loc.ID),
					)
					if err != nil {
						return nil, fmt.Errorf("failed to build match for surplus %s and need %s: %w", item.ID, need.ID, err)
					}
					candidates = append(candidates, match)
				}
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].SurplusID != candidates[j].SurplusID {
			return candidates[i].SurplusID < candidates[j].SurplusID
		}
		return candidates[i].NeedID < candidates[j].NeedID
	})

	if err := g.matches.Replace(candidates); err != nil {
		return nil, fmt.Errorf("failed to install match set: %w", err)
	}

	g.logger.Debug("generated matches",
		zap.Int("locations", len(locations)),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}
