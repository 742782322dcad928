package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appservices "github.com/smartchain/surplusnet/pkg/application/services"
	"github.com/smartchain/surplusnet/pkg/application/services/matching"
	"github.com/smartchain/surplusnet/pkg/domain/entities"
	domainservices "github.com/smartchain/surplusnet/pkg/domain/services"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
	"github.com/smartchain/surplusnet/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	inventory := memory.NewInventoryRepository()
	matches := memory.NewMatchRepository()
	connections := memory.NewConnectionRepository()
	notifications := memory.NewNotificationRepository()

	// Set up a three-store coastal network
	distance := domainservices.NewDistanceEstimator()
	setupCoastalNetwork(inventory, distance)

	// Create the network service
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	svc := appservices.NewNetworkService(appservices.NetworkServiceDeps{
		Config:        matching.DefaultConfig(),
		Inventory:     inventory,
		Matches:       matches,
		Connections:   connections,
		Notifications: notifications,
		Distance:      distance,
		Market:        domainservices.NewFixedMarketEstimator(),
		Journal:       events.NewInMemoryEventStore(),
		Logger:        logger,
	})

	fmt.Println("🔄 Running matching pass over the coastal network...")
	generated, err := svc.GenerateMatches(ctx)
	if err != nil {
		fmt.Printf("❌ Matching failed: %v\n", err)
		return
	}

	fmt.Printf("📊 Generated %d matches:\n", len(generated))
	for _, m := range generated {
		fmt.Printf("  %s -> %s: score %.3f, est. savings $%s (%.0f mi)\n",
			m.FromLocation, m.ToLocation, m.Score, m.EstimatedSavings.StringFixed(2), m.Distance)
	}
	fmt.Println()

	// Settle the best match
	if len(generated) > 0 {
		best := generated[0]
		fmt.Printf("🤝 Proposing best match %s...\n", best.ID)
		if svc.ProposeMatch(best.ID, best.FromLocation, "demo proposal") {
			if svc.RespondToMatch(best.ID, true, "demo acceptance") {
				fmt.Println("✅ Match accepted, transfer recorded")
			}
		}

		conns, _ := svc.ListConnections(ctx)
		for _, c := range conns {
			fmt.Printf("  Connection %s <-> %s: %d transfers, trust %.1f\n",
				c.LocationA, c.LocationB, c.TotalTransfers, c.TrustScore)
		}
		fmt.Println()
	}

	// Derive recommended actions
	actions, err := svc.GetRecommendedActions(ctx)
	if err != nil {
		fmt.Printf("❌ Action derivation failed: %v\n", err)
		return
	}

	fmt.Printf("📋 Recommended actions (%d):\n", len(actions))
	for _, a := range actions {
		fmt.Printf("  [%s] %s: %s (savings $%s)\n",
			a.Priority, a.Kind, a.Title, a.Impact.CostSavings.StringFixed(2))
	}
	fmt.Println()

	analytics, _ := svc.Analytics(ctx)
	fmt.Printf("📈 Network: %d active listings worth $%s, %d active needs, avg trust %.2f\n",
		analytics.ActiveListings,
		analytics.TotalSurplusValue.StringFixed(2),
		analytics.ActiveNeeds,
		analytics.AverageTrustScore)

	fmt.Println("✅ Network demo complete!")
}

func setupCoastalNetwork(inventory *memory.InventoryRepository, distance *domainservices.DistanceEstimator) {
	// Locations with per-category stock levels
	sf, _ := entities.NewLocationInventory("store-sf", "Downtown SF", "San Francisco")
	_ = sf.SetCategoryStock("electronics", 150, 20, 100)
	_ = sf.SetCategoryStock("apparel", 40, 30, 120)

	ny, _ := entities.NewLocationInventory("store-ny", "Midtown NY", "New York")
	_ = ny.SetCategoryStock("electronics", 8, 25, 110)
	_ = ny.SetCategoryStock("apparel", 90, 30, 120)

	chi, _ := entities.NewLocationInventory("store-chi", "Loop Chicago", "Chicago")
	_ = chi.SetCategoryStock("electronics", 60, 20, 100)

	_ = inventory.SaveLocation(sf)
	_ = inventory.SaveLocation(ny)
	_ = inventory.SaveLocation(chi)

	distance.SetDistance("store-sf", "store-ny", 2900)
	distance.SetDistance("store-sf", "store-chi", 2100)
	distance.SetDistance("store-ny", "store-chi", 800)

	// SF is long on tablets, NY is short
	surplus, _ := entities.NewSurplusItem(
		"surplus-tablets",
		"store-sf",
		"TAB-10",
		"10in Tablet",
		"electronics",
		150,
		decimal.NewFromFloat(25),
		entities.ConditionGood,
	)
	_ = inventory.SaveSurplusItem(surplus)

	maxPrice := decimal.NewFromFloat(30)
	need, _ := entities.NewNeed(
		"need-tablets",
		"store-ny",
		"electronics",
		"10in Tablet",
		100,
		entities.UrgencyHigh,
		&maxPrice,
		nil,
	)
	_ = inventory.SaveNeed(need)
}
