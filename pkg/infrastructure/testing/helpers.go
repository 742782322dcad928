package testing

import (
	"github.com/shopspring/decimal"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/services"
	"github.com/smartchain/surplusnet/pkg/infrastructure/repositories/memory"
)

// BuildCoastalNetworkTestData builds the three-store coastal test scenario:
// SF long on tablets, NY short with a high-urgency need, Chicago balanced
// with a small critical need nobody can cover.
func BuildCoastalNetworkTestData() (*memory.InventoryRepository, *services.DistanceEstimator) {
	inventory := memory.NewInventoryRepository()
	distance := services.NewDistanceEstimator()

	locations := []struct {
		id   entities.LocationID
		name string
		city string
	}{
		{"store-sf", "Downtown SF", "San Francisco"},
		{"store-ny", "Midtown NY", "New York"},
		{"store-chi", "Loop Chicago", "Chicago"},
	}
	for _, l := range locations {
		loc, err := entities.NewLocationInventory(l.id, l.name, l.city)
		if err != nil {
			panic(err)
		}
		if err := loc.SetCategoryStock("electronics", 50, 20, 100); err != nil {
			panic(err)
		}
		if err := inventory.SaveLocation(loc); err != nil {
			panic(err)
		}
	}

	distance.SetDistance("store-sf", "store-ny", 2900)
	distance.SetDistance("store-sf", "store-chi", 2100)
	distance.SetDistance("store-ny", "store-chi", 800)

	surplus, err := entities.NewSurplusItem(
		"surplus-tablets",
		"store-sf",
		"TAB-10",
		"10in Tablet",
		"electronics",
		150,
		decimal.NewFromInt(25),
		entities.ConditionGood,
	)
	if err != nil {
		panic(err)
	}
	if err := inventory.SaveSurplusItem(surplus); err != nil {
		panic(err)
	}

	maxPrice := decimal.NewFromInt(30)
	need, err := entities.NewNeed(
		"need-tablets",
		"store-ny",
		"electronics",
		"10in Tablet",
		100,
		entities.UrgencyHigh,
		&maxPrice,
		nil,
	)
	if err != nil {
		panic(err)
	}
	if err := inventory.SaveNeed(need); err != nil {
		panic(err)
	}

	// Critical need with no matching surplus anywhere
	critical, err := entities.NewNeed(
		"need-coolers",
		"store-chi",
		"appliances",
		"Beverage Cooler",
		10,
		entities.UrgencyCritical,
		nil,
		nil,
	)
	if err != nil {
		panic(err)
	}
	if err := inventory.SaveNeed(critical); err != nil {
		panic(err)
	}

	return inventory, distance
}

// BuildSimpleTestData creates a two-store registry with one clean
// surplus/need pairing for basic tests
func BuildSimpleTestData() (*memory.InventoryRepository, *services.DistanceEstimator) {
	inventory := memory.NewInventoryRepository()
	distance := services.NewDistanceEstimator()

	for _, l := range []struct {
		id   entities.LocationID
		name string
		city string
	}{
		{"loc-a", "Store A", "Oakland"},
		{"loc-b", "Store B", "Berkeley"},
	} {
		loc, err := entities.NewLocationInventory(l.id, l.name, l.city)
		if err != nil {
			panic(err)
		}
		if err := loc.SetCategoryStock("widgets", 40, 10, 80); err != nil {
			panic(err)
		}
		if err := inventory.SaveLocation(loc); err != nil {
			panic(err)
		}
	}
	distance.SetDistance("loc-a", "loc-b", 10)

	surplus, err := entities.NewSurplusItem(
		"surplus-widgets",
		"loc-a",
		"WID-01",
		"Widget",
		"widgets",
		30,
		decimal.NewFromInt(5),
		entities.ConditionNew,
	)
	if err != nil {
		panic(err)
	}
	if err := inventory.SaveSurplusItem(surplus); err != nil {
		panic(err)
	}

	need, err := entities.NewNeed(
		"need-widgets",
		"loc-b",
		"widgets",
		"Widget",
		20,
		entities.UrgencyMedium,
		nil,
		nil,
	)
	if err != nil {
		panic(err)
	}
	if err := inventory.SaveNeed(need); err != nil {
		panic(err)
	}

	return inventory, distance
}
