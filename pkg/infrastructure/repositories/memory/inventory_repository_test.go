package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
)

func newTestItem(t *testing.T, id string, loc entities.LocationID, qty entities.Quantity) *entities.SurplusItem {
	t.Helper()
	item, err := entities.NewSurplusItem(id, loc, "SKU-"+id, "Widget", "widgets", qty, decimal.NewFromInt(25), entities.ConditionGood)
	if err != nil {
		t.Fatalf("Failed to create surplus item: %v", err)
	}
	return item
}

func newTestNeed(t *testing.T, id string, loc entities.LocationID, qty entities.Quantity) *entities.Need {
	t.Helper()
	need, err := entities.NewNeed(id, loc, "widgets", "Widget", qty, entities.UrgencyMedium, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create need: %v", err)
	}
	return need
}

func TestInventoryRepository_SurplusRoundTrip(t *testing.T) {
	repo := NewInventoryRepository()

	item := newTestItem(t, "s1", "loc-a", 30)
	if err := repo.SaveSurplusItem(item); err != nil {
		t.Fatalf("Failed to save surplus item: %v", err)
	}

	got, ok := repo.GetSurplusItem("s1")
	if !ok {
		t.Fatal("Expected to find saved surplus item")
	}
	if got.SKU != "SKU-s1" || got.QuantityAvailable != 30 {
		t.Errorf("Expected saved fields back, got %+v", got)
	}

	if _, ok := repo.GetSurplusItem("missing"); ok {
		t.Errorf("Expected lookup miss for unknown id")
	}
}

func TestInventoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewInventoryRepository()
	repo.SaveSurplusItem(newTestItem(t, "s1", "loc-a", 30))

	got, _ := repo.GetSurplusItem("s1")
	got.QuantityAvailable = 0
	got.Status = entities.SurplusExpired

	// Mutating the returned copy must not touch registry state
	stored, _ := repo.GetSurplusItem("s1")
	if stored.QuantityAvailable != 30 || stored.Status != entities.SurplusAvailable {
		t.Errorf("Expected registry state unchanged, got %+v", stored)
	}
}

func TestInventoryRepository_LocationCopies(t *testing.T) {
	repo := NewInventoryRepository()
	loc, err := entities.NewLocationInventory("loc-a", "Store A", "Oakland")
	if err != nil {
		t.Fatalf("Failed to create location: %v", err)
	}
	if err := loc.SetCategoryStock("widgets", 40, 10, 80); err != nil {
		t.Fatalf("Failed to set stock: %v", err)
	}
	repo.SaveLocation(loc)

	got, ok := repo.GetLocation("loc-a")
	if !ok {
		t.Fatal("Expected to find saved location")
	}
	got.Categories["widgets"] = entities.CategoryStock{CurrentStock: 0, MaxThreshold: 80}

	stored, _ := repo.GetLocation("loc-a")
	if stored.Categories["widgets"].CurrentStock != 40 {
		t.Errorf("Expected category map copied, registry saw %d", stored.Categories["widgets"].CurrentStock)
	}
}

func TestInventoryRepository_ListOrdering(t *testing.T) {
	repo := NewInventoryRepository()
	repo.SaveSurplusItem(newTestItem(t, "s3", "loc-a", 10))
	repo.SaveSurplusItem(newTestItem(t, "s1", "loc-b", 10))
	repo.SaveSurplusItem(newTestItem(t, "s2", "loc-a", 10))

	list := repo.ListSurplus()
	if len(list) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(list))
	}
	if list[0].ID != "s1" || list[1].ID != "s2" || list[2].ID != "s3" {
		t.Errorf("Expected items sorted by id, got %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}

	byLoc := repo.ListSurplusByLocation("loc-a")
	if len(byLoc) != 2 || byLoc[0].ID != "s2" || byLoc[1].ID != "s3" {
		t.Errorf("Expected loc-a items s2, s3; got %d items", len(byLoc))
	}
}

func TestInventoryRepository_DeductSurplus(t *testing.T) {
	repo := NewInventoryRepository()
	repo.SaveSurplusItem(newTestItem(t, "s1", "loc-a", 150))

	deducted, ok := repo.DeductSurplus("s1", 100)
	if !ok || deducted != 100 {
		t.Fatalf("Expected to deduct 100, got %d ok=%v", deducted, ok)
	}

	item, _ := repo.GetSurplusItem("s1")
	if item.QuantityAvailable != 50 || item.Status != entities.SurplusAvailable {
		t.Errorf("Expected 50 remaining and Available, got %d %s", item.QuantityAvailable, item.Status)
	}

	deducted, ok = repo.DeductSurplus("s1", 100)
	if !ok || deducted != 50 {
		t.Fatalf("Expected deduction clamped to 50, got %d", deducted)
	}
	item, _ = repo.GetSurplusItem("s1")
	if item.Status != entities.SurplusTransferred {
		t.Errorf("Expected exhausted item Transferred, got %s", item.Status)
	}

	if _, ok := repo.DeductSurplus("missing", 1); ok {
		t.Errorf("Expected false for unknown surplus id")
	}
}

func TestInventoryRepository_CheckedStatusTransitions(t *testing.T) {
	repo := NewInventoryRepository()
	repo.SaveSurplusItem(newTestItem(t, "s1", "loc-a", 30))
	repo.SaveNeed(newTestNeed(t, "n1", "loc-b", 20))

	if !repo.SetSurplusStatus("s1", entities.SurplusReserved) {
		t.Errorf("Expected Available -> Reserved to succeed")
	}
	if repo.SetSurplusStatus("s1", entities.SurplusAvailable) {
		t.Errorf("Expected Reserved -> Available to be refused")
	}
	if repo.SetSurplusStatus("missing", entities.SurplusReserved) {
		t.Errorf("Expected false for unknown surplus id")
	}

	if !repo.SetNeedStatus("n1", entities.NeedFulfilled) {
		t.Errorf("Expected Active -> Fulfilled to succeed")
	}
	if repo.SetNeedStatus("n1", entities.NeedExpired) {
		t.Errorf("Expected Fulfilled -> Expired to be refused")
	}
}
