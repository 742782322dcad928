package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSurplusItem_Validation(t *testing.T) {
	valid, err := NewSurplusItem("s1", "loc-a", "SKU-1", "Widget", "widgets", 10, decimal.NewFromInt(5), ConditionGood)
	if err != nil {
		t.Fatalf("Expected valid surplus item creation to succeed: %v", err)
	}
	if valid.Status != SurplusAvailable {
		t.Errorf("Expected new item to be Available, got %s", valid.Status)
	}

	testCases := []struct {
		name        string
		id          string
		location    LocationID
		sku         string
		category    string
		quantity    Quantity
		unitPrice   decimal.Decimal
		expectError string
	}{
		{"empty id", "", "loc-a", "SKU-1", "widgets", 10, decimal.NewFromInt(5), "surplus item id cannot be empty"},
		{"empty location", "s1", "", "SKU-1", "widgets", 10, decimal.NewFromInt(5), "location id cannot be empty"},
		{"empty sku", "s1", "loc-a", "", "widgets", 10, decimal.NewFromInt(5), "sku cannot be empty"},
		{"empty category", "s1", "loc-a", "SKU-1", "", 10, decimal.NewFromInt(5), "category cannot be empty"},
		{"zero quantity", "s1", "loc-a", "SKU-1", "widgets", 0, decimal.NewFromInt(5), "quantity must be positive, got 0"},
		{"negative quantity", "s1", "loc-a", "SKU-1", "widgets", -3, decimal.NewFromInt(5), "quantity must be positive, got -3"},
		{"negative price", "s1", "loc-a", "SKU-1", "widgets", 10, decimal.NewFromInt(-1), "unit price cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSurplusItem(tc.id, tc.location, tc.sku, "Widget", tc.category, tc.quantity, tc.unitPrice, ConditionGood)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestSurplusStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    SurplusStatus
		to      SurplusStatus
		allowed bool
	}{
		{"available to reserved", SurplusAvailable, SurplusReserved, true},
		{"available to transferred", SurplusAvailable, SurplusTransferred, true},
		{"available to expired", SurplusAvailable, SurplusExpired, true},
		{"available to available", SurplusAvailable, SurplusAvailable, false},
		{"reserved to available", SurplusReserved, SurplusAvailable, false},
		{"transferred to reserved", SurplusTransferred, SurplusReserved, false},
		{"expired to transferred", SurplusExpired, SurplusTransferred, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("Expected %s -> %s allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
			}
		})
	}
}

func TestSurplusItem_Deduct(t *testing.T) {
	item, err := NewSurplusItem("s1", "loc-a", "SKU-1", "Widget", "widgets", 150, decimal.NewFromInt(25), ConditionGood)
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	deducted := item.Deduct(100)
	if deducted != 100 {
		t.Errorf("Expected 100 units deducted, got %d", deducted)
	}
	if item.QuantityAvailable != 50 {
		t.Errorf("Expected 50 units remaining, got %d", item.QuantityAvailable)
	}
	if item.Status != SurplusAvailable {
		t.Errorf("Expected partially deducted item to stay Available, got %s", item.Status)
	}

	// Over-deduction clamps to the remainder and exhausts the listing
	deducted = item.Deduct(80)
	if deducted != 50 {
		t.Errorf("Expected deduction clamped to 50, got %d", deducted)
	}
	if item.QuantityAvailable != 0 {
		t.Errorf("Expected zero units remaining, got %d", item.QuantityAvailable)
	}
	if item.Status != SurplusTransferred {
		t.Errorf("Expected exhausted item to be Transferred, got %s", item.Status)
	}
}

func TestParseCondition(t *testing.T) {
	testCases := []struct {
		input     string
		want      Condition
		expectErr bool
	}{
		{"new", ConditionNew, false},
		{"like_new", ConditionLikeNew, false},
		{"good", ConditionGood, false},
		{"fair", ConditionFair, false},
		{"Good", ConditionGood, false},
		{"pristine", ConditionNew, true},
		{"", ConditionNew, true},
	}

	for _, tc := range testCases {
		got, err := ParseCondition(tc.input)
		if tc.expectErr {
			if err == nil {
				t.Errorf("Expected error parsing %q, got none", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error parsing %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Expected %q to parse as %s, got %s", tc.input, tc.want, got)
		}
	}
}
