package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPairKey_DirectionAgnostic(t *testing.T) {
	if PairKey("store-sf", "store-ny") != PairKey("store-ny", "store-sf") {
		t.Errorf("Expected pair key to be identical in both directions")
	}
	if PairKey("store-ny", "store-sf") != "store-ny|store-sf" {
		t.Errorf("Expected lexicographically ordered key, got %s", PairKey("store-ny", "store-sf"))
	}
}

func TestConnection_Validation(t *testing.T) {
	conn, err := NewConnection("c1", "loc-a", "loc-b")
	if err != nil {
		t.Fatalf("Expected valid connection creation to succeed: %v", err)
	}
	if conn.TrustScore != TrustBaseline {
		t.Errorf("Expected baseline trust %.1f, got %.1f", TrustBaseline, conn.TrustScore)
	}
	if conn.TotalTransfers != 0 || !conn.TotalValue.IsZero() {
		t.Errorf("Expected fresh connection with no transfer history")
	}

	if _, err := NewConnection("", "loc-a", "loc-b"); err == nil {
		t.Errorf("Expected error for empty id")
	}
	if _, err := NewConnection("c1", "loc-a", "loc-a"); err == nil {
		t.Errorf("Expected error for self pair")
	}
}

func TestConnection_RecordTransfer(t *testing.T) {
	conn, err := NewConnection("c1", "loc-a", "loc-b")
	if err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	conn.RecordTransfer(decimal.NewFromInt(750))
	if conn.TotalTransfers != 1 {
		t.Errorf("Expected 1 transfer, got %d", conn.TotalTransfers)
	}
	if !conn.TotalValue.Equal(decimal.NewFromInt(750)) {
		t.Errorf("Expected total value 750, got %s", conn.TotalValue)
	}
	if conn.TrustScore != TrustBaseline {
		t.Errorf("Expected first transfer to keep baseline trust %.1f, got %.1f", TrustBaseline, conn.TrustScore)
	}

	conn.RecordTransfer(decimal.NewFromInt(250))
	if conn.TotalTransfers != 2 {
		t.Errorf("Expected 2 transfers, got %d", conn.TotalTransfers)
	}
	if !conn.TotalValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected total value 1000, got %s", conn.TotalValue)
	}
	if conn.TrustScore != TrustBaseline+TrustIncrement {
		t.Errorf("Expected trust %.1f after second transfer, got %.1f", TrustBaseline+TrustIncrement, conn.TrustScore)
	}
}

func TestConnection_TrustCap(t *testing.T) {
	conn, err := NewConnection("c1", "loc-a", "loc-b")
	if err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}

	// 15 transfers would push trust to 5.4 without the cap
	for i := 0; i < 15; i++ {
		conn.RecordTransfer(decimal.NewFromInt(10))
	}
	if conn.TrustScore != TrustCap {
		t.Errorf("Expected trust capped at %.1f, got %.1f", TrustCap, conn.TrustScore)
	}
	if conn.TotalTransfers != 15 {
		t.Errorf("Expected transfer count to keep accumulating, got %d", conn.TotalTransfers)
	}
}

func TestConnection_Involves(t *testing.T) {
	conn, _ := NewConnection("c1", "loc-a", "loc-b")
	if !conn.Involves("loc-a", "loc-b") || !conn.Involves("loc-b", "loc-a") {
		t.Errorf("Expected connection to involve the pair in either order")
	}
	if conn.Involves("loc-a", "loc-c") {
		t.Errorf("Expected connection not to involve an unrelated pair")
	}
}
