package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/application/dto"
	"github.com/smartchain/surplusnet/pkg/application/services/matching"
	"github.com/smartchain/surplusnet/pkg/domain/entities"
	domainservices "github.com/smartchain/surplusnet/pkg/domain/services"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
	"github.com/smartchain/surplusnet/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/smartchain/surplusnet/pkg/infrastructure/testing"
)

func newTestService(t *testing.T) (*NetworkService, *events.InMemoryEventStore) {
	t.Helper()
	inventory, distance := testhelpers.BuildCoastalNetworkTestData()
	journal := events.NewInMemoryEventStore()

	svc := NewNetworkService(NetworkServiceDeps{
		Config:        matching.DefaultConfig(),
		Inventory:     inventory,
		Matches:       memory.NewMatchRepository(),
		Connections:   memory.NewConnectionRepository(),
		Notifications: memory.NewNotificationRepository(),
		Distance:      distance,
		Market:        domainservices.NewFixedMarketEstimator(),
		Journal:       journal,
		Logger:        zap.NewNop(),
	})
	return svc, journal
}

func validSurplusInput() dto.SurplusInput {
	return dto.SurplusInput{
		LocationID:  "store-chi",
		SKU:         "CHR-02",
		ProductName: "Office Chair",
		Category:    "furniture",
		Quantity:    40,
		UnitPrice:   decimal.NewFromInt(60),
		Condition:   "like_new",
	}
}

func TestNetworkService_AddSurplusItem(t *testing.T) {
	svc, journal := newTestService(t)

	item, err := svc.AddSurplusItem(validSurplusInput())
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, entities.LocationID("store-chi"), item.LocationID)
	assert.Equal(t, entities.SurplusAvailable, item.Status)
	assert.Equal(t, entities.ConditionLikeNew, item.Condition)

	listed, err := svc.ListSurplus(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	recorded, err := journal.ReadEvents(item.ID, 1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.SurplusListedEvent, recorded[0].Type())
}

func TestNetworkService_AddSurplusItemRejections(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*dto.SurplusInput)
	}{
		{"zero quantity", func(in *dto.SurplusInput) { in.Quantity = 0 }},
		{"negative quantity", func(in *dto.SurplusInput) { in.Quantity = -5 }},
		{"negative price", func(in *dto.SurplusInput) { in.UnitPrice = decimal.NewFromInt(-1) }},
		{"empty category", func(in *dto.SurplusInput) { in.Category = "" }},
		{"empty sku", func(in *dto.SurplusInput) { in.SKU = "" }},
		{"bad condition", func(in *dto.SurplusInput) { in.Condition = "mint" }},
		{"unknown location", func(in *dto.SurplusInput) { in.LocationID = "store-nowhere" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validSurplusInput()
			tc.mutate(&input)

			_, err := svc.AddSurplusItem(input)
			assert.ErrorContains(t, err, "invalid surplus input")
		})
	}

	// Nothing admitted
	listed, err := svc.ListSurplus(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestNetworkService_AddNeed(t *testing.T) {
	svc, journal := newTestService(t)

	maxPrice := decimal.NewFromInt(80)
	need, err := svc.AddNeed(dto.NeedInput{
		LocationID:  "store-sf",
		Category:    "furniture",
		ProductName: "Office Chair",
		Quantity:    12,
		Urgency:     "medium",
		MaxPrice:    &maxPrice,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, need.ID)
	assert.Equal(t, entities.UrgencyMedium, need.Urgency)
	assert.Equal(t, entities.NeedActive, need.Status)

	recorded, err := journal.ReadEvents(need.ID, 1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.NeedPostedEvent, recorded[0].Type())
}

func TestNetworkService_AddNeedRejections(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		input dto.NeedInput
	}{
		{"zero quantity", dto.NeedInput{LocationID: "store-sf", Category: "furniture", Quantity: 0, Urgency: "low"}},
		{"bad urgency", dto.NeedInput{LocationID: "store-sf", Category: "furniture", Quantity: 5, Urgency: "urgent"}},
		{"empty location", dto.NeedInput{Category: "furniture", Quantity: 5, Urgency: "low"}},
		{"unknown location", dto.NeedInput{LocationID: "store-nowhere", Category: "furniture", Quantity: 5, Urgency: "low"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddNeed(tc.input)
			assert.ErrorContains(t, err, "invalid need input")
		})
	}
}

func TestNetworkService_MatchRoundTrip(t *testing.T) {
	svc, journal := newTestService(t)

	generated, err := svc.GenerateMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	m := generated[0]

	assert.True(t, svc.ProposeMatch(m.ID, m.FromLocation, "can ship this week"))
	assert.False(t, svc.ProposeMatch(m.ID, m.FromLocation, "again"), "re-proposing must be refused")
	assert.True(t, svc.RespondToMatch(m.ID, true, "deal"))
	assert.False(t, svc.RespondToMatch(m.ID, true, "deal"), "responding twice must be refused")

	connections, err := svc.ListConnections(context.Background())
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, 1, connections[0].TotalTransfers)

	recorded, err := journal.ReadEvents(m.ID, 1)
	require.NoError(t, err)
	types := make([]string, 0, len(recorded))
	for _, e := range recorded {
		types = append(types, e.Type())
	}
	assert.Equal(t, []string{
		events.MatchGeneratedEvent,
		events.MatchProposedEvent,
		events.MatchAcceptedEvent,
	}, types)
}

func TestNetworkService_MatchNotifications(t *testing.T) {
	svc, _ := newTestService(t)

	generated, err := svc.GenerateMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	m := generated[0]
	require.True(t, svc.ProposeMatch(m.ID, m.FromLocation, ""))

	notifs, err := svc.ListNotifications(context.Background(), m.ToLocation)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.False(t, notifs[0].Read)

	assert.True(t, svc.MarkNotificationRead(notifs[0].ID))
	assert.True(t, svc.MarkNotificationRead(notifs[0].ID), "marking read twice is a no-op")
	assert.False(t, svc.MarkNotificationRead("missing"))

	notifs, err = svc.ListNotifications(context.Background(), m.ToLocation)
	require.NoError(t, err)
	assert.True(t, notifs[0].Read)
}

func TestNetworkService_SearchSurplus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddSurplusItem(validSurplusInput())
	require.NoError(t, err)

	minPrice := decimal.NewFromInt(50)
	maxPrice := decimal.NewFromInt(30)

	tests := []struct {
		name    string
		filters dto.SearchFilters
		wantIDs int
	}{
		{"no filters", dto.SearchFilters{}, 2},
		{"category case-insensitive", dto.SearchFilters{Category: "Electronics"}, 1},
		{"location", dto.SearchFilters{LocationID: "store-chi"}, 1},
		{"condition list", dto.SearchFilters{Conditions: []string{"new", "like_new"}}, 1},
		{"min price", dto.SearchFilters{MinPrice: &minPrice}, 1},
		{"max price", dto.SearchFilters{MaxPrice: &maxPrice}, 1},
		{"min quantity", dto.SearchFilters{MinQuantity: 100}, 1},
		{"max quantity", dto.SearchFilters{MaxQuantity: 50}, 1},
		{"search term on name", dto.SearchFilters{SearchTerm: "tablet"}, 1},
		{"search term on sku", dto.SearchFilters{SearchTerm: "chr-"}, 1},
		{"no match", dto.SearchFilters{Category: "groceries"}, 0},
		{"combined", dto.SearchFilters{Category: "electronics", MinQuantity: 200}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found, err := svc.SearchSurplus(context.Background(), tc.filters)
			require.NoError(t, err)
			assert.Len(t, found, tc.wantIDs)
		})
	}
}

func TestNetworkService_SearchSurplusExcludesNonAvailable(t *testing.T) {
	svc, _ := newTestService(t)

	generated, err := svc.GenerateMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	m := generated[0]
	require.True(t, svc.ProposeMatch(m.ID, m.FromLocation, ""))
	require.True(t, svc.RespondToMatch(m.ID, true, ""))

	// 50 tablets remain, so the listing stays available and searchable
	found, err := svc.SearchSurplus(context.Background(), dto.SearchFilters{SearchTerm: "tablet"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entities.Quantity(50), found[0].QuantityAvailable)
}

func TestNetworkService_Analytics(t *testing.T) {
	svc, _ := newTestService(t)

	before, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, before.ActiveListings)
	assert.Equal(t, 2, before.ActiveNeeds)
	assert.True(t, before.TotalSurplusValue.Equal(decimal.NewFromInt(3750)),
		"expected 150 x $25, got %s", before.TotalSurplusValue)
	assert.Zero(t, before.ConnectedPairs)

	generated, err := svc.GenerateMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	m := generated[0]
	require.True(t, svc.ProposeMatch(m.ID, m.FromLocation, ""))
	require.True(t, svc.RespondToMatch(m.ID, true, ""))

	after, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, after.ActiveListings, "50 units remain available")
	assert.Equal(t, 1, after.ActiveNeeds, "tablet need fulfilled, cooler need open")
	assert.True(t, after.TotalSurplusValue.Equal(decimal.NewFromInt(1250)),
		"expected 50 x $25, got %s", after.TotalSurplusValue)
	assert.Equal(t, 1, after.ConnectedPairs)
	assert.Equal(t, 1, after.TotalTransfers)
	assert.True(t, after.TotalTransferredValue.Equal(decimal.NewFromInt(750)),
		"expected 750, got %s", after.TotalTransferredValue)
	assert.InDelta(t, 4.0, after.AverageTrustScore, 1e-9)
}

func TestNetworkService_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListSurplus(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GenerateMatches(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.SearchSurplus(ctx, dto.SearchFilters{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.Analytics(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
