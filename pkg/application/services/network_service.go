package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/application/dto"
	"github.com/smartchain/surplusnet/pkg/application/services/matching"
	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	domainservices "github.com/smartchain/surplusnet/pkg/domain/services"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
)

// NetworkService is the engine's external interface. It bundles the registry,
// the matching services and the event journal behind the operations exposed
// to collaborators. All returned collections are copies, never live
// references.
type NetworkService struct {
	inventory     repositories.InventoryRepository
	matches       repositories.MatchRepository
	connections   repositories.ConnectionRepository
	notifications repositories.NotificationRepository

	generator   *matching.Generator
	lifecycle   *matching.Lifecycle
	prioritizer *matching.Prioritizer

	journal  events.EventStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NetworkServiceDeps carries the collaborators a NetworkService is built from
type NetworkServiceDeps struct {
	Config        matching.Config
	Inventory     repositories.InventoryRepository
	Matches       repositories.MatchRepository
	Connections   repositories.ConnectionRepository
	Notifications repositories.NotificationRepository
	Distance      *domainservices.DistanceEstimator
	Market        domainservices.MarketEstimator
	Journal       events.EventStore
	Logger        *zap.Logger
}

// NewNetworkService wires the matching engine together
func NewNetworkService(deps NetworkServiceDeps) *NetworkService {
	scorer := matching.NewScorer(deps.Config, deps.Distance, deps.Connections)
	tracker := matching.NewConnectionTracker(deps.Connections, deps.Logger)

	return &NetworkService{
		inventory:     deps.Inventory,
		matches:       deps.Matches,
		connections:   deps.Connections,
		notifications: deps.Notifications,
		generator: matching.NewGenerator(
			deps.Config, scorer, deps.Distance, deps.Inventory, deps.Matches, deps.Logger,
		),
		lifecycle: matching.NewLifecycle(
			deps.Inventory, deps.Matches, deps.Notifications, tracker, deps.Journal, deps.Logger,
		),
		prioritizer: matching.NewPrioritizer(
			deps.Config, deps.Inventory, deps.Matches, deps.Connections,
			deps.Distance, deps.Market, deps.Logger,
		),
		journal:  deps.Journal,
		validate: validator.New(),
		logger:   deps.Logger,
	}
}

// ListSurplus returns copies of all surplus listings
func (s *NetworkService) ListSurplus(ctx context.Context) ([]*entities.SurplusItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inventory.ListSurplus(), nil
}

// ListNeeds returns copies of all needs
func (s *NetworkService) ListNeeds(ctx context.Context) ([]*entities.Need, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inventory.ListNeeds(), nil
}

// ListMatches returns copies of the current match set, best score first
func (s *NetworkService) ListMatches(ctx context.Context) ([]*entities.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.matches.List(), nil
}

// ListConnections returns copies of all connections
func (s *NetworkService) ListConnections(ctx context.Context) ([]*entities.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.connections.List(), nil
}

// ListNotifications returns copies of a location's notifications, newest first
func (s *NetworkService) ListNotifications(ctx context.Context, locationID entities.LocationID) ([]*entities.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.notifications.ListByLocation(locationID), nil
}

// AddSurplusItem validates and admits a new surplus listing
func (s *NetworkService) AddSurplusItem(input dto.SurplusInput) (*entities.SurplusItem, error) {
	if err := s.validate.Struct(input); err != nil {
		s.logger.Debug("rejected malformed surplus input", zap.Error(err))
		return nil, fmt.Errorf("invalid surplus input: %w", err)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("invalid surplus input: unit price cannot be negative")
	}

	condition, err := entities.ParseCondition(input.Condition)
	if err != nil {
		return nil, fmt.Errorf("invalid surplus input: %w", err)
	}
	if _, ok := s.inventory.GetLocation(entities.LocationID(input.LocationID)); !ok {
		return nil, fmt.Errorf("invalid surplus input: unknown location %s", input.LocationID)
	}

	item, err := entities.NewSurplusItem(
		uuid.NewString(),
		entities.LocationID(input.LocationID),
		input.SKU,
		input.ProductName,
		input.Category,
		entities.Quantity(input.Quantity),
		input.UnitPrice,
		condition,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid surplus input: %w", err)
	}
	item.ExpirationDate = input.Expiration

	if err := s.inventory.SaveSurplusItem(item); err != nil {
		return nil, err
	}
	_ = s.journal.AppendEvent(item.ID, events.NewSurplusListedEvent(*item))

	s.logger.Info("surplus listed",
		zap.String("surplus_id", item.ID),
		zap.String("location", input.LocationID),
		zap.String("category", input.Category),
		zap.Int64("quantity", input.Quantity))
	return item, nil
}

// AddNeed validates and admits a new need
func (s *NetworkService) AddNeed(input dto.NeedInput) (*entities.Need, error) {
	if err := s.validate.Struct(input); err != nil {
		s.logger.Debug("rejected malformed need input", zap.Error(err))
		return nil, fmt.Errorf("invalid need input: %w", err)
	}

	urgency, err := entities.ParseUrgency(input.Urgency)
	if err != nil {
		return nil, fmt.Errorf("invalid need input: %w", err)
	}
	if _, ok := s.inventory.GetLocation(entities.LocationID(input.LocationID)); !ok {
		return nil, fmt.Errorf("invalid need input: unknown location %s", input.LocationID)
	}

	need, err := entities.NewNeed(
		uuid.NewString(),
		entities.LocationID(input.LocationID),
		input.Category,
		input.ProductName,
		entities.Quantity(input.Quantity),
		urgency,
		input.MaxPrice,
		input.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid need input: %w", err)
	}

	if err := s.inventory.SaveNeed(need); err != nil {
		return nil, err
	}
	_ = s.journal.AppendEvent(need.ID, events.NewNeedPostedEvent(*need))

	s.logger.Info("need posted",
		zap.String("need_id", need.ID),
		zap.String("location", input.LocationID),
		zap.String("category", input.Category),
		zap.String("urgency", urgency.String()))
	return need, nil
}

// GenerateMatches runs a full matching pass and returns the ranked candidates
func (s *NetworkService) GenerateMatches(ctx context.Context) ([]*entities.Match, error) {
	matches, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		_ = s.journal.AppendEvent(m.ID, events.NewMatchGeneratedEvent(*m))
	}
	return matches, nil
}

// ProposeMatch moves a pending match to proposed. Boolean success; false for
// unknown ids or illegal transitions.
func (s *NetworkService) ProposeMatch(matchID string, proposerID entities.LocationID, notes string) bool {
	return s.lifecycle.Propose(matchID, proposerID, notes)
}

// RespondToMatch accepts or rejects a proposed match. Boolean success; false
// for unknown ids or illegal transitions, including repeated responses.
func (s *NetworkService) RespondToMatch(matchID string, accept bool, notes string) bool {
	return s.lifecycle.Respond(matchID, accept, notes)
}

// GetRecommendedActions derives the ranked operator action list
func (s *NetworkService) GetRecommendedActions(ctx context.Context) ([]entities.RecommendedAction, error) {
	return s.prioritizer.Recommend(ctx)
}

// MarkNotificationRead marks a notification read; marking twice is a no-op
func (s *NetworkService) MarkNotificationRead(notificationID string) bool {
	return s.notifications.MarkRead(notificationID)
}

// SearchSurplus filters available surplus listings
func (s *NetworkService) SearchSurplus(ctx context.Context, filters dto.SearchFilters) ([]*entities.SurplusItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*entities.SurplusItem
	for _, item := range s.inventory.ListSurplus() {
		if item.Status != entities.SurplusAvailable {
			continue
		}
		if !matchesFilters(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Analytics derives network-wide figures from registry and connection state
func (s *NetworkService) Analytics(ctx context.Context) (*dto.NetworkAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analytics := &dto.NetworkAnalytics{
		TotalSurplusValue:     decimal.Zero,
		TotalTransferredValue: decimal.Zero,
	}

	for _, item := range s.inventory.ListSurplus() {
		if item.Status != entities.SurplusAvailable {
			continue
		}
		analytics.ActiveListings++
		analytics.TotalSurplusValue = analytics.TotalSurplusValue.Add(
			item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityAvailable))))
	}
	for _, need := range s.inventory.ListNeeds() {
		if need.Status == entities.NeedActive {
			analytics.ActiveNeeds++
		}
	}

	trustSum := 0.0
	for _, conn := range s.connections.List() {
		analytics.ConnectedPairs++
		analytics.TotalTransfers += conn.TotalTransfers
		analytics.TotalTransferredValue = analytics.TotalTransferredValue.Add(conn.TotalValue)
		trustSum += conn.TrustScore
	}
	if analytics.ConnectedPairs > 0 {
		analytics.AverageTrustScore = trustSum / float64(analytics.ConnectedPairs)
	}

	return analytics, nil
}

func matchesFilters(item *entities.SurplusItem, f dto.SearchFilters) bool {
	if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	if f.LocationID != "" && string(item.LocationID) != f.LocationID {
		return false
	}
	if len(f.Conditions) > 0 {
		matched := false
		for _, c := range f.Conditions {
			if cond, err := entities.ParseCondition(c); err == nil && cond == item.Condition {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if f.MinPrice != nil && item.UnitPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && item.UnitPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinQuantity > 0 && int64(item.QuantityAvailable) < f.MinQuantity {
		return false
	}
	if f.MaxQuantity > 0 && int64(item.QuantityAvailable) > f.MaxQuantity {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(item.ProductName), term) &&
			!strings.Contains(strings.ToLower(item.SKU), term) {
			return false
		}
	}
	return true
}
