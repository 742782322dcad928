package matching

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
)

// Lifecycle drives a match through its status machine and applies the
// inventory and need side effects of acceptance.
//
// Missing ids and illegal transitions surface as boolean false, never as
// errors: they are expected in normal workflow races with the presentation
// layer, and are logged for diagnostics only. No failed operation mutates
// state for unrelated entries.
type Lifecycle struct {
	inventory     repositories.InventoryRepository
	matches       repositories.MatchRepository
	notifications repositories.NotificationRepository
	tracker       *ConnectionTracker
	journal       events.EventStore
	logger        *zap.Logger
}

// NewLifecycle creates a lifecycle manager
func NewLifecycle(
	inventory repositories.InventoryRepository,
	matches repositories.MatchRepository,
	notifications repositories.NotificationRepository,
	tracker *ConnectionTracker,
	journal events.EventStore,
	logger *zap.Logger,
) *Lifecycle {
	return &Lifecycle{
		inventory:     inventory,
		matches:       matches,
		notifications: notifications,
		tracker:       tracker,
		journal:       journal,
		logger:        logger,
	}
}

// Propose moves a pending match to proposed and notifies the need's location.
// Returns false without mutation when the match is missing or not pending.
func (l *Lifecycle) Propose(matchID string, proposerID entities.LocationID, notes string) bool {
	match, ok := l.matches.Get(matchID)
	if !ok {
		l.logger.Debug("propose on unknown match", zap.String("match_id", matchID))
		return false
	}
	if !match.TransitionTo(entities.MatchProposed) {
		l.logger.Debug("propose on non-pending match",
			zap.String("match_id", matchID),
			zap.String("status", match.Status.String()))
		return false
	}

	now := time.Now()
	match.ProposedBy = proposerID
	match.ProposedAt = &now
	if notes != "" {
		match.Notes = notes
	}
	if !l.matches.Update(match) {
		return false
	}

	l.notifyProposal(match)
	_ = l.journal.AppendEvent(match.ID, events.NewMatchProposedEvent(*match, proposerID))

	l.logger.Info("match proposed",
		zap.String("match_id", matchID),
		zap.String("proposed_by", string(proposerID)))
	return true
}

// Respond accepts or rejects a proposed match. Returns false without mutation
// when the match is missing or not currently proposed; invoking Respond again
// on an already-terminal match is a no-op returning false.
//
// On accept: deduct the need's quantity from the surplus item (transitioning
// it to Transferred when the remainder hits zero), mark the need fulfilled,
// and record the transfer on the pair's connection. On reject: no inventory
// or need mutation.
func (l *Lifecycle) Respond(matchID string, accept bool, notes string) bool {
	match, ok := l.matches.Get(matchID)
	if !ok {
		l.logger.Debug("respond on unknown match", zap.String("match_id", matchID))
		return false
	}

	next := entities.MatchRejected
	if accept {
		next = entities.MatchAccepted
	}
	if !match.TransitionTo(next) {
		l.logger.Debug("respond on non-proposed match",
			zap.String("match_id", matchID),
			zap.String("status", match.Status.String()))
		return false
	}
	if notes != "" {
		match.Notes = notes
	}

	if !accept {
		l.matches.Update(match)
		_ = l.journal.AppendEvent(match.ID, events.NewMatchRejectedEvent(*match))
		l.logger.Info("match rejected", zap.String("match_id", matchID))
		return true
	}

	if err := l.applyAcceptance(match); err != nil {
		l.logger.Warn("failed to apply acceptance side effects",
			zap.String("match_id", matchID),
			zap.Error(err))
	}

	l.matches.Update(match)
	l.logger.Info("match accepted", zap.String("match_id", matchID))
	return true
}

func (l *Lifecycle) applyAcceptance(match *entities.Match) error {
	need, ok := l.inventory.GetNeed(match.NeedID)
	if !ok {
		return fmt.Errorf("need %s no longer in registry", match.NeedID)
	}

	transferred, ok := l.inventory.DeductSurplus(match.SurplusID, need.QuantityNeeded)
	if !ok {
		return fmt.Errorf("surplus item %s no longer in registry", match.SurplusID)
	}

	l.inventory.SetNeedStatus(need.ID, entities.NeedFulfilled)

	conn, err := l.tracker.RecordTransfer(match.FromLocation, match.ToLocation, match.EstimatedSavings)
	if err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}

	_ = l.journal.AppendEvent(match.ID, events.NewMatchAcceptedEvent(*match, transferred))
	_ = l.journal.AppendEvent(conn.ID, events.NewTransferRecordedEvent(*conn, match.EstimatedSavings))
	return nil
}

func (l *Lifecycle) notifyProposal(match *entities.Match) {
	need, ok := l.inventory.GetNeed(match.NeedID)
	if !ok {
		return
	}

	notification, err := entities.NewNotification(
		uuid.NewString(),
		need.LocationID,
		entities.NotificationMatchProposal,
		"New surplus match proposal",
		fmt.Sprintf("Surplus available from %s covers your %s need (%.0f%% match score)",
			match.FromLocation, need.Category, match.Score*100),
		need.Urgency.Priority(),
	)
	if err != nil {
		l.logger.Warn("failed to build proposal notification", zap.Error(err))
		return
	}
	_ = l.notifications.Append(notification)
}
