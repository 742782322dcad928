package matching

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
)

// ConnectionTracker records bilateral transfer history and evolves trust
// between location pairs. Connections are created and mutated exclusively on
// accepted transfers.
type ConnectionTracker struct {
	connections repositories.ConnectionRepository
	logger      *zap.Logger
}

// NewConnectionTracker creates a connection tracker
func NewConnectionTracker(connections repositories.ConnectionRepository, logger *zap.Logger) *ConnectionTracker {
	return &ConnectionTracker{
		connections: connections,
		logger:      logger,
	}
}

// RecordTransfer looks up the connection between the pair irrespective of
// direction, creating one at the baseline trust when none exists, then
// accumulates the transfer. Trust rises by the fixed increment on repeat
// transfers, capped.
func (t *ConnectionTracker) RecordTransfer(a, b entities.LocationID, value decimal.Decimal) (*entities.Connection, error) {
	conn, ok := t.connections.GetByPair(a, b)
	if !ok {
		created, err := entities.NewConnection(uuid.NewString(), a, b)
		if err != nil {
			return nil, err
		}
		conn = created
	}

	conn.RecordTransfer(value)
	if err := t.connections.Save(conn); err != nil {
		return nil, err
	}

	t.logger.Info("recorded transfer",
		zap.String("location_a", string(a)),
		zap.String("location_b", string(b)),
		zap.String("value", value.String()),
		zap.Float64("trust", conn.TrustScore),
		zap.Int("total_transfers", conn.TotalTransfers))

	return conn, nil
}
