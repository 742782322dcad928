package memory

import (
	"sort"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
)

// ConnectionRepository provides in-memory storage for bilateral connections,
// keyed by the direction-agnostic location pair
type ConnectionRepository struct {
	byPair map[string]*entities.Connection
}

// NewConnectionRepository creates a new in-memory connection repository
func NewConnectionRepository() *ConnectionRepository {
	return &ConnectionRepository{
		byPair: make(map[string]*entities.Connection),
	}
}

// Verify interface compliance
var _ repositories.ConnectionRepository = (*ConnectionRepository)(nil)

// Save stores a connection under its pair key
func (r *ConnectionRepository) Save(conn *entities.Connection) error {
	cp := *conn
	r.byPair[conn.Key()] = &cp
	return nil
}

// GetByPair returns a copy of the connection between two locations,
// irrespective of direction
func (r *ConnectionRepository) GetByPair(a, b entities.LocationID) (*entities.Connection, bool) {
	conn, ok := r.byPair[entities.PairKey(a, b)]
	if !ok {
		return nil, false
	}
	cp := *conn
	return &cp, true
}

// List returns copies of all connections sorted by pair key
func (r *ConnectionRepository) List() []*entities.Connection {
	out := make([]*entities.Connection, 0, len(r.byPair))
	for _, conn := range r.byPair {
		cp := *conn
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
