package repositories

import "github.com/smartchain/surplusnet/pkg/domain/entities"

// ConnectionRepository stores bilateral transfer history between locations.
// Lookups are direction-agnostic: GetByPair(a, b) and GetByPair(b, a) resolve
// to the same connection.
type ConnectionRepository interface {
	Save(conn *entities.Connection) error
	GetByPair(a, b entities.LocationID) (*entities.Connection, bool)
	List() []*entities.Connection
}
