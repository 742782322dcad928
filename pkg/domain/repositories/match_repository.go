package repositories

import "github.com/smartchain/surplusnet/pkg/domain/entities"

// MatchRepository holds the current candidate match set. A generation pass is
// a full recompute: Replace swaps the held pending/proposed set for the new
// one rather than diffing incrementally.
type MatchRepository interface {
	// Replace discards all non-terminal matches and installs the given set.
	// Accepted and rejected matches are retained for history.
	Replace(matches []*entities.Match) error

	Get(id string) (*entities.Match, bool)
	List() []*entities.Match

	// Update persists mutations made by the lifecycle manager
	Update(match *entities.Match) bool
}
