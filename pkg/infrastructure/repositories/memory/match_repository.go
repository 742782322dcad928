package memory

import (
	"sort"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
)

// MatchRepository provides in-memory storage for the candidate match set
type MatchRepository struct {
	matches map[string]*entities.Match
}

// NewMatchRepository creates a new in-memory match repository
func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		matches: make(map[string]*entities.Match),
	}
}

// Verify interface compliance
var _ repositories.MatchRepository = (*MatchRepository)(nil)

// Replace discards all non-terminal matches and installs the given set.
// Accepted and rejected matches are retained for connection history.
func (r *MatchRepository) Replace(matches []*entities.Match) error {
	for id, m := range r.matches {
		if !m.Status.Terminal() {
			delete(r.matches, id)
		}
	}
	for _, m := range matches {
		cp := *m
		r.matches[m.ID] = &cp
	}
	return nil
}

// Get returns a copy of a match
func (r *MatchRepository) Get(id string) (*entities.Match, bool) {
	m, ok := r.matches[id]
	if !ok {
		return nil, false
	}
	cp := *m
	return &cp, true
}

// List returns copies of all matches sorted by score descending, ties broken
// by id so repeated listings are stable
func (r *MatchRepository) List() []*entities.Match {
	out := make([]*entities.Match, 0, len(r.matches))
	for _, m := range r.matches {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Update persists lifecycle mutations for a known match
func (r *MatchRepository) Update(match *entities.Match) bool {
	if _, ok := r.matches[match.ID]; !ok {
		return false
	}
	cp := *match
	r.matches[match.ID] = &cp
	return true
}
