package memory

import (
	"sort"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
)

// InventoryRepository provides in-memory storage for location inventories,
// surplus listings and needs. The registry is a single-writer resource: every
// mutating operation runs synchronously to completion, so no internal locking
// is required.
type InventoryRepository struct {
	locations map[entities.LocationID]*entities.LocationInventory
	surplus   map[string]*entities.SurplusItem
	needs     map[string]*entities.Need
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		locations: make(map[entities.LocationID]*entities.LocationInventory),
		surplus:   make(map[string]*entities.SurplusItem),
		needs:     make(map[string]*entities.Need),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// SaveLocation stores a location inventory
func (r *InventoryRepository) SaveLocation(loc *entities.LocationInventory) error {
	r.locations[loc.ID] = copyLocation(loc)
	return nil
}

// GetLocation returns a copy of the location inventory
func (r *InventoryRepository) GetLocation(id entities.LocationID) (*entities.LocationInventory, bool) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, false
	}
	return copyLocation(loc), true
}

// ListLocations returns copies of all locations sorted by id
func (r *InventoryRepository) ListLocations() []*entities.LocationInventory {
	out := make([]*entities.LocationInventory, 0, len(r.locations))
	for _, loc := range r.locations {
		out = append(out, copyLocation(loc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SaveSurplusItem stores a surplus listing
func (r *InventoryRepository) SaveSurplusItem(item *entities.SurplusItem) error {
	cp := *item
	r.surplus[item.ID] = &cp
	return nil
}

// GetSurplusItem returns a copy of a surplus listing
func (r *InventoryRepository) GetSurplusItem(id string) (*entities.SurplusItem, bool) {
	item, ok := r.surplus[id]
	if !ok {
		return nil, false
	}
	cp := *item
	return &cp, true
}

// ListSurplus returns copies of all surplus listings sorted by id
func (r *InventoryRepository) ListSurplus() []*entities.SurplusItem {
	out := make([]*entities.SurplusItem, 0, len(r.surplus))
	for _, item := range r.surplus {
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListSurplusByLocation returns copies of a location's surplus listings sorted by id
func (r *InventoryRepository) ListSurplusByLocation(id entities.LocationID) []*entities.SurplusItem {
	var out []*entities.SurplusItem
	for _, item := range r.surplus {
		if item.LocationID == id {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SaveNeed stores a need
func (r *InventoryRepository) SaveNeed(need *entities.Need) error {
	cp := *need
	r.needs[need.ID] = &cp
	return nil
}

// GetNeed returns a copy of a need
func (r *InventoryRepository) GetNeed(id string) (*entities.Need, bool) {
	need, ok := r.needs[id]
	if !ok {
		return nil, false
	}
	cp := *need
	return &cp, true
}

// ListNeeds returns copies of all needs sorted by id
func (r *InventoryRepository) ListNeeds() []*entities.Need {
	out := make([]*entities.Need, 0, len(r.needs))
	for _, need := range r.needs {
		cp := *need
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListNeedsByLocation returns copies of a location's needs sorted by id
func (r *InventoryRepository) ListNeedsByLocation(id entities.LocationID) []*entities.Need {
	var out []*entities.Need
	for _, need := range r.needs {
		if need.LocationID == id {
			cp := *need
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeductSurplus removes up to qty units from a surplus item. The stored item
// transitions to Transferred when its remainder hits zero.
func (r *InventoryRepository) DeductSurplus(id string, qty entities.Quantity) (entities.Quantity, bool) {
	item, ok := r.surplus[id]
	if !ok {
		return 0, false
	}
	return item.Deduct(qty), true
}

// SetSurplusStatus applies a checked status transition to a surplus item
func (r *InventoryRepository) SetSurplusStatus(id string, status entities.SurplusStatus) bool {
	item, ok := r.surplus[id]
	if !ok {
		return false
	}
	return item.TransitionTo(status)
}

// SetNeedStatus applies a checked status transition to a need
func (r *InventoryRepository) SetNeedStatus(id string, status entities.NeedStatus) bool {
	need, ok := r.needs[id]
	if !ok {
		return false
	}
	return need.TransitionTo(status)
}

func copyLocation(loc *entities.LocationInventory) *entities.LocationInventory {
	cp := *loc
	cp.Categories = make(map[string]entities.CategoryStock, len(loc.Categories))
	for k, v := range loc.Categories {
		cp.Categories[k] = v
	}
	return &cp
}
