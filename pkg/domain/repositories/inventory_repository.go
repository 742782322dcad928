package repositories

import "github.com/smartchain/surplusnet/pkg/domain/entities"

// InventoryRepository provides access to per-location inventories, surplus
// listings and outstanding needs. Listing methods return copies, never live
// references; mutation happens through the Save*/Adjust* methods so callers
// cannot corrupt registry state through a returned value.
type InventoryRepository interface {
	SaveLocation(loc *entities.LocationInventory) error
	GetLocation(id entities.LocationID) (*entities.LocationInventory, bool)
	ListLocations() []*entities.LocationInventory

	SaveSurplusItem(item *entities.SurplusItem) error
	GetSurplusItem(id string) (*entities.SurplusItem, bool)
	ListSurplus() []*entities.SurplusItem
	ListSurplusByLocation(id entities.LocationID) []*entities.SurplusItem

	SaveNeed(need *entities.Need) error
	GetNeed(id string) (*entities.Need, bool)
	ListNeeds() []*entities.Need
	ListNeedsByLocation(id entities.LocationID) []*entities.Need

	// DeductSurplus removes up to qty units from a surplus item, transitioning
	// it to Transferred when the remainder hits zero. Returns the quantity
	// actually deducted and false when the item is unknown.
	DeductSurplus(id string, qty entities.Quantity) (entities.Quantity, bool)

	// SetSurplusStatus and SetNeedStatus apply checked status transitions.
	// They return false for unknown ids or illegal transitions.
	SetSurplusStatus(id string, status entities.SurplusStatus) bool
	SetNeedStatus(id string, status entities.NeedStatus) bool
}
