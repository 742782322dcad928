// Package yamlrepo loads network scenarios from YAML files: the locations
// with their category stock levels, the surplus listings and needs to seed
// the registry with, plus optional distance and engine-config overrides.
package yamlrepo

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/domain/repositories"
	"github.com/smartchain/surplusnet/pkg/domain/services"
)

// Scenario is a fully parsed scenario file
type Scenario struct {
	Locations []*entities.LocationInventory
	Surplus   []*entities.SurplusItem
	Needs     []*entities.Need
	Distances []DistanceOverride

	// Config holds the raw engine-config override block, if present. Callers
	// decode it into their config type themselves.
	Config yaml.Node
}

// DistanceOverride is one entry of the scenario's distance table
type DistanceOverride struct {
	From  entities.LocationID
	To    entities.LocationID
	Miles float64
}

// HasConfig reports whether the scenario carried a config override block
func (s *Scenario) HasConfig() bool {
	return s.Config.Kind != 0
}

// Populate seeds the registry and distance table from the scenario
func (s *Scenario) Populate(inventory repositories.InventoryRepository, distance *services.DistanceEstimator) error {
	for _, loc := range s.Locations {
		if err := inventory.SaveLocation(loc); err != nil {
			return fmt.Errorf("failed to save location %s: %w", loc.ID, err)
		}
	}
	for _, item := range s.Surplus {
		if err := inventory.SaveSurplusItem(item); err != nil {
			return fmt.Errorf("failed to save surplus item %s: %w", item.ID, err)
		}
	}
	for _, need := range s.Needs {
		if err := inventory.SaveNeed(need); err != nil {
			return fmt.Errorf("failed to save need %s: %w", need.ID, err)
		}
	}
	for _, d := range s.Distances {
		distance.SetDistance(d.From, d.To, d.Miles)
	}
	return nil
}

// Raw row shapes as they appear in the file. Money and dates stay strings
// until parsed so a bad value names its row in the error.

type scenarioFile struct {
	Config    yaml.Node     `yaml:"config"`
	Locations []locationRow `yaml:"locations"`
	Distances []distanceRow `yaml:"distances"`
	Surplus   []surplusRow  `yaml:"surplus"`
	Needs     []needRow     `yaml:"needs"`
}

type locationRow struct {
	ID         string              `yaml:"id"`
	Name       string              `yaml:"name"`
	City       string              `yaml:"city"`
	Categories map[string]stockRow `yaml:"categories"`
}

type stockRow struct {
	Current int64 `yaml:"current"`
	Min     int64 `yaml:"min"`
	Max     int64 `yaml:"max"`
}

type distanceRow struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Miles float64 `yaml:"miles"`
}

type surplusRow struct {
	ID        string `yaml:"id"`
	Location  string `yaml:"location"`
	SKU       string `yaml:"sku"`
	Product   string `yaml:"product"`
	Category  string `yaml:"category"`
	Quantity  int64  `yaml:"quantity"`
	UnitPrice string `yaml:"unit_price"`
	Condition string `yaml:"condition"`
	Expires   string `yaml:"expires"`
}

type needRow struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
	Category string `yaml:"category"`
	Product  string `yaml:"product"`
	Quantity int64  `yaml:"quantity"`
	Urgency  string `yaml:"urgency"`
	MaxPrice string `yaml:"max_price"`
	Deadline string `yaml:"deadline"`
}

// Loader reads scenario files
type Loader struct{}

// NewLoader creates a new scenario loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses a scenario file. Entries are validated through the entity
// constructors, so a scenario that loads cleanly is ready for the engine.
func (l *Loader) Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file %s: %w", filename, err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", filename, err)
	}
	if len(file.Locations) == 0 {
		return nil, fmt.Errorf("scenario %s must define at least one location", filename)
	}

	scenario := &Scenario{Config: file.Config}
	known := make(map[string]bool, len(file.Locations))

	for i, row := range file.Locations {
		loc, err := parseLocation(row)
		if err != nil {
			return nil, fmt.Errorf("scenario location %d: %w", i+1, err)
		}
		if known[row.ID] {
			return nil, fmt.Errorf("scenario location %d: duplicate location id %s", i+1, row.ID)
		}
		known[row.ID] = true
		scenario.Locations = append(scenario.Locations, loc)
	}

	for i, row := range file.Distances {
		if !known[row.From] || !known[row.To] {
			return nil, fmt.Errorf("scenario distance %d: unknown location in pair %s/%s", i+1, row.From, row.To)
		}
		if row.Miles < 0 {
			return nil, fmt.Errorf("scenario distance %d: miles cannot be negative, got %f", i+1, row.Miles)
		}
		scenario.Distances = append(scenario.Distances, DistanceOverride{
			From:  entities.LocationID(row.From),
			To:    entities.LocationID(row.To),
			Miles: row.Miles,
		})
	}

	for i, row := range file.Surplus {
		if !known[row.Location] {
			return nil, fmt.Errorf("scenario surplus %d: unknown location %s", i+1, row.Location)
		}
		item, err := parseSurplus(row)
		if err != nil {
			return nil, fmt.Errorf("scenario surplus %d: %w", i+1, err)
		}
		scenario.Surplus = append(scenario.Surplus, item)
	}

	for i, row := range file.Needs {
		if !known[row.Location] {
			return nil, fmt.Errorf("scenario need %d: unknown location %s", i+1, row.Location)
		}
		need, err := parseNeed(row)
		if err != nil {
			return nil, fmt.Errorf("scenario need %d: %w", i+1, err)
		}
		scenario.Needs = append(scenario.Needs, need)
	}

	return scenario, nil
}

func parseLocation(row locationRow) (*entities.LocationInventory, error) {
	loc, err := entities.NewLocationInventory(entities.LocationID(row.ID), row.Name, row.City)
	if err != nil {
		return nil, err
	}
	for category, stock := range row.Categories {
		if err := loc.SetCategoryStock(
			category,
			entities.Quantity(stock.Current),
			entities.Quantity(stock.Min),
			entities.Quantity(stock.Max),
		); err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
	}
	return loc, nil
}

func parseSurplus(row surplusRow) (*entities.SurplusItem, error) {
	price, err := decimal.NewFromString(row.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid unit_price: %s", row.UnitPrice)
	}
	condition, err := entities.ParseCondition(row.Condition)
	if err != nil {
		return nil, err
	}

	id := row.ID
	if id == "" {
		id = uuid.NewString()
	}

	item, err := entities.NewSurplusItem(
		id,
		entities.LocationID(row.Location),
		row.SKU,
		row.Product,
		row.Category,
		entities.Quantity(row.Quantity),
		price,
		condition,
	)
	if err != nil {
		return nil, err
	}

	if row.Expires != "" {
		expires, err := time.Parse("2006-01-02", row.Expires)
		if err != nil {
			return nil, fmt.Errorf("invalid expires date: %s (expected YYYY-MM-DD)", row.Expires)
		}
		item.ExpirationDate = &expires
	}
	return item, nil
}

func parseNeed(row needRow) (*entities.Need, error) {
	urgency, err := entities.ParseUrgency(row.Urgency)
	if err != nil {
		return nil, err
	}

	var maxPrice *decimal.Decimal
	if row.MaxPrice != "" {
		price, err := decimal.NewFromString(row.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid max_price: %s", row.MaxPrice)
		}
		maxPrice = &price
	}

	var deadline *time.Time
	if row.Deadline != "" {
		d, err := time.Parse("2006-01-02", row.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline date: %s (expected YYYY-MM-DD)", row.Deadline)
		}
		deadline = &d
	}

	id := row.ID
	if id == "" {
		id = uuid.NewString()
	}

	return entities.NewNeed(
		id,
		entities.LocationID(row.Location),
		row.Category,
		row.Product,
		entities.Quantity(row.Quantity),
		urgency,
		maxPrice,
		deadline,
	)
}
