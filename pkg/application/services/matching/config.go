package matching

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the fixed weights and thresholds driving match scoring and
// action prioritization. Defaults mirror the production constants; scenario
// files may override them.
type Config struct {
	// Composite score weights. Each term is clamped to its own contribution
	// and the final sum is clamped to [0,1].
	QuantityWeight  float64 `yaml:"quantity_weight"`
	PriceWeight     float64 `yaml:"price_weight"`
	ProximityWeight float64 `yaml:"proximity_weight"`
	TrustWeight     float64 `yaml:"trust_weight"`

	// ScoreThreshold is the minimum composite score a candidate pairing must
	// reach to become a match
	ScoreThreshold float64 `yaml:"score_threshold"`

	// ReferenceMarkup is the retail markup avoided by a direct transfer,
	// used for the savings estimate
	ReferenceMarkup float64 `yaml:"reference_markup"`

	// HighScoreThreshold marks matches worth a match alert action
	HighScoreThreshold float64 `yaml:"high_score_threshold"`

	// Stock ratios against max threshold for low-stock alerts. Below
	// LowStockRatio escalates to high priority, below CriticalStockRatio to
	// critical.
	LowStockRatio      float64 `yaml:"low_stock_ratio"`
	CriticalStockRatio float64 `yaml:"critical_stock_ratio"`

	// SurplusOpportunityQty is the quantity above which a listing becomes a
	// surplus opportunity action
	SurplusOpportunityQty int64 `yaml:"surplus_opportunity_qty"`

	// Impact derivation constants
	TransportRatePerMile float64 `yaml:"transport_rate_per_mile"`
	TransportUnitBlock   int64   `yaml:"transport_unit_block"`
	AvgTransportSpeed    float64 `yaml:"avg_transport_speed"`
	BaseHandlingHours    float64 `yaml:"base_handling_hours"`
}

// DefaultConfig returns the engine's production constants
func DefaultConfig() Config {
	return Config{
		QuantityWeight:        0.3,
		PriceWeight:           0.2,
		ProximityWeight:       0.2,
		TrustWeight:           0.1,
		ScoreThreshold:        0.6,
		ReferenceMarkup:       1.3,
		HighScoreThreshold:    0.7,
		LowStockRatio:         0.2,
		CriticalStockRatio:    0.1,
		SurplusOpportunityQty: 50,
		TransportRatePerMile:  0.5,
		TransportUnitBlock:    10,
		AvgTransportSpeed:     50,
		BaseHandlingHours:     2,
	}
}

// Validate checks that the configuration is internally consistent
func (c Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"quantity_weight", c.QuantityWeight},
		{"price_weight", c.PriceWeight},
		{"proximity_weight", c.ProximityWeight},
		{"trust_weight", c.TrustWeight},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %f", w.name, w.value)
		}
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("score_threshold must be within [0,1], got %f", c.ScoreThreshold)
	}
	if c.ReferenceMarkup < 1 {
		return fmt.Errorf("reference_markup must be at least 1, got %f", c.ReferenceMarkup)
	}
	if c.CriticalStockRatio > c.LowStockRatio {
		return fmt.Errorf(
			"critical_stock_ratio %f cannot exceed low_stock_ratio %f",
			c.CriticalStockRatio, c.LowStockRatio,
		)
	}
	return nil
}

// LoadConfig reads a YAML config file, applying defaults for omitted fields
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config in %s: %w", filename, err)
	}
	return cfg, nil
}
