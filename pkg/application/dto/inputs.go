package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SurplusInput is the ingestion payload for a new surplus listing. Validation
// tags reject malformed input (non-positive quantity, empty category,
// negative price) before it reaches the registry.
type SurplusInput struct {
	LocationID  string          `validate:"required"`
	SKU         string          `validate:"required"`
	ProductName string          `validate:"required"`
	Category    string          `validate:"required"`
	Quantity    int64           `validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `validate:"-"`
	Condition   string          `validate:"required,oneof=new like_new good fair"`
	Expiration  *time.Time
}

// NeedInput is the ingestion payload for a new need
type NeedInput struct {
	LocationID  string `validate:"required"`
	Category    string `validate:"required"`
	ProductName string
	Quantity    int64  `validate:"required,gt=0"`
	Urgency     string `validate:"required,oneof=low medium high critical"`
	MaxPrice    *decimal.Decimal
	Deadline    *time.Time
}

// SearchFilters narrows surplus listings. Zero values leave a dimension
// unfiltered.
type SearchFilters struct {
	Category    string
	LocationID  string
	Conditions  []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQuantity int64
	MaxQuantity int64
	SearchTerm  string
}
