package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products in the catalog.
type Category string

const (
	CategoryCrops       Category = "crops"
	CategoryFertilizers Category = "fertilizers"
)

// Valid reports whether c is one of the known catalog categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCrops, CategoryFertilizers:
		return true
	}
	return false
}

// Product is read-only from the storefront's perspective.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
}
