package seed

import (
	"context"
	"fmt"

	"agrimart/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductWriter is the part of the product repository seeding needs.
type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type productSeed struct {
	Name        string
	Description string
	Category    domain.Category
	Price       string
	Unit        string
	Stock       int
	ImageURL    string
}

var demoCatalog = []productSeed{
	{
		Name:        "Basmati Rice",
		Description: "Long grain aged basmati, cleaned and sorted",
		Category:    domain.CategoryCrops,
		Price:       "3100.00",
		Unit:        "per quintal",
		Stock:       120,
		ImageURL:    "https://images.pexels.com/photos/4110251/pexels-photo-4110251.jpeg",
	},
	{
		Name:        "Wheat",
		Description: "Sharbati wheat from Madhya Pradesh",
		Category:    domain.CategoryCrops,
		Price:       "2400.00",
		Unit:        "per quintal",
		Stock:       200,
		ImageURL:    "https://images.pexels.com/photos/326082/pexels-photo-326082.jpeg",
	},
	{
		Name:        "Yellow Maize",
		Description: "Feed and milling grade maize",
		Category:    domain.CategoryCrops,
		Price:       "1950.00",
		Unit:        "per quintal",
		Stock:       80,
		ImageURL:    "https://images.pexels.com/photos/547263/pexels-photo-547263.jpeg",
	},
	{
		Name:        "Urea",
		Description: "46% nitrogen granular urea",
		Category:    domain.CategoryFertilizers,
		Price:       "266.50",
		Unit:        "per 45 kg bag",
		Stock:       500,
		ImageURL:    "https://images.pexels.com/photos/5529604/pexels-photo-5529604.jpeg",
	},
	{
		Name:        "DAP",
		Description: "Di-ammonium phosphate 18-46-0",
		Category:    domain.CategoryFertilizers,
		Price:       "1350.00",
		Unit:        "per 50 kg bag",
		Stock:       300,
		ImageURL:    "https://images.pexels.com/photos/5529599/pexels-photo-5529599.jpeg",
	},
	{
		Name:        "Vermicompost",
		Description: "Organic earthworm compost for all crops",
		Category:    domain.CategoryFertilizers,
		Price:       "450.00",
		Unit:        "per 40 kg bag",
		Stock:       0,
		ImageURL:    "https://images.pexels.com/photos/4750270/pexels-photo-4750270.jpeg",
	},
}

// Apply upserts the demo catalog. It is idempotent: products are matched by
// category and name.
func Apply(ctx context.Context, w ProductWriter) (int, error) {
	for i, s := range demoCatalog {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return i, fmt.Errorf("price for %s: %w", s.Name, err)
		}
		_, err = w.Upsert(ctx, domain.Product{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Price:       price,
			Unit:        s.Unit,
			Stock:       s.Stock,
			ImageURL:    s.ImageURL,
		})
		if err != nil {
			return i, fmt.Errorf("upsert product %s: %w", s.Name, err)
		}
	}
	return len(demoCatalog), nil
}
