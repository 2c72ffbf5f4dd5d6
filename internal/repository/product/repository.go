package product

import (
	"context"

	"agrimart/internal/domain"
)

// Repository reads the catalog. Upsert is used by the seed and import tools only.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
