package order

import (
	"context"

	"agrimart/internal/domain"
)

// Repository persists orders. Create writes the order row and all its lines
// atomically; Delete removes an order together with its lines.
type Repository interface {
	Create(ctx context.Context, order domain.Order, lines []domain.OrderLine) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
