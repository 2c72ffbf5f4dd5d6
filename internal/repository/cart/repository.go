package cart

import (
	"context"

	"agrimart/internal/domain"
)

// Repository stores cart lines scoped to a session. Reads always hit the
// store; nothing is cached.
type Repository interface {
	ListBySession(ctx context.Context, session domain.SessionID) ([]domain.CartLine, error)
	AddOrIncrement(ctx context.Context, session domain.SessionID, productID string, quantity int) error
	SetQuantity(ctx context.Context, lineID string, quantity int) error
	Remove(ctx context.Context, lineID string) error
	ClearSession(ctx context.Context, session domain.SessionID) error
}
