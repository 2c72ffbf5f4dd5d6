package cart

import (
	"context"
	"errors"
	"fmt"

	"agrimart/internal/domain"
	cartrepo "agrimart/internal/repository/cart"
	"github.com/google/uuid"
)

// ErrInvalidQuantity is returned when an add asks for fewer than one unit.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrOutOfStock is returned when an add asks for more units than the product
// has in stock.
var ErrOutOfStock = errors.New("product out of stock")

type Service struct {
	repo        cartrepo.Repository
	productRepo productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// ListLines returns the session's cart lines with their products, oldest first.
func (s *Service) ListLines(ctx context.Context, session domain.SessionID) ([]domain.CartLine, error) {
	lines, err := s.repo.ListBySession(ctx, session)
	if err != nil {
		return nil, domain.NewStoreError("list cart", err)
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

// AddOrIncrement adds quantity units of a product to the session's cart,
// growing the existing line when there is one. A single add may not exceed
// the product's stock; the running line total is not checked.
func (s *Service) AddOrIncrement(ctx context.Context, session domain.SessionID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrNotFound
	}
	if s.productRepo != nil {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return domain.NewStoreError("get product", err)
		}
		if product.Stock <= 0 {
			return ErrOutOfStock
		}
		if quantity > product.Stock {
			return fmt.Errorf("%w: %d requested, %d available", ErrOutOfStock, quantity, product.Stock)
		}
	}
	return domain.NewStoreError("add to cart", s.repo.AddOrIncrement(ctx, session, productID, quantity))
}

// SetQuantity overwrites a line's quantity. Values below one are raised to one;
// use RemoveLine to drop a line.
func (s *Service) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if _, err := uuid.Parse(lineID); err != nil {
		return domain.ErrNotFound
	}
	if quantity < 1 {
		quantity = 1
	}
	return domain.NewStoreError("set quantity", s.repo.SetQuantity(ctx, lineID, quantity))
}

func (s *Service) RemoveLine(ctx context.Context, lineID string) error {
	if _, err := uuid.Parse(lineID); err != nil {
		return nil
	}
	return domain.NewStoreError("remove line", s.repo.Remove(ctx, lineID))
}

// ClearSession deletes every line in the session's cart.
func (s *Service) ClearSession(ctx context.Context, session domain.SessionID) error {
	return domain.NewStoreError("clear cart", s.repo.ClearSession(ctx, session))
}
