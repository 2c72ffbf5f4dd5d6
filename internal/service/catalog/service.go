package catalog

import (
	"context"
	"io"
	"log"

	"agrimart/internal/domain"
	productrepo "agrimart/internal/repository/product"
	"github.com/google/uuid"
)

type Service struct {
	repo   productrepo.Repository
	logger *log.Logger
}

func New(repo productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// ListProducts returns every product sorted by category then name. A failing
// store degrades to an empty catalog.
func (s *Service) ListProducts(ctx context.Context) []domain.Product {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Printf("catalog: list err=%v", domain.NewStoreError("list products", err))
		return []domain.Product{}
	}
	if products == nil {
		return []domain.Product{}
	}
	return products
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("get product", err)
	}
	return p, nil
}

// FilterByCategory keeps the products in category, preserving order. An
// empty category keeps everything.
func FilterByCategory(products []domain.Product, category domain.Category) []domain.Product {
	if category == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
