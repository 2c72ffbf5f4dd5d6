package cart

import (
	"context"
	"errors"
	"testing"

	"agrimart/internal/domain"
	"agrimart/internal/repository/memory"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	lines         []domain.CartLine
	listErr       error
	addErr        error
	setErr        error
	removeErr     error
	clearErr      error
	addCalls      int
	lastAddQty    int
	lastSetLineID string
	lastSetQty    int
	removeCalls   int
	clearSession  domain.SessionID
}

func (s *stubRepo) ListBySession(_ context.Context, _ domain.SessionID) ([]domain.CartLine, error) {
	return s.lines, s.listErr
}

func (s *stubRepo) AddOrIncrement(_ context.Context, _ domain.SessionID, _ string, quantity int) error {
	s.addCalls++
	s.lastAddQty = quantity
	return s.addErr
}

func (s *stubRepo) SetQuantity(_ context.Context, lineID string, quantity int) error {
	s.lastSetLineID = lineID
	s.lastSetQty = quantity
	return s.setErr
}

func (s *stubRepo) Remove(_ context.Context, _ string) error {
	s.removeCalls++
	return s.removeErr
}

func (s *stubRepo) ClearSession(_ context.Context, session domain.SessionID) error {
	s.clearSession = session
	return s.clearErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
	lastID  string
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

const (
	productID = "0f3a4c1e-6b7d-4e2f-9a10-b2c3d4e5f601"
	lineID    = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func TestServiceAddValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{product: &domain.Product{ID: productID, Stock: 10}})

	if err := svc.AddOrIncrement(context.Background(), "s1", productID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := svc.AddOrIncrement(context.Background(), "s1", "not-a-uuid", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no writes, got %d", repo.addCalls)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	products := &stubProductRepo{err: domain.ErrNotFound}
	svc := New(repo, products)

	err := svc.AddOrIncrement(context.Background(), "s1", productID, 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if products.lastID != productID {
		t.Fatalf("unexpected product lookup %q", products.lastID)
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no writes, got %d", repo.addCalls)
	}
}

func TestServiceAddWrapsStoreError(t *testing.T) {
	repo := &stubRepo{addErr: errors.New("conn reset")}
	svc := New(repo, &stubProductRepo{product: &domain.Product{ID: productID, Stock: 10}})

	err := svc.AddOrIncrement(context.Background(), "s1", productID, 2)
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "add to cart" {
		t.Fatalf("expected store error, got %v", err)
	}
	if repo.lastAddQty != 2 {
		t.Fatalf("unexpected quantity %d", repo.lastAddQty)
	}
}

func TestServiceAddRespectsStock(t *testing.T) {
	cases := []struct {
		name    string
		stock   int
		qty     int
		wantErr bool
	}{
		{name: "out of stock", stock: 0, qty: 1, wantErr: true},
		{name: "more than stock", stock: 3, qty: 4, wantErr: true},
		{name: "exactly stock", stock: 3, qty: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := New(repo, &stubProductRepo{product: &domain.Product{ID: productID, Stock: tc.stock}})

			err := svc.AddOrIncrement(context.Background(), "s1", productID, tc.qty)
			if tc.wantErr {
				if !errors.Is(err, ErrOutOfStock) {
					t.Fatalf("expected ErrOutOfStock, got %v", err)
				}
				if repo.addCalls != 0 {
					t.Fatalf("expected no writes, got %d", repo.addCalls)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.addCalls != 1 || repo.lastAddQty != tc.qty {
				t.Fatalf("unexpected add calls=%d qty=%d", repo.addCalls, repo.lastAddQty)
			}
		})
	}
}

func TestServiceSetQuantityClampsToOne(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.SetQuantity(context.Background(), lineID, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSetLineID != lineID || repo.lastSetQty != 1 {
		t.Fatalf("unexpected set call line=%q qty=%d", repo.lastSetLineID, repo.lastSetQty)
	}
}

func TestServiceRemoveMalformedIDIsNoop(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.RemoveLine(context.Background(), "bogus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removeCalls != 0 {
		t.Fatalf("expected no store call, got %d", repo.removeCalls)
	}
}

func TestServiceListWrapsStoreError(t *testing.T) {
	svc := New(&stubRepo{listErr: errors.New("timeout")}, nil)
	_, err := svc.ListLines(context.Background(), "s1")
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestServiceListEmptyIsNonNil(t *testing.T) {
	svc := New(&stubRepo{}, nil)
	lines, err := svc.ListLines(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", lines)
	}
}

func TestServiceAddOutOfStockLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	bags, err := store.Products().Upsert(ctx, domain.Product{Name: "DAP", Category: domain.CategoryFertilizers, Price: decimal.NewFromInt(1350)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := New(store.Carts(), store.Products())

	if err := svc.AddOrIncrement(ctx, "s1", bags.ID, 5); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	lines, _ := svc.ListLines(ctx, "s1")
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func memoryService(t *testing.T) (*Service, domain.Product, domain.Product) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	rice, err := store.Products().Upsert(ctx, domain.Product{Name: "Rice", Category: domain.CategoryCrops, Price: decimal.NewFromInt(100), Stock: 50})
	if err != nil {
		t.Fatalf("seed rice: %v", err)
	}
	urea, err := store.Products().Upsert(ctx, domain.Product{Name: "Urea", Category: domain.CategoryFertilizers, Price: decimal.NewFromInt(50), Stock: 50})
	if err != nil {
		t.Fatalf("seed urea: %v", err)
	}
	return New(store.Carts(), store.Products()), *rice, *urea
}

func TestServiceAddOrIncrementSumsQuantities(t *testing.T) {
	ctx := context.Background()
	svc, rice, _ := memoryService(t)

	for _, qty := range []int{2, 3, 4} {
		if err := svc.AddOrIncrement(ctx, "s1", rice.ID, qty); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	lines, err := svc.ListLines(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 9 {
		t.Fatalf("expected one line with quantity 9, got %+v", lines)
	}
}

func TestServiceSetAndRemoveThenList(t *testing.T) {
	ctx := context.Background()
	svc, rice, urea := memoryService(t)

	if err := svc.AddOrIncrement(ctx, "s1", rice.ID, 1); err != nil {
		t.Fatalf("add rice: %v", err)
	}
	if err := svc.AddOrIncrement(ctx, "s1", urea.ID, 1); err != nil {
		t.Fatalf("add urea: %v", err)
	}
	lines, _ := svc.ListLines(ctx, "s1")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if err := svc.SetQuantity(ctx, lines[0].ID, 7); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.RemoveLine(ctx, lines[1].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	lines, _ = svc.ListLines(ctx, "s1")
	if len(lines) != 1 || lines[0].ProductID != rice.ID || lines[0].Quantity != 7 {
		t.Fatalf("unexpected lines after set/remove: %+v", lines)
	}
	if total := domain.CartTotal(lines); !total.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("unexpected total %s", total)
	}

	if err := svc.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, _ = svc.ListLines(ctx, "s1")
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}
