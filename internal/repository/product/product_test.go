package product

import (
	"context"
	"os"
	"testing"

	"agrimart/internal/domain"
	"agrimart/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func TestPostgres_ListOrdersByCategoryThenName(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	_, err := pool.Exec(ctx, `
		INSERT INTO products (name, category, price, unit, stock)
		VALUES ('Urea', 'fertilizers', 266.50, 'per 45kg bag', 10),
		       ('Wheat', 'crops', 2400, 'per quintal', 5),
		       ('Rice', 'crops', 3100, 'per quintal', 8)
	`)
	if err != nil {
		t.Fatalf("insert products: %v", err)
	}

	repo := NewPostgres(pool, nil)
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, p := range list {
		names = append(names, p.Name)
	}
	if len(names) != 3 || names[0] != "Rice" || names[1] != "Wheat" || names[2] != "Urea" {
		t.Fatalf("unexpected order %v", names)
	}
	if !list[2].Price.Equal(decimal.RequireFromString("266.5")) {
		t.Fatalf("unexpected price %s", list[2].Price)
	}

	got, err := repo.GetByID(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Rice" || got.Category != domain.CategoryCrops {
		t.Fatalf("unexpected product %+v", got)
	}
}

func TestPostgres_ListUsesByteOrder(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	_, err := pool.Exec(ctx, `
		INSERT INTO products (name, category, price, unit, stock)
		VALUES ('bajra', 'crops', 2100, 'per quintal', 4),
		       ('Wheat', 'crops', 2400, 'per quintal', 5),
		       ('Rice', 'crops', 3100, 'per quintal', 8)
	`)
	if err != nil {
		t.Fatalf("insert products: %v", err)
	}

	list, err := NewPostgres(pool, nil).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, p := range list {
		names = append(names, p.Name)
	}
	if len(names) != 3 || names[0] != "Rice" || names[1] != "Wheat" || names[2] != "bajra" {
		t.Fatalf("expected byte order [Rice Wheat bajra], got %v", names)
	}
}

func TestPostgres_ListEmpty(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	list, err := NewPostgres(pool, nil).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}

func TestPostgres_Upsert(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	p, err := repo.Upsert(ctx, domain.Product{
		Name:     "DAP",
		Category: domain.CategoryFertilizers,
		Price:    decimal.RequireFromString("1350"),
		Unit:     "per 50kg bag",
		Stock:    20,
	})
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected ID set")
	}

	updated, err := repo.Upsert(ctx, domain.Product{
		Name:        "DAP",
		Category:    domain.CategoryFertilizers,
		Description: "Di-ammonium phosphate",
		Price:       decimal.RequireFromString("1400.25"),
		Unit:        "per 50kg bag",
		Stock:       12,
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if updated.ID != p.ID {
		t.Fatalf("expected same ID after update")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stock != 12 || got.Description != "Di-ammonium phosphate" || !got.Price.Equal(decimal.RequireFromString("1400.25")) {
		t.Fatalf("unexpected updated product %+v", got)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("db not reachable: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, orders, cart_items, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
