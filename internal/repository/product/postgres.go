package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"agrimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `id::text, name, description, category, price::text, unit, stock, image_url, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY category COLLATE "C" ASC, name COLLATE "C" ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, category, price, unit, stock, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5::numeric, $6, $7, $8)
ON CONFLICT (category, name) DO UPDATE SET
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    unit = EXCLUDED.unit,
    stock = EXCLUDED.stock,
    image_url = EXCLUDED.image_url
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		string(product.Category),
		product.Price.StringFixed(2),
		product.Unit,
		product.Stock,
		product.ImageURL,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s category=%s error=%v", product.Name, product.Category, err)
		return nil, err
	}
	if product.ID != "" && res.ID != product.ID {
		return nil, fmt.Errorf("product repo: id mismatch for name=%s category=%s existing_id=%s import_id=%s", product.Name, product.Category, res.ID, product.ID)
	}
	r.logger.Printf("product repo: upserted name=%s category=%s id=%s", res.Name, res.Category, res.ID)
	return &res, nil
}

// ScanJoined reads the product columns starting at the given destination
// slots. It is shared with the cart repository, which joins products.
func ScanJoined(p *domain.Product, price *string) []any {
	return []any{&p.ID, &p.Name, &p.Description, &p.Category, price, &p.Unit, &p.Stock, &p.ImageURL, &p.CreatedAt}
}

// ParsePrice converts the numeric text form returned by Postgres.
func ParsePrice(p *domain.Product, price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("parse price %q for product %s: %w", price, p.ID, err)
	}
	p.Price = d
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	var price string
	if err := row.Scan(ScanJoined(&p, &price)...); err != nil {
		return domain.Product{}, err
	}
	if err := ParsePrice(&p, price); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
