package order

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

func (r *postgresRepo) Create(ctx context.Context, order domain.Order, lines []domain.OrderLine) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, customer_name, customer_email, total_amount, status, shipping_address, phone, payment_method)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
RETURNING id::text, created_at
`,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.TotalAmount.StringFixed(2),
		string(order.Status),
		order.ShippingAddress,
		order.Phone,
		order.PaymentMethod,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: insert order email=%s error=%v", order.CustomerEmail, err)
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created.Lines = make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		line.OrderID = created.ID
		err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4::numeric)
RETURNING id::text, created_at
`, created.ID, line.ProductID, line.Quantity, line.Price.StringFixed(2)).Scan(&line.ID, &line.CreatedAt)
		if err != nil {
			r.logger.Printf("order repo: insert line order_id=%s product_id=%s error=%v", created.ID, line.ProductID, err)
			return nil, fmt.Errorf("insert order line for product %s: %w", line.ProductID, err)
		}
		created.Lines = append(created.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}
	r.logger.Printf("order repo: created id=%s lines=%d total=%s", created.ID, len(created.Lines), created.TotalAmount.StringFixed(2))
	return &created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var (
		o      domain.Order
		total  string
		status string
	)
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id::text, customer_name, customer_email, total_amount::text, status, shipping_address, phone, payment_method, created_at
FROM orders
WHERE id = $1
`, id).Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &total, &status, &o.ShippingAddress, &o.Phone, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse order total %q: %w", total, err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, quantity, price::text, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		var price string
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &price, &line.CreatedAt); err != nil {
			return nil, err
		}
		if line.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse line price %q: %w", price, err)
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: deleted id=%s", id)
	return nil
}
