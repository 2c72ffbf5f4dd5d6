package cart

import (
	"context"
	"errors"

	"agrimart/internal/domain"
	productrepo "agrimart/internal/repository/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListBySession(ctx context.Context, session domain.SessionID) ([]domain.CartLine, error) {
	const q = `
SELECT ci.id::text, ci.user_id::text, ci.session_id, ci.product_id::text, ci.quantity, ci.created_at,
       p.id::text, p.name, p.description, p.category, p.price::text, p.unit, p.stock, p.image_url, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.session_id = $1
ORDER BY ci.created_at ASC, ci.id ASC
`
	rows, err := r.pool.Query(ctx, q, string(session))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var (
			line      domain.CartLine
			userID    *string
			sessionID *string
			price     string
		)
		dest := []any{&line.ID, &userID, &sessionID, &line.ProductID, &line.Quantity, &line.CreatedAt}
		dest = append(dest, productrepo.ScanJoined(&line.Product, &price)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if err := productrepo.ParsePrice(&line.Product, price); err != nil {
			return nil, err
		}
		line.UserID = userID
		if sessionID != nil {
			sid := domain.SessionID(*sessionID)
			line.SessionID = &sid
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddOrIncrement reads the existing line for (session, product) and then
// updates or inserts. Two racing adds can still produce duplicate lines.
func (r *postgresRepo) AddOrIncrement(ctx context.Context, session domain.SessionID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_items
WHERE session_id = $1 AND product_id = $2
ORDER BY created_at ASC
LIMIT 1
`, string(session), productID).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, existingQty+quantity, lineID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (session_id, product_id, quantity)
VALUES ($1, $2, $3)
`, string(session), productID, quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, quantity, lineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, lineID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, lineID)
	return err
}

func (r *postgresRepo) ClearSession(ctx context.Context, session domain.SessionID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, string(session))
	return err
}
