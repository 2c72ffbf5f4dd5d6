package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionID scopes an anonymous cart to one browsing session.
type SessionID string

// CartLine is one product-and-quantity entry in a cart. Product is the
// joined product row as it was when the line was read.
type CartLine struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId,omitempty"`
	SessionID *SessionID `json:"sessionId,omitempty"`
	ProductID string     `json:"productId"`
	Quantity  int        `json:"quantity"`
	CreatedAt time.Time  `json:"createdAt"`
	Product   Product    `json:"product"`
}

// Subtotal is the line's product price times its quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the subtotals of lines using their product snapshots.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
