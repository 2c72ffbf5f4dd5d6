// Package memory keeps products, cart lines and orders in process memory.
// It implements the same repository contracts as the Postgres store and is
// used by STORE_BACKEND=memory and by service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"agrimart/internal/domain"
	cartrepo "agrimart/internal/repository/cart"
	orderrepo "agrimart/internal/repository/order"
	productrepo "agrimart/internal/repository/product"
	"github.com/google/uuid"
)

var (
	_ productrepo.Repository = (*ProductRepo)(nil)
	_ cartrepo.Repository    = (*CartRepo)(nil)
	_ orderrepo.Repository   = (*OrderRepo)(nil)
)

type cartRow struct {
	id        string
	userID    *string
	sessionID *domain.SessionID
	productID string
	quantity  int
	createdAt time.Time
	seq       int
}

// Store is the shared backing state of the memory repositories.
type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	cart     map[string]cartRow
	orders   map[string]domain.Order
	seq      int
	now      func() time.Time
}

func New() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		cart:     make(map[string]cartRow),
		orders:   make(map[string]domain.Order),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Products returns the product repository view of the store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Carts returns the cart repository view of the store.
func (s *Store) Carts() *CartRepo { return &CartRepo{s: s} }

// Orders returns the order repository view of the store.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

type ProductRepo struct{ s *Store }

func (r *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Upsert matches existing products by (category, name), like the Postgres store.
func (r *ProductRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.products {
		if existing.Category == product.Category && existing.Name == product.Name {
			product.ID = id
			product.CreatedAt = existing.CreatedAt
			r.s.products[id] = product
			return &product, nil
		}
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.CreatedAt = r.s.now()
	r.s.products[product.ID] = product
	return &product, nil
}

type CartRepo struct{ s *Store }

func (r *CartRepo) ListBySession(_ context.Context, session domain.SessionID) ([]domain.CartLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]cartRow, 0)
	for _, row := range r.s.cart {
		if row.sessionID != nil && *row.sessionID == session {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		p, ok := r.s.products[row.productID]
		if !ok {
			continue
		}
		lines = append(lines, domain.CartLine{
			ID:        row.id,
			UserID:    row.userID,
			SessionID: row.sessionID,
			ProductID: row.productID,
			Quantity:  row.quantity,
			CreatedAt: row.createdAt,
			Product:   p,
		})
	}
	return lines, nil
}

func (r *CartRepo) AddOrIncrement(_ context.Context, session domain.SessionID, productID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[productID]; !ok {
		return domain.ErrNotFound
	}
	var found *cartRow
	for _, row := range r.s.cart {
		if row.sessionID != nil && *row.sessionID == session && row.productID == productID {
			if found == nil || row.seq < found.seq {
				found = &row
			}
		}
	}
	if found != nil {
		found.quantity += quantity
		r.s.cart[found.id] = *found
		return nil
	}

	r.s.seq++
	sid := session
	row := cartRow{
		id:        uuid.NewString(),
		sessionID: &sid,
		productID: productID,
		quantity:  quantity,
		createdAt: r.s.now(),
		seq:       r.s.seq,
	}
	r.s.cart[row.id] = row
	return nil
}

func (r *CartRepo) SetQuantity(_ context.Context, lineID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.cart[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	row.quantity = quantity
	r.s.cart[lineID] = row
	return nil
}

func (r *CartRepo) Remove(_ context.Context, lineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.cart, lineID)
	return nil
}

func (r *CartRepo) ClearSession(_ context.Context, session domain.SessionID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, row := range r.s.cart {
		if row.sessionID != nil && *row.sessionID == session {
			delete(r.s.cart, id)
		}
	}
	return nil
}

type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, order domain.Order, lines []domain.OrderLine) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, line := range lines {
		if _, ok := r.s.products[line.ProductID]; !ok {
			return nil, domain.ErrNotFound
		}
	}

	order.ID = uuid.NewString()
	order.CreatedAt = r.s.now()
	order.Lines = make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		line.ID = uuid.NewString()
		line.OrderID = order.ID
		line.CreatedAt = order.CreatedAt
		order.Lines = append(order.Lines, line)
	}
	r.s.orders[order.ID] = order
	return cloneOrder(order), nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

// Count reports the number of stored orders.
func (r *OrderRepo) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.orders)
}

func cloneOrder(o domain.Order) *domain.Order {
	out := o
	out.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &out
}
