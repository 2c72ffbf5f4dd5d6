package httpserver

import (
	"time"

	"agrimart/internal/domain"
)

type productView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Unit         string `json:"unit"`
	Stock        int    `json:"stock"`
	InStock      bool   `json:"inStock"`
	ImageURL     string `json:"imageUrl"`
}

type cartLineView struct {
	ID              string      `json:"id"`
	ProductID       string      `json:"productId"`
	Quantity        int         `json:"quantity"`
	Subtotal        string      `json:"subtotal"`
	SubtotalDisplay string      `json:"subtotalDisplay"`
	Product         productView `json:"product"`
}

type cartView struct {
	SessionID    string         `json:"sessionId"`
	Lines        []cartLineView `json:"lines"`
	Total        string         `json:"total"`
	TotalDisplay string         `json:"totalDisplay"`
	ItemCount    int            `json:"itemCount"`
}

type orderLineView struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type orderView struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	ShippingAddress string          `json:"shippingAddress"`
	Phone           string          `json:"phone"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Total           string          `json:"total"`
	TotalDisplay    string          `json:"totalDisplay"`
	CreatedAt       time.Time       `json:"createdAt"`
	Lines           []orderLineView `json:"lines"`
}

func (m moneyFormatter) product(p domain.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     string(p.Category),
		Price:        p.Price.StringFixed(2),
		PriceDisplay: m.format(p.Price),
		Unit:         p.Unit,
		Stock:        p.Stock,
		InStock:      p.Stock > 0,
		ImageURL:     p.ImageURL,
	}
}

func (m moneyFormatter) cart(session domain.SessionID, lines []domain.CartLine) cartView {
	out := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		sub := l.Subtotal()
		out = append(out, cartLineView{
			ID:              l.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			Subtotal:        sub.StringFixed(2),
			SubtotalDisplay: m.format(sub),
			Product:         m.product(l.Product),
		})
	}
	total := domain.CartTotal(lines)
	return cartView{
		SessionID:    string(session),
		Lines:        out,
		Total:        total.StringFixed(2),
		TotalDisplay: m.format(total),
		ItemCount:    len(lines),
	}
}

func (m moneyFormatter) order(o domain.Order) orderView {
	lines := make([]orderLineView, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price.StringFixed(2),
		})
	}
	return orderView{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		Total:           o.TotalAmount.StringFixed(2),
		TotalDisplay:    m.format(o.TotalAmount),
		CreatedAt:       o.CreatedAt,
		Lines:           lines,
	}
}
