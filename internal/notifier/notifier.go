// Package notifier tells customers about their orders.
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"

	"agrimart/internal/domain"
)

// Notifier is told about every order that was placed successfully.
type Notifier interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
}

// Log writes a line per placed order instead of sending anything.
type Log struct {
	logger *log.Logger
}

func NewLog(logger *log.Logger) *Log {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Log{logger: logger}
}

func (l *Log) OrderPlaced(_ context.Context, order domain.Order) error {
	l.logger.Printf("notifier: order placed id=%s email=%s total=%s lines=%d",
		order.ID, order.CustomerEmail, order.TotalAmount.StringFixed(2), len(order.Lines))
	return nil
}

func subject(order domain.Order) string {
	return fmt.Sprintf("AgriMart order %s confirmed", order.ID)
}

func textBody(order domain.Order, currency string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your order. Order %s has been placed and will be paid on delivery.\n\n"+
			"Items: %d\nTotal: %s%s\nShipping to: %s\n\nAgriMart",
		order.CustomerName, order.ID, itemCount(order), currency, order.TotalAmount.StringFixed(2), order.ShippingAddress)
}

var htmlTemplate = template.Must(template.New("order").Parse(`<html>
<body>
<p>Dear {{.Name}},</p>
<p>Thank you for your order. Order <strong>{{.OrderID}}</strong> has been placed and will be paid on delivery.</p>
<ul>
<li>Items: {{.Items}}</li>
<li>Total: {{.Total}}</li>
<li>Shipping to: {{.Address}}</li>
</ul>
<p>AgriMart</p>
</body>
</html>`))

// htmlBody renders the confirmation mail; customer input is escaped.
func htmlBody(order domain.Order, currency string) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Name, OrderID, Total, Address string
		Items                         int
	}{
		Name:    order.CustomerName,
		OrderID: order.ID,
		Total:   currency + order.TotalAmount.StringFixed(2),
		Address: order.ShippingAddress,
		Items:   itemCount(order),
	})
	if err != nil {
		return "", fmt.Errorf("render confirmation for order %s: %w", order.ID, err)
	}
	return buf.String(), nil
}

func itemCount(order domain.Order) int {
	n := 0
	for _, l := range order.Lines {
		n += l.Quantity
	}
	return n
}
